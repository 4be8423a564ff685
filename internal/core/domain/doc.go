// Package domain contains the core slide model: template assets with named
// placeholder slots, the mutable slide document that accumulates generated
// content across pipeline passes, and the sentinel errors shared by all
// services and adapters.
package domain
