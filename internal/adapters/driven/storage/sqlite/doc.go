// Package sqlite provides the SQLite-backed deck snapshot store. Snapshots
// are write-once rows keyed by UUID; the document payload is stored as the
// canonical JSON tree. Schema changes go through embedded migrations.
package sqlite
