// Package mcp provides an MCP (Model Context Protocol) server adapter for
// deckgen. It lets AI assistants drive the slide pipeline: planning a deck
// structure, generating outlines and content, and browsing the template
// catalog.
package mcp

import "errors"

// ErrMissingCatalog is returned when the template catalog is not provided.
var ErrMissingCatalog = errors.New("mcp: template catalog is required")

// ErrMissingOutliner is returned when the outline service is not provided.
var ErrMissingOutliner = errors.New("mcp: outline service is required")
