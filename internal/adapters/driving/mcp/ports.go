package mcp

import (
	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
	"github.com/geotra-labs/deckgen/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Planner derives a deck structure from a planning conversation.
	// Optional; the plan_structure tool errors when absent.
	Planner driving.StructurePlanner

	// Outliner selects templates for a deck skeleton.
	Outliner driving.OutlineService

	// Content fills slide placeholders.
	// Optional; the generate_content tool errors when absent.
	Content driving.ContentService

	// Catalog is the template library.
	Catalog driven.TemplateCatalog
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalog
	}
	if p.Outliner == nil {
		return ErrMissingOutliner
	}
	// Planner and Content are optional
	return nil
}
