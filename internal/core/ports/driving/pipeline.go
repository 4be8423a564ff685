// Package driving provides interfaces for use-case entry points (primary/inbound ports).
package driving

import (
	"context"

	"github.com/geotra-labs/deckgen/internal/core/domain"
)

// StructurePlanner derives a short natural-language deck structure from a
// planning conversation. The output is free text: downstream stages include
// it verbatim and never parse it.
type StructurePlanner interface {
	// Plan returns the structure synopsis, or domain.ErrPlanningFailed
	// when the collaborator yields empty text.
	Plan(ctx context.Context, pc domain.PlanningContext) (string, error)
}

// OutlineService selects which templates compose the deck and returns a
// document skeleton (titles and template bindings, no placeholder text).
// It is total: every failure mode of the LLM collaborator degrades to a
// deterministic fallback outline, never an error.
type OutlineService interface {
	Generate(ctx context.Context, structureText string, gc domain.GenerationContext) (*domain.SlideDocument, error)
}

// ContentService fills placeholder text according to each placeholder's
// edit policy. Collaborator failures degrade to description fallbacks;
// only configuration errors (unknown slide/asset) are surfaced.
type ContentService interface {
	// GenerateForSlide populates one slide in place and updates the
	// document's accumulated references.
	GenerateForSlide(ctx context.Context, doc *domain.SlideDocument, slideID string, gc domain.GenerationContext) error

	// GenerateForDocument populates every slide sequentially, re-binding
	// the same document instance.
	GenerateForDocument(ctx context.Context, doc *domain.SlideDocument, gc domain.GenerationContext) error
}

// RenderPlanService deterministically binds a finished document onto its
// templates by placeholder position index.
type RenderPlanService interface {
	// Build returns the binding plan, or domain.ErrTemplateDrift when the
	// destination template is missing indexes the manifest defines.
	Build(ctx context.Context, doc *domain.SlideDocument) (*domain.RenderPlan, error)
}
