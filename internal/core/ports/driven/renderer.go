package driven

import (
	"context"

	"github.com/geotra-labs/deckgen/internal/core/domain"
)

// DeckRenderer binds a finished slide document onto the binary templates.
// The container format itself is opaque to the core; the renderer only
// promises position-index binding of the prepared plan.
type DeckRenderer interface {
	// Render produces the presentation binary for the document.
	Render(ctx context.Context, doc *domain.SlideDocument) ([]byte, error)

	// RenderPreview produces a raster preview of one page, or
	// domain.ErrPreviewUnavailable when the conversion tool is absent.
	RenderPreview(ctx context.Context, doc *domain.SlideDocument, pageIndex int) ([]byte, error)
}

// TemplateInventory reports which placeholder position indexes actually
// exist in the destination template for an asset. The render planner checks
// the manifest against it to detect template drift before any binding.
type TemplateInventory interface {
	// PlaceholderIndexes returns the position indexes present in the
	// destination template for the given asset.
	PlaceholderIndexes(assetID string) ([]int, error)
}
