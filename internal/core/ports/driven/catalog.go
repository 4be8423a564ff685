package driven

import "github.com/geotra-labs/deckgen/internal/core/domain"

// TemplateCatalog indexes the fixed set of reusable slide templates. It is
// loaded once from the library manifest and queried read-only afterwards;
// consistency with the live template binaries is deferred to the renderer.
type TemplateCatalog interface {
	// List returns every asset in manifest order. The order is stable for
	// the lifetime of the catalog.
	List() []domain.SlideAsset

	// Get returns the asset with the given ID, or domain.ErrUnknownAsset.
	Get(assetID string) (domain.SlideAsset, error)

	// GetPlaceholder resolves a placeholder spec by asset ID and name, or
	// domain.ErrUnknownPlaceholder.
	GetPlaceholder(assetID, name string) (domain.PlaceholderSpec, error)

	// MasterTemplatePath returns the master/background template file path.
	MasterTemplatePath() (string, error)
}
