package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/geotra-labs/deckgen/internal/core/domain"
	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
	"github.com/geotra-labs/deckgen/internal/logger"
)

// Ensure Catalog implements the interface.
var _ driven.TemplateCatalog = (*Catalog)(nil)

// ManifestFileName is the manifest file expected at the library root.
const ManifestFileName = "manifest.json"

// manifest is the on-disk shape of the slide library index.
type manifest struct {
	MasterFile string              `json:"master_file"`
	Assets     []domain.SlideAsset `json:"assets"`
}

// Catalog is a read-only template catalog loaded from a JSON manifest at
// the root of the slide library directory. The manifest is read once; the
// catalog never watches for changes.
type Catalog struct {
	root       string
	masterFile string
	assets     []domain.SlideAsset
	byID       map[string]int
}

// NewCatalog loads the manifest under root. A missing manifest file is
// domain.ErrManifestMissing; an unreadable or invalid one is a plain error.
func NewCatalog(root string) (*Catalog, error) {
	manifestPath := filepath.Join(root, ManifestFileName)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", manifestPath, domain.ErrManifestMissing)
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", manifestPath, err)
	}

	byID := make(map[string]int, len(m.Assets))
	for i, asset := range m.Assets {
		if err := asset.Validate(); err != nil {
			return nil, fmt.Errorf("manifest asset %q: %w", asset.ID, err)
		}
		if _, exists := byID[asset.ID]; exists {
			return nil, fmt.Errorf("manifest asset %q: duplicate asset ID", asset.ID)
		}
		byID[asset.ID] = i
	}

	logger.Debug("Loaded %d slide assets from %s", len(m.Assets), manifestPath)
	return &Catalog{
		root:       root,
		masterFile: m.MasterFile,
		assets:     m.Assets,
		byID:       byID,
	}, nil
}

// Root returns the slide library directory.
func (c *Catalog) Root() string {
	return c.root
}

// List returns every asset in manifest order.
func (c *Catalog) List() []domain.SlideAsset {
	out := make([]domain.SlideAsset, len(c.assets))
	copy(out, c.assets)
	return out
}

// Get returns the asset with the given ID.
func (c *Catalog) Get(assetID string) (domain.SlideAsset, error) {
	i, ok := c.byID[assetID]
	if !ok {
		return domain.SlideAsset{}, fmt.Errorf("asset %q: %w", assetID, domain.ErrUnknownAsset)
	}
	return c.assets[i], nil
}

// GetPlaceholder resolves a placeholder spec by asset ID and name.
func (c *Catalog) GetPlaceholder(assetID, name string) (domain.PlaceholderSpec, error) {
	asset, err := c.Get(assetID)
	if err != nil {
		return domain.PlaceholderSpec{}, err
	}
	spec, ok := asset.GetPlaceholder(name)
	if !ok {
		return domain.PlaceholderSpec{}, fmt.Errorf("asset %q placeholder %q: %w",
			assetID, name, domain.ErrUnknownPlaceholder)
	}
	return spec, nil
}

// MasterTemplatePath returns the absolute path of the master template.
func (c *Catalog) MasterTemplatePath() (string, error) {
	if c.masterFile == "" {
		return "", fmt.Errorf("manifest declares no master_file: %w", domain.ErrManifestMissing)
	}
	return filepath.Join(c.root, c.masterFile), nil
}

// AssetPath returns the absolute path of an asset's template binary.
func (c *Catalog) AssetPath(assetID string) (string, error) {
	asset, err := c.Get(assetID)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.root, asset.FileName), nil
}
