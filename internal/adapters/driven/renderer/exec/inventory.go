package exec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
)

// Ensure Inventory implements the interface.
var _ driven.TemplateInventory = (*Inventory)(nil)

// InventoryFileName is the placeholder inventory emitted by the render
// tool next to the library manifest. It maps asset IDs to the position
// indexes actually present in the template binaries.
const InventoryFileName = "inventory.json"

// Inventory reports template placeholder indexes from the inventory file.
// The file is loaded lazily on first use and cached.
type Inventory struct {
	path string

	once    sync.Once
	indexes map[string][]int
	loadErr error
}

// NewInventory creates an inventory for the library at root.
func NewInventory(root string) *Inventory {
	return &Inventory{path: filepath.Join(root, InventoryFileName)}
}

// PlaceholderIndexes returns the indexes present for the asset. An asset
// absent from the inventory yields an empty set, which the render planner
// reports as drift for any manifest placeholder.
func (inv *Inventory) PlaceholderIndexes(assetID string) ([]int, error) {
	inv.once.Do(inv.load)
	if inv.loadErr != nil {
		return nil, inv.loadErr
	}
	return inv.indexes[assetID], nil
}

func (inv *Inventory) load() {
	data, err := os.ReadFile(inv.path)
	if err != nil {
		inv.loadErr = fmt.Errorf("reading template inventory: %w", err)
		return
	}
	if err := json.Unmarshal(data, &inv.indexes); err != nil {
		inv.loadErr = fmt.Errorf("parsing template inventory %s: %w", inv.path, err)
	}
}
