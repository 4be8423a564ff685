package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/geotra-labs/deckgen/internal/core/domain"
	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
	"github.com/geotra-labs/deckgen/internal/logger"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore persists slide documents as pretty-printed JSON files so
// intermediate pipeline state stays reviewable and hand-editable between
// stage commands.
type DocumentStore struct{}

// NewDocumentStore creates a new file-backed document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{}
}

// Load reads the document at path.
func (s *DocumentStore) Load(_ context.Context, path string) (*domain.SlideDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("reading document: %w", err)
	}

	var doc domain.SlideDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}
	logger.Debug("Loaded document %s: %d slides", path, len(doc.Slides))
	return &doc, nil
}

// Save writes the document to path, creating parent directories as needed.
func (s *DocumentStore) Save(_ context.Context, path string, doc *domain.SlideDocument) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating document directory: %w", err)
		}
	}

	// SetEscapeHTML(false) keeps Japanese text and URLs readable in the
	// saved file.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	logger.Debug("Saved document %s: %d slides", path, len(doc.Slides))
	return nil
}
