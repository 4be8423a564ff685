package driven

import (
	"context"

	"github.com/geotra-labs/deckgen/internal/core/domain"
)

// DocumentStore persists slide documents as canonical JSON trees. A saved
// document is a snapshot, not a live handle.
type DocumentStore interface {
	// Load reads the document at path, or domain.ErrDocumentNotFound.
	Load(ctx context.Context, path string) (*domain.SlideDocument, error)

	// Save writes the canonical JSON tree for the document to path,
	// creating parent directories as needed.
	Save(ctx context.Context, path string, doc *domain.SlideDocument) error
}
