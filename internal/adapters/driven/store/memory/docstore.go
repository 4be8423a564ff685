package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/geotra-labs/deckgen/internal/core/domain"
	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Documents are stored as serialized JSON keyed by path, so Load always
// returns an independent copy.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string][]byte
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string][]byte),
	}
}

// Load retrieves the document stored under path.
func (s *DocumentStore) Load(_ context.Context, path string) (*domain.SlideDocument, error) {
	s.mu.RLock()
	data, ok := s.documents[path]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrDocumentNotFound)
	}

	var doc domain.SlideDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}
	return &doc, nil
}

// Save stores a serialized snapshot of the document under path.
func (s *DocumentStore) Save(_ context.Context, path string, doc *domain.SlideDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[path] = data
	return nil
}
