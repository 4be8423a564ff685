package driven

import (
	"context"
	"time"

	"github.com/geotra-labs/deckgen/internal/core/domain"
)

// DeckSnapshot is one immutable saved deck.
type DeckSnapshot struct {
	// ID is the snapshot identifier (UUID).
	ID string

	// Name is the caller-chosen label.
	Name string

	// CreatedAt is when the snapshot was taken.
	CreatedAt time.Time

	// Document is the deck state at snapshot time.
	Document *domain.SlideDocument
}

// DeckStore keeps a history of finished decks. Snapshots are write-once.
type DeckStore interface {
	// SaveSnapshot stores the document under a fresh ID and returns the
	// snapshot record.
	SaveSnapshot(ctx context.Context, name string, doc *domain.SlideDocument) (*DeckSnapshot, error)

	// GetSnapshot returns a snapshot by ID, or domain.ErrSnapshotNotFound.
	GetSnapshot(ctx context.Context, id string) (*DeckSnapshot, error)

	// ListSnapshots returns all snapshots, newest first. Documents are not
	// hydrated; only ID, name and timestamp are populated.
	ListSnapshots(ctx context.Context) ([]DeckSnapshot, error)

	// Close releases resources.
	Close() error
}
