package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/geotra-labs/deckgen/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/geotra-labs/deckgen/internal/core/domain"
	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
)

// Ensure DeckStore implements the interface.
var _ driven.DeckStore = (*DeckStore)(nil)

// DeckStore is a SQLite-backed deck snapshot history.
type DeckStore struct {
	db   *sql.DB
	path string
}

// NewDeckStore creates a new SQLite deck store at the specified data
// directory. If dataDir is empty, defaults to ~/.deckgen/data/decks.db.
func NewDeckStore(dataDir string) (*DeckStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".deckgen", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "decks.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &DeckStore{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *DeckStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *DeckStore) Path() string {
	return s.path
}

// SaveSnapshot stores the document under a fresh UUID.
func (s *DeckStore) SaveSnapshot(
	ctx context.Context, name string, doc *domain.SlideDocument,
) (*driven.DeckSnapshot, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	snapshot := &driven.DeckSnapshot{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Document:  doc,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO deck_snapshots (id, name, created_at, document)
		VALUES (?, ?, ?, ?)
	`, snapshot.ID, snapshot.Name, snapshot.CreatedAt, string(payload))
	if err != nil {
		return nil, fmt.Errorf("inserting snapshot: %w", err)
	}

	return snapshot, nil
}

// GetSnapshot returns a snapshot by ID with its document hydrated.
func (s *DeckStore) GetSnapshot(ctx context.Context, id string) (*driven.DeckSnapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, document
		FROM deck_snapshots
		WHERE id = ?
	`, id)

	var snapshot driven.DeckSnapshot
	var payload string
	if err := row.Scan(&snapshot.ID, &snapshot.Name, &snapshot.CreatedAt, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %q: %w", id, domain.ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}

	var doc domain.SlideDocument
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("parsing snapshot %q document: %w", id, err)
	}
	snapshot.Document = &doc

	return &snapshot, nil
}

// ListSnapshots returns all snapshots newest first, documents unhydrated.
func (s *DeckStore) ListSnapshots(ctx context.Context) ([]driven.DeckSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM deck_snapshots
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []driven.DeckSnapshot
	for rows.Next() {
		var snapshot driven.DeckSnapshot
		if err := rows.Scan(&snapshot.ID, &snapshot.Name, &snapshot.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

// migrate applies embedded up migrations newer than the current version.
func (s *DeckStore) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
	}

	return nil
}
