package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geotra-labs/deckgen/internal/core/domain"
)

func sampleDocument(t *testing.T) *domain.SlideDocument {
	t.Helper()
	title := "表紙"
	doc := domain.NewSlideDocument()
	require.NoError(t, doc.UpsertSlide(&domain.SlidePage{
		SlideID:    "slide_01",
		PageNumber: 1,
		AssetID:    "cover_001",
		AssetFile:  "cover_001.pptx",
		Title:      &title,
		Placeholders: []domain.PlaceholderContent{
			{Name: "P1", Text: "ACME向け資料", Policy: domain.PolicyPopulate},
		},
	}))
	doc.MergeReferences([]string{"https://example.com/report"})
	return doc
}

func TestDocumentStore_SaveAndLoad(t *testing.T) {
	store := NewDocumentStore()
	path := filepath.Join(t.TempDir(), "slide.json")
	ctx := context.Background()

	original := sampleDocument(t)
	require.NoError(t, store.Save(ctx, path, original))

	loaded, err := store.Load(ctx, path)
	require.NoError(t, err)
	require.Len(t, loaded.Slides, 1)
	assert.Equal(t, original.Slides[0].SlideID, loaded.Slides[0].SlideID)
	require.NotNil(t, loaded.Slides[0].Title)
	assert.Equal(t, "表紙", *loaded.Slides[0].Title)
	assert.Equal(t, original.Slides[0].Placeholders, loaded.Slides[0].Placeholders)
	assert.Equal(t, []string{"https://example.com/report"}, loaded.References())
}

func TestDocumentStore_SaveCreatesParentDirs(t *testing.T) {
	store := NewDocumentStore()
	path := filepath.Join(t.TempDir(), "nested", "deep", "slide.json")

	require.NoError(t, store.Save(context.Background(), path, sampleDocument(t)))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestDocumentStore_SaveIsReadable(t *testing.T) {
	store := NewDocumentStore()
	path := filepath.Join(t.TempDir(), "slide.json")

	require.NoError(t, store.Save(context.Background(), path, sampleDocument(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Pretty-printed, unescaped output.
	assert.Contains(t, string(data), "  \"slides\"")
	assert.Contains(t, string(data), "表紙")
	assert.NotContains(t, string(data), "\\u")
}

func TestDocumentStore_LoadMissing(t *testing.T) {
	store := NewDocumentStore()

	_, err := store.Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	require.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestDocumentStore_LoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := NewDocumentStore().Load(context.Background(), path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDocumentNotFound)
}
