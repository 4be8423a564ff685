package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geotra-labs/deckgen/internal/adapters/driven/store/memory"
	"github.com/geotra-labs/deckgen/internal/core/domain"
	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
)

// mockPlanner implements driving.StructurePlanner for testing.
type mockPlanner struct {
	structure string
	gotCtx    domain.PlanningContext
	err       error
}

func (m *mockPlanner) Plan(_ context.Context, pc domain.PlanningContext) (string, error) {
	m.gotCtx = pc
	return m.structure, m.err
}

// mockOutliner implements driving.OutlineService for testing.
type mockOutliner struct {
	doc *domain.SlideDocument
	err error
}

func (m *mockOutliner) Generate(
	_ context.Context,
	_ string,
	_ domain.GenerationContext,
) (*domain.SlideDocument, error) {
	return m.doc, m.err
}

// mockContent implements driving.ContentService for testing.
type mockContent struct {
	slideCalls []string
	docCalls   int
	err        error
}

func (m *mockContent) GenerateForSlide(
	_ context.Context,
	_ *domain.SlideDocument,
	slideID string,
	_ domain.GenerationContext,
) error {
	m.slideCalls = append(m.slideCalls, slideID)
	return m.err
}

func (m *mockContent) GenerateForDocument(
	_ context.Context,
	_ *domain.SlideDocument,
	_ domain.GenerationContext,
) error {
	m.docCalls++
	return m.err
}

// mockCatalog implements driven.TemplateCatalog for testing.
type mockCatalog struct {
	assets []domain.SlideAsset
}

func (m *mockCatalog) List() []domain.SlideAsset {
	return m.assets
}

func (m *mockCatalog) Get(assetID string) (domain.SlideAsset, error) {
	for _, asset := range m.assets {
		if asset.ID == assetID {
			return asset, nil
		}
	}
	return domain.SlideAsset{}, domain.ErrUnknownAsset
}

func (m *mockCatalog) GetPlaceholder(assetID, name string) (domain.PlaceholderSpec, error) {
	asset, err := m.Get(assetID)
	if err != nil {
		return domain.PlaceholderSpec{}, err
	}
	if spec, ok := asset.GetPlaceholder(name); ok {
		return spec, nil
	}
	return domain.PlaceholderSpec{}, domain.ErrUnknownPlaceholder
}

func (m *mockCatalog) MasterTemplatePath() (string, error) {
	return "", nil
}

// mockDeckStore implements driven.DeckStore for testing.
type mockDeckStore struct {
	snapshots []driven.DeckSnapshot
	saved     []string
	err       error
}

func (m *mockDeckStore) SaveSnapshot(
	_ context.Context,
	name string,
	doc *domain.SlideDocument,
) (*driven.DeckSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.saved = append(m.saved, name)
	return &driven.DeckSnapshot{ID: "snap-1", Name: name, Document: doc}, nil
}

func (m *mockDeckStore) GetSnapshot(_ context.Context, id string) (*driven.DeckSnapshot, error) {
	for i := range m.snapshots {
		if m.snapshots[i].ID == id {
			return &m.snapshots[i], nil
		}
	}
	return nil, domain.ErrSnapshotNotFound
}

func (m *mockDeckStore) ListSnapshots(_ context.Context) ([]driven.DeckSnapshot, error) {
	return m.snapshots, m.err
}

func (m *mockDeckStore) Close() error { return nil }

// mockRenderer implements driven.DeckRenderer for testing.
type mockRenderer struct {
	output     []byte
	preview    []byte
	renderErr  error
	previewErr error
}

func (m *mockRenderer) Render(_ context.Context, _ *domain.SlideDocument) ([]byte, error) {
	return m.output, m.renderErr
}

func (m *mockRenderer) RenderPreview(
	_ context.Context,
	_ *domain.SlideDocument,
	_ int,
) ([]byte, error) {
	return m.preview, m.previewErr
}

func testDocument() *domain.SlideDocument {
	title := "表紙"
	doc := domain.NewSlideDocument()
	doc.Slides = []*domain.SlidePage{
		{SlideID: "slide_01", PageNumber: 1, AssetID: "cover_001", AssetFile: "cover_001.pptx", Title: &title},
		{SlideID: "slide_02", PageNumber: 2, AssetID: "body_001", AssetFile: "body_001.pptx"},
	}
	return doc
}

// setupTestServices wires mock services into the package-level vars and
// returns a cleanup func restoring the previous set.
func setupTestServices() func() {
	oldPlanner := plannerService
	oldOutliner := outlineService
	oldContent := contentService
	oldCatalog := catalogService
	oldDocStore := documentStore
	oldDecks := deckStore
	oldRenderer := rendererService

	SetServices(Services{
		Planner:  &mockPlanner{structure: "1. 表紙\n2. 提案概要"},
		Outliner: &mockOutliner{doc: testDocument()},
		Content:  &mockContent{},
		Catalog: &mockCatalog{assets: []domain.SlideAsset{
			{ID: "cover_001", Description: "表紙スライド", Category: "cover"},
			{ID: "body_001", Description: "本文スライド", Category: "content"},
		}},
		DocStore: memory.NewDocumentStore(),
		Decks:    &mockDeckStore{},
		Renderer: &mockRenderer{output: []byte("PK")},
	})

	return func() {
		plannerService = oldPlanner
		outlineService = oldOutliner
		contentService = oldContent
		catalogService = oldCatalog
		documentStore = oldDocStore
		deckStore = oldDecks
		rendererService = oldRenderer
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "deckgen", rootCmd.Use)
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	assert.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
}
