package services

import (
	"context"
	"fmt"

	"github.com/geotra-labs/deckgen/internal/core/domain"
	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLLM implements driven.LLMService for testing, counting every call.
type mockLLM struct {
	generateText     string
	generateErr      error
	structuredResult *driven.StructuredResult
	structuredErr    error

	generateCalls   int
	structuredCalls int
}

func (m *mockLLM) GenerateContent(_ context.Context, _ string) (string, error) {
	m.generateCalls++
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.generateText, nil
}

func (m *mockLLM) GenerateStructured(_ context.Context, _ driven.StructuredRequest) (*driven.StructuredResult, error) {
	m.structuredCalls++
	if m.structuredErr != nil {
		return nil, m.structuredErr
	}
	return m.structuredResult, nil
}

func (m *mockLLM) ModelName() string { return "mock-llm" }

func (m *mockLLM) Close() error { return nil }

// mockSearchLLM adds the WebSearcher capability on top of mockLLM.
type mockSearchLLM struct {
	mockLLM
	findings    *driven.SearchFindings
	searchErr   error
	searchCalls int
}

func (m *mockSearchLLM) WebSearch(_ context.Context, _ string, _ int) (*driven.SearchFindings, error) {
	m.searchCalls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.findings, nil
}

// mockCatalog implements driven.TemplateCatalog over a fixed asset list.
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
	return domain.SlideAsset{}, fmt.Errorf("asset %q: %w", assetID, domain.ErrUnknownAsset)
}

func (m *mockCatalog) GetPlaceholder(assetID, name string) (domain.PlaceholderSpec, error) {
	asset, err := m.Get(assetID)
	if err != nil {
		return domain.PlaceholderSpec{}, err
	}
	if spec, ok := asset.GetPlaceholder(name); ok {
		return spec, nil
	}
	return domain.PlaceholderSpec{}, fmt.Errorf("placeholder %q: %w", name, domain.ErrUnknownPlaceholder)
}

func (m *mockCatalog) MasterTemplatePath() (string, error) {
	return "templates/master.pptx", nil
}

// mockResearch implements driven.ResearchProvider.
type mockResearch struct {
	text  string
	err   error
	calls int
}

func (m *mockResearch) InternalDocument(_ context.Context) (string, error) {
	m.calls++
	return m.text, m.err
}

// mockInventory implements driven.TemplateInventory with fixed indexes.
type mockInventory struct {
	indexes map[string][]int
	err     error
}

func (m *mockInventory) PlaceholderIndexes(assetID string) ([]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.indexes[assetID], nil
}

// --- Test fixtures ---

func testAssets() []domain.SlideAsset {
	return []domain.SlideAsset{
		{
			ID:          "agenda_001",
			FileName:    "agenda_001.pptx",
			Description: "アジェンダを列挙するスライド",
			Category:    "agenda",
			Tags:        []string{"agenda"},
			Placeholders: []domain.PlaceholderSpec{
				{Name: "A1", Index: 0, Description: "アジェンダ一覧", Policy: domain.PolicyGenerate},
			},
		},
		{
			ID:          "cover_001",
			FileName:    "cover_001.pptx",
			Description: "表紙スライド",
			Category:    "cover",
			Tags:        []string{"cover", "title"},
			Placeholders: []domain.PlaceholderSpec{
				{Name: "P1", Index: 0, Description: "相手企業名向け資料", Policy: domain.PolicyPopulate},
				{Name: "P2", Index: 1, Description: "「提案概要」と記載する", Policy: domain.PolicyFixed},
				{Name: "P3", Index: 2, Description: "提案の要点を要約する", Policy: domain.PolicyGenerate},
			},
		},
		{
			ID:          "body_001",
			FileName:    "body_001.pptx",
			Description: "本文スライド",
			Category:    "content",
			Placeholders: []domain.PlaceholderSpec{
				{Name: "B1", Index: 0, Description: "主張をまとめる", Policy: domain.PolicyGenerate},
				{Name: "B2", Index: 3, Description: "根拠データを述べる", Policy: domain.PolicyGenerate},
			},
		},
	}
}

func newTestCatalog() *mockCatalog {
	return &mockCatalog{assets: testAssets()}
}

func outlineDocument(assetID string, pages int) *domain.SlideDocument {
	doc := domain.NewSlideDocument()
	for i := 1; i <= pages; i++ {
		_ = doc.UpsertSlide(&domain.SlidePage{
			SlideID:    fmt.Sprintf("slide_%02d", i),
			PageNumber: i,
			AssetID:    assetID,
			AssetFile:  assetID + ".pptx",
		})
	}
	return doc
}
