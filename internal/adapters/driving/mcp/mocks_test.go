package mcp

import (
	"context"

	"github.com/geotra-labs/deckgen/internal/core/domain"
)

// mockPlanner is a mock implementation of driving.StructurePlanner.
type mockPlanner struct {
	structure string
	gotCtx    domain.PlanningContext
	err       error
}

func (m *mockPlanner) Plan(_ context.Context, pc domain.PlanningContext) (string, error) {
	m.gotCtx = pc
	return m.structure, m.err
}

// mockOutliner is a mock implementation of driving.OutlineService.
type mockOutliner struct {
	doc          *domain.SlideDocument
	gotStructure string
	gotCtx       domain.GenerationContext
	err          error
}

func (m *mockOutliner) Generate(
	_ context.Context,
	structureText string,
	gc domain.GenerationContext,
) (*domain.SlideDocument, error) {
	m.gotStructure = structureText
	m.gotCtx = gc
	return m.doc, m.err
}

// mockContent is a mock implementation of driving.ContentService. It marks
// each touched slide with a "filled" title so tests can observe which call
// path ran.
type mockContent struct {
	slideCalls []string
	docCalls   int
	references []string
	err        error
}

func (m *mockContent) GenerateForSlide(
	_ context.Context,
	doc *domain.SlideDocument,
	slideID string,
	_ domain.GenerationContext,
) error {
	m.slideCalls = append(m.slideCalls, slideID)
	if m.err != nil {
		return m.err
	}
	m.markFilled(doc)
	return nil
}

func (m *mockContent) GenerateForDocument(
	_ context.Context,
	doc *domain.SlideDocument,
	_ domain.GenerationContext,
) error {
	m.docCalls++
	if m.err != nil {
		return m.err
	}
	m.markFilled(doc)
	return nil
}

func (m *mockContent) markFilled(doc *domain.SlideDocument) {
	title := "filled"
	for _, slide := range doc.Slides {
		slide.Title = &title
	}
	doc.MergeReferences(m.references)
}

// mockCatalog is a mock implementation of driven.TemplateCatalog.
type mockCatalog struct {
	assets []domain.SlideAsset
	master string
	err    error
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
	return m.master, m.err
}
