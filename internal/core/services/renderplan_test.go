package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geotra-labs/deckgen/internal/core/domain"
)

func fullInventory() *mockInventory {
	return &mockInventory{indexes: map[string][]int{
		"agenda_001": {0},
		"cover_001":  {0, 1, 2},
		"body_001":   {0, 3},
	}}
}

func TestRenderPlanner_Build(t *testing.T) {
	planner := NewRenderPlanner(newTestCatalog(), fullInventory())

	title := "表紙"
	doc := domain.NewSlideDocument()
	require.NoError(t, doc.UpsertSlide(&domain.SlidePage{
		SlideID:    "slide_01",
		PageNumber: 1,
		AssetID:    "cover_001",
		AssetFile:  "cover_001.pptx",
		Title:      &title,
		Placeholders: []domain.PlaceholderContent{
			{Name: "P3", Text: "要点", Policy: domain.PolicyGenerate},
			{Name: "P1", Text: "ACME向け資料", Policy: domain.PolicyPopulate},
		},
	}))

	plan, err := planner.Build(context.Background(), doc)

	require.NoError(t, err)
	require.Len(t, plan.Slides, 1)
	slide := plan.Slides[0]
	assert.Equal(t, "slide_01", slide.SlideID)
	assert.Equal(t, "表紙", slide.Title)
	assert.Equal(t, "cover_001.pptx", slide.AssetFile)

	require.Len(t, slide.Bindings, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{slide.Bindings[0].Index, slide.Bindings[1].Index, slide.Bindings[2].Index})
	assert.Equal(t, "ACME向け資料", slide.Bindings[0].Text)
	// Missing content falls back to the authoring description.
	assert.Equal(t, "「提案概要」と記載する", slide.Bindings[1].Text)
	assert.Equal(t, "要点", slide.Bindings[2].Text)
}

func TestRenderPlanner_Build_DropsUnknownContentNames(t *testing.T) {
	planner := NewRenderPlanner(newTestCatalog(), nil)

	doc := domain.NewSlideDocument()
	require.NoError(t, doc.UpsertSlide(&domain.SlidePage{
		SlideID:    "slide_01",
		PageNumber: 1,
		AssetID:    "body_001",
		Placeholders: []domain.PlaceholderContent{
			{Name: "B1", Text: "主張"},
			{Name: "GHOST", Text: "捨てられる"},
		},
	}))

	plan, err := planner.Build(context.Background(), doc)

	require.NoError(t, err)
	require.Len(t, plan.Slides, 1)
	require.Len(t, plan.Slides[0].Bindings, 2)
	for _, binding := range plan.Slides[0].Bindings {
		assert.NotEqual(t, "GHOST", binding.Name)
	}
	assert.Equal(t, "主張", plan.Slides[0].Bindings[0].Text)
}

func TestRenderPlanner_Build_TemplateDriftAborts(t *testing.T) {
	inventory := &mockInventory{indexes: map[string][]int{
		"body_001": {0}, // index 3 missing from the binary
	}}
	planner := NewRenderPlanner(newTestCatalog(), inventory)

	doc := outlineDocument("body_001", 1)
	_, err := planner.Build(context.Background(), doc)

	require.ErrorIs(t, err, domain.ErrTemplateDrift)
	assert.Contains(t, err.Error(), "body_001")
	assert.Contains(t, err.Error(), "[3]")
}

func TestRenderPlanner_Build_InventoryErrorAborts(t *testing.T) {
	planner := NewRenderPlanner(newTestCatalog(), &mockInventory{err: errors.New("file corrupt")})

	doc := outlineDocument("body_001", 1)
	_, err := planner.Build(context.Background(), doc)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTemplateDrift)
}

func TestRenderPlanner_Build_UnknownAsset(t *testing.T) {
	planner := NewRenderPlanner(newTestCatalog(), nil)

	doc := outlineDocument("ghost_999", 1)
	_, err := planner.Build(context.Background(), doc)
	require.ErrorIs(t, err, domain.ErrUnknownAsset)
}

func TestRenderPlanner_Build_NoInventorySkipsDriftCheck(t *testing.T) {
	planner := NewRenderPlanner(newTestCatalog(), nil)

	doc := outlineDocument("cover_001", 2)
	plan, err := planner.Build(context.Background(), doc)

	require.NoError(t, err)
	assert.Len(t, plan.Slides, 2)
}

func TestRenderPlanner_Build_EmptyDocument(t *testing.T) {
	planner := NewRenderPlanner(newTestCatalog(), fullInventory())

	plan, err := planner.Build(context.Background(), domain.NewSlideDocument())
	require.NoError(t, err)
	assert.Empty(t, plan.Slides)
}
