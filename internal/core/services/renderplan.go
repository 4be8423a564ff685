package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/geotra-labs/deckgen/internal/core/domain"
	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
	"github.com/geotra-labs/deckgen/internal/core/ports/driving"
	"github.com/geotra-labs/deckgen/internal/logger"
)

// Ensure RenderPlanner implements the interface.
var _ driving.RenderPlanService = (*RenderPlanner)(nil)

// RenderPlanner builds the deterministic slot bindings for a finished
// document. Content maps to template slots by position index, never by
// name; content whose name the asset does not define is dropped silently,
// while an asset index missing from the destination template aborts the
// whole plan: that means the catalog has drifted from its binaries and
// continuing would lose data silently.
type RenderPlanner struct {
	catalog   driven.TemplateCatalog
	inventory driven.TemplateInventory
}

// NewRenderPlanner creates a new render planner. The inventory parameter
// is optional (can be nil); without it drift validation is skipped.
func NewRenderPlanner(catalog driven.TemplateCatalog, inventory driven.TemplateInventory) *RenderPlanner {
	return &RenderPlanner{catalog: catalog, inventory: inventory}
}

// Build returns the binding plan for the document.
func (p *RenderPlanner) Build(ctx context.Context, doc *domain.SlideDocument) (*domain.RenderPlan, error) {
	logger.Section("Render Planning")

	plan := &domain.RenderPlan{Slides: make([]domain.RenderSlide, 0, len(doc.Slides))}
	for _, slide := range doc.Slides {
		rendered, err := p.buildSlide(slide)
		if err != nil {
			return nil, err
		}
		plan.Slides = append(plan.Slides, rendered)
	}
	return plan, nil
}

// buildSlide binds one slide's content to its asset slots.
func (p *RenderPlanner) buildSlide(slide *domain.SlidePage) (domain.RenderSlide, error) {
	asset, err := p.catalog.Get(slide.AssetID)
	if err != nil {
		return domain.RenderSlide{}, fmt.Errorf("slide %q: %w", slide.SlideID, err)
	}

	if err := p.checkDrift(asset); err != nil {
		return domain.RenderSlide{}, err
	}

	contentByName := make(map[string]domain.PlaceholderContent, len(slide.Placeholders))
	for _, content := range slide.Placeholders {
		// Unknown names have no matching slot and are never rendered;
		// that is tolerated, not an error.
		if _, ok := asset.GetPlaceholder(content.Name); !ok {
			logger.Debug("Dropping content for unknown placeholder %q on slide %s",
				content.Name, slide.SlideID)
			continue
		}
		contentByName[content.Name] = content
	}

	bindings := make([]domain.SlotBinding, 0, len(asset.Placeholders))
	for _, spec := range asset.Placeholders {
		text := spec.Description
		if content, ok := contentByName[spec.Name]; ok {
			text = content.Text
		}
		bindings = append(bindings, domain.SlotBinding{
			Index: spec.Index,
			Name:  spec.Name,
			Text:  text,
		})
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].Index < bindings[j].Index })

	rendered := domain.RenderSlide{
		SlideID:    slide.SlideID,
		PageNumber: slide.PageNumber,
		AssetID:    asset.ID,
		AssetFile:  asset.FileName,
		Bindings:   bindings,
	}
	if slide.Title != nil {
		rendered.Title = *slide.Title
	}
	return rendered, nil
}

// checkDrift verifies every manifest index exists in the destination
// template. Missing indexes are a hard abort naming the asset and indexes.
func (p *RenderPlanner) checkDrift(asset domain.SlideAsset) error {
	if p.inventory == nil {
		return nil
	}
	present, err := p.inventory.PlaceholderIndexes(asset.ID)
	if err != nil {
		return fmt.Errorf("inspecting template for asset %q: %w", asset.ID, err)
	}

	presentSet := make(map[int]bool, len(present))
	for _, idx := range present {
		presentSet[idx] = true
	}

	var missing []int
	for _, spec := range asset.Placeholders {
		if !presentSet[spec.Index] {
			missing = append(missing, spec.Index)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return fmt.Errorf("asset %q is missing placeholder indexes %v: %w",
			asset.ID, missing, domain.ErrTemplateDrift)
	}
	return nil
}
