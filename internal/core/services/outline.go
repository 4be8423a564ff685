package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/geotra-labs/deckgen/internal/core/domain"
	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
	"github.com/geotra-labs/deckgen/internal/core/ports/driving"
	"github.com/geotra-labs/deckgen/internal/logger"
)

// Ensure OutlineGenerator implements the interface.
var _ driving.OutlineService = (*OutlineGenerator)(nil)

// fallbackAssetCount is how many catalog assets the heuristic outline uses.
const fallbackAssetCount = 2

// assetListLimit caps how many catalog entries are described in the prompt.
const assetListLimit = 40

// OutlineGenerator selects the templates that compose a deck. The LLM
// chooses from a closed asset enumeration; every collaborator failure mode
// degrades to a deterministic two-asset outline so the stage always yields
// a renderable document.
type OutlineGenerator struct {
	catalog driven.TemplateCatalog
	llm     driven.LLMService
}

// NewOutlineGenerator creates a new outline generator. The llm parameter
// is optional (can be nil).
func NewOutlineGenerator(catalog driven.TemplateCatalog, llm driven.LLMService) *OutlineGenerator {
	return &OutlineGenerator{catalog: catalog, llm: llm}
}

// Generate returns a document skeleton for the structure text.
func (g *OutlineGenerator) Generate(
	ctx context.Context, structureText string, gc domain.GenerationContext,
) (*domain.SlideDocument, error) {
	logger.Section("Outline Generation")

	assets := g.catalog.List()
	if len(assets) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	doc := domain.NewSlideDocument()
	doc.SetMetadata(domain.MetaStructure, structureText)
	if gc.AdditionalNotes != "" {
		doc.SetMetadata(domain.MetaUserNotes, gc.AdditionalNotes)
	}

	slides := g.selectSlides(ctx, structureText, gc, assets)
	if len(slides) == 0 {
		logger.Info("No usable outline entries, using fallback")
		slides = g.fallbackOutline(assets, structureText)
	}

	for _, slide := range slides {
		if err := doc.UpsertSlide(slide); err != nil {
			// Colliding page numbers from the LLM: drop the entry rather
			// than abort the outline.
			logger.Warn("Dropping outline entry %q: %v", slide.SlideID, err)
		}
	}
	if len(doc.Slides) == 0 {
		for _, slide := range g.fallbackOutline(assets, structureText) {
			if err := doc.UpsertSlide(slide); err != nil {
				return nil, fmt.Errorf("fallback outline: %w", err)
			}
		}
	}

	logger.Info("Outline: %d slides", len(doc.Slides))
	return doc, nil
}

// selectSlides asks the LLM for an outline and parses it. A nil client,
// a call error, or an unusable payload all return nil.
func (g *OutlineGenerator) selectSlides(
	ctx context.Context, structureText string, gc domain.GenerationContext, assets []domain.SlideAsset,
) []*domain.SlidePage {
	if g.llm == nil {
		logger.Debug("No LLM configured, skipping outline selection")
		return nil
	}

	req := driven.StructuredRequest{
		Prompt:     buildOutlinePrompt(structureText, gc, assets),
		Schema:     outlineSchema(assets),
		SchemaName: "slide_outline",
		Instructions: "slide_structureを踏まえ、利用するスライドテンプレートを選定してください。" +
			" 出力はJSONのみで、slides配列にはページ順に並べてください。",
	}

	result, err := g.llm.GenerateStructured(ctx, req)
	if err != nil {
		logger.Warn("Outline structured output failed: %v", err)
		return nil
	}
	if result == nil || result.Parsed == nil {
		logger.Debug("Outline structured output had no usable payload")
		return nil
	}

	return g.slidesFromPayload(result.Parsed)
}

// slidesFromPayload converts the parsed outline into slide shells,
// silently skipping entries that fail catalog lookup.
func (g *OutlineGenerator) slidesFromPayload(payload map[string]any) []*domain.SlidePage {
	rawSlides, _ := payload["slides"].([]any)

	var slides []*domain.SlidePage
	for i, raw := range rawSlides {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		assetID, _ := entry["asset_id"].(string)
		if assetID == "" {
			continue
		}
		asset, err := g.catalog.Get(assetID)
		if err != nil {
			logger.Warn("Skipping outline entry with unknown asset %q", assetID)
			continue
		}

		position := i + 1
		pageNumber := intField(entry, "page_number")
		if pageNumber == 0 {
			pageNumber = intField(entry, "page")
		}
		if pageNumber == 0 {
			pageNumber = position
		}

		slideID, _ := entry["slide_id"].(string)
		if slideID == "" {
			slideID = fmt.Sprintf("slide_%02d", position)
		}

		slide := &domain.SlidePage{
			SlideID:    slideID,
			PageNumber: pageNumber,
			AssetID:    asset.ID,
			AssetFile:  asset.FileName,
		}
		if title, ok := entry["title"].(string); ok && title != "" {
			slide.Title = &title
		}
		if notes, ok := entry["notes"].(string); ok && notes != "" {
			slide.SetNote(domain.NoteOutline, notes)
		}
		slides = append(slides, slide)
	}

	sort.SliceStable(slides, func(i, j int) bool {
		return slides[i].PageNumber < slides[j].PageNumber
	})
	return slides
}

// fallbackOutline builds the deterministic two-slide outline from the
// lexicographically first catalog assets. Asset ID order, not manifest
// load order, so the fallback is stable across manifest edits.
func (g *OutlineGenerator) fallbackOutline(assets []domain.SlideAsset, structureText string) []*domain.SlidePage {
	sorted := make([]domain.SlideAsset, len(assets))
	copy(sorted, assets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	count := fallbackAssetCount
	if count > len(sorted) {
		count = len(sorted)
	}

	slides := make([]*domain.SlidePage, 0, count)
	for i := 0; i < count; i++ {
		title := fmt.Sprintf("アウトラインスライド %d", i+1)
		slide := &domain.SlidePage{
			SlideID:    fmt.Sprintf("slide_%02d", i+1),
			PageNumber: i + 1,
			AssetID:    sorted[i].ID,
			AssetFile:  sorted[i].FileName,
			Title:      &title,
		}
		if structureText != "" {
			slide.SetNote(domain.NoteOutline, truncateText(structureText, 200))
		}
		slides = append(slides, slide)
	}
	return slides
}

// outlineSchema builds the closed-enumeration outline schema: asset_id is
// constrained to the catalog's known IDs so the LLM cannot invent one.
func outlineSchema(assets []domain.SlideAsset) map[string]any {
	assetEnum := make([]string, len(assets))
	for i, asset := range assets {
		assetEnum[i] = asset.ID
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"slides": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"slide_id": map[string]any{
							"type":        "string",
							"description": "スライド識別子 (例: slide_01)",
						},
						"page_number": map[string]any{
							"type":        "integer",
							"minimum":     1,
							"description": "ページ番号",
						},
						"asset_id": map[string]any{
							"type": "string",
							"enum": assetEnum,
						},
						"title": map[string]any{"type": "string"},
						"notes": map[string]any{
							"type":        "string",
							"description": "スライド意図のメモ (任意)",
						},
					},
					"required":             []string{"asset_id"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"slides"},
		"additionalProperties": false,
	}
}

// buildOutlinePrompt describes the candidate templates and the user's goal.
func buildOutlinePrompt(structureText string, gc domain.GenerationContext, assets []domain.SlideAsset) string {
	assetLines := make([]string, 0, len(assets))
	for _, asset := range assets {
		assetLines = append(assetLines, fmt.Sprintf("- %s: %s", asset.ID, truncateText(asset.Description, 120)))
	}
	if len(assetLines) > assetListLimit {
		assetLines = assetLines[:assetListLimit]
	}

	sections := []string{
		"あなたはスライドライブラリから最適なテンプレートを選定するアシスタントです。",
		"以下の候補リストから目的に合うものを選び、ページ順にslides配列へ出力してください。",
		"同じasset_idを複数回使っても構いません。",
		"",
		"[候補テンプレート一覧]",
		strings.Join(assetLines, "\n"),
		"",
		"[ユーザーの目的と文脈]",
		structureText,
	}

	if gc.UserRequest != "" {
		sections = append(sections, "", "[最終的な依頼内容]", gc.UserRequest)
	}
	if gc.TargetCompany != "" {
		sections = append(sections, "想定読者: "+gc.TargetCompany)
	}
	if gc.AdditionalNotes != "" {
		sections = append(sections, "補足条件: "+gc.AdditionalNotes)
	}

	sections = append(sections,
		"slides内の各要素はJSONオブジェクトで、slide_idはslide_01のように連番、page_numberは1から開始してください。")

	return strings.Join(sections, "\n")
}

// intField extracts an integer from a decoded JSON payload, tolerating the
// float64 shape produced by encoding/json.
func intField(entry map[string]any, key string) int {
	switch v := entry[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
