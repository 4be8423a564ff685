package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/geotra-labs/deckgen/internal/core/domain"
	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
	"github.com/geotra-labs/deckgen/internal/core/ports/driving"
	"github.com/geotra-labs/deckgen/internal/logger"
)

// Ensure ContentGenerator implements the interface.
var _ driving.ContentService = (*ContentGenerator)(nil)

// Default budgets for prompt construction.
const (
	// DefaultMaxInternalChars caps the internal-document excerpt.
	DefaultMaxInternalChars = 4000

	// researchCharBudget caps research text embedded in prompts.
	researchCharBudget = 1500

	// webSearchResults is the result count requested from live search.
	webSearchResults = 3
)

// generatedText is one placeholder's LLM output.
type generatedText struct {
	text       string
	references []string
}

// ContentGenerator fills placeholder text per edit policy. generate-policy
// placeholders share one structured call per slide; fixed and populate
// placeholders are resolved deterministically with no collaborator calls.
// Collaborator failures never surface: the affected placeholders fall back
// to their authoring descriptions.
type ContentGenerator struct {
	catalog          driven.TemplateCatalog
	llm              driven.LLMService
	research         driven.ResearchProvider
	maxInternalChars int
	now              func() time.Time
}

// NewContentGenerator creates a new content generator. The llm and
// research parameters are optional (can be nil).
func NewContentGenerator(
	catalog driven.TemplateCatalog,
	llm driven.LLMService,
	research driven.ResearchProvider,
) *ContentGenerator {
	return &ContentGenerator{
		catalog:          catalog,
		llm:              llm,
		research:         research,
		maxInternalChars: DefaultMaxInternalChars,
		now:              time.Now,
	}
}

// SetMaxInternalChars overrides the internal-document character budget.
func (g *ContentGenerator) SetMaxInternalChars(n int) {
	if n > 0 {
		g.maxInternalChars = n
	}
}

// SetClock overrides the time source. Useful for testing populate-policy
// date substitution.
func (g *ContentGenerator) SetClock(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// GenerateForSlide populates one slide in place and folds its citations
// into the document references.
func (g *ContentGenerator) GenerateForSlide(
	ctx context.Context, doc *domain.SlideDocument, slideID string, gc domain.GenerationContext,
) error {
	logger.Section("Content Generation")
	logger.Debug("Slide: %s", slideID)

	slide, err := doc.GetSlide(slideID)
	if err != nil {
		return err
	}
	asset, err := g.catalog.Get(slide.AssetID)
	if err != nil {
		return fmt.Errorf("slide %q: %w", slideID, err)
	}

	researchSnippet := g.maybeWebSearch(ctx, slide, gc)
	results, summary, citations := g.generateEditable(ctx, slide, asset, gc, researchSnippet)

	targetCompany := gc.TargetCompany
	if targetCompany == "" {
		targetCompany = InferTargetEntity(gc.UserRequest)
	}

	contents := make([]domain.PlaceholderContent, 0, len(asset.Placeholders))
	for _, spec := range asset.Placeholders {
		contents = append(contents, g.resolvePlaceholder(spec, results, targetCompany))
	}
	slide.Placeholders = contents

	// First generation establishes the note keys explicitly so later
	// passes can distinguish "never generated" from "generated, empty".
	if _, ok := slide.Notes[domain.NoteCitations]; !ok {
		slide.SetNote(domain.NoteCitations, []string{})
	}
	if _, ok := slide.Notes[domain.NoteSummary]; !ok {
		slide.SetNote(domain.NoteSummary, nil)
	}

	// Only overwrite notes when this pass actually yielded values.
	if summary != "" {
		slide.SetNote(domain.NoteSummary, summary)
	}
	if len(citations) > 0 {
		slide.SetNote(domain.NoteCitations, citations)
	}
	if gc.AdditionalNotes != "" {
		slide.SetNote(domain.NoteUser, gc.AdditionalNotes)
	}

	if err := doc.UpsertSlide(slide); err != nil {
		return fmt.Errorf("slide %q: %w", slideID, err)
	}
	doc.MergeReferences(slide.Citations())
	return nil
}

// GenerateForDocument populates every slide sequentially against the same
// document instance.
func (g *ContentGenerator) GenerateForDocument(
	ctx context.Context, doc *domain.SlideDocument, gc domain.GenerationContext,
) error {
	ids := make([]string, 0, len(doc.Slides))
	for _, slide := range doc.Slides {
		ids = append(ids, slide.SlideID)
	}
	for _, id := range ids {
		if err := g.GenerateForSlide(ctx, doc, id, gc); err != nil {
			return err
		}
	}
	return nil
}

// resolvePlaceholder produces the final content for one spec.
func (g *ContentGenerator) resolvePlaceholder(
	spec domain.PlaceholderSpec, results map[string]generatedText, targetCompany string,
) domain.PlaceholderContent {
	var text string
	var references []string

	switch spec.Policy {
	case domain.PolicyGenerate:
		if generated, ok := results[spec.Name]; ok && generated.text != "" {
			text = generated.text
			references = generated.references
		} else {
			// Description fallback keeps every generate placeholder
			// non-empty even when the collaborator failed.
			text = spec.Description
		}
	case domain.PolicyFixed:
		text = normalizeFixedText(spec.Description)
	case domain.PolicyPopulate:
		text = populateWithContext(spec.Description, targetCompany, g.now())
	default:
		text = spec.Description
	}

	return domain.PlaceholderContent{
		Name:       spec.Name,
		Text:       strings.TrimSpace(text),
		Policy:     spec.Policy,
		References: references,
	}
}

// generateEditable runs the single combined structured call for all
// generate-policy placeholders of the slide. Every failure path returns
// empty results; callers fall back per placeholder.
func (g *ContentGenerator) generateEditable(
	ctx context.Context,
	slide *domain.SlidePage,
	asset domain.SlideAsset,
	gc domain.GenerationContext,
	researchSnippet string,
) (map[string]generatedText, string, []string) {
	editable := asset.EditablePlaceholders()
	if len(editable) == 0 || g.llm == nil {
		logger.Debug("No editable placeholders or no LLM for slide %s", slide.SlideID)
		return nil, "", nil
	}

	internalDoc := gc.InternalDocument
	if internalDoc == "" {
		internalDoc = g.loadInternalDocument(ctx)
	}

	req := driven.StructuredRequest{
		Prompt:     g.buildContentPrompt(slide, asset, gc, internalDoc, researchSnippet),
		Schema:     contentSchema(editable),
		SchemaName: "slide_content",
		Instructions: "プレースホルダーごとに日本語で簡潔な文章を出力し、" +
			"出典はreferencesフィールドに列挙してください。",
	}

	result, err := g.llm.GenerateStructured(ctx, req)
	if err != nil {
		logger.Warn("Structured output generation failed: %v", err)
		return nil, "", nil
	}
	if result == nil || result.Parsed == nil {
		if result != nil && result.Err != "" {
			logger.Warn("Structured output error: %s", result.Err)
		}
		if result != nil && result.ValidationErr != "" {
			logger.Warn("Structured output validation error: %s", result.ValidationErr)
		}
		return nil, "", nil
	}

	return parseContentPayload(result.Parsed)
}

// parseContentPayload extracts per-placeholder text plus the slide summary
// and citations, tolerating the alternative key names models tend to use.
func parseContentPayload(payload map[string]any) (map[string]generatedText, string, []string) {
	results := make(map[string]generatedText)

	rawPlaceholders, _ := payload["placeholders"].([]any)
	for _, raw := range rawPlaceholders {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := item["placeholder_name"].(string)
		if name == "" {
			name, _ = item["name"].(string)
		}
		if name == "" {
			continue
		}
		text, _ := item["text"].(string)
		if text == "" {
			text, _ = item["content"].(string)
		}
		references := stringsFromAny(item["references"])
		if references == nil {
			references = stringsFromAny(item["citations"])
		}
		results[name] = generatedText{text: text, references: references}
	}

	summary, _ := payload["slide_summary"].(string)
	if summary == "" {
		summary, _ = payload["summary"].(string)
	}
	citations := stringsFromAny(payload["citations"])

	return results, summary, citations
}

// buildContentPrompt assembles the combined per-slide prompt: slide and
// template metadata, all placeholder descriptions, the user request, and
// the optional research / internal-document / notes sections.
func (g *ContentGenerator) buildContentPrompt(
	slide *domain.SlidePage,
	asset domain.SlideAsset,
	gc domain.GenerationContext,
	internalDoc, researchSnippet string,
) string {
	targetCompany := gc.TargetCompany
	if targetCompany == "" {
		targetCompany = InferTargetEntity(gc.UserRequest)
	}

	placeholderLines := make([]string, 0, len(asset.Placeholders))
	for _, spec := range asset.Placeholders {
		placeholderLines = append(placeholderLines,
			fmt.Sprintf("- %s [%s]: %s", spec.Name, spec.Policy, spec.Description))
	}

	category := asset.Category
	if category == "" {
		category = "不明"
	}
	title := "未設定"
	if slide.Title != nil && *slide.Title != "" {
		title = *slide.Title
	}
	audience := targetCompany
	if audience == "" {
		audience = "未特定"
	}

	sections := []string{
		"あなたは日本語のプレゼンテーションライターです。",
		"テンプレートの説明とユーザーの要望を踏まえ、指定されたプレースホルダーに適切なテキストを生成してください。",
		"生成時のルール:",
		"1. 箇条書きではなく、テンプレートの意図に沿った簡潔な文章にする。",
		"2. 断定は避け、必要に応じて出典番号を含める。",
		"3. プレースホルダーの説明に従う。",
		"",
		fmt.Sprintf("[スライド情報]\nID: %s\nページ番号: %d", slide.SlideID, slide.PageNumber),
		fmt.Sprintf("テンプレートファイル: %s\nカテゴリ: %s", asset.FileName, category),
		"用途: " + asset.Description,
		"スライドタイトル: " + title,
		"想定読者(推定): " + audience,
		"",
		"[ユーザーからのリクエスト]",
		gc.UserRequest,
		"",
		"[プレースホルダー詳細]",
		strings.Join(placeholderLines, "\n"),
	}

	// Explicit research input takes priority over the live search snippet.
	if gc.ExternalResearch != "" {
		sections = append(sections, "", "[外部リサーチ要約]", truncateText(gc.ExternalResearch, researchCharBudget))
	} else if researchSnippet != "" {
		sections = append(sections, "", "[自動Webリサーチ結果]", truncateText(researchSnippet, researchCharBudget))
	}

	if internalDoc != "" {
		sections = append(sections, "", "[内部ドキュメント抜粋]", truncateText(internalDoc, g.maxInternalChars))
	}
	if gc.AdditionalNotes != "" {
		sections = append(sections, "", "[補足指示]", gc.AdditionalNotes)
	}

	sections = append(sections, "出力はJSONのみ。各プレースホルダーのcontentは200文字以内。")
	return strings.Join(sections, "\n")
}

// maybeWebSearch runs the gated live web search. It requires the flag, an
// LLM exposing the capability, and no explicit research input. Failures
// are logged and ignored.
func (g *ContentGenerator) maybeWebSearch(
	ctx context.Context, slide *domain.SlidePage, gc domain.GenerationContext,
) string {
	if !gc.PerformWebSearch || gc.ExternalResearch != "" {
		return ""
	}
	searcher, ok := g.llm.(driven.WebSearcher)
	if !ok {
		logger.Debug("LLM does not expose web search, skipping")
		return ""
	}

	subject := slide.AssetID
	if slide.Title != nil && *slide.Title != "" {
		subject = *slide.Title
	}
	prompt := fmt.Sprintf("%s\n対象スライド: %s", gc.UserRequest, subject)

	findings, err := searcher.WebSearch(ctx, prompt, webSearchResults)
	if err != nil {
		logger.Debug("Web search skipped due to error: %v", err)
		return ""
	}
	if findings == nil {
		return ""
	}
	if findings.Text != "" {
		return findings.Text
	}
	if len(findings.Citations) > 0 {
		urls := make([]string, 0, len(findings.Citations))
		for _, citation := range findings.Citations {
			if citation.URL != "" {
				urls = append(urls, citation.URL)
			}
		}
		if len(urls) > 0 {
			return "検索結果: " + strings.Join(urls, ", ")
		}
	}
	return ""
}

// loadInternalDocument fetches the memoized internal-document excerpt.
func (g *ContentGenerator) loadInternalDocument(ctx context.Context) string {
	if g.research == nil {
		return ""
	}
	text, err := g.research.InternalDocument(ctx)
	if err != nil {
		logger.Info("Internal document unavailable: %v", err)
		return ""
	}
	return text
}

// contentSchema builds the combined per-slide schema whose placeholder
// names are constrained to exactly the generate-policy set.
func contentSchema(editable []domain.PlaceholderSpec) map[string]any {
	nameEnum := make([]string, len(editable))
	for i, spec := range editable {
		nameEnum[i] = spec.Name
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"slide_summary": map[string]any{
				"type":        "string",
				"description": "スライド全体の要約(任意)",
			},
			"citations": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "使用した情報源のリスト",
			},
			"placeholders": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"placeholder_name": map[string]any{
							"type": "string",
							"enum": nameEnum,
						},
						"text": map[string]any{
							"type":        "string",
							"description": "プレースホルダーに挿入する本文",
						},
						"references": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "参照した情報源",
							"default":     []string{},
						},
					},
					"required":             []string{"placeholder_name", "text"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"placeholders"},
		"additionalProperties": false,
	}
}

// stringsFromAny converts a decoded JSON array into strings, dropping
// non-string members. Returns nil when the value is not an array.
func stringsFromAny(value any) []string {
	items, ok := value.([]any)
	if !ok {
		if direct, ok := value.([]string); ok {
			return direct
		}
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
