// Package gemini provides an LLM service adapter using the Gemini API. It
// is the only adapter that also implements the WebSearcher capability,
// via the GoogleSearch grounding tool.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
	"github.com/geotra-labs/deckgen/internal/logger"
)

// Ensure LLMService implements both interfaces.
var (
	_ driven.LLMService  = (*LLMService)(nil)
	_ driven.WebSearcher = (*LLMService)(nil)
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL overrides the API base URL.
	BaseURL string

	// Model is the LLM model to use (default: gemini-2.0-flash).
	Model string
}

// LLMService provides LLM operations using the Gemini API.
type LLMService struct {
	client *genai.Client
	model  string
}

// NewLLMService creates a new Gemini LLM service.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &LLMService{
		client: client,
		model:  cfg.Model,
	}, nil
}

// GenerateContent produces a free-text completion for the prompt.
func (s *LLMService) GenerateContent(ctx context.Context, prompt string) (string, error) {
	res, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini completion: %w", err)
	}
	text := responseText(res)
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}

// GenerateStructured requests JSON output constrained by the schema.
func (s *LLMService) GenerateStructured(
	ctx context.Context, req driven.StructuredRequest,
) (*driven.StructuredResult, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: req.Schema,
	}
	if req.Instructions != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.Instructions}},
		}
	}

	res, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini structured completion: %w", err)
	}

	result := &driven.StructuredResult{Text: strings.TrimSpace(responseText(res))}
	if result.Text == "" {
		result.Err = "empty response"
		return result, nil
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(result.Text), &parsed); err != nil {
		logger.Debug("Gemini structured output was not valid JSON: %v", err)
		result.ValidationErr = err.Error()
		return result, nil
	}
	result.Parsed = parsed
	return result, nil
}

// WebSearch runs a grounded generation with the GoogleSearch tool and maps
// grounding chunks to citations.
func (s *LLMService) WebSearch(
	ctx context.Context, prompt string, maxResults int,
) (*driven.SearchFindings, error) {
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	res, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini web search: %w", err)
	}

	findings := &driven.SearchFindings{Text: responseText(res)}
	if len(res.Candidates) == 0 || res.Candidates[0].GroundingMetadata == nil {
		return findings, nil
	}

	for _, chunk := range res.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		findings.Citations = append(findings.Citations, driven.Citation{
			URL:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
		if maxResults > 0 && len(findings.Citations) >= maxResults {
			break
		}
	}
	return findings, nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(res *genai.GenerateContentResponse) string {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return ""
	}
	var parts []string
	for _, part := range res.Candidates[0].Content.Parts {
		if part.Text != "" {
			parts = append(parts, part.Text)
		}
	}
	return strings.Join(parts, "\n")
}
