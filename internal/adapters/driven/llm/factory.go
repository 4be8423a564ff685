// Package llm provides the provider factory and shared decorators for the
// LLM adapters.
package llm

import (
	"context"
	"fmt"

	"github.com/geotra-labs/deckgen/internal/adapters/driven/llm/anthropic"
	"github.com/geotra-labs/deckgen/internal/adapters/driven/llm/gemini"
	"github.com/geotra-labs/deckgen/internal/adapters/driven/llm/openai"
	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
)

// Known provider names accepted by Settings.Provider.
const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Settings selects and configures an LLM provider.
type Settings struct {
	// Provider is one of openai, gemini or anthropic. Empty means no LLM.
	Provider string

	// Model overrides the provider's default model.
	Model string

	// APIKey authenticates against the provider.
	APIKey string

	// BaseURL overrides the provider's API endpoint.
	BaseURL string

	// RequestsPerSecond caps the provider call rate. Zero means unlimited.
	RequestsPerSecond float64
}

// IsConfigured reports whether a provider has been selected.
func (s *Settings) IsConfigured() bool {
	return s != nil && s.Provider != ""
}

// NewService creates the configured LLM service, wrapped with the
// configured rate limit. Returns (nil, nil) when no provider is
// configured; the pipeline degrades to its deterministic fallbacks.
func NewService(ctx context.Context, settings *Settings) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := createService(ctx, settings)
	if err != nil {
		return nil, err
	}

	if settings.RequestsPerSecond > 0 {
		svc = NewRateLimited(svc, settings.RequestsPerSecond, 1)
	}
	return svc, nil
}

// createService creates the appropriate LLM service based on settings.
func createService(ctx context.Context, settings *Settings) (driven.LLMService, error) {
	switch settings.Provider {
	case ProviderOpenAI:
		return openai.NewLLMService(openai.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case ProviderGemini:
		return gemini.NewLLMService(ctx, gemini.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case ProviderAnthropic:
		return anthropic.NewLLMService(anthropic.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}
