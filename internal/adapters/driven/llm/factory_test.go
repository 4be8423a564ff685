package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_IsConfigured(t *testing.T) {
	var nilSettings *Settings
	assert.False(t, nilSettings.IsConfigured())
	assert.False(t, (&Settings{}).IsConfigured())
	assert.True(t, (&Settings{Provider: ProviderOpenAI}).IsConfigured())
}

func TestNewService(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured yields nil service", func(t *testing.T) {
		svc, err := NewService(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, svc)

		svc, err = NewService(ctx, &Settings{})
		require.NoError(t, err)
		assert.Nil(t, svc)
	})

	t.Run("openai", func(t *testing.T) {
		svc, err := NewService(ctx, &Settings{
			Provider: ProviderOpenAI,
			APIKey:   "test-key",
			Model:    "gpt-4o-mini",
		})
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()
		assert.Equal(t, "gpt-4o-mini", svc.ModelName())
	})

	t.Run("anthropic", func(t *testing.T) {
		svc, err := NewService(ctx, &Settings{
			Provider: ProviderAnthropic,
			APIKey:   "test-key",
		})
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()
	})

	t.Run("missing API key fails", func(t *testing.T) {
		_, err := NewService(ctx, &Settings{Provider: ProviderOpenAI})
		assert.Error(t, err)
	})

	t.Run("unknown provider fails", func(t *testing.T) {
		_, err := NewService(ctx, &Settings{Provider: "ollama"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported LLM provider")
	})

	t.Run("rate limit wraps the service", func(t *testing.T) {
		svc, err := NewService(ctx, &Settings{
			Provider:          ProviderAnthropic,
			APIKey:            "test-key",
			RequestsPerSecond: 2,
		})
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()
		_, ok := svc.(*RateLimited)
		assert.True(t, ok)
	})
}
