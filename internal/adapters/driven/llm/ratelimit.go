package llm

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.LLMService = (*RateLimited)(nil)

// RateLimited wraps an LLMService with a request rate limiter. Content
// generation issues one call per slide, so a burst of slides hits the
// provider back to back without it.
type RateLimited struct {
	inner   driven.LLMService
	limiter *rate.Limiter
}

// NewRateLimited wraps inner with a limiter of requestsPerSecond and the
// given burst. A non-positive rate disables limiting. When inner also
// implements WebSearcher the returned service preserves the capability;
// plain services stay plain so capability discovery keeps working.
func NewRateLimited(inner driven.LLMService, requestsPerSecond float64, burst int) driven.LLMService {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	if burst < 1 {
		burst = 1
	}
	limited := &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(limit, burst),
	}
	if searcher, ok := inner.(driven.WebSearcher); ok {
		return &rateLimitedSearcher{RateLimited: limited, searcher: searcher}
	}
	return limited
}

// GenerateContent waits for a limiter token, then delegates.
func (s *RateLimited) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return s.inner.GenerateContent(ctx, prompt)
}

// GenerateStructured waits for a limiter token, then delegates.
func (s *RateLimited) GenerateStructured(
	ctx context.Context, req driven.StructuredRequest,
) (*driven.StructuredResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.GenerateStructured(ctx, req)
}

// ModelName delegates to the inner service.
func (s *RateLimited) ModelName() string {
	return s.inner.ModelName()
}

// Close delegates to the inner service.
func (s *RateLimited) Close() error {
	return s.inner.Close()
}

// rateLimitedSearcher adds rate-limited WebSearch delegation for inner
// services that expose the capability.
type rateLimitedSearcher struct {
	*RateLimited
	searcher driven.WebSearcher
}

var _ driven.WebSearcher = (*rateLimitedSearcher)(nil)

// WebSearch waits for a limiter token, then delegates.
func (s *rateLimitedSearcher) WebSearch(
	ctx context.Context, prompt string, maxResults int,
) (*driven.SearchFindings, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.searcher.WebSearch(ctx, prompt, maxResults)
}
