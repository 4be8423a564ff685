// Package file provides the file-backed internal research provider.
package file

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
	"github.com/geotra-labs/deckgen/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.ResearchProvider = (*Provider)(nil)

// DefaultMaxChars caps the excerpt length handed to prompts.
const DefaultMaxChars = 4000

// Provider reads one internal document from disk, truncates it to the
// character budget, and memoizes the result for its lifetime. An empty
// path is a valid configuration meaning no internal document.
type Provider struct {
	path     string
	maxChars int

	once    sync.Once
	excerpt string
	loadErr error
}

// NewProvider creates a provider for the document at path. maxChars <= 0
// selects the default budget.
func NewProvider(path string, maxChars int) *Provider {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Provider{path: path, maxChars: maxChars}
}

// InternalDocument returns the memoized excerpt.
func (p *Provider) InternalDocument(_ context.Context) (string, error) {
	p.once.Do(p.load)
	return p.excerpt, p.loadErr
}

func (p *Provider) load() {
	if p.path == "" {
		return
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		p.loadErr = fmt.Errorf("reading internal document: %w", err)
		return
	}

	text := strings.TrimSpace(string(data))
	runes := []rune(text)
	if len(runes) > p.maxChars {
		text = string(runes[:p.maxChars])
		logger.Debug("Internal document truncated to %d chars", p.maxChars)
	}
	p.excerpt = text
}
