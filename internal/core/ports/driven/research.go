package driven

import "context"

// ResearchProvider supplies the internal-document excerpt mixed into
// content-generation prompts. Implementations load once and memoize; the
// excerpt is immutable for the provider's lifetime.
type ResearchProvider interface {
	// InternalDocument returns the excerpt, truncated to the configured
	// character budget. An empty string with a nil error means no internal
	// document is available.
	InternalDocument(ctx context.Context) (string, error)
}
