// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMService is the language-model collaborator consumed by the pipeline.
// This is an optional service - when nil, every stage that has a
// deterministic fallback degrades to it, and the planner fails explicitly.
//
// Implementations may include:
//   - OpenAI (chat completions with json_schema response format)
//   - Gemini (GenerateContent with a response JSON schema)
//   - Anthropic (Messages API, schema enforced via instructions)
type LLMService interface {
	// GenerateContent produces plain text from a prompt.
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// GenerateStructured requests a response constrained to a JSON schema.
	// A non-nil result with a nil Parsed map means the provider answered
	// but produced no usable payload; callers treat that as a soft failure.
	GenerateStructured(ctx context.Context, req StructuredRequest) (*StructuredResult, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// WebSearcher is an optional capability some LLM services expose. Callers
// discover it by type assertion on the LLMService and skip web research
// when it is absent.
type WebSearcher interface {
	// WebSearch runs a live web search grounded generation and returns the
	// findings text plus source citations.
	WebSearch(ctx context.Context, prompt string, maxResults int) (*SearchFindings, error)
}

// StructuredRequest describes one structured-output call.
type StructuredRequest struct {
	// Prompt is the full instruction text.
	Prompt string

	// Schema is the JSON schema the response must conform to.
	Schema map[string]any

	// SchemaName labels the schema for providers that require one.
	SchemaName string

	// Instructions are optional system-level directions.
	Instructions string
}

// StructuredResult is the outcome of a structured-output call.
type StructuredResult struct {
	// Text is the raw response text.
	Text string

	// Parsed is the decoded response object, nil when the provider
	// returned nothing usable.
	Parsed map[string]any

	// Err carries a provider-reported error message, if any.
	Err string

	// ValidationErr carries a schema-validation failure message, if any.
	ValidationErr string
}

// SearchFindings is the outcome of a live web search.
type SearchFindings struct {
	// Text is the synthesized findings text.
	Text string

	// Citations are the sources backing the findings.
	Citations []Citation
}

// Citation is one web source reference.
type Citation struct {
	URL   string
	Title string
}
