package domain

// PlanningContext carries the inputs for deriving the high-level deck
// structure from a planning conversation.
type PlanningContext struct {
	// ConversationHistory is the raw dialogue log the plan is derived from.
	ConversationHistory string

	// Goal is the final objective the deck must serve.
	Goal string

	// TargetCompany is the intended audience, when known.
	TargetCompany string

	// AdditionalRequirements are free-form extra constraints.
	AdditionalRequirements string
}

// GenerationContext carries the inputs that influence outline selection and
// placeholder content generation.
type GenerationContext struct {
	// UserRequest is the free-text business request.
	UserRequest string

	// TargetCompany overrides entity inference from the request.
	TargetCompany string

	// ExternalResearch is caller-supplied research text. When set it takes
	// priority over live web search.
	ExternalResearch string

	// AdditionalNotes are extra instructions stored alongside the document.
	AdditionalNotes string

	// InternalDocument overrides the configured internal-document excerpt.
	InternalDocument string

	// PerformWebSearch gates the optional live web-search call. It only
	// takes effect when the LLM collaborator exposes that capability.
	PerformWebSearch bool
}
