package domain

// SlotBinding maps one placeholder slot to its final text. Binding is by
// position index, never by name: the index is the stable identity shared
// between the manifest and the template binary.
type SlotBinding struct {
	// Index is the template-defined placeholder position index.
	Index int `json:"idx"`

	// Name is the manifest placeholder name, carried for diagnostics.
	Name string `json:"name"`

	// Text is the final text written into the slot.
	Text string `json:"text"`
}

// RenderSlide is the fully resolved binding set for one slide.
type RenderSlide struct {
	SlideID    string        `json:"slide_id"`
	PageNumber int           `json:"page"`
	AssetID    string        `json:"asset_id"`
	AssetFile  string        `json:"asset_file"`
	Title      string        `json:"title,omitempty"`
	Bindings   []SlotBinding `json:"bindings"`
}

// RenderPlan is the deterministic binding of a finished document onto its
// templates. It is a pure function of (document, catalog, inventory):
// building it twice for the same inputs yields identical plans.
type RenderPlan struct {
	Slides []RenderSlide `json:"slides"`
}
