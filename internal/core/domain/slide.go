package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// EditPolicy governs how a placeholder's text is produced.
type EditPolicy string

// Known edit policies. Unknown values are carried through untouched and
// rendered as literal description text.
const (
	// PolicyGenerate marks a placeholder whose text is authored by the LLM.
	PolicyGenerate EditPolicy = "generate"

	// PolicyPopulate marks a placeholder filled by deterministic token
	// substitution (target company, current year-month).
	PolicyPopulate EditPolicy = "populate"

	// PolicyFixed marks a placeholder whose text is the (normalized)
	// authoring description itself.
	PolicyFixed EditPolicy = "fixed"
)

// NormalizeEditPolicy lowercases a manifest policy value, defaulting to
// generate when empty.
func NormalizeEditPolicy(s string) EditPolicy {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PolicyGenerate
	}
	return EditPolicy(s)
}

// Note keys accumulated on SlidePage.Notes across generation passes.
const (
	NoteSummary   = "summary"
	NoteCitations = "citations"
	NoteOutline   = "outline_notes"
	NoteUser      = "user_notes"
)

// Metadata keys accumulated on SlideDocument.Metadata.
const (
	MetaReferences = "references"
	MetaStructure  = "slide_structure"
	MetaUserNotes  = "user_notes"
)

// PlaceholderSpec defines a placeholder that belongs to a slide asset.
// Specs are created once at catalog load and never mutated.
type PlaceholderSpec struct {
	// Name is unique within one asset.
	Name string `json:"name"`

	// Index is the stable position index used for structural binding.
	// It is template-defined and not derived from the name.
	Index int `json:"idx"`

	// Description is the natural-language authoring intent. For fixed and
	// populate policies it is also the source of the rendered text.
	Description string `json:"description"`

	// Policy selects how the placeholder's text is produced.
	Policy EditPolicy `json:"edit_policy"`

	// Metadata carries any extra manifest keys verbatim.
	Metadata map[string]any `json:"-"`
}

// specKnownKeys are the manifest keys consumed by PlaceholderSpec itself;
// everything else lands in Metadata.
var specKnownKeys = map[string]bool{
	"name": true, "idx": true, "description": true, "edit_policy": true,
}

// UnmarshalJSON decodes a manifest placeholder entry, collecting unknown
// keys into Metadata.
func (p *PlaceholderSpec) UnmarshalJSON(data []byte) error {
	type alias PlaceholderSpec
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = PlaceholderSpec(a)
	p.Policy = NormalizeEditPolicy(string(p.Policy))

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if specKnownKeys[key] {
			continue
		}
		if p.Metadata == nil {
			p.Metadata = make(map[string]any)
		}
		p.Metadata[key] = value
	}
	return nil
}

// MarshalJSON re-flattens Metadata alongside the named fields, restoring the
// original manifest shape.
func (p PlaceholderSpec) MarshalJSON() ([]byte, error) {
	payload := map[string]any{
		"name":        p.Name,
		"idx":         p.Index,
		"description": p.Description,
		"edit_policy": string(p.Policy),
	}
	for key, value := range p.Metadata {
		payload[key] = value
	}
	return json.Marshal(payload)
}

// SlideAsset describes a reusable slide template stored in the slide library.
// Assets are immutable after catalog load.
type SlideAsset struct {
	// ID is the unique catalog key.
	ID string `json:"id"`

	// FileName is the template binary within the slide library directory.
	FileName string `json:"file_name"`

	// Description is the human-readable purpose of the template.
	Description string `json:"description"`

	// Category groups related templates (cover, agenda, content, ...).
	Category string `json:"category,omitempty"`

	// Tags support retrieval scoring.
	Tags []string `json:"tags,omitempty"`

	// Placeholders are the named slots, in template order.
	Placeholders []PlaceholderSpec `json:"placeholders"`
}

// Validate checks the per-asset invariant that placeholder indexes are
// unique within the asset.
func (a *SlideAsset) Validate() error {
	seen := make(map[int]string, len(a.Placeholders))
	for _, spec := range a.Placeholders {
		if prev, ok := seen[spec.Index]; ok {
			return fmt.Errorf("asset %s: placeholders %q and %q share index %d: %w",
				a.ID, prev, spec.Name, spec.Index, ErrUnknownPlaceholder)
		}
		seen[spec.Index] = spec.Name
	}
	return nil
}

// GetPlaceholder returns the spec with the given name, or false.
func (a *SlideAsset) GetPlaceholder(name string) (PlaceholderSpec, bool) {
	for _, spec := range a.Placeholders {
		if spec.Name == name {
			return spec, true
		}
	}
	return PlaceholderSpec{}, false
}

// EditablePlaceholders returns the generate-policy specs, in template order.
func (a *SlideAsset) EditablePlaceholders() []PlaceholderSpec {
	var specs []PlaceholderSpec
	for _, spec := range a.Placeholders {
		if spec.Policy == PolicyGenerate {
			specs = append(specs, spec)
		}
	}
	return specs
}

// PlaceholderContent is generated text bound to one placeholder name.
// Content whose name does not resolve against the bound asset is silently
// dropped at render time, never an error.
type PlaceholderContent struct {
	Name       string     `json:"placeholder_name"`
	Text       string     `json:"content"`
	Policy     EditPolicy `json:"policy"`
	References []string   `json:"references"`
}

// UnmarshalJSON applies the generate-policy default for hand-edited
// documents that omit the field.
func (c *PlaceholderContent) UnmarshalJSON(data []byte) error {
	type alias PlaceholderContent
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = PlaceholderContent(a)
	if c.Policy == "" {
		c.Policy = PolicyGenerate
	}
	return nil
}

// SlidePage is a single slide within a slide document.
type SlidePage struct {
	// SlideID is unique within the document.
	SlideID string `json:"slide_id"`

	// PageNumber defines presentation order. Values must be unique across
	// the document.
	PageNumber int `json:"page"`

	// AssetID references the catalog template this page is bound to.
	AssetID string `json:"asset_id"`

	// AssetFile is the template file name, denormalized from the asset.
	AssetFile string `json:"asset_file"`

	// Title is the optional slide title. nil means never set.
	Title *string `json:"title"`

	// Placeholders holds the generated content for this pass.
	Placeholders []PlaceholderContent `json:"placeholders"`

	// Notes accumulates summary, citations, outline_notes and user_notes
	// across generation passes.
	Notes map[string]any `json:"notes"`
}

// UnmarshalJSON defaults the page number to 1 when absent.
func (s *SlidePage) UnmarshalJSON(data []byte) error {
	type alias SlidePage
	a := alias{PageNumber: 1}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = SlidePage(a)
	return nil
}

// SetNote stores a note value, allocating the map on first use.
func (s *SlidePage) SetNote(key string, value any) {
	if s.Notes == nil {
		s.Notes = make(map[string]any)
	}
	s.Notes[key] = value
}

// Citations returns the slide's citation note as a string slice, tolerating
// the []any shape produced by JSON decoding.
func (s *SlidePage) Citations() []string {
	if s.Notes == nil {
		return nil
	}
	return toStringSlice(s.Notes[NoteCitations])
}

// SlideDocument is the aggregate root for one deck: the ordered slide list
// plus document-level metadata. Slides stay sorted by page number after
// every mutation.
type SlideDocument struct {
	Slides   []*SlidePage   `json:"slides"`
	Metadata map[string]any `json:"metadata"`
}

// NewSlideDocument returns an empty document with allocated metadata.
func NewSlideDocument() *SlideDocument {
	return &SlideDocument{Metadata: make(map[string]any)}
}

// UnmarshalJSON normalizes the references metadata back to a string slice
// so a load/save cycle is lossless.
func (d *SlideDocument) UnmarshalJSON(data []byte) error {
	type alias SlideDocument
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = SlideDocument(a)
	if d.Metadata != nil {
		if raw, ok := d.Metadata[MetaReferences]; ok {
			d.Metadata[MetaReferences] = toStringSlice(raw)
		}
	}
	return nil
}

// GetSlide returns the slide with the given ID.
func (d *SlideDocument) GetSlide(slideID string) (*SlidePage, error) {
	for _, slide := range d.Slides {
		if slide.SlideID == slideID {
			return slide, nil
		}
	}
	return nil, fmt.Errorf("slide %q: %w", slideID, ErrUnknownSlide)
}

// UpsertSlide replaces the slide with the same ID in place, or appends it,
// then re-sorts by page number. A page number already claimed by a
// different slide is rejected.
func (d *SlideDocument) UpsertSlide(slide *SlidePage) error {
	for _, existing := range d.Slides {
		if existing.SlideID != slide.SlideID && existing.PageNumber == slide.PageNumber {
			return fmt.Errorf("page %d already held by slide %q: %w",
				slide.PageNumber, existing.SlideID, ErrDuplicatePage)
		}
	}
	replaced := false
	for i, existing := range d.Slides {
		if existing.SlideID == slide.SlideID {
			d.Slides[i] = slide
			replaced = true
			break
		}
	}
	if !replaced {
		d.Slides = append(d.Slides, slide)
	}
	d.sortSlides()
	return nil
}

// sortSlides orders slides by page number. The sort is stable so equal page
// numbers loaded from legacy documents keep their relative order.
func (d *SlideDocument) sortSlides() {
	sort.SliceStable(d.Slides, func(i, j int) bool {
		return d.Slides[i].PageNumber < d.Slides[j].PageNumber
	})
}

// References returns the accumulated document-wide reference list.
func (d *SlideDocument) References() []string {
	if d.Metadata == nil {
		return nil
	}
	return toStringSlice(d.Metadata[MetaReferences])
}

// MergeReferences unions citations into the document reference list, kept
// sorted and deduplicated. The list only ever grows.
func (d *SlideDocument) MergeReferences(citations []string) {
	if len(citations) == 0 {
		return
	}
	existing := make(map[string]bool)
	for _, ref := range d.References() {
		existing[ref] = true
	}
	for _, citation := range citations {
		if citation != "" {
			existing[citation] = true
		}
	}
	merged := make([]string, 0, len(existing))
	for ref := range existing {
		merged = append(merged, ref)
	}
	sort.Strings(merged)
	if d.Metadata == nil {
		d.Metadata = make(map[string]any)
	}
	d.Metadata[MetaReferences] = merged
}

// SetMetadata stores a metadata value, allocating the map on first use.
func (d *SlideDocument) SetMetadata(key string, value any) {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any)
	}
	d.Metadata[key] = value
}

// toStringSlice converts either []string or the []any shape produced by
// JSON decoding into a string slice, dropping non-string members.
func toStringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	default:
		return nil
	}
}
