package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrManifestMissing indicates the slide library manifest file is absent.
	// The catalog cannot be built without it.
	ErrManifestMissing = errors.New("slide library manifest missing")

	// ErrUnknownAsset indicates a referenced slide asset is not in the catalog.
	ErrUnknownAsset = errors.New("unknown slide asset")

	// ErrUnknownPlaceholder indicates a placeholder name is not defined
	// for the asset it was looked up against.
	ErrUnknownPlaceholder = errors.New("unknown placeholder")

	// ErrUnknownSlide indicates a slide ID is not present in the document.
	ErrUnknownSlide = errors.New("unknown slide")

	// ErrDuplicatePage indicates two different slides claim the same page
	// number. Page numbers define render order and must be unique.
	ErrDuplicatePage = errors.New("duplicate page number")

	// ErrDocumentNotFound indicates no slide document exists at the given path.
	ErrDocumentNotFound = errors.New("slide document not found")

	// ErrPlanningFailed indicates the structure planner received empty text
	// from the LLM collaborator. Planning has no fallback.
	ErrPlanningFailed = errors.New("slide structure planning failed")

	// ErrEmptyCatalog indicates the catalog holds no assets at all, so not
	// even a fallback outline can be built.
	ErrEmptyCatalog = errors.New("slide catalog is empty")

	// ErrTemplateDrift indicates the destination template is missing a
	// placeholder index that an asset defines. The asset library is
	// inconsistent with its binaries; rendering must not continue.
	ErrTemplateDrift = errors.New("template placeholder drift")

	// ErrLLMUnavailable indicates no LLM collaborator is configured.
	// Stages that require one fail; stages with fallbacks degrade.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrPreviewUnavailable indicates the native conversion tool needed for
	// preview images is absent. Preview is optional; this is not fatal.
	ErrPreviewUnavailable = errors.New("preview rendering unavailable")

	// ErrSnapshotNotFound indicates a deck snapshot ID does not exist.
	ErrSnapshotNotFound = errors.New("deck snapshot not found")
)
