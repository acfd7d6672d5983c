package util

import "errors"

var (
	ErrSelectionOrder      = errors.New("parent selection required first")
	ErrSelectionMismatch   = errors.New("selection does not belong to its parent")
	ErrSelectionSuperseded = errors.New("selection changed while fetching, result discarded")
	ErrNoLevelSelected     = errors.New("no course level selected")

	ErrNameRequired       = errors.New("name is required")
	ErrTitleRequired      = errors.New("title is required")
	ErrKeyRequired        = errors.New("setting key is required")
	ErrTooFewOptions      = errors.New("a question needs at least two options")
	ErrNoCorrectOption    = errors.New("exactly one option must be marked correct")
	ErrPreviewURLRequired = errors.New("a valid, existing preview video URL is required")
)
