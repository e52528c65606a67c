package template

import (
	"errors"
	"fmt"
)

// Registry errors.
var (
	// ErrTemplateNotFound is returned when a template id is not registered.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrDuplicateTemplate is returned when registering an id twice.
	ErrDuplicateTemplate = errors.New("template already registered")

	// ErrInvalidTemplate is returned when a template definition cannot be registered.
	ErrInvalidTemplate = errors.New("invalid template")
)

// SectionError reports a section that could not be compiled.
type SectionError struct {
	TemplateID string
	SectionID  string
	Err        error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("template %q section %q: %v", e.TemplateID, e.SectionID, e.Err)
}

// Unwrap lets errors.Is match both ErrInvalidTemplate and the cause.
func (e *SectionError) Unwrap() []error {
	return []error{ErrInvalidTemplate, e.Err}
}
