package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// FieldError describes one scene field that failed validation.
type FieldError struct {
	Field  string
	Reason string
	Value  any
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Field, e.Reason, e.Value)
}

// Unwrap lets callers match any field failure with errors.Is(err, domain.ErrInvalidConfig).
func (e *FieldError) Unwrap() error {
	return domain.ErrInvalidConfig
}

// FieldErrors collects every failure found in one validation pass.
type FieldErrors []*FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 1 {
		return fe[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d invalid fields:", len(fe))
	for i, err := range fe {
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual field errors to errors.Is and errors.As.
func (fe FieldErrors) Unwrap() []error {
	out := make([]error, len(fe))
	for i, err := range fe {
		out[i] = err
	}
	return out
}

// Fields returns the field errors carried by err, if any.
func Fields(err error) []*FieldError {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}
