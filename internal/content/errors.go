package content

import (
	"fmt"
	"strings"
)

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// ValidationError lists every problem found while loading a catalog.
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return fmt.Sprintf("content: invalid catalog (%d problems): %s", len(e.Problems), strings.Join(parts, "; "))
}

type validator struct {
	problems []FieldError
}

func (v *validator) add(field, message string) {
	v.problems = append(v.problems, FieldError{Field: field, Message: message})
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: v.problems}
}
