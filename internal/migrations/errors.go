package migrations

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaSyntax is matched by every schema parsing failure
var ErrSchemaSyntax = errors.New("schema syntax error")

// FieldError describes one schema field that could not be parsed
type FieldError struct {
	Position int
	Fragment string
	Reason   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %d %q: %s", e.Position, e.Fragment, e.Reason)
}

// Is makes errors.Is(err, ErrSchemaSyntax) hold
func (e *FieldError) Is(target error) bool {
	return target == ErrSchemaSyntax
}

// SchemaError collects the failing fields of a schema string
type SchemaError struct {
	Fields []*FieldError
}

func (e *SchemaError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return "invalid schema: " + strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrSchemaSyntax) hold
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaSyntax
}

// Unwrap exposes the individual field errors to errors.As
func (e *SchemaError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields))
	for _, f := range e.Fields {
		errs = append(errs, f)
	}
	return errs
}
