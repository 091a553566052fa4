package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownAttribute is returned when a name is not declared by the type.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrCycle is returned when serialization meets an instance it is already
	// serializing.
	ErrCycle = errors.New("reference cycle")
)

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
