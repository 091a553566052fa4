package trait

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadyBound is returned when a trait is bound to a second name or class.
var ErrAlreadyBound = errors.New("trait already bound")

// ValidationError represents a rejected value.
type ValidationError struct {
	Attr  string // Attribute name
	Owner string // Type name of the owning instance, empty for standalone validation
	Info  string // Human-readable description of the accepted values
	Value any    // The rejected value
	Err   error  // Optional cause, e.g. a failed conversion
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Owner != "" {
		fmt.Fprintf(&b, "the %q trait of %s instance must be %s, but a value of %s was specified",
			e.Attr, article(e.Owner), e.Info, repr(e.Value))
	} else {
		fmt.Fprintf(&b, "the %q trait must be %s, but a value of %s was specified",
			e.Attr, e.Info, repr(e.Value))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ElementError represents a rejected element of a container value.
type ElementError struct {
	Attr    string
	Owner   string
	Info    string // Description of the accepted element values
	Element any
	Err     error // The element trait's own error
}

func (e *ElementError) Error() string {
	if e.Owner != "" {
		return fmt.Sprintf("element of the %q trait of %s instance must be %s, but a value of %s was specified",
			e.Attr, article(e.Owner), e.Info, repr(e.Element))
	}
	return fmt.Sprintf("element of the %q trait must be %s, but a value of %s was specified",
		e.Attr, e.Info, repr(e.Element))
}

func (e *ElementError) Unwrap() error { return e.Err }

// LookupError is returned when an attribute is read before its default was
// instantiated. It signals a broken construction sequence.
type LookupError struct {
	Attr  string
	Owner string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("trait %q of %s instance has neither a value nor a deferred default", e.Attr, article(e.Owner))
}

// ImportError is returned when a dotted class name cannot be resolved.
type ImportError struct {
	Name string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("no class registered as %q", e.Name)
}

// Error builds the validation error for value on owner.
func (t *Trait) Error(owner Owner, value any) error {
	return &ValidationError{Attr: t.name, Owner: className(owner), Info: t.Info(), Value: value}
}

func (t *Trait) errorWith(owner Owner, value any, cause error) error {
	return &ValidationError{Attr: t.name, Owner: className(owner), Info: t.Info(), Value: value, Err: cause}
}

func (t *Trait) elementError(owner Owner, elem *Trait, value any, cause error) error {
	return &ElementError{Attr: t.name, Owner: className(owner), Info: elem.Info(), Element: value, Err: cause}
}
