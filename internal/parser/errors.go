package parser

import (
	"errors"
	"fmt"
)

// ErrInvalidSpecification is the root of the specification error taxonomy.
// Every error produced while parsing an interface definition matches it via
// errors.Is.
var ErrInvalidSpecification = errors.New("invalid specification")

// ErrInvalidServiceSpecification marks malformed service definitions.
var ErrInvalidServiceSpecification = fmt.Errorf("invalid service specification: %w", ErrInvalidSpecification)

// InvalidResourceNameError reports a package, message, field or constant
// name that does not match the naming rules.
type InvalidResourceNameError struct {
	Name string
}

func (e *InvalidResourceNameError) Error() string {
	return fmt.Sprintf("invalid resource name '%s'", e.Name)
}

func (e *InvalidResourceNameError) Unwrap() error { return ErrInvalidSpecification }

// InvalidFieldDefinitionError reports a field line that could not be parsed.
type InvalidFieldDefinitionError struct {
	Line   string
	Reason string
}

func (e *InvalidFieldDefinitionError) Error() string {
	return fmt.Sprintf("invalid field definition '%s': %s", e.Line, e.Reason)
}

func (e *InvalidFieldDefinitionError) Unwrap() error { return ErrInvalidSpecification }

// UnknownMessageTypeError reports a complex field type that is not part of
// the known type set.
type UnknownMessageTypeError struct {
	SpecKind  string // "Message" or "Service"
	Interface string
	Field     string
}

func (e *UnknownMessageTypeError) Error() string {
	return fmt.Sprintf("%s interface '%s' contains an unknown field type: %s",
		e.SpecKind, e.Interface, e.Field)
}

func (e *UnknownMessageTypeError) Unwrap() error { return ErrInvalidSpecification }

// InvalidValueError reports a value string that can not be converted to the
// requested type.
type InvalidValueError struct {
	Type   string
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	msg := fmt.Sprintf("value '%s' can not be converted to type '%s'", e.Value, e.Type)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidValueError) Unwrap() error { return ErrInvalidSpecification }
