package parser

import (
	"fmt"
	"sort"
	"strings"
)

// Constant is a named primitive value declared in an interface definition.
type Constant struct {
	Type  string
	Name  string
	Value interface{}
}

// NewConstant parses valueString according to primitiveType and returns the
// resulting constant.
func NewConstant(primitiveType, name, valueString string) (Constant, error) {
	if !IsPrimitiveType(primitiveType) {
		return Constant{}, fmt.Errorf(
			"the constant type '%s' must be a primitive type: %w",
			primitiveType, ErrInvalidSpecification)
	}
	if !IsValidConstantName(name) {
		return Constant{}, &InvalidResourceNameError{Name: name}
	}

	t, err := ParseType(primitiveType, "")
	if err != nil {
		return Constant{}, err
	}
	value, err := ParsePrimitiveValueString(t, valueString)
	if err != nil {
		return Constant{}, err
	}
	return Constant{Type: primitiveType, Name: name, Value: value}, nil
}

// String renders the constant the way it appears in a definition file.
func (c Constant) String() string {
	if c.Type == "string" || c.Type == "wstring" {
		return fmt.Sprintf("%s %s='%v'", c.Type, c.Name, c.Value)
	}
	return fmt.Sprintf("%s %s=%v", c.Type, c.Name, c.Value)
}

// Field is a single member of a message, optionally with a default value.
type Field struct {
	Type         Type
	Name         string
	DefaultValue interface{} // nil if the field has no default
}

// NewField returns a field without a default value.
func NewField(t Type, name string) (Field, error) {
	if !IsValidFieldName(name) {
		return Field{}, &InvalidResourceNameError{Name: name}
	}
	return Field{Type: t, Name: name}, nil
}

// NewFieldWithDefault parses defaultValueString according to the field type
// and returns a field carrying the resulting default value.
func NewFieldWithDefault(t Type, name, defaultValueString string) (Field, error) {
	f, err := NewField(t, name)
	if err != nil {
		return Field{}, err
	}
	value, err := ParseValueString(t, defaultValueString)
	if err != nil {
		return Field{}, err
	}
	f.DefaultValue = value
	return f, nil
}

// String renders the field the way it appears in a definition file.
func (f Field) String() string {
	s := fmt.Sprintf("%s %s", f.Type, f.Name)
	if f.DefaultValue != nil {
		if f.Type.IsPrimitive() && !f.Type.IsArray && f.Type.Name == "string" {
			s += fmt.Sprintf(" '%v'", f.DefaultValue)
		} else {
			s += fmt.Sprintf(" %v", f.DefaultValue)
		}
	}
	return s
}

// MessageSpec is a parsed message definition.
type MessageSpec struct {
	BaseType  BaseType
	MsgName   string
	Fields    []Field
	Constants []Constant
}

// NewMessageSpec assembles a message specification and rejects duplicate
// field or constant names.
func NewMessageSpec(pkgName, namespace, msgName string, fields []Field, constants []Constant) (*MessageSpec, error) {
	base, err := ParseBaseType(
		pkgName+NamespaceSeparator+namespace+NamespaceSeparator+msgName, "", "")
	if err != nil {
		return nil, err
	}

	if dups := duplicateNames(len(fields), func(i int) string { return fields[i].Name }); len(dups) > 0 {
		return nil, fmt.Errorf("the fields iterable contains duplicate names: %s: %w",
			strings.Join(dups, ", "), ErrInvalidSpecification)
	}
	if dups := duplicateNames(len(constants), func(i int) string { return constants[i].Name }); len(dups) > 0 {
		return nil, fmt.Errorf("the constants iterable contains duplicate names: %s: %w",
			strings.Join(dups, ", "), ErrInvalidSpecification)
	}

	return &MessageSpec{
		BaseType:  base,
		MsgName:   msgName,
		Fields:    fields,
		Constants: constants,
	}, nil
}

func duplicateNames(n int, name func(int) string) []string {
	seen := make(map[string]int, n)
	for i := 0; i < n; i++ {
		seen[name(i)]++
	}
	var dups []string
	for name, count := range seen {
		if count > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}

// ServiceSpec is a parsed service definition: a request and a response
// message sharing the service name.
type ServiceSpec struct {
	PkgName  string
	SrvName  string
	Request  *MessageSpec
	Response *MessageSpec
}

// KnownTypes is the set of interface types available for complex field
// resolution, keyed by the "pkg/Name" rendering of their base type.
type KnownTypes map[string]struct{}

// Add registers a type with the set.
func (k KnownTypes) Add(t BaseType) {
	k[t.String()] = struct{}{}
}

// ValidateFieldTypes checks that every complex field type of the message is
// part of the known type set.
func (s *MessageSpec) ValidateFieldTypes(known KnownTypes) error {
	return validateFieldTypes("Message", s.BaseType.String(), s.Fields, known)
}

// ValidateFieldTypes checks the request and response fields of the service.
func (s *ServiceSpec) ValidateFieldTypes(known KnownTypes) error {
	fields := append([]Field{}, s.Request.Fields...)
	fields = append(fields, s.Response.Fields...)
	name := s.PkgName + "/" + s.SrvName
	return validateFieldTypes("Service", name, fields, known)
}

func validateFieldTypes(specKind, specName string, fields []Field, known KnownTypes) error {
	for _, field := range fields {
		if field.Type.IsPrimitive() {
			continue
		}
		if _, ok := known[field.Type.BaseType.String()]; !ok {
			return &UnknownMessageTypeError{
				SpecKind:  specKind,
				Interface: specName,
				Field:     field.String(),
			}
		}
	}
	return nil
}
