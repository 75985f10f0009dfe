package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// BaseType describes a field type without any array information. Primitive
// types carry no package name; complex types are qualified with a package
// name and an interface namespace ("msg" or "srv").
type BaseType struct {
	PkgName          string
	Namespace        string
	Name             string
	StringUpperBound int // 0 means unbounded
}

// ParseBaseType parses a type string into a BaseType. Complex types must
// either be fully qualified ("pkg::msg::Name") or consist of a bare name
// with both contextPkg and contextNamespace provided.
func ParseBaseType(typeString, contextPkg, contextNamespace string) (BaseType, error) {
	var t BaseType

	if IsPrimitiveType(typeString) {
		t.Name = typeString
		return t, nil
	}

	if strings.HasPrefix(typeString, "string"+StringUpperBoundToken) {
		t.Name = "string"
		upperBoundString := typeString[len("string")+len(StringUpperBoundToken):]
		bound, err := strconv.Atoi(upperBoundString)
		if err != nil || bound <= 0 {
			return BaseType{}, fmt.Errorf(
				"the upper bound of the string type '%s' must be a valid integer value > 0: %w",
				typeString, ErrInvalidSpecification)
		}
		t.StringUpperBound = bound
		return t, nil
	}

	parts := strings.Split(typeString, NamespaceSeparator)
	switch {
	case len(parts) == 3:
		// the type string contains the package name and namespace
		t.PkgName = parts[0]
		t.Namespace = parts[1]
		t.Name = parts[2]
	case len(parts) == 1 && contextPkg != "" && contextNamespace != "":
		// the package name and namespace are provided by context
		t.PkgName = contextPkg
		t.Namespace = contextNamespace
		t.Name = typeString
	default:
		return BaseType{}, &InvalidResourceNameError{Name: typeString}
	}

	if !IsValidPackageName(t.PkgName) {
		return BaseType{}, &InvalidResourceNameError{Name: t.PkgName}
	}
	if !IsValidMessageName(t.Name) {
		return BaseType{}, &InvalidResourceNameError{Name: t.Name}
	}
	return t, nil
}

// IsPrimitive reports whether the type is a built-in primitive type.
func (t BaseType) IsPrimitive() bool {
	return t.PkgName == ""
}

// String renders the type the way it is keyed in known-type sets:
// "pkg/Name" for complex types, the primitive name (with an optional
// "<=N" bound for strings) otherwise.
func (t BaseType) String() string {
	if t.PkgName != "" {
		return t.PkgName + "/" + t.Name
	}
	s := t.Name
	if t.StringUpperBound > 0 {
		s += fmt.Sprintf("%s%d", StringUpperBoundToken, t.StringUpperBound)
	}
	return s
}

// Type is a BaseType plus array information.
type Type struct {
	BaseType
	IsArray      bool
	ArraySize    int // 0 means unspecified
	IsUpperBound bool
}

// ParseType parses a field type string, including an optional array suffix
// ("[]", "[N]" or "[<=N]"). Complex types may be unqualified only when
// contextPkg is given, in which case they resolve into that package.
func ParseType(typeString, contextPkg string) (Type, error) {
	var t Type

	if strings.HasSuffix(typeString, "]") {
		t.IsArray = true
		index := strings.LastIndex(typeString, "[")
		if index < 0 {
			return Type{}, fmt.Errorf(
				"the type '%s' ends with ']' but does not contain a '[': %w",
				typeString, ErrInvalidSpecification)
		}
		arraySizeString := typeString[index+1 : len(typeString)-1]
		if arraySizeString != "" {
			if strings.HasPrefix(arraySizeString, ArrayUpperBoundToken) {
				t.IsUpperBound = true
				arraySizeString = arraySizeString[len(ArrayUpperBoundToken):]
			}
			size, err := strconv.Atoi(arraySizeString)
			if err != nil || size <= 0 {
				return Type{}, fmt.Errorf(
					"the size of array type '%s' must be a valid integer value > 0 optionally prefixed with '%s' if it is only an upper bound: %w",
					typeString, ArrayUpperBoundToken, ErrInvalidSpecification)
			}
			t.ArraySize = size
		}
		typeString = typeString[:index]
	}

	// An unqualified complex type resolves against the context package but
	// always into the message namespace.
	contextNamespace := ""
	if contextPkg != "" {
		contextNamespace = "msg"
	}
	base, err := ParseBaseType(typeString, contextPkg, contextNamespace)
	if err != nil {
		return Type{}, err
	}
	t.BaseType = base
	return t, nil
}

// IsDynamicArray reports whether the type is an array without a fixed size.
func (t Type) IsDynamicArray() bool {
	return t.IsArray && (t.ArraySize == 0 || t.IsUpperBound)
}

// IsFixedSizeArray reports whether the type is an array with an exact size.
func (t Type) IsFixedSizeArray() bool {
	return t.IsArray && t.ArraySize > 0 && !t.IsUpperBound
}

// String renders the type including its array suffix.
func (t Type) String() string {
	s := t.BaseType.String()
	if t.IsArray {
		s += "["
		if t.IsUpperBound {
			s += ArrayUpperBoundToken
		}
		if t.ArraySize > 0 {
			s += strconv.Itoa(t.ArraySize)
		}
		s += "]"
	}
	return s
}
