// Package parser implements the interface-definition model for .msg and
// .srv files: type descriptions, fields, constants, message and service
// specifications, and the value grammar used for constants and field
// defaults.
package parser

import "regexp"

// Token and separator constants of the interface-definition grammar.
const (
	NamespaceSeparator              = "::"
	CommentDelimiter                = "#"
	ConstantSeparator               = "="
	ArrayUpperBoundToken            = "<="
	StringUpperBoundToken           = "<="
	ServiceRequestResponseSeparator = "---"
	ServiceRequestMessageSuffix     = "_Request"
	ServiceResponseMessageSuffix    = "_Response"
)

// PrimitiveTypes lists the built-in field types.
var PrimitiveTypes = []string{
	"bool",
	"byte",
	"char",
	"float32",
	"float64",
	"int8",
	"uint8",
	"int16",
	"uint16",
	"int32",
	"uint32",
	"int64",
	"uint64",
	"string",
	"wstring",
}

var primitiveTypeSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(PrimitiveTypes))
	for _, t := range PrimitiveTypes {
		set[t] = struct{}{}
	}
	return set
}()

// IsPrimitiveType reports whether name is one of the built-in field types.
func IsPrimitiveType(name string) bool {
	_, ok := primitiveTypeSet[name]
	return ok
}

var (
	validPackageNamePattern  = regexp.MustCompile(`^[a-z]([a-z0-9_]?[a-z0-9]+)*$`)
	validFieldNamePattern    = regexp.MustCompile(`^[a-z]([a-z0-9_]?[a-z0-9]+)*$`)
	validMessageNamePattern  = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	validConstantNamePattern = regexp.MustCompile(`^[A-Z]([A-Z0-9_]?[A-Z0-9]+)*$`)
)

// IsValidPackageName reports whether name is a valid package name.
func IsValidPackageName(name string) bool {
	return validPackageNamePattern.MatchString(name)
}

// IsValidFieldName reports whether name is a valid field name.
func IsValidFieldName(name string) bool {
	return validFieldNamePattern.MatchString(name)
}

// IsValidMessageName reports whether name is a valid message name. The
// implicit sample prefix and the service request/response suffixes are
// stripped before matching, so the derived message names of a service are
// valid whenever the service name itself is.
func IsValidMessageName(name string) bool {
	const samplePrefix = "Sample_"
	if len(name) > len(samplePrefix) && name[:len(samplePrefix)] == samplePrefix {
		name = name[len(samplePrefix):]
	}
	for _, suffix := range []string{ServiceRequestMessageSuffix, ServiceResponseMessageSuffix} {
		if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
			name = name[:len(name)-len(suffix)]
			break
		}
	}
	return validMessageNamePattern.MatchString(name)
}

// IsValidConstantName reports whether name is a valid constant name.
func IsValidConstantName(name string) bool {
	return validConstantNamePattern.MatchString(name)
}
