package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ParseMessageFile parses a .msg file and returns its specification. The
// message name is derived from the file name.
func ParseMessageFile(pkgName, interfaceFilename string) (*MessageSpec, error) {
	basename := filepath.Base(interfaceFilename)
	msgName := strings.TrimSuffix(basename, filepath.Ext(basename))
	content, err := os.ReadFile(interfaceFilename)
	if err != nil {
		return nil, err
	}
	spec, err := ParseMessageString(pkgName, "msg", msgName, string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", interfaceFilename, err)
	}
	return spec, nil
}

// ParseMessageString parses the content of a message definition. Each
// non-empty line declares either a field ("type name" with an optional
// default value) or a constant ("type NAME=value"). Text following the
// comment delimiter is ignored.
func ParseMessageString(pkgName, namespace, msgName, messageString string) (*MessageSpec, error) {
	var fields []Field
	var constants []Constant

	for _, line := range strings.Split(messageString, "\n") {
		line = strings.TrimRight(line, "\r")
		if index := strings.Index(line, CommentDelimiter); index >= 0 {
			line = line[:index]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		typeString, rest, found := strings.Cut(line, " ")
		if !found || strings.TrimSpace(rest) == "" {
			return nil, &InvalidFieldDefinitionError{
				Line:   line,
				Reason: "expected a type followed by a name",
			}
		}
		rest = strings.TrimLeft(rest, " ")

		if index := strings.Index(rest, ConstantSeparator); index >= 0 && IsValidConstantName(strings.TrimRight(rest[:index], " ")) {
			name := strings.TrimRight(rest[:index], " ")
			valueString := strings.TrimLeft(rest[index+len(ConstantSeparator):], " ")
			constant, err := NewConstant(typeString, name, valueString)
			if err != nil {
				return nil, err
			}
			constants = append(constants, constant)
			continue
		}

		fieldType, err := ParseType(typeString, pkgName)
		if err != nil {
			return nil, err
		}
		name, defaultValueString, hasDefault := strings.Cut(rest, " ")
		defaultValueString = strings.TrimLeft(defaultValueString, " ")
		if hasDefault && defaultValueString != "" {
			field, err := NewFieldWithDefault(fieldType, name, defaultValueString)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		} else {
			field, err := NewField(fieldType, name)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
	}

	return NewMessageSpec(pkgName, namespace, msgName, fields, constants)
}

// ParseServiceFile parses a .srv file and returns its specification. The
// service name is derived from the file name.
func ParseServiceFile(pkgName, interfaceFilename string) (*ServiceSpec, error) {
	basename := filepath.Base(interfaceFilename)
	srvName := strings.TrimSuffix(basename, filepath.Ext(basename))
	content, err := os.ReadFile(interfaceFilename)
	if err != nil {
		return nil, err
	}
	spec, err := ParseServiceString(pkgName, srvName, string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", interfaceFilename, err)
	}
	return spec, nil
}

// ParseServiceString parses the content of a service definition: a request
// message and a response message separated by a line containing only the
// request/response separator.
func ParseServiceString(pkgName, srvName, serviceString string) (*ServiceSpec, error) {
	var requestLines, responseLines []string
	separators := 0
	for _, line := range strings.Split(serviceString, "\n") {
		if strings.TrimSpace(strings.TrimRight(line, "\r")) == ServiceRequestResponseSeparator {
			separators++
			continue
		}
		if separators == 0 {
			requestLines = append(requestLines, line)
		} else {
			responseLines = append(responseLines, line)
		}
	}
	if separators != 1 {
		return nil, fmt.Errorf(
			"service definition must contain exactly one '%s' line, found %d: %w",
			ServiceRequestResponseSeparator, separators, ErrInvalidServiceSpecification)
	}

	request, err := ParseMessageString(
		pkgName, "srv", srvName+ServiceRequestMessageSuffix, strings.Join(requestLines, "\n"))
	if err != nil {
		return nil, err
	}
	response, err := ParseMessageString(
		pkgName, "srv", srvName+ServiceResponseMessageSuffix, strings.Join(responseLines, "\n"))
	if err != nil {
		return nil, err
	}

	return &ServiceSpec{
		PkgName:  pkgName,
		SrvName:  srvName,
		Request:  request,
		Response: response,
	}, nil
}
