package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseValueString converts a value string into the Go value matching the
// given field type. Scalars come back as bool, int64, uint64, float64 or
// string; arrays come back as []interface{}.
func ParseValueString(t Type, valueString string) (interface{}, error) {
	if t.IsPrimitive() && !t.IsArray {
		return ParsePrimitiveValueString(t, valueString)
	}

	if t.IsPrimitive() && t.IsArray {
		if !strings.HasPrefix(valueString, "[") || !strings.HasSuffix(valueString, "]") {
			return nil, &InvalidValueError{
				Type:   t.String(),
				Value:  valueString,
				Reason: "array value must start with '[' and end with ']'",
			}
		}
		elementsString := valueString[1 : len(valueString)-1]

		var valueStrings []string
		var err error
		if t.Name == "string" || t.Name == "wstring" {
			// the comma can be part of a quoted string and is then not a
			// separator of array elements
			valueStrings, err = parseStringArrayValueString(elementsString)
			if err != nil {
				return nil, &InvalidValueError{Type: t.String(), Value: valueString, Reason: err.Error()}
			}
		} else if elementsString != "" {
			valueStrings = strings.Split(elementsString, ",")
		}

		if t.ArraySize > 0 {
			if !t.IsUpperBound && len(valueStrings) != t.ArraySize {
				return nil, &InvalidValueError{
					Type:  t.String(),
					Value: valueString,
					Reason: fmt.Sprintf("array must have exactly %d elements, not %d",
						t.ArraySize, len(valueStrings)),
				}
			}
			if t.IsUpperBound && len(valueStrings) > t.ArraySize {
				return nil, &InvalidValueError{
					Type:  t.String(),
					Value: valueString,
					Reason: fmt.Sprintf("array must have not more than %d elements, not %d",
						t.ArraySize, len(valueStrings)),
				}
			}
		}

		elementType := Type{BaseType: t.BaseType}
		values := make([]interface{}, 0, len(valueStrings))
		for index, elementString := range valueStrings {
			value, err := ParsePrimitiveValueString(elementType, strings.TrimSpace(elementString))
			if err != nil {
				return nil, &InvalidValueError{
					Type:   t.String(),
					Value:  valueString,
					Reason: fmt.Sprintf("element %d with %v", index, err),
				}
			}
			values = append(values, value)
		}
		return values, nil
	}

	return nil, fmt.Errorf("parsing string values into type '%s' is not supported: %w",
		t, ErrInvalidSpecification)
}

// parseStringArrayValueString splits the inner part of a string array value
// into its elements. Elements may be quoted with single or double quotes,
// in which case embedded commas and escaped quotes are preserved.
func parseStringArrayValueString(elementsString string) ([]string, error) {
	var valueStrings []string
	for len(elementsString) > 0 {
		elementsString = strings.TrimLeft(elementsString, " ")
		if len(elementsString) == 0 {
			return valueStrings, nil
		}
		if elementsString[0] == ',' {
			return nil, fmt.Errorf("unexpected ',' at beginning of [%s]", elementsString)
		}

		quoted := false
		for _, quote := range []byte{'"', '\''} {
			if elementsString[0] != quote {
				continue
			}
			quoted = true
			endQuoteIdx := findMatchingEndQuote(elementsString, quote)
			if endQuoteIdx == -1 {
				return nil, fmt.Errorf("string [%s] incorrectly quoted", elementsString)
			}
			valueString := elementsString[1 : endQuoteIdx+1]
			valueString = strings.ReplaceAll(valueString, `\`+string(quote), string(quote))
			valueStrings = append(valueStrings, valueString)
			elementsString = elementsString[endQuoteIdx+2:]
			break
		}
		if !quoted {
			nextCommaIdx := strings.IndexByte(elementsString, ',')
			if nextCommaIdx == -1 {
				valueStrings = append(valueStrings, elementsString)
				elementsString = ""
			} else {
				valueStrings = append(valueStrings, elementsString[:nextCommaIdx])
				elementsString = elementsString[nextCommaIdx:]
			}
		}

		elementsString = strings.TrimLeft(elementsString, " ")
		if len(elementsString) > 0 && elementsString[0] == ',' {
			elementsString = elementsString[1:]
		}
	}
	return valueStrings, nil
}

// findMatchingEndQuote walks a string starting with a quote character and
// returns the index (relative to the character after the opening quote) of
// the next unescaped matching quote, or -1 if there is none.
func findMatchingEndQuote(s string, quote byte) int {
	finalQuoteIdx := 0
	for len(s) > 0 {
		endingQuoteIdx := strings.IndexByte(s[1:], quote)
		if endingQuoteIdx == -1 {
			return -1
		}
		if endingQuoteIdx+2 <= len(s) && s[endingQuoteIdx:endingQuoteIdx+2] == `\`+string(quote) {
			s = s[endingQuoteIdx+2:]
			finalQuoteIdx += endingQuoteIdx + 2
		} else {
			return finalQuoteIdx + endingQuoteIdx
		}
	}
	return -1
}

// ParsePrimitiveValueString converts a value string into the Go value
// matching a non-array primitive type.
func ParsePrimitiveValueString(t Type, valueString string) (interface{}, error) {
	if !t.IsPrimitive() || t.IsArray {
		return nil, fmt.Errorf("the passed type must be a non-array primitive type: %w",
			ErrInvalidSpecification)
	}

	switch t.Name {
	case "bool":
		switch strings.ToLower(valueString) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return nil, &InvalidValueError{
			Type:   t.Name,
			Value:  valueString,
			Reason: "must be either 'true' / '1' or 'false' / '0'",
		}

	case "byte":
		// same as uint8
		value, err := strconv.ParseInt(valueString, 10, 64)
		if err != nil || value < 0 || value > 255 {
			return nil, &InvalidValueError{
				Type:   t.Name,
				Value:  valueString,
				Reason: "must be a valid integer value >= 0 and <= 255",
			}
		}
		return value, nil

	case "char":
		// same as int8
		value, err := strconv.ParseInt(valueString, 10, 64)
		if err != nil || value < -128 || value > 127 {
			return nil, &InvalidValueError{
				Type:   t.Name,
				Value:  valueString,
				Reason: "must be a valid integer value >= -128 and <= 127",
			}
		}
		return value, nil

	case "float32", "float64":
		value, err := strconv.ParseFloat(valueString, 64)
		if err != nil {
			return nil, &InvalidValueError{
				Type:   t.Name,
				Value:  valueString,
				Reason: "must be a floating point number using '.' as the separator",
			}
		}
		return value, nil

	case "int8", "int16", "int32", "int64":
		bits, _ := strconv.Atoi(t.Name[3:])
		value, err := strconv.ParseInt(valueString, 10, bits)
		if err != nil {
			lowerBound := int64(-1) << (bits - 1)
			upperBound := int64(1)<<(bits-1) - 1
			return nil, &InvalidValueError{
				Type:   t.Name,
				Value:  valueString,
				Reason: fmt.Sprintf("must be a valid integer value >= %d and <= %d", lowerBound, upperBound),
			}
		}
		return value, nil

	case "uint8", "uint16", "uint32", "uint64":
		bits, _ := strconv.Atoi(t.Name[4:])
		value, err := strconv.ParseUint(valueString, 10, bits)
		if err != nil {
			upperBound := uint64(1)<<bits - 1
			if bits == 64 {
				upperBound = ^uint64(0)
			}
			return nil, &InvalidValueError{
				Type:   t.Name,
				Value:  valueString,
				Reason: fmt.Sprintf("must be a valid integer value >= 0 and <= %d", upperBound),
			}
		}
		return value, nil

	case "string", "wstring":
		// remove outer quotes to allow leading / trailing spaces in the string
		for _, quote := range []byte{'"', '\''} {
			if len(valueString) >= 2 && valueString[0] == quote && valueString[len(valueString)-1] == quote {
				valueString = valueString[1 : len(valueString)-1]
				if hasUnescapedQuote(valueString, quote) {
					return nil, &InvalidValueError{
						Type:   t.Name,
						Value:  valueString,
						Reason: "string inner quotes not properly escaped",
					}
				}
				valueString = strings.ReplaceAll(valueString, `\`+string(quote), string(quote))
				break
			}
		}

		if t.StringUpperBound > 0 && len(valueString) > t.StringUpperBound {
			return nil, &InvalidValueError{
				Type:  t.BaseType.String(),
				Value: valueString,
				Reason: fmt.Sprintf("string must not exceed the maximum length of %d characters",
					t.StringUpperBound),
			}
		}
		return valueString, nil
	}

	return nil, fmt.Errorf("unknown primitive type '%s': %w", t.Name, ErrInvalidSpecification)
}

// hasUnescapedQuote reports whether s contains quote without a preceding
// backslash.
func hasUnescapedQuote(s string, quote byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == quote && (i == 0 || s[i-1] != '\\') {
			return true
		}
	}
	return false
}
