// ABOUTME: Recursive structural validation of decoded JSON against a Shape
// ABOUTME: Failures carry the offending path and one of three distinct kinds
package schema

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a structural failure
type ErrorKind string

const (
	MissingKey ErrorKind = "missing_key"
	WrongType  ErrorKind = "wrong_type"
	EmptyValue ErrorKind = "empty_value"
)

// ValidationError reports the first structural problem found
type ValidationError struct {
	Path   string    `json:"path"`
	Kind   ErrorKind `json:"kind"`
	Detail string    `json:"detail,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("page JSON %s at %s: %s", e.Kind, e.Path, e.Detail)
	}
	return fmt.Sprintf("page JSON %s at %s", e.Kind, e.Path)
}

// Validate checks value, as produced by encoding/json, against shape.
// Fields are checked in declaration order and list elements by index, so
// the reported failure is deterministic.
func Validate(shape Shape, value any) error {
	if verr := validate(shape, value, "$", false); verr != nil {
		return verr
	}
	return nil
}

func validate(shape Shape, value any, path string, optional bool) *ValidationError {
	switch shape.Kind {
	case KindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return wrongType(path, "object", value)
		}
		for _, field := range shape.Fields {
			child := path + "." + field.Name
			v, present := obj[field.Name]
			if !present || v == nil {
				if field.Optional {
					continue
				}
				return &ValidationError{Path: child, Kind: MissingKey}
			}
			if err := validate(field.Shape, v, child, field.Optional); err != nil {
				return err
			}
		}
		return nil

	case KindList:
		list, ok := value.([]any)
		if !ok {
			return wrongType(path, "list", value)
		}
		if len(list) == 0 {
			if optional {
				return nil
			}
			return &ValidationError{Path: path, Kind: EmptyValue, Detail: "list has no elements"}
		}
		for i, elem := range list {
			if err := validate(*shape.Elem, elem, fmt.Sprintf("%s[%d]", path, i), false); err != nil {
				return err
			}
		}
		return nil

	default:
		switch v := value.(type) {
		case map[string]any, []any:
			return wrongType(path, "scalar", value)
		case nil:
			return &ValidationError{Path: path, Kind: EmptyValue}
		case string:
			if strings.TrimSpace(v) == "" && !optional {
				return &ValidationError{Path: path, Kind: EmptyValue}
			}
		}
		return nil
	}
}

func wrongType(path, want string, got any) *ValidationError {
	return &ValidationError{Path: path, Kind: WrongType, Detail: fmt.Sprintf("want %s, got %s", want, typeName(got))}
}

func typeName(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
