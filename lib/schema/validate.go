// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"reflect"
)

// ValidationError reports one invalid settings value. Field is a
// dot-path into the settings object ("host", "volumes.0.hostPath").
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks decoded settings values against the schema and
// returns every violation found. An empty slice means the settings are
// valid. Fields hidden by a visibleWhen condition are skipped.
func Validate(s Schema, settings map[string]any) []ValidationError {
	var errs []ValidationError
	for _, group := range s.Groups {
		for _, field := range group.Fields {
			validateField(field, settings, "", &errs)
		}
	}
	return errs
}

func validateField(field Field, parent map[string]any, prefix string, errs *[]ValidationError) {
	path := prefix + field.Key

	if cond := field.VisibleWhen; cond != nil {
		if !valueEqual(parent[cond.Field], cond.Equals) {
			return
		}
	}

	value, present := parent[field.Key]

	if field.Required {
		if !present || value == nil {
			*errs = append(*errs, ValidationError{
				Field:   path,
				Message: fmt.Sprintf("%s is required", field.Label),
			})
			return
		}
		if s, ok := value.(string); ok && s == "" {
			*errs = append(*errs, ValidationError{
				Field:   path,
				Message: fmt.Sprintf("%s must not be empty", field.Label),
			})
			return
		}
	}

	if present && value != nil {
		validateValue(path, field.Label, field.Type, value, errs)
	}
}

func validateValue(path, label string, ft FieldType, value any, errs *[]ValidationError) {
	fail := func(format string, args ...any) {
		*errs = append(*errs, ValidationError{
			Field:   path,
			Message: fmt.Sprintf(format, args...),
		})
	}

	switch ft.Type {
	case TypeText, TypePassword, TypeFilePath:
		if _, ok := value.(string); !ok {
			fail("%s must be a string", label)
		}

	case TypeNumber:
		n, ok := asFloat(value)
		if !ok {
			fail("%s must be a number", label)
			return
		}
		if ft.Min != nil && n < *ft.Min {
			fail("%s must be at least %v", label, *ft.Min)
		}
		if ft.Max != nil && n > *ft.Max {
			fail("%s must be at most %v", label, *ft.Max)
		}

	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			fail("%s must be a boolean", label)
		}

	case TypeSelect:
		s, ok := value.(string)
		if !ok {
			fail("%s must be a string", label)
			return
		}
		for _, option := range ft.Options {
			if option.Value == s {
				return
			}
		}
		fail("%s must be one of the available options", label)

	case TypePort:
		n, ok := asFloat(value)
		if !ok {
			fail("%s must be a number", label)
			return
		}
		if n < 1 || n > 65535 || n != float64(int64(n)) {
			fail("%s must be between 1 and 65535", label)
		}

	case TypeKeyValueList:
		items, ok := value.([]any)
		if !ok {
			fail("%s must be an array", label)
			return
		}
		for i, item := range items {
			pair, ok := item.(map[string]any)
			if !ok {
				fail("%s entries must be objects", label)
				continue
			}
			if _, ok := pair["key"].(string); !ok {
				*errs = append(*errs, ValidationError{
					Field:   fmt.Sprintf("%s.%d.key", path, i),
					Message: "key must be a non-null string",
				})
			}
			if _, ok := pair["value"].(string); !ok {
				*errs = append(*errs, ValidationError{
					Field:   fmt.Sprintf("%s.%d.value", path, i),
					Message: "value must be a non-null string",
				})
			}
		}

	case TypeObjectList:
		items, ok := value.([]any)
		if !ok {
			fail("%s must be an array", label)
			return
		}
		for i, item := range items {
			object, ok := item.(map[string]any)
			if !ok {
				fail("%s entries must be objects", label)
				continue
			}
			for _, sub := range ft.Fields {
				validateField(sub, object, fmt.Sprintf("%s.%d.", path, i), errs)
			}
		}
	}
}

// asFloat widens any numeric value to float64. JSON decoding yields
// float64, but callers constructing settings in code may pass ints.
func asFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// valueEqual compares condition values, treating all numeric types as
// equal when they widen to the same float64.
func valueEqual(a, b any) bool {
	if fa, ok := asFloat(a); ok {
		fb, ok := asFloat(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}
