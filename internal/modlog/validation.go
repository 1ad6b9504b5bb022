// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package modlog

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Validation limits for entries.
const (
	MaxKindLength  = 120
	MaxFieldLength = 100
)

// ValidationError represents an input validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateKind checks that an action kind is syntactically valid. A valid
// kind is not required to be registered: writers may run ahead of a registry
// update, and such entries still persist and render via the fallback path.
func ValidateKind(kind string) error {
	if kind == "" {
		return &ValidationError{Field: "kind", Message: "cannot be empty"}
	}
	if !utf8.ValidString(kind) {
		return &ValidationError{Field: "kind", Message: "must be valid UTF-8"}
	}
	if len(kind) > MaxKindLength {
		return &ValidationError{Field: "kind", Message: fmt.Sprintf("exceeds maximum length of %d", MaxKindLength)}
	}
	if hasControlChars(kind) {
		return &ValidationError{Field: "kind", Message: "cannot contain control characters"}
	}
	return nil
}

// NormalizeValues validates that every value in the bag is a scalar and
// returns a copy with numeric types widened to int64/float64. A nil bag
// normalizes to an empty one.
func NormalizeValues(values Values) (Values, error) {
	out := make(Values, len(values))
	for key, val := range values {
		if key == "" {
			return nil, &ValidationError{Field: "values", Message: "field names cannot be empty"}
		}
		if len(key) > MaxFieldLength {
			return nil, &ValidationError{Field: key, Message: fmt.Sprintf("field name exceeds maximum length of %d", MaxFieldLength)}
		}
		normalized, err := normalizeScalar(key, val)
		if err != nil {
			return nil, err
		}
		out[key] = normalized
	}
	return out, nil
}

func normalizeScalar(key string, val any) (any, error) {
	switch typed := val.(type) {
	case nil:
		return nil, nil
	case string, bool, int64, float64:
		return typed, nil
	case int:
		return int64(typed), nil
	case int8:
		return int64(typed), nil
	case int16:
		return int64(typed), nil
	case int32:
		return int64(typed), nil
	case uint:
		return int64(typed), nil
	case uint8:
		return int64(typed), nil
	case uint16:
		return int64(typed), nil
	case uint32:
		return int64(typed), nil
	case float32:
		return float64(typed), nil
	default:
		return nil, &ValidationError{Field: key, Message: "must be a scalar (string, integer, boolean, or null)"}
	}
}

func hasControlChars(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
