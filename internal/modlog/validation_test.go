// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package modlog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardkit/modlog/internal/modlog"
)

func TestValidateKind(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		wantErr string
	}{
		{name: "valid kind", kind: "ban_create"},
		{name: "unregistered but valid", kind: "totally_new_kind"},
		{name: "max length is allowed", kind: strings.Repeat("a", modlog.MaxKindLength)},
		{name: "empty", kind: "", wantErr: "cannot be empty"},
		{name: "too long", kind: strings.Repeat("a", modlog.MaxKindLength+1), wantErr: "exceeds maximum length"},
		{name: "invalid UTF-8", kind: "bad\xff", wantErr: "valid UTF-8"},
		{name: "control characters", kind: "ban\ncreate", wantErr: "control characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := modlog.ValidateKind(tt.kind)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizeValues(t *testing.T) {
	t.Run("widens integer types", func(t *testing.T) {
		got, err := modlog.NormalizeValues(modlog.Values{
			"a": 1,
			"b": int32(2),
			"c": uint16(3),
			"d": float32(1.5),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), got["a"])
		assert.Equal(t, int64(2), got["b"])
		assert.Equal(t, int64(3), got["c"])
		assert.InEpsilon(t, 1.5, got["d"], 1e-9)
	})

	t.Run("preserves nil values", func(t *testing.T) {
		got, err := modlog.NormalizeValues(modlog.Values{"old_level": nil})
		require.NoError(t, err)
		assert.True(t, got.Has("old_level"))
		assert.Nil(t, got["old_level"])
	})

	t.Run("nil bag normalizes to empty", func(t *testing.T) {
		got, err := modlog.NormalizeValues(nil)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("rejects nested structures", func(t *testing.T) {
		for name, val := range map[string]any{
			"slice":  []int{1},
			"map":    map[string]string{"x": "y"},
			"struct": struct{ X int }{1},
		} {
			_, err := modlog.NormalizeValues(modlog.Values{"field": val})
			var verr *modlog.ValidationError
			require.ErrorAs(t, err, &verr, "case %s", name)
			assert.Equal(t, "field", verr.Field)
			assert.Contains(t, verr.Message, "scalar")
		}
	})

	t.Run("rejects empty field name", func(t *testing.T) {
		_, err := modlog.NormalizeValues(modlog.Values{"": "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("rejects oversized field name", func(t *testing.T) {
		_, err := modlog.NormalizeValues(modlog.Values{strings.Repeat("k", modlog.MaxFieldLength+1): "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds maximum length")
	})
}

func TestValidationError_Error(t *testing.T) {
	err := &modlog.ValidationError{Field: "kind", Message: "cannot be empty"}
	assert.Equal(t, "kind: cannot be empty", err.Error())
}
