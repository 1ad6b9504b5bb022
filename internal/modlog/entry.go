// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

// Package modlog implements the moderation action log: an append-only ledger
// of administrative events, each tagged with an action kind and a sparse bag
// of scalar values, rendered on demand into text or role-gated JSON.
package modlog

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Entry is a single moderation action record. Entries are write-once:
// nothing in the public contract mutates an entry after Append.
type Entry struct {
	ID        ulid.ULID
	Kind      string
	CreatorID int64
	CreatedAt time.Time
	Values    Values
}

// NewEntry builds a validated entry with a fresh ID and timestamp.
// The values bag is normalized and copied, so later mutation of the
// caller's map does not leak into the entry.
func NewEntry(kind string, creatorID int64, values Values) (*Entry, error) {
	if err := ValidateKind(kind); err != nil {
		return nil, err
	}
	normalized, err := NormalizeValues(values)
	if err != nil {
		return nil, err
	}
	return &Entry{
		ID:        newEntryID(),
		Kind:      kind,
		CreatorID: creatorID,
		CreatedAt: time.Now().UTC(),
		Values:    normalized,
	}, nil
}

// Entry IDs must be monotonically increasing so that the id tiebreak in
// search ordering reflects insertion order within a single process.
var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newEntryID() ulid.ULID {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy)
}

// Values is the flat, sparse attribute bag attached to an entry. Keys come
// from a shared field vocabulary; which keys are populated depends on the
// entry's kind. Values are scalars: string, int64, float64, bool, or nil.
type Values map[string]any

// Has reports whether key is present in the bag, even with a nil value.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// Str returns the string form of the value for key, or "" if absent or nil.
// Integral numbers render without a decimal point.
func (v Values) Str(key string) string {
	val, ok := v[key]
	if !ok || val == nil {
		return ""
	}
	return scalarString(val)
}

// Int returns the value for key as int64. The second return is false when
// the key is absent or the value is not an integral number.
func (v Values) Int(key string) (int64, bool) {
	switch val := v[key].(type) {
	case int64:
		return val, true
	case float64:
		if val == float64(int64(val)) {
			return int64(val), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Bool returns the value for key as a bool, false if absent or non-bool.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// Clone returns a shallow copy. Scalar values need no deep copy.
func (v Values) Clone() Values {
	if v == nil {
		return Values{}
	}
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// String renders the bag with sorted keys, used by the elevated-viewer
// fallback for unregistered kinds. Sorting keeps repeated renders of the
// same entry byte-identical.
func (v Values) String() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(k)
		buf.WriteString(": ")
		if v[k] == nil {
			buf.WriteString("nil")
		} else {
			buf.WriteString(scalarString(v[k]))
		}
	}
	buf.WriteByte('}')
	return buf.String()
}

// DecodeValues parses a JSON object into a Values bag. Numbers decode to
// int64 when integral, float64 otherwise, so values round-trip through the
// database without picking up spurious decimal points.
func DecodeValues(data []byte) (Values, error) {
	if len(data) == 0 {
		return Values{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}

	out := make(Values, len(raw))
	for k, val := range raw {
		switch typed := val.(type) {
		case json.Number:
			if i, err := typed.Int64(); err == nil {
				out[k] = i
				continue
			}
			f, err := typed.Float64()
			if err != nil {
				return nil, fmt.Errorf("decode values: field %q: %w", k, err)
			}
			out[k] = f
		case string, bool, nil:
			out[k] = typed
		default:
			// Persisted before scalar enforcement existed; surface as-is
			// rather than failing the whole read.
			out[k] = fmt.Sprintf("%v", typed)
		}
	}
	return out, nil
}

func scalarString(val any) string {
	switch typed := val.(type) {
	case string:
		return typed
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		if typed == float64(int64(typed)) {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}
