package model

import (
	"encoding/json"
	"sort"
	"strings"
)

// Attributes holds a product's selected attributes (shape, size, material,
// colour, ...), possibly nested. Two selections are considered the same cart
// line iff their canonical serializations are byte-identical, so key ordering
// in the incoming request never matters.
type Attributes map[string]any

// Canonical returns the deterministic JSON serialization of the attribute
// selection, with object keys sorted recursively at every nesting level.
// An empty or nil selection canonicalizes to "{}".
func (a Attributes) Canonical() string {
	var b strings.Builder
	writeCanonical(&b, map[string]any(a))
	return b.String()
}

// Equal reports whether two selections are structurally equal.
func (a Attributes) Equal(other Attributes) bool {
	return a.Canonical() == other.Canonical()
}

// ParseAttributes decodes a stored canonical serialization.
func ParseAttributes(s string) (Attributes, error) {
	if s == "" {
		return Attributes{}, nil
	}
	var a Attributes
	if err := json.Unmarshal([]byte(s), &a); err != nil {
		return nil, err
	}
	return a, nil
}

func writeCanonical(b *strings.Builder, v any) {
	switch val := v.(type) {
	case Attributes:
		writeCanonical(b, map[string]any(val))
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			key, _ := json.Marshal(k)
			b.Write(key)
			b.WriteByte(':')
			writeCanonical(b, val[k])
		}
		b.WriteByte('}')
	case []any:
		// Array order is meaningful and preserved.
		b.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, item)
		}
		b.WriteByte(']')
	default:
		leaf, err := json.Marshal(val)
		if err != nil {
			b.WriteString("null")
			return
		}
		b.Write(leaf)
	}
}
