package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes_Canonical_KeyOrderIndependent(t *testing.T) {
	// The same selection arriving with different key order must serialize
	// identically.
	var a, b Attributes
	require.NoError(t, json.Unmarshal([]byte(`{"size":"XL","color":"red","shape":"round"}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"shape":"round","color":"red","size":"XL"}`), &b))

	assert.Equal(t, a.Canonical(), b.Canonical())
	assert.Equal(t, `{"color":"red","shape":"round","size":"XL"}`, a.Canonical())
	assert.True(t, a.Equal(b))
}

func TestAttributes_Canonical_NestedMapsSorted(t *testing.T) {
	var a, b Attributes
	require.NoError(t, json.Unmarshal([]byte(`{"print":{"front":"logo","back":"text"},"size":"M"}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"size":"M","print":{"back":"text","front":"logo"}}`), &b))

	assert.Equal(t, a.Canonical(), b.Canonical())
	assert.Equal(t, `{"print":{"back":"text","front":"logo"},"size":"M"}`, a.Canonical())
}

func TestAttributes_Canonical_ArrayOrderPreserved(t *testing.T) {
	var a, b Attributes
	require.NoError(t, json.Unmarshal([]byte(`{"colors":["red","blue"]}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"colors":["blue","red"]}`), &b))

	assert.NotEqual(t, a.Canonical(), b.Canonical())
	assert.False(t, a.Equal(b))
}

func TestAttributes_Canonical_Empty(t *testing.T) {
	assert.Equal(t, "{}", Attributes{}.Canonical())
	assert.Equal(t, "{}", Attributes(nil).Canonical())
	assert.True(t, Attributes{}.Equal(nil))
}

func TestAttributes_Canonical_ScalarTypes(t *testing.T) {
	a := Attributes{"qty": float64(2), "gift": true, "note": nil}
	assert.Equal(t, `{"gift":true,"note":null,"qty":2}`, a.Canonical())
}

func TestAttributes_CanonicalRoundTrip(t *testing.T) {
	var a Attributes
	require.NoError(t, json.Unmarshal([]byte(`{"size":"L","print":{"front":"logo"},"colors":["red","blue"]}`), &a))

	parsed, err := ParseAttributes(a.Canonical())
	require.NoError(t, err)
	assert.True(t, a.Equal(parsed))
	assert.Equal(t, a.Canonical(), parsed.Canonical())
}

func TestParseAttributes(t *testing.T) {
	parsed, err := ParseAttributes("")
	require.NoError(t, err)
	assert.Equal(t, "{}", parsed.Canonical())

	_, err = ParseAttributes("{not json")
	assert.Error(t, err)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Classic Cotton Tee", "classic-cotton-tee"},
		{"Mug (325 ml)", "mug-325-ml"},
		{"  Trim Me  ", "trim-me"},
		{"UPPER case", "upper-case"},
		{"already-a-slug", "already-a-slug"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.name), "Slugify(%q)", tt.name)
	}
}
