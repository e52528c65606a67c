package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	type labels map[string]string

	ctx := Context{
		"name": "Acme",
		"zero": 0,
		"null": nil,
		"listing": map[string]any{
			"city": map[string]any{"name": "Lyon"},
			"tags": []any{"a", map[string]any{"k": "v"}},
		},
		"codes":  []string{"x", "y"},
		"labels": labels{"en": "Hello"},
		"ints":   []int{4, 5},
	}

	tests := []struct {
		name   string
		path   string
		want   any
		wantOK bool
	}{
		{"top level", "name", "Acme", true},
		{"zero value", "zero", 0, true},
		{"present null", "null", nil, true},
		{"nested", "listing.city.name", "Lyon", true},
		{"whole object", "listing.city", map[string]any{"name": "Lyon"}, true},
		{"array index", "listing.tags.0", "a", true},
		{"object in array", "listing.tags.1.k", "v", true},
		{"string slice index", "codes.1", "y", true},
		{"named map type", "labels.en", "Hello", true},
		{"typed slice", "ints.1", 5, true},
		{"missing key", "nope", nil, false},
		{"missing nested", "listing.city.zip", nil, false},
		{"through null", "null.x", nil, false},
		{"through string", "name.length", nil, false},
		{"through number", "zero.x", nil, false},
		{"index out of range", "listing.tags.5", nil, false},
		{"negative index", "codes.-1", nil, false},
		{"non-numeric index", "codes.first", nil, false},
		{"empty path", "", nil, false},
		{"empty segment", "listing..city", nil, false},
		{"trailing dot", "name.", nil, false},
		{"leading dot", ".name", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(ctx, tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_NilData(t *testing.T) {
	got, ok := Resolve(nil, "a")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestMerge(t *testing.T) {
	listing := Context{"name": "Acme", "city": "Paris"}
	location := Context{"city": "Lyon", "region": "ARA"}

	merged := Merge(listing, location)

	assert.Equal(t, Context{"name": "Acme", "city": "Lyon", "region": "ARA"}, merged)
	assert.Equal(t, "Paris", listing["city"], "inputs are not modified")
	assert.Empty(t, Merge())
}
