package template

import (
	"reflect"
	"strconv"
	"strings"
)

// Context is the JSON-shaped data supplied to a render call.
// Values are strings, numbers, booleans, nil, []any and map[string]any,
// nested arbitrarily. A Context is never modified by the engine.
type Context map[string]any

// Merge returns a new Context holding the keys of every given context.
// Later contexts win on key collisions. Nested maps are not merged.
func Merge(contexts ...Context) Context {
	size := 0
	for _, c := range contexts {
		size += len(c)
	}
	merged := make(Context, size)
	for _, c := range contexts {
		for k, v := range c {
			merged[k] = v
		}
	}
	return merged
}

// Resolve walks a dot-separated path ("a.b.c") through data.
// The second result is false when any segment is absent or when an
// intermediate value is nil or not indexable. A key that is present
// with a nil value resolves to (nil, true).
//
// Maps with string keys are indexed by key; slices and arrays by a
// non-negative decimal segment ("items.0.name").
func Resolve(data any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	current := data
	for _, part := range strings.Split(path, ".") {
		if part == "" || current == nil {
			return nil, false
		}
		next, ok := lookup(current, part)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// lookup indexes a single level of data by key.
func lookup(data any, key string) (any, bool) {
	switch v := data.(type) {
	case Context:
		val, ok := v[key]
		return val, ok
	case map[string]any:
		val, ok := v[key]
		return val, ok
	case map[string]string:
		val, ok := v[key]
		return val, ok
	case []any:
		idx, ok := index(key, len(v))
		if !ok {
			return nil, false
		}
		return v[idx], true
	case []string:
		idx, ok := index(key, len(v))
		if !ok {
			return nil, false
		}
		return v[idx], true
	case string, bool, float64, int, int64:
		return nil, false
	}

	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		val := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Slice, reflect.Array:
		idx, ok := index(key, rv.Len())
		if !ok {
			return nil, false
		}
		return rv.Index(idx).Interface(), true
	default:
		return nil, false
	}
}

func index(key string, length int) (int, bool) {
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 0 || idx >= length {
		return 0, false
	}
	return idx, true
}
