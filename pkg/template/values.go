package template

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// formatValue converts a resolved value to its textual form.
// Arrays are comma-joined and objects render as "[object Object]";
// callers that interpolate whole lists rely on this.
func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = formatElement(item)
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(v, ",")
	case map[string]any, Context:
		return "[object Object]"
	}

	if f, ok := toNumber(val); ok {
		return formatNumber(f)
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatElement(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	case reflect.Map, reflect.Struct:
		return "[object Object]"
	case reflect.String:
		return rv.String()
	default:
		return "[object Object]"
	}
}

// formatElement formats an array member; null members render empty.
func formatElement(val any) string {
	if val == nil {
		return ""
	}
	return formatValue(val)
}

// formatNumber renders f the way JavaScript's Number#toString does:
// plain decimals for magnitudes in [1e-6, 1e21), shortest exponent form
// ("1e+21", "1.5e-7") outside that range.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// Go pads the exponent to two digits ("1e-07").
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	digits := strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + exp[:1] + digits
}

// toNumber reports whether val is a Go numeric value and returns it as float64.
func toNumber(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// isPrimitive reports whether val is a string, number or boolean.
func isPrimitive(val any) bool {
	switch val.(type) {
	case string, bool:
		return true
	}
	_, ok := toNumber(val)
	return ok
}

// asList returns the members of val when it is an array.
func asList(val any) ([]any, bool) {
	switch v := val.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case nil, string:
		return nil, false
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// truthy applies JavaScript truthiness: absent, nil, false, 0, NaN and ""
// are false; everything else, empty arrays and objects included, is true.
func truthy(val any, ok bool) bool {
	if !ok || val == nil {
		return false
	}
	switch v := val.(type) {
	case bool:
		return v
	case string:
		return v != ""
	}
	if f, isNum := toNumber(val); isNum {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// strictEqual compares two primitives without type coercion. Numbers of
// different Go types compare by value since decoded documents mix int
// and float64. Arrays and objects are never equal.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := toNumber(a); ok {
		fb, ok := toNumber(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return false
}
