package template

import "reflect"

// walkTree copies a JSON-shaped tree, passing every string leaf through
// leaf. Maps with string keys, slices and arrays are copied level by
// level and keep their Go type. Anything else is returned as is.
func walkTree(data any, leaf func(string) string) any {
	switch v := data.(type) {
	case nil:
		return nil
	case string:
		return leaf(v)
	case Context:
		result := make(Context, len(v))
		for key, val := range v {
			result[key] = walkTree(val, leaf)
		}
		return result
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, val := range v {
			result[key] = walkTree(val, leaf)
		}
		return result
	case map[string]string:
		result := make(map[string]string, len(v))
		for key, val := range v {
			result[key] = leaf(val)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = walkTree(val, leaf)
		}
		return result
	case []string:
		result := make([]string, len(v))
		for i, val := range v {
			result[i] = leaf(val)
		}
		return result
	case bool, float64, int, int64:
		return data
	}
	return walkReflect(reflect.ValueOf(data), leaf).Interface()
}

func walkReflect(rv reflect.Value, leaf func(string) string) reflect.Value {
	switch rv.Kind() {
	case reflect.String:
		return reflect.ValueOf(leaf(rv.String())).Convert(rv.Type())
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return rv
		}
		result := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			result.SetMapIndex(iter.Key(), walkElem(iter.Value(), rv.Type().Elem(), leaf))
		}
		return result
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		result := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			result.Index(i).Set(walkElem(rv.Index(i), rv.Type().Elem(), leaf))
		}
		return result
	case reflect.Array:
		result := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			result.Index(i).Set(walkElem(rv.Index(i), rv.Type().Elem(), leaf))
		}
		return result
	default:
		return rv
	}
}

// walkElem walks one container element. Interface elements are walked
// through their dynamic value; a nil interface stays zero.
func walkElem(v reflect.Value, elem reflect.Type, leaf func(string) string) reflect.Value {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Zero(elem)
		}
		v = v.Elem()
	}
	return walkReflect(v, leaf)
}

// cloneTree returns a deep copy of a JSON-shaped tree.
func cloneTree(data any) any {
	return walkTree(data, func(s string) string { return s })
}
