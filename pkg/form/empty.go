package form

import (
	"reflect"
	"strings"
)

// IsEmpty reports whether value counts as "no input": nil, a nil pointer or
// interface, a blank string, or an empty slice, map, array or channel.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return true
		}
		return IsEmpty(v.Elem().Interface())
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return v.Len() == 0
	default:
		return false
	}
}
