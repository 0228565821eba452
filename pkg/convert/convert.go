package convert

import (
	"fmt"
	"reflect"
)

var (
	errNotMap         = fmt.Errorf("input data is not a map")
	errNotStringValue = fmt.Errorf("map value is not a string")
	errNotSlice       = fmt.Errorf("input data is not a slice")
)

// ToStringMap converts map[string]any or map[string]string to
// map[string]string. Returns a nil map for nil input.
func ToStringMap(data any) (map[string]string, error) {
	if data == nil {
		return nil, nil
	}
	if m, ok := data.(map[string]string); ok {
		return m, nil
	}
	if mAny, ok := data.(map[string]any); ok {
		result := make(map[string]string, len(mAny))
		for k, v := range mAny {
			vStr, okStr := v.(string)
			if !okStr {
				return nil, fmt.Errorf("key '%s': %w (type %T)", k, errNotStringValue, v)
			}
			result[k] = vStr
		}
		return result, nil
	}
	return nil, fmt.Errorf("%w: input type %T", errNotMap, data)
}

// ToSliceOfString converts slice values of any element type to []string,
// rendering non-string elements with fmt. Returns an empty slice for nil.
func ToSliceOfString(data any) ([]string, error) {
	if data == nil {
		return []string{}, nil
	}

	if slice, ok := data.([]string); ok {
		return slice, nil
	}

	val := reflect.ValueOf(data)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: input type %T", errNotSlice, data)
	}

	result := make([]string, 0, val.Len())
	for i := 0; i < val.Len(); i++ {
		result = append(result, fmt.Sprintf("%v", val.Index(i).Interface()))
	}
	return result, nil
}

// IsSlice reports whether data is a slice or array of any element type.
// Strings are not slices here.
func IsSlice(data any) bool {
	if data == nil {
		return false
	}
	switch reflect.ValueOf(data).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}
