package compare

import (
	"reflect"
	"sort"
	"strconv"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// LooseEqual reports whether two scalar values are semantically equal,
// coercing across the representations a management API is liable to flip
// between: 443 vs "443", true vs "true". Maps and slices fall back to a
// structural comparison that tolerates nil-vs-empty.
func LooseEqual(expected, actual any) bool {
	if expected == nil && actual == nil {
		return true
	}
	if expected == nil || actual == nil {
		return false
	}

	expVal := derefValue(reflect.ValueOf(expected))
	actVal := derefValue(reflect.ValueOf(actual))

	if !expVal.IsValid() && !actVal.IsValid() {
		return true
	}
	if !expVal.IsValid() || !actVal.IsValid() {
		return false
	}

	if expVal.Kind() == reflect.Bool || actVal.Kind() == reflect.Bool {
		expBool, expOk := tryConvertToBool(expVal)
		actBool, actOk := tryConvertToBool(actVal)
		if expOk && actOk {
			return expBool == actBool
		}
	}

	if isNumberOrNumericString(expVal) && isNumberOrNumericString(actVal) {
		expFloat, expOk := toFloat64(expVal)
		actFloat, actOk := toFloat64(actVal)
		if expOk && actOk {
			const tolerance = 1e-9
			diff := expFloat - actFloat
			return diff < tolerance && diff > -tolerance
		}
	}

	if expVal.Kind() == reflect.String && actVal.Kind() == reflect.String {
		return expVal.String() == actVal.String()
	}

	return cmp.Equal(expected, actual, cmpopts.EquateEmpty())
}

func tryConvertToBool(val reflect.Value) (bool, bool) {
	if val.Kind() == reflect.Bool {
		return val.Bool(), true
	}
	if val.Kind() == reflect.String {
		b, err := strconv.ParseBool(val.String())
		if err == nil {
			return b, true
		}
	}
	return false, false
}

// derefValue unwraps pointers and interfaces until a concrete value remains.
func derefValue(v reflect.Value) reflect.Value {
	for (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func isNumber(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func isNumberOrNumericString(v reflect.Value) bool {
	if isNumber(v) {
		return true
	}
	if v.Kind() == reflect.String {
		_, err := strconv.ParseFloat(v.String(), 64)
		return err == nil
	}
	return false
}

func toFloat64(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.String:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}

// Union returns cur ∪ add as a sorted, deduplicated slice.
func Union(cur, add []string) []string {
	seen := make(map[string]struct{}, len(cur)+len(add))
	for _, s := range cur {
		seen[s] = struct{}{}
	}
	for _, s := range add {
		seen[s] = struct{}{}
	}
	return sortedKeys(seen)
}

// Difference returns cur − remove as a sorted, deduplicated slice.
func Difference(cur, remove []string) []string {
	drop := make(map[string]struct{}, len(remove))
	for _, s := range remove {
		drop[s] = struct{}{}
	}
	keep := make(map[string]struct{}, len(cur))
	for _, s := range cur {
		if _, found := drop[s]; !found {
			keep[s] = struct{}{}
		}
	}
	return sortedKeys(keep)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
