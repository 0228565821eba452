package normalize

import (
	"sort"
	"strings"

	"github.com/erjac77/f5-reconciler/pkg/convert"
)

// Value normalizes a comparable value so that semantically equal inputs
// compare equal: strings are trimmed of surrounding whitespace, sequences
// become sorted deduplicated string sets, other scalars pass through.
// Idempotent: Value(Value(v)) == Value(v).
func Value(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return strings.TrimSpace(t)
	}

	if convert.IsSlice(v) {
		items, err := convert.ToSliceOfString(v)
		if err != nil {
			return v
		}
		return StringSet(items)
	}

	return v
}

// StringSet coerces a slice to its set form: each element trimmed,
// duplicates dropped, result sorted.
func StringSet(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		seen[strings.TrimSpace(item)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for item := range seen {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// AsSet reports whether a normalized value is set-valued and returns the set.
func AsSet(v any) ([]string, bool) {
	set, ok := v.([]string)
	return set, ok
}
