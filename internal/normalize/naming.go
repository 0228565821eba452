package normalize

import "strings"

// SnakeToCamel converts a caller-convention field name to the remote schema's
// compact naming, e.g. "sub_path" -> "subPath". Names without underscores
// pass through unchanged, so the two conversions are mutually inverse on
// every well-formed field name.
func SnakeToCamel(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' && i+1 < len(name) && name[i+1] >= 'a' && name[i+1] <= 'z' {
			b.WriteByte(name[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// CamelToSnake converts a remote-convention field name back to the caller's
// naming, e.g. "subPath" -> "sub_path".
func CamelToSnake(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte('_')
			b.WriteByte(c - 'A' + 'a')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// ConvertKeys returns a copy of fields with every key run through fn.
// Values are untouched.
func ConvertKeys(fields map[string]any, fn func(string) string) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[fn(k)] = v
	}
	return out
}

// ToRemoteNaming renames all keys from the caller convention to the remote
// schema convention. Keys already in remote naming pass through unchanged.
func ToRemoteNaming(fields map[string]any) map[string]any {
	return ConvertKeys(fields, SnakeToCamel)
}

// ToCallerNaming is the inverse of ToRemoteNaming.
func ToCallerNaming(fields map[string]any) map[string]any {
	return ConvertKeys(fields, CamelToSnake)
}
