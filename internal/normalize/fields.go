package normalize

import "github.com/erjac77/f5-reconciler/internal/core/domain"

// TranslateConflicts remaps caller keys that collide with reserved control
// fields (e.g. a resource attribute literally named "state") to their
// intended remote field names. The table maps conflicting caller key ->
// intended key; it is consulted once and discarded.
func TranslateConflicts(fields map[string]any, table map[string]string) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	for from, to := range table {
		if v, found := out[from]; found {
			out[to] = v
			delete(out, from)
		}
	}
	return out
}

// StripReserved drops the control, connection, and identity keys from a
// caller parameter set. The shim consumes those itself; identity fields are
// re-injected by the resource binding from the resolved ResourceIdentity.
func StripReserved(fields map[string]any) map[string]any {
	reserved := make(map[string]struct{})
	for _, k := range domain.ReservedParamKeys() {
		reserved[k] = struct{}{}
	}
	reserved[domain.KeyName] = struct{}{}
	reserved[domain.KeyPartition] = struct{}{}
	reserved[domain.KeySubPath] = struct{}{}

	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, found := reserved[k]; found {
			continue
		}
		out[k] = v
	}
	return out
}

// Fields runs the full caller-parameter pipeline: strip reserved keys, apply
// the conflict-translation table, then convert the remaining keys to the
// remote naming convention. The result is the field map of a DesiredState.
func Fields(params map[string]any, translate map[string]string) map[string]any {
	out := StripReserved(params)
	out = TranslateConflicts(out, translate)
	return ToRemoteNaming(out)
}
