package domain

// TargetState is the lifecycle target requested by the caller.
type TargetState string

const (
	StatePresent TargetState = "present"
	StateAbsent  TargetState = "absent"
)

func (t TargetState) Valid() bool {
	return t == StatePresent || t == StateAbsent
}

// ResourceKind names a remote resource type by its management-API path,
// e.g. "ltm/pool" or "sys/dns".
type ResourceKind string

func (rk ResourceKind) String() string {
	return string(rk)
}

// DesiredState is the caller's requested configuration for one resource,
// keyed in the engine's naming convention. It is immutable after
// normalization.
type DesiredState struct {
	Fields map[string]any
	Target TargetState
}

// RemoteObject is a snapshot of a resource's current field values, read fresh
// for every reconciliation call and never cached across calls.
type RemoteObject map[string]any

// FieldAccessor extracts one comparable field from a remote snapshot. The
// second return value reports whether the field is present on the object.
type FieldAccessor func(obj RemoteObject) (any, bool)

// MapAccessor is the default accessor: a plain key lookup.
func MapAccessor(field string) FieldAccessor {
	return func(obj RemoteObject) (any, bool) {
		v, ok := obj[field]
		return v, ok
	}
}

// ResourceSpec is the static field contract of a resource kind: which fields
// the engine must see before it creates or updates an object, and how to read
// the current value of each desired field off a remote snapshot.
type ResourceSpec struct {
	Kind              ResourceKind
	RequiredForCreate []string
	RequiredForUpdate []string
	Accessors         map[string]FieldAccessor
}

// Accessor returns the accessor registered for field, falling back to a plain
// map lookup.
func (s ResourceSpec) Accessor(field string) FieldAccessor {
	if acc, ok := s.Accessors[field]; ok {
		return acc
	}
	return MapAccessor(field)
}
