package domain

import "sort"

// ChangeSet is the minimal set of field writes needed to bring a remote
// object in line with desired state. An empty ChangeSet means no-op.
type ChangeSet map[string]any

func (cs ChangeSet) IsEmpty() bool {
	return len(cs) == 0
}

// FieldNames returns the changed field names in lexical order.
func (cs ChangeSet) FieldNames() []string {
	names := make([]string, 0, len(cs))
	for name := range cs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type ReconcileAction string

const (
	ActionNone   ReconcileAction = "NONE"
	ActionCreate ReconcileAction = "CREATE"
	ActionUpdate ReconcileAction = "UPDATE"
	ActionDelete ReconcileAction = "DELETE"
)

// ReconcileRequest is one reconciliation invocation: a resource kind, its
// identity (ignored for singletons), the desired state, and the dry-run flag.
type ReconcileRequest struct {
	Kind      ResourceKind
	Identity  ResourceIdentity
	Singleton bool
	Desired   DesiredState
	DryRun    bool
}

// ReconcileResult reports the outcome of one reconciliation call.
type ReconcileResult struct {
	Kind      ResourceKind
	Identity  ResourceIdentity
	Singleton bool
	Action    ReconcileAction
	Changed   bool
	ChangeSet ChangeSet
	DryRun    bool
	Error     error
}
