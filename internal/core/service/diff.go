package service

import (
	"github.com/erjac77/f5-reconciler/internal/core/domain"
	"github.com/erjac77/f5-reconciler/internal/normalize"
	"github.com/erjac77/f5-reconciler/pkg/compare"
)

// BuildChangeSet diffs desired state against the current remote snapshot and
// returns the minimal set of field writes. Fields absent from the desired
// state are never touched; a nil desired value means "leave alone", not
// "clear".
//
// Set-valued fields follow the lifecycle target: under present the candidate
// is cur ∪ desired and the field is written only if something new was added;
// under absent the candidate is cur − desired and the field is written only
// if something was actually removed. Scalars are written when the normalized
// values differ.
func BuildChangeSet(desired domain.DesiredState, current domain.RemoteObject, spec domain.ResourceSpec) domain.ChangeSet {
	cs := domain.ChangeSet{}

	for field, raw := range desired.Fields {
		value := normalize.Value(raw)
		if value == nil {
			continue
		}

		curRaw, found := spec.Accessor(field)(current)
		var cur any
		if found {
			cur = normalize.Value(curRaw)
		}

		if set, isSet := normalize.AsSet(value); isSet {
			curSet, _ := normalize.AsSet(cur)
			switch desired.Target {
			case domain.StatePresent:
				merged := compare.Union(curSet, set)
				if len(merged) > len(curSet) {
					cs[field] = merged
				}
			case domain.StateAbsent:
				remaining := compare.Difference(curSet, set)
				if len(remaining) < len(curSet) {
					cs[field] = remaining
				}
			}
			continue
		}

		if !found || !compare.LooseEqual(value, cur) {
			cs[field] = value
		}
	}

	return cs
}
