// Package policy implements the per field policies an entity consults: which
// fields mass assignment may write, and which fields accept nil.
package policy

import "slices"

// Wildcard matches every field name in Lists.
const Wildcard = "*"

// Lists is a FillPolicy built from two name lists.
//
// A non-empty Fillable list is authoritative: only the listed fields (or all
// of them, with Wildcard) are fillable. With no Fillable list every field not
// in Secured is fillable, and Secured set to Wildcard closes all of them.
type Lists struct {
	Fillable []string
	Secured  []string
}

// IsFillable implements entity.FillPolicy.
func (l Lists) IsFillable(field string) bool {
	if slices.Contains(l.Fillable, Wildcard) {
		return true
	}

	if len(l.Fillable) > 0 {
		return slices.Contains(l.Fillable, field)
	}

	if slices.Contains(l.Secured, Wildcard) {
		return false
	}

	return !slices.Contains(l.Secured, field)
}

// Set is a set of field names. It answers both as a FillPolicy and as a
// NullabilityPolicy.
type Set map[string]struct{}

// NewSet creates a set holding names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}

	return s
}

// Has reports whether field is in the set.
func (s Set) Has(field string) bool {
	_, ok := s[field]
	return ok
}

// IsFillable implements entity.FillPolicy.
func (s Set) IsFillable(field string) bool { return s.Has(field) }

// IsNullable implements entity.NullabilityPolicy.
func (s Set) IsNullable(field string) bool { return s.Has(field) }
