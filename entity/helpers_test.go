package entity_test

import (
	"github.com/cockroachdb/errors"

	"fieldmodel/accessor"
	"fieldmodel/entity"
	"fieldmodel/mutator"
)

// testSchema is a table driven entity.Schema.
type testSchema struct {
	accessors map[string]string
	getters   map[string]mutator.Func
	setters   map[string]mutator.Func
	fillable  map[string]bool
	nullable  map[string]bool
}

func (s testSchema) Resolve(field string, kind entity.MutatorKind) (entity.Descriptor, bool) {
	switch kind {
	case entity.MutatorAccessor:
		if name, ok := s.accessors[field]; ok {
			return entity.Descriptor{Kind: kind, Accessor: name}, true
		}
	case entity.MutatorGetter:
		if fn, ok := s.getters[field]; ok {
			return entity.Descriptor{Kind: kind, Func: fn}, true
		}
	case entity.MutatorSetter:
		if fn, ok := s.setters[field]; ok {
			return entity.Descriptor{Kind: kind, Func: fn}, true
		}
	}

	return entity.Descriptor{}, false
}

func (s testSchema) IsFillable(field string) bool { return s.fillable[field] }

func (s testSchema) IsNullable(field string) bool { return s.nullable[field] }

func newEntity(data map[string]any, s testSchema) *entity.Entity {
	return entity.New(data, entity.WithSchema(s), entity.WithFactory(accessor.NewRegistry()))
}

func failing(any) (any, error) { return nil, errors.New("always fails") }

// nilTolerant fails for every non-nil input.
func nilTolerant(v any) (any, error) {
	if v != nil {
		return nil, errors.Newf("cannot read %v", v)
	}

	return "fallback", nil
}

// disposable records disposal.
type disposable struct {
	entity.Bound

	value    any
	disposed *bool
}

func (d *disposable) Value() any             { return d.value }
func (d *disposable) SetValue(raw any) error { d.value = raw; return nil }
func (d *disposable) Clone() entity.Accessor { c := *d; return &c }
func (d *disposable) Dispose()               { *d.disposed = true }
