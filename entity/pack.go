package entity

import (
	"iter"
	"reflect"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
)

// Pack returns every stored field with accessors recursively unwrapped to
// their raw form, in storage order. The entity is left untouched.
func (e *Entity) Pack() Fields {
	out := make(Fields, 0, len(e.keys))
	for _, name := range e.keys {
		out = append(out, Field{Name: name, Value: Unwrap(e.fields[name])})
	}

	return out
}

// ToMap returns the packed fields as a map.
func (e *Entity) ToMap() map[string]any {
	return e.Pack().Map()
}

// MarshalJSON encodes the packed fields, preserving storage order.
func (e *Entity) MarshalJSON() ([]byte, error) {
	return e.Pack().MarshalJSON()
}

// Value implements Accessor: an entity nested in another entity's field
// packs into a map.
func (e *Entity) Value() any {
	return e.ToMap()
}

// SetValue implements Accessor by mass assigning raw through the fill policy.
func (e *Entity) SetValue(raw any) error {
	if e.disposed {
		return &AccessError{Err: ErrDisposed}
	}

	if _, ok := fieldPairs(raw); !ok && raw != nil {
		return errors.Newf("expected a document, got %T", raw)
	}

	e.SetFields(raw, false)

	return nil
}

// Clone implements Accessor. The copy gets a fresh ID and shares the
// entity's policies; raw values are deep copied and accessors cloned.
func (e *Entity) Clone() Accessor {
	c := &Entity{
		id:       uuid.New(),
		fields:   make(map[string]any, len(e.fields)),
		resolver: e.resolver,
		fill:     e.fill,
		nullable: e.nullable,
		factory:  e.factory,
		logger:   e.logger,
		kind:     e.kind,
	}

	for _, name := range e.keys {
		if a, ok := e.fields[name].(Accessor); ok {
			c.adopt(name, a.Clone())
			continue
		}
		c.store(name, copyRaw(e.fields[name]))
	}

	return c
}

// Dirty implements Dirtier: an entity is dirty when any accessor it holds
// is. Raw field writes are not tracked.
func (e *Entity) Dirty() bool {
	return len(e.DirtyFields()) > 0
}

// Bind implements Binder.
func (e *Entity) Bind(ctx Context) { e.parent = ctx }

// Parent returns the context of the field this entity is nested in, if any.
func (e *Entity) Parent() Context { return e.parent }

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump renders the packed fields with their Go types, for debugging.
func (e *Entity) Dump() string {
	return dumpConfig.Sdump(e.ToMap())
}

// Unwrap resolves v into a raw value tree. Values are unwrapped recursively,
// including Values held inside []any and map[string]any.
func Unwrap(v any) any {
	switch t := v.(type) {
	case Value:
		return Unwrap(t.Value())
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Unwrap(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = Unwrap(item)
		}
		return out
	default:
		return v
	}
}

// copyRaw deep copies the containers of a raw value tree.
func copyRaw(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = copyRaw(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = copyRaw(item)
		}
		return out
	default:
		return v
	}
}

// fieldPairs normalizes every supported mass assignment source.
func fieldPairs(source any) (iter.Seq2[string, any], bool) {
	switch s := source.(type) {
	case nil:
		return nil, false
	case Fields:
		return s.All(), true
	case iter.Seq2[string, any]:
		return s, s != nil
	case *Entity:
		if s == nil {
			return nil, false
		}
		return s.Pack().All(), true
	case map[string]any:
		return FieldsFromMap(s).All(), true
	}

	rv := reflect.ValueOf(source)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	return func(yield func(string, any) bool) {
		for _, k := range keys {
			if !yield(k.String(), rv.MapIndex(k).Interface()) {
				return
			}
		}
	}, true
}
