package accessor

import (
	"reflect"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"fieldmodel/entity"
	"fieldmodel/primitive"
)

// Map wraps a nested document: a string keyed map of raw values.
type Map struct {
	entity.Bound

	values   map[string]any
	snapshot map[string]any
}

var _ entity.Accessor = (*Map)(nil)

// NewMap constructs a Map from nil or any string keyed map of raw values.
func NewMap(raw any, ctx entity.Context) (*Map, error) {
	values, err := toMap(raw)
	if err != nil {
		return nil, err
	}

	m := &Map{values: values, snapshot: cloneMap(values)}
	m.Bind(ctx)

	return m, nil
}

// Value implements entity.Value.
func (m *Map) Value() any { return cloneMap(m.values) }

// SetValue implements entity.Accessor.
func (m *Map) SetValue(raw any) error {
	values, err := toMap(raw)
	if err != nil {
		return err
	}

	m.values = values

	return nil
}

// Clone implements entity.Accessor.
func (m *Map) Clone() entity.Accessor {
	return &Map{Bound: m.Bound, values: cloneMap(m.values), snapshot: cloneMap(m.snapshot)}
}

// Dirty implements entity.Dirtier.
func (m *Map) Dirty() bool {
	return !cmp.Equal(m.values, m.snapshot, cmpopts.EquateEmpty())
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set stores a raw value under key.
func (m *Map) Set(key string, v any) error {
	if !primitive.IsRaw(v) {
		return errors.Wrapf(ErrNotRaw, "map value %T", v)
	}

	m.values[key] = v

	return nil
}

// Delete removes key.
func (m *Map) Delete(key string) { delete(m.values, key) }

// Keys returns the keys, sorted.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func toMap(raw any) (map[string]any, error) {
	if raw == nil {
		return map[string]any{}, nil
	}

	if values, ok := raw.(map[string]any); ok {
		if !primitive.IsRaw(values) {
			return nil, errors.Wrapf(ErrNotRaw, "map")
		}
		return cloneMap(values), nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, errors.Newf("expected a string keyed map, got %T", raw)
	}

	values := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		values[iter.Key().String()] = iter.Value().Interface()
	}

	if !primitive.IsRaw(values) {
		return nil, errors.Wrapf(ErrNotRaw, "map")
	}

	return values, nil
}

func cloneMap(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = copyTree(v)
	}

	return out
}
