package accessor

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"fieldmodel/entity"
	"fieldmodel/primitive"
)

// List wraps an ordered collection of raw values.
type List struct {
	entity.Bound

	items    []any
	snapshot []any
}

var _ entity.Accessor = (*List)(nil)

// NewList constructs a List from nil or any slice of raw values.
func NewList(raw any, ctx entity.Context) (*List, error) {
	items, err := toList(raw)
	if err != nil {
		return nil, err
	}

	l := &List{items: items, snapshot: cloneList(items)}
	l.Bind(ctx)

	return l, nil
}

// Value implements entity.Value.
func (l *List) Value() any { return cloneList(l.items) }

// SetValue implements entity.Accessor.
func (l *List) SetValue(raw any) error {
	items, err := toList(raw)
	if err != nil {
		return err
	}

	l.items = items

	return nil
}

// Clone implements entity.Accessor.
func (l *List) Clone() entity.Accessor {
	return &List{Bound: l.Bound, items: cloneList(l.items), snapshot: cloneList(l.snapshot)}
}

// Dirty implements entity.Dirtier.
func (l *List) Dirty() bool {
	return !cmp.Equal(l.items, l.snapshot, cmpopts.EquateEmpty())
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// At returns the item at index i.
func (l *List) At(i int) any { return l.items[i] }

// Append adds raw values to the end of the list.
func (l *List) Append(values ...any) error {
	for _, v := range values {
		if !primitive.IsRaw(v) {
			return errors.Wrapf(ErrNotRaw, "list item %T", v)
		}
	}

	l.items = append(l.items, values...)

	return nil
}

// Contains reports whether an item equal to v is present.
func (l *List) Contains(v any) bool {
	for _, item := range l.items {
		if cmp.Equal(item, v) {
			return true
		}
	}

	return false
}

func toList(raw any) ([]any, error) {
	if raw == nil {
		return []any{}, nil
	}

	if items, ok := raw.([]any); ok {
		if !primitive.IsRaw(items) {
			return nil, errors.Wrapf(ErrNotRaw, "list")
		}
		return cloneList(items), nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.Newf("expected a list, got %T", raw)
	}

	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}

	if !primitive.IsRaw(items) {
		return nil, errors.Wrapf(ErrNotRaw, "list")
	}

	return items, nil
}

func cloneList(items []any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = copyTree(item)
	}

	return out
}
