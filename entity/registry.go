package entity

import (
	"fmt"
	"maps"
	"reflect"
	"sort"

	"github.com/cockroachdb/errors"
)

// ErrDuplicateAccessor is returned when an accessor kind is registered twice.
var ErrDuplicateAccessor = errors.New("accessor kind already registered")

// Constructor builds an accessor from a raw value.
type Constructor func(raw any, ctx Context) (Accessor, error)

type registration struct {
	ctor Constructor
	typ  reflect.Type
}

// Registry is the AccessorFactory mapping accessor kind names to
// constructors. Kinds are registered up front; construction never
// instantiates anything that was not registered.
type Registry struct {
	kinds map[string]registration
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]registration)}
}

// Register adds kind to r. The accessor type A identifies instances that can
// be updated in place for kind. Instances with a Kind method returning a
// non-empty name must also match kind.
func Register[A Accessor](r *Registry, kind string, ctor func(raw any, ctx Context) (A, error)) error {
	if ctor == nil {
		return errors.Newf("accessor %q: nil constructor", kind)
	}

	if _, exists := r.kinds[kind]; exists {
		return errors.Wrapf(ErrDuplicateAccessor, "%q", kind)
	}

	r.kinds[kind] = registration{
		typ: reflect.TypeFor[A](),
		ctor: func(raw any, ctx Context) (Accessor, error) {
			a, err := ctor(raw, ctx)
			if err != nil {
				return nil, err
			}
			return a, nil
		},
	}

	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister[A Accessor](r *Registry, kind string, ctor func(raw any, ctx Context) (A, error)) {
	if err := Register(r, kind, ctor); err != nil {
		panic(err)
	}
}

// Has returns true if kind is registered.
func (r *Registry) Has(kind string) bool {
	if r == nil {
		return false
	}

	_, ok := r.kinds[kind]

	return ok
}

// Clone returns a registry holding the kinds of r. Kinds registered on
// either registry afterwards do not show up in the other.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	if r != nil {
		maps.Copy(c.kinds, r.kinds)
	}

	return c
}

// Kinds returns all registered kind names, sorted.
func (r *Registry) Kinds() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Construct implements AccessorFactory.
func (r *Registry) Construct(d Descriptor, field string, raw any, ctx Context) (a Accessor, err error) {
	reg, ok := r.lookup(d.Accessor)
	if !ok {
		return nil, &AccessError{Field: field, Accessor: d.Accessor, Err: ErrUnknownAccessor}
	}

	defer func() {
		if p := recover(); p != nil {
			a = nil
			err = &AccessError{
				Field:    field,
				Accessor: d.Accessor,
				Err:      errors.Mark(errors.Newf("constructor panicked: %s", fmt.Sprint(p)), ErrAccessorConstruct),
			}
		}
	}()

	a, err = reg.ctor(raw, ctx)
	if err != nil {
		return nil, &AccessError{Field: field, Accessor: d.Accessor, Err: errors.Mark(err, ErrAccessorConstruct)}
	}

	if a == nil {
		return nil, &AccessError{Field: field, Accessor: d.Accessor, Err: errors.Wrap(ErrAccessorConstruct, "constructor returned nil")}
	}

	return a, nil
}

// Compatible implements AccessorFactory.
func (r *Registry) Compatible(d Descriptor, a Accessor) bool {
	reg, ok := r.lookup(d.Accessor)
	if !ok || a == nil {
		return false
	}

	if reflect.TypeOf(a) != reg.typ {
		return false
	}

	if k, ok := a.(kinded); ok && k.Kind() != "" {
		return k.Kind() == d.Accessor
	}

	return true
}

// kinded accessors share a Go type across kinds and name the one they belong to.
type kinded interface {
	Kind() string
}

func (r *Registry) lookup(kind string) (registration, bool) {
	if r == nil {
		return registration{}, false
	}

	reg, ok := r.kinds[kind]

	return reg, ok
}
