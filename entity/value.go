package entity

import (
	"weak"

	"github.com/google/uuid"
)

// Value is anything that can be packed into a raw value tree.
type Value interface {
	// Value returns the raw form. It may return other Values, which are
	// unwrapped recursively when packing.
	Value() any
}

// Accessor is a stateful wrapper around a non-primitive field value.
type Accessor interface {
	Value
	// SetValue replaces the wrapped value with the given raw value, applying
	// whatever normalization the accessor performs.
	SetValue(raw any) error
	// Clone returns an independent copy. Entities clone every accessor they
	// are given so an instance is never shared between two field slots.
	Clone() Accessor
}

// Dirtier is implemented by accessors that track modifications of the value
// they were constructed with.
type Dirtier interface {
	Dirty() bool
}

// Disposer is implemented by accessors holding state that must be released
// when their owning entity is disposed.
type Disposer interface {
	Dispose()
}

// Binder is implemented by accessors that keep their Context. The entity
// rebinds an accessor every time it takes ownership of one.
type Binder interface {
	Bind(ctx Context)
}

// Context identifies the field slot an accessor lives in.
type Context struct {
	// Field is the name of the owning field.
	Field string
	// EntityID is the ID of the owning entity.
	EntityID uuid.UUID

	owner weak.Pointer[Entity]
}

func newContext(e *Entity, field string) Context {
	return Context{Field: field, EntityID: e.id, owner: weak.Make(e)}
}

// Entity resolves the owning entity. It returns nil when the context is
// detached, or the owner was disposed or collected.
func (c Context) Entity() *Entity {
	e := c.owner.Value()
	if e == nil || e.disposed {
		return nil
	}

	return e
}

// Bound is embeddable Binder state for accessor implementations.
type Bound struct {
	ctx Context
}

// Bind implements Binder.
func (b *Bound) Bind(ctx Context) { b.ctx = ctx }

// Context returns the context the accessor was last bound to.
func (b *Bound) Context() Context { return b.ctx }
