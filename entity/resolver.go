package entity

import "fieldmodel/mutator"

//go:generate go tool stringer -type=MutatorKind -trimprefix=Mutator -output=mutatorkind_string.go

// MutatorKind selects which transformation is resolved for a field.
type MutatorKind int

const (
	_ MutatorKind = iota

	MutatorAccessor
	MutatorGetter
	MutatorSetter
)

// Descriptor is the transformation resolved for one field.
type Descriptor struct {
	Kind MutatorKind
	// Accessor is the registered accessor kind, set for MutatorAccessor.
	Accessor string
	// Func is the mutator, set for MutatorGetter and MutatorSetter.
	Func mutator.Func
}

// Resolver returns the transformation associated with a field, if any.
type Resolver interface {
	Resolve(field string, kind MutatorKind) (Descriptor, bool)
}

// FillPolicy decides which fields mass assignment may write.
type FillPolicy interface {
	IsFillable(field string) bool
}

// NullabilityPolicy decides which fields treat nil as a legitimate value.
type NullabilityPolicy interface {
	IsNullable(field string) bool
}

// Schema bundles the three per field policies of a model.
type Schema interface {
	Resolver
	FillPolicy
	NullabilityPolicy
}

// AccessorFactory turns accessor descriptors into live accessors.
type AccessorFactory interface {
	// Construct builds an accessor for field from its raw value. It fails
	// with an *AccessError when the descriptor names no constructible kind.
	Construct(d Descriptor, field string, raw any, ctx Context) (Accessor, error)
	// Compatible reports whether a can be updated in place for d.
	Compatible(d Descriptor, a Accessor) bool
}

type noResolver struct{}

func (noResolver) Resolve(string, MutatorKind) (Descriptor, bool) { return Descriptor{}, false }

type denyAll struct{}

func (denyAll) IsFillable(string) bool { return false }

type neverNull struct{}

func (neverNull) IsNullable(string) bool { return false }
