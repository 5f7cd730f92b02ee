package entity_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldmodel/accessor"
	"fieldmodel/entity"
)

func TestRegistry(t *testing.T) {
	reg := entity.NewRegistry()

	require.NoError(t, entity.Register(reg, "list", accessor.NewList))
	err := entity.Register(reg, "list", accessor.NewList)
	assert.True(t, errors.Is(err, entity.ErrDuplicateAccessor))

	entity.MustRegister(reg, "map", accessor.NewMap)
	assert.Panics(t, func() { entity.MustRegister(reg, "map", accessor.NewMap) })

	assert.Equal(t, []string{"list", "map"}, reg.Kinds())
	assert.True(t, reg.Has("list"))
	assert.False(t, reg.Has("time"))

	d := entity.Descriptor{Kind: entity.MutatorAccessor, Accessor: "list"}
	a, err := reg.Construct(d, "tags", []any{"a"}, entity.Context{Field: "tags"})
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, a.Value())

	assert.True(t, reg.Compatible(d, a))
	assert.False(t, reg.Compatible(entity.Descriptor{Accessor: "map"}, a))
	assert.False(t, reg.Compatible(entity.Descriptor{Accessor: "missing"}, a))
}

func TestRegistry_CompatibleKindedEntities(t *testing.T) {
	reg := entity.NewRegistry()
	entity.MustRegister(reg, "address", accessor.NestedOf(entity.WithKind("address")))
	entity.MustRegister(reg, "company", accessor.NestedOf(entity.WithKind("company")))
	entity.MustRegister(reg, "blob", accessor.NestedOf())

	address := entity.Descriptor{Kind: entity.MutatorAccessor, Accessor: "address"}
	company := entity.Descriptor{Kind: entity.MutatorAccessor, Accessor: "company"}
	blob := entity.Descriptor{Kind: entity.MutatorAccessor, Accessor: "blob"}

	a, err := reg.Construct(address, "home", map[string]any{}, entity.Context{})
	require.NoError(t, err)
	untagged, err := reg.Construct(blob, "data", map[string]any{}, entity.Context{})
	require.NoError(t, err)

	tests := []struct {
		name string
		d    entity.Descriptor
		a    entity.Accessor
		want bool
	}{
		{name: "same kind", d: address, a: a, want: true},
		{name: "other kind", d: company, a: a, want: false},
		{name: "clone keeps kind", d: company, a: a.Clone(), want: false},
		{name: "untagged entity", d: company, a: untagged, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reg.Compatible(tt.d, tt.a))
		})
	}
}

func TestRegistry_ConstructFailures(t *testing.T) {
	reg := entity.NewRegistry()
	entity.MustRegister(reg, "panics", func(any, entity.Context) (*accessor.List, error) {
		panic("constructor bug")
	})

	_, err := reg.Construct(entity.Descriptor{Accessor: "missing"}, "f", nil, entity.Context{})
	assert.True(t, errors.Is(err, entity.ErrUnknownAccessor))

	_, err = reg.Construct(entity.Descriptor{Accessor: "panics"}, "f", nil, entity.Context{})
	require.Error(t, err)
	assert.True(t, entity.IsAccessError(err))
	assert.True(t, errors.Is(err, entity.ErrAccessorConstruct))
	assert.Contains(t, err.Error(), "constructor bug")
}

func TestMutatorKind_String(t *testing.T) {
	assert.Equal(t, "Accessor", entity.MutatorAccessor.String())
	assert.Equal(t, "Setter", entity.MutatorSetter.String())
	assert.Equal(t, "MutatorKind(0)", entity.MutatorKind(0).String())
}

func TestRegistry_Clone(t *testing.T) {
	base := accessor.NewRegistry()
	clone := base.Clone()

	entity.MustRegister(clone, "extra", accessor.NewMap)

	assert.True(t, clone.Has("list"))
	assert.True(t, clone.Has("extra"))
	assert.False(t, base.Has("extra"))
	assert.Empty(t, (*entity.Registry)(nil).Clone().Kinds())
}
