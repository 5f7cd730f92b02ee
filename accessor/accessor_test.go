package accessor_test

import (
	"math"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldmodel/accessor"
	"fieldmodel/entity"
)

func TestList(t *testing.T) {
	l, err := accessor.NewList([]string{"a", "b"}, entity.Context{Field: "tags"})
	require.NoError(t, err)

	assert.Equal(t, []any{"a", "b"}, l.Value())
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, "b", l.At(1))
	assert.True(t, l.Contains("a"))
	assert.False(t, l.Dirty())
	assert.Equal(t, "tags", l.Context().Field)

	require.NoError(t, l.Append("c"))
	assert.True(t, l.Dirty())

	err = l.Append(struct{}{})
	assert.True(t, errors.Is(err, accessor.ErrNotRaw))

	require.NoError(t, l.SetValue([]any{"a", "b"}))
	assert.False(t, l.Dirty(), "back to the constructed value")

	c := l.Clone().(*accessor.List)
	require.NoError(t, c.Append("z"))
	assert.Equal(t, 2, l.Len(), "clones are independent")

	_, err = accessor.NewList("nope", entity.Context{})
	require.Error(t, err)

	empty, err := accessor.NewList(nil, entity.Context{})
	require.NoError(t, err)
	assert.Equal(t, []any{}, empty.Value())
}

func TestList_ValueIsACopy(t *testing.T) {
	l, err := accessor.NewList([]any{map[string]any{"k": "v"}}, entity.Context{})
	require.NoError(t, err)

	v := l.Value().([]any)
	v[0].(map[string]any)["k"] = "changed"

	assert.Equal(t, []any{map[string]any{"k": "v"}}, l.Value())
	assert.False(t, l.Dirty())
}

func TestMap(t *testing.T) {
	m, err := accessor.NewMap(map[string]string{"city": "Oslo"}, entity.Context{})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"city": "Oslo"}, m.Value())
	assert.False(t, m.Dirty())

	require.NoError(t, m.Set("zip", "0150"))
	assert.True(t, m.Dirty())
	assert.Equal(t, []string{"city", "zip"}, m.Keys())

	v, ok := m.Get("zip")
	assert.True(t, ok)
	assert.Equal(t, "0150", v)

	m.Delete("zip")
	assert.False(t, m.Dirty())

	assert.True(t, errors.Is(m.Set("bad", struct{}{}), accessor.ErrNotRaw))

	_, err = accessor.NewMap([]any{"x"}, entity.Context{})
	require.Error(t, err)

	require.NoError(t, m.SetValue(nil))
	assert.Equal(t, map[string]any{}, m.Value())
}

func TestTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  any
	}{
		{name: "time", raw: want},
		{name: "rfc3339", raw: "2024-03-01T12:30:00Z"},
		{name: "datetime", raw: "2024-03-01 12:30:00"},
		{name: "unix", raw: want.Unix()},
		{name: "unix int", raw: int(want.Unix())},
		{name: "unix float", raw: float64(want.Unix())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := accessor.NewTime(tt.raw, entity.Context{})
			require.NoError(t, err)

			got, ok := a.Time()
			require.True(t, ok)
			assert.True(t, want.Equal(got), "got %s", got)
			assert.Equal(t, "2024-03-01T12:30:00Z", a.Value())
		})
	}
}

func TestTime_RejectsUnrepresentableFloat(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{name: "nan", raw: math.NaN()},
		{name: "positive infinity", raw: math.Inf(1)},
		{name: "negative infinity", raw: math.Inf(-1)},
		{name: "too large", raw: 1e300},
		{name: "too small", raw: -1e300},
		{name: "max int64", raw: float64(math.MaxInt64)},
		{name: "float32 infinity", raw: float32(math.Inf(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := accessor.NewTime(tt.raw, entity.Context{})
			require.Error(t, err)

			a, err := accessor.NewTime(nil, entity.Context{})
			require.NoError(t, err)
			require.Error(t, a.SetValue(tt.raw))
			_, ok := a.Time()
			assert.False(t, ok, "a rejected value leaves the time unset")
		})
	}
}

func TestTime_NullAndDirty(t *testing.T) {
	a, err := accessor.NewTime(nil, entity.Context{})
	require.NoError(t, err)
	assert.Nil(t, a.Value())

	require.NoError(t, a.SetValue(""))
	assert.False(t, a.Dirty())

	a.Set(time.Unix(0, 0))
	assert.True(t, a.Dirty())
	assert.Equal(t, "1970-01-01T00:00:00Z", a.Value())

	c := a.Clone().(*accessor.Time)
	require.NoError(t, c.SetValue(nil))
	assert.NotNil(t, a.Value())

	_, err = accessor.NewTime("yesterday", entity.Context{})
	require.Error(t, err)

	_, err = accessor.NewTime(true, entity.Context{})
	require.Error(t, err)
}

func TestNewRegistry(t *testing.T) {
	reg := accessor.NewRegistry()
	assert.Equal(t, []string{accessor.KindList, accessor.KindMap, accessor.KindTime}, reg.Kinds())

	assert.Error(t, accessor.Register(reg), "kinds can only be registered once")
}
