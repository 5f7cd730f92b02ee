package mutator_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldmodel/mutator"
)

func TestWrap_TypedFunctions(t *testing.T) {
	upper := mutator.MustWrap(strings.ToUpper)

	out, err := upper("dave")
	require.NoError(t, err)
	assert.Equal(t, "DAVE", out)

	// nil is coerced into the zero value of the input type.
	out, err = upper(nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)

	atoi := mutator.MustWrap(strconv.Atoi)

	out, err = atoi("42")
	require.NoError(t, err)
	assert.Equal(t, 42, out)

	_, err = atoi("forty-two")
	require.Error(t, err)

	_, err = atoi(42)
	require.Error(t, err, "int is not coercible into string")
}

func TestWrap_BoolResult(t *testing.T) {
	positive := mutator.MustWrap(func(n int) (int, bool) { return n, n > 0 })

	out, err := positive(3)
	require.NoError(t, err)
	assert.Equal(t, 3, out)

	_, err = positive(-3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mutator.ErrRejected))
}

func TestWrap_Uniform(t *testing.T) {
	var called bool
	fn := func(v any) (any, error) {
		called = true
		return v, nil
	}

	wrapped, err := mutator.Wrap(fn)
	require.NoError(t, err)

	out, err := wrapped("x")
	require.NoError(t, err)
	assert.Equal(t, "x", out)
	assert.True(t, called)
}

func TestWrap_Invalid(t *testing.T) {
	_, err := mutator.Wrap(nil)
	assert.ErrorIs(t, err, mutator.ErrNotAFunction)

	_, err = mutator.Wrap(func(a, b int) int { return a + b })
	assert.ErrorIs(t, err, mutator.ErrNotAMutator)

	_, err = mutator.Wrap(func(**int) int { return 0 })
	assert.ErrorIs(t, err, mutator.ErrDoublePointer)

	assert.Panics(t, func() { mutator.MustWrap(42) })
}

func TestInvoke(t *testing.T) {
	res := mutator.Invoke(mutator.MustWrap(strings.TrimSpace), "  x ")
	require.False(t, res.Failed())
	assert.Equal(t, "x", res.Value)

	res = mutator.Invoke(func(any) (any, error) { return nil, errors.New("boom") }, "x")
	require.True(t, res.Failed())
	assert.True(t, errors.Is(res.Err, mutator.ErrFault))
	assert.Contains(t, res.Err.Error(), "boom")

	res = mutator.Invoke(func(any) (any, error) { panic("kaboom") }, "x")
	require.True(t, res.Failed())
	assert.True(t, errors.Is(res.Err, mutator.ErrFault))
	assert.Contains(t, res.Err.Error(), "kaboom")

	res = mutator.Invoke(nil, "x")
	assert.True(t, res.Failed())
}

func TestLibrary(t *testing.T) {
	lib := mutator.NewLibrary()

	require.NoError(t, lib.Register("itoa", strconv.Itoa))
	err := lib.Register("itoa", strconv.Itoa)
	assert.True(t, errors.Is(err, mutator.ErrDuplicate))

	err = lib.Register("bad", 42)
	assert.True(t, errors.Is(err, mutator.ErrNotAFunction))

	fn, ok := lib.Lookup("itoa")
	require.True(t, ok)
	out, err := fn(7)
	require.NoError(t, err)
	assert.Equal(t, "7", out)

	assert.False(t, lib.Has("missing"))
	assert.Equal(t, []string{"itoa"}, lib.Names())
}

func TestBuiltins(t *testing.T) {
	lib := mutator.Builtins()
	assert.Equal(t, []string{"bool", "float", "int", "lower", "trim", "upper"}, lib.Names())

	tests := []struct {
		name    string
		in      any
		want    any
		wantErr bool
	}{
		{name: "trim", in: "  a b ", want: "a b"},
		{name: "trim", in: nil, want: ""},
		{name: "trim", in: 3, wantErr: true},
		{name: "lower", in: "ABC", want: "abc"},
		{name: "upper", in: "abc", want: "ABC"},
		{name: "int", in: " 12 ", want: 12},
		{name: "int", in: float64(12), want: 12},
		{name: "int", in: 12.5, wantErr: true},
		{name: "int", in: nil, want: 0},
		{name: "float", in: "1.5", want: 1.5},
		{name: "float", in: 2, want: float64(2)},
		{name: "bool", in: "true", want: true},
		{name: "bool", in: 0, want: false},
		{name: "bool", in: 1, want: true},
		{name: "bool", in: []any{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, ok := lib.Lookup(tt.name)
			require.True(t, ok)

			res := mutator.Invoke(fn, tt.in)
			if tt.wantErr {
				assert.True(t, res.Failed())
				return
			}

			require.NoError(t, res.Err)
			assert.Equal(t, tt.want, res.Value)
		})
	}
}
