package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldmodel/internal/expr"
	"fieldmodel/mutator"
)

func TestCompile(t *testing.T) {
	c, err := expr.NewCompiler()
	require.NoError(t, err)

	tests := []struct {
		name   string
		src    string
		input  any
		expect any
	}{
		{name: "string extension", src: "value.upperAscii()", input: "dave", expect: "DAVE"},
		{name: "arithmetic", src: "value * 2", input: 21, expect: int64(42)},
		{name: "null check", src: "value == null ? 'n/a' : value", input: nil, expect: "n/a"},
		{name: "null result", src: "null", input: "x", expect: nil},
		{name: "list", src: "[value, value]", input: "x", expect: []any{"x", "x"}},
		{name: "map", src: "{'name': value}", input: "x", expect: map[string]any{"name": "x"}},
		{name: "nested input", src: "value.tags.size()", input: map[string]any{"tags": []any{"a", "b"}}, expect: int64(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := c.Compile(tt.src)
			require.NoError(t, err)

			got, err := fn(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	c, err := expr.NewCompiler()
	require.NoError(t, err)

	_, err = c.Compile("  ")
	assert.ErrorIs(t, err, expr.ErrEmpty)

	assert.Error(t, c.Check("value +"))
	assert.NoError(t, c.Check("value"))
}

func TestEvalFaultIsAbsorbedByInvoke(t *testing.T) {
	c, err := expr.NewCompiler()
	require.NoError(t, err)

	fn, err := c.Compile("value + 1")
	require.NoError(t, err)

	res := mutator.Invoke(fn, "x")
	assert.True(t, res.Failed())
	assert.ErrorIs(t, res.Err, mutator.ErrFault)
}
