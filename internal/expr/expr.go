// Package expr compiles CEL expressions into field mutators. The value being
// read or written is bound to the variable "value".
package expr

import (
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
	"github.com/google/cel-go/ext"

	"fieldmodel/mutator"
)

// Variable is the name the mutated value is bound to.
const Variable = "value"

var ErrEmpty = errors.New("expression required")

// Compiler compiles expressions and caches the resulting programs by source.
type Compiler struct {
	env   *cel.Env
	cache sync.Map
}

func NewCompiler() (*Compiler, error) {
	env, err := cel.NewEnv(
		cel.Variable(Variable, cel.DynType),
		ext.Strings(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "cel environment")
	}

	return &Compiler{env: env}, nil
}

// Check reports whether src compiles.
func (c *Compiler) Check(src string) error {
	_, err := c.program(src)
	return err
}

// Compile returns a mutator evaluating src. Evaluation errors are returned by
// the mutator.
func (c *Compiler) Compile(src string) (mutator.Func, error) {
	program, err := c.program(src)
	if err != nil {
		return nil, err
	}

	return func(v any) (any, error) {
		out, _, err := program.Eval(map[string]any{Variable: v})
		if err != nil {
			return nil, errors.Wrapf(err, "eval %q", src)
		}

		return native(out)
	}, nil
}

func (c *Compiler) program(src string) (cel.Program, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, ErrEmpty
	}

	if cached, ok := c.cache.Load(src); ok {
		return cached.(cel.Program), nil
	}

	ast, issues := c.env.Compile(src)
	if issues != nil && issues.Err() != nil {
		return nil, errors.Wrapf(issues.Err(), "compile %q", src)
	}

	program, err := c.env.Program(ast)
	if err != nil {
		return nil, errors.Wrapf(err, "program %q", src)
	}

	c.cache.Store(src, program)

	return program, nil
}

// native converts a CEL result into the raw value tree entities store.
func native(v ref.Val) (any, error) {
	switch t := v.(type) {
	case types.Null:
		return nil, nil
	case traits.Mapper:
		out := make(map[string]any)
		it := t.Iterator()
		for it.HasNext() == types.True {
			k := it.Next()
			key, ok := k.Value().(string)
			if !ok {
				return nil, errors.Newf("map key %v is not a string", k.Value())
			}

			item, err := native(t.Get(k))
			if err != nil {
				return nil, err
			}
			out[key] = item
		}
		return out, nil
	case traits.Lister:
		size, _ := t.Size().(types.Int)
		out := make([]any, 0, int(size))
		for i := types.Int(0); i < size; i++ {
			item, err := native(t.Get(i))
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	}

	return v.Value(), nil
}
