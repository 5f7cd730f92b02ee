package schema

import (
	"go.uber.org/zap"

	"fieldmodel/accessor"
	"fieldmodel/entity"
	"fieldmodel/internal/expr"
	"fieldmodel/mutator"
)

// Environment holds what schemas are validated and compiled against: the
// named mutators, the accessor kinds and the expression compiler.
type Environment struct {
	Library  *mutator.Library
	Registry *entity.Registry
	Exprs    *expr.Compiler
	Logger   *zap.Logger
}

// NewEnvironment returns an environment with the built-in mutators and
// accessors.
func NewEnvironment() (*Environment, error) {
	exprs, err := expr.NewCompiler()
	if err != nil {
		return nil, err
	}

	return &Environment{
		Library:  mutator.Builtins(),
		Registry: accessor.NewRegistry(),
		Exprs:    exprs,
		Logger:   zap.NewNop(),
	}, nil
}

// mutator resolves ref to a callable mutator.
func (env *Environment) mutator(ref MutatorRef) (mutator.Func, error) {
	if ref.Expr != "" {
		return env.Exprs.Compile(ref.Expr)
	}

	fn, ok := env.Library.Lookup(ref.Func)
	if !ok {
		return nil, errUnknownMutator(ref.Func)
	}

	return fn, nil
}
