package mutator

import (
	"path"
	"reflect"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"

	"fieldmodel/internal/common"
	"fieldmodel/primitive"
)

var (
	ErrNotAMutator     = errors.New("provided function is not a recognizable mutator")
	ErrNotAFunction    = errors.New("provided mutator is not a function")
	ErrDoublePointer   = errors.New("mutator function does not support double pointers")
	ErrRejected        = errors.New("mutator rejected the value")
	errorInterfaceType = reflect.TypeOf((*error)(nil)).Elem()
)

// Signature describes a typed Go function usable as a mutator.
type Signature struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool
}

// Parse inspects the provided function and returns its Signature if it is a
// valid mutator function.
//
// Supports interfaces:
//   - func(src Type) (dst Type)
//   - func(src Type) (dst Type, bool)
//   - func(src Type) (dst Type, error)
//   - func(src Type) (dst Type, bool, error)
func Parse(fn any) (Signature, error) {
	if fn == nil {
		return Signature{}, ErrNotAFunction
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return Signature{}, ErrNotAFunction
	}

	if fnType.NumIn() != 1 || fnType.NumOut() == 0 || fnType.IsVariadic() {
		return Signature{}, ErrNotAMutator
	}

	src := fnType.In(0)
	if src.Kind() == reflect.Ptr && src.Elem().Kind() == reflect.Ptr {
		return Signature{}, ErrDoublePointer
	}

	dst := fnType.Out(0)
	if dst.Kind() == reflect.Ptr && dst.Elem().Kind() == reflect.Ptr {
		return Signature{}, ErrDoublePointer
	}

	sig := Signature{Src: src, Dst: dst}
	if fnPC := runtime.FuncForPC(fnVal.Pointer()); fnPC != nil {
		alias, name := common.Unpack2(strings.SplitN(path.Base(fnPC.Name()), ".", 2))
		sig.Name = name
		sig.PackageAlias = alias
	}

	switch fnType.NumOut() {
	default:
		return Signature{}, ErrNotAMutator

	case 1:
		return sig, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return Signature{}, ErrNotAMutator
		case last.Kind() == reflect.Bool:
			sig.HasBool = true
		case isError(last):
			sig.HasErr = true
		}
		return sig, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return Signature{}, ErrNotAMutator
		}

		sig.HasBool = true
		sig.HasErr = true
		return sig, nil
	}
}

// Wrap adapts fn into a Func. A Func or a func(any) (any, error) is returned
// as is; any other function must match one of the shapes Parse accepts. The
// argument is coerced into the function's input type (nil becomes the zero
// value) and a false bool result is reported as ErrRejected.
func Wrap(fn any) (Func, error) {
	switch f := fn.(type) {
	case Func:
		if f == nil {
			return nil, ErrNotAFunction
		}
		return f, nil
	case func(any) (any, error):
		if f == nil {
			return nil, ErrNotAFunction
		}
		return f, nil
	}

	sig, err := Parse(fn)
	if err != nil {
		return nil, err
	}

	fnVal := reflect.ValueOf(fn)

	return func(value any) (any, error) {
		arg, err := primitive.Coerce(value, sig.Src)
		if err != nil {
			return nil, err
		}

		out := fnVal.Call([]reflect.Value{arg})

		if sig.HasErr {
			if errVal := out[len(out)-1]; !errVal.IsNil() {
				return nil, errVal.Interface().(error)
			}
		}

		if sig.HasBool && !out[1].Bool() {
			return nil, errors.Wrapf(ErrRejected, "%s", sig.Name)
		}

		return out[0].Interface(), nil
	}, nil
}

// MustWrap is like Wrap but panics on an unrecognizable function. It is meant
// for package level registration of known functions.
func MustWrap(fn any) Func {
	f, err := Wrap(fn)
	if err != nil {
		panic(err)
	}

	return f
}

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return t.Implements(errorInterfaceType)
}
