// Package mutator adapts plain Go functions into field getters and setters.
//
// A mutator is stateless: it receives the raw field value and returns the
// value to expose (getter) or to store (setter). Invocation never panics
// across the call site; every failure is reported as a Result carrying
// ErrFault so the caller can apply its own fault policy.
package mutator

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrFault marks every failure raised inside a getter or setter.
var ErrFault = errors.New("mutator fault")

// Func is the uniform mutator shape every getter and setter is adapted to.
// Getters must tolerate a nil input: a failed read is retried once with nil.
type Func func(value any) (any, error)

// Result is the failure tagged outcome of a single invocation.
type Result struct {
	Value any
	Err   error
}

// Failed reports whether the invocation faulted.
func (r Result) Failed() bool { return r.Err != nil }

// Invoke calls fn with value. Returned errors and panics are both turned into
// a failed Result marked with ErrFault.
func Invoke(fn Func, value any) (res Result) {
	if fn == nil {
		return Result{Err: errors.Mark(errors.New("nil mutator"), ErrFault)}
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: errors.Mark(errors.Newf("mutator panicked: %s", fmt.Sprint(r)), ErrFault)}
		}
	}()

	out, err := fn(value)
	if err != nil {
		return Result{Err: errors.Mark(err, ErrFault)}
	}

	return Result{Value: out}
}
