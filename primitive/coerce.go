package primitive

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

// ErrNotCoercible is returned by Coerce when a value cannot be represented as
// the requested type without loss.
var ErrNotCoercible = errors.New("value is not coercible to the requested type")

// Coerce converts v into a value of type t. Untyped nil becomes the zero value
// of t. Numbers are converted between kinds only when the conversion is exact
// (safe number category); named primitive types (enums) accept their
// underlying primitive.
func Coerce(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		out := reflect.New(t).Elem()
		out.Set(rv)
		return out, nil
	}

	src, dst := FromReflectType(rv.Type()), FromReflectType(t)

	switch {
	case src.IsNumber() && dst.IsNumber():
		return convertExact(rv, t)
	case dst == KindPrimitiveEnum && rv.Type().ConvertibleTo(t) && src.IsScalar():
		if t.Kind() == reflect.String && rv.Kind() != reflect.String {
			// string(int) would produce a rune, never what a caller means.
			break
		}
		return rv.Convert(t), nil
	case src == KindPrimitiveEnum && dst.IsScalar() && rv.Type().ConvertibleTo(t):
		if t.Kind() == reflect.String && rv.Kind() != reflect.String {
			break
		}
		return rv.Convert(t), nil
	}

	return reflect.Value{}, errors.Wrapf(ErrNotCoercible, "%s to %s", rv.Type(), t)
}

func convertExact(rv reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !rv.Type().ConvertibleTo(t) {
		return reflect.Value{}, errors.Wrapf(ErrNotCoercible, "%s to %s", rv.Type(), t)
	}

	out := rv.Convert(t)
	if !out.Convert(rv.Type()).Equal(rv) {
		return reflect.Value{}, errors.Wrapf(ErrNotCoercible, "%v loses precision as %s", rv.Interface(), t)
	}

	// Sign flips survive a round trip (int8(-1) -> uint8(255) -> int8(-1)).
	if rv.CanInt() && out.CanUint() && rv.Int() < 0 {
		return reflect.Value{}, errors.Wrapf(ErrNotCoercible, "%v is negative for %s", rv.Interface(), t)
	}
	if rv.CanUint() && out.CanInt() && out.Int() < 0 {
		return reflect.Value{}, errors.Wrapf(ErrNotCoercible, "%v overflows %s", rv.Interface(), t)
	}

	return out, nil
}
