package primitive

import (
	"math"
	"reflect"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum classifies a raw field value: the shapes a field may hold once
// every accessor has been unwrapped.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (not raw) value for KindEnum

	KindNull
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // alias to any integer number, boolean or string
	KindList          // []any or any slice of raw values
	KindMap           // map[string]any or any string keyed map of raw values

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

// IsScalar reports whether the kind is a single primitive value, null included.
func (k KindEnum) IsScalar() bool {
	return k != 0 && k != KindList && k != KindMap
}

func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only number kinds has meaningful bits amount, but requested for: " + k.String())
	case KindInt, KindUint:
		power := 0
		for n := uint(math.MaxUint); n > 0; n >>= 1 {
			power++
		}
		return power
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
)

func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return KindNull
	}

	// check if true primitive type
	switch rtype {
	case reflect.TypeOf(int(0)):
		return KindInt
	case reflect.TypeOf(int8(0)):
		return KindInt8
	case reflect.TypeOf(int16(0)):
		return KindInt16
	case reflect.TypeOf(int32(0)):
		return KindInt32
	case reflect.TypeOf(int64(0)):
		return KindInt64
	case reflect.TypeOf(uint(0)):
		return KindUint
	case reflect.TypeOf(uint8(0)):
		return KindUint8
	case reflect.TypeOf(uint16(0)):
		return KindUint16
	case reflect.TypeOf(uint32(0)):
		return KindUint32
	case reflect.TypeOf(uint64(0)):
		return KindUint64
	case reflect.TypeOf(float32(0)):
		return KindFloat32
	case reflect.TypeOf(float64(0)):
		return KindFloat64
	case reflect.TypeOf(false):
		return KindBool
	case reflect.TypeOf(""):
		return KindString
	case timeType:
		return KindTime
	case durationType:
		return KindDuration
	}

	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Bool, reflect.String:
		return KindPrimitiveEnum
	case reflect.Slice, reflect.Array:
		return KindList
	case reflect.Map:
		if rtype.Key().Kind() == reflect.String {
			return KindMap
		}
		return 0
	}
}

// FromValue classifies the dynamic type of v. Untyped nil is KindNull.
func FromValue(v any) KindEnum {
	if v == nil {
		return KindNull
	}

	return FromReflectType(reflect.TypeOf(v))
}

// IsRaw reports whether v is a raw value tree: a scalar, or a list or string
// keyed map whose elements are raw all the way down.
func IsRaw(v any) bool {
	return isRawValue(reflect.ValueOf(v))
}

func isRawValue(rv reflect.Value) bool {
	if !rv.IsValid() {
		return true
	}

	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}
		return isRawValue(rv.Elem())
	}

	switch FromReflectType(rv.Type()) {
	case 0:
		return false
	case KindList:
		for i := 0; i < rv.Len(); i++ {
			if !isRawValue(rv.Index(i)) {
				return false
			}
		}
		return true
	case KindMap:
		iter := rv.MapRange()
		for iter.Next() {
			if !isRawValue(iter.Value()) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
