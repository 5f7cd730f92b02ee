package mutator

import "reflect"

var (
	intType   = reflect.TypeOf(0)
	floatType = reflect.TypeOf(float64(0))
)
