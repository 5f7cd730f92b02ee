package accessor

import (
	"github.com/cockroachdb/errors"

	"fieldmodel/entity"
)

// Kind names the built-in accessors register under.
const (
	KindList = "list"
	KindMap  = "map"
	KindTime = "time"
)

// ErrNotRaw is returned when a value holds something other than a raw value
// tree.
var ErrNotRaw = errors.New("value is not a raw value tree")

// Register adds the built-in accessors to reg.
func Register(reg *entity.Registry) error {
	return errors.CombineErrors(
		errors.CombineErrors(
			entity.Register(reg, KindList, NewList),
			entity.Register(reg, KindMap, NewMap),
		),
		entity.Register(reg, KindTime, NewTime),
	)
}

// NewRegistry returns a registry holding the built-in accessors.
func NewRegistry() *entity.Registry {
	reg := entity.NewRegistry()
	if err := Register(reg); err != nil {
		panic(err)
	}

	return reg
}
