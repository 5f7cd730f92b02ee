// Package entity provides the field store every mapped record is built on.
//
// An Entity owns an ordered mapping of field names to values. A value is
// either raw (a primitive, nil, or a list or string keyed map of raw values)
// or an Accessor: a stateful wrapper that converts a raw value into a richer
// representation and back.
//
// # Field access protocol
//
// Reads and writes are routed per field and per call:
//
//   - values that already are accessors are stored as clones, never aliased
//   - unfiltered writes, and nil written to a nullable field, are stored verbatim
//   - fields with an accessor descriptor are wrapped (or updated in place when
//     the stored accessor has the registered type)
//   - otherwise a setter mutator, when present, transforms the value; a
//     faulting setter keeps the prior value
//
// Reads memoize constructed accessors in the field slot, so repeated reads of
// an accessor backed field return the same instance. Getter faults are
// retried once with nil; getters must therefore tolerate a nil input.
//
// # Mass assignment
//
// SetFields consults the FillPolicy for every name unless told to fill all
// fields, skips unauthorized names silently, and absorbs every per field
// failure. It never returns an error.
//
// # Packing
//
// Pack converts the entity into an accessor free, ordered value tree suitable
// for storage or serialization.
//
// # Lifetime
//
// Accessors receive a Context holding a weak handle to the owning entity.
// Dispose must be called once when the entity is no longer used: it clears
// every field, disposes accessors that need it and makes the handle resolve
// to nil. An Entity is not safe for concurrent use.
package entity
