// Package accessor provides the reference accessors: lists, nested
// documents, timestamps and embedded entities.
//
// Every accessor keeps a snapshot of the value it was constructed with and
// reports itself dirty once its current value differs from it.
package accessor
