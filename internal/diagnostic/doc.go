// Package diagnostic provides structured errors, warnings and notes produced
// while validating model schemas.
//
// Key capabilities:
//   - Unknown accessor kinds and mutators
//   - Expressions that do not compile
//   - Conflicting fillable and secured lists
package diagnostic
