// Package match ranks known names by similarity to an unknown one, so schema
// diagnostics can suggest what a misspelled accessor kind, mutator or field
// name was meant to be.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - LevenshteinNormalized: edit distance turned into a 0-1 similarity
//   - RankNames: ranks candidate names against a target
//   - Suggest: the best few candidates above DefaultMinScore
package match
