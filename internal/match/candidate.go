package match

import "sort"

// Confidence thresholds for suggestions.
const (
	// DefaultMinScore is the minimum score for a name to be suggested.
	DefaultMinScore = 0.6
	// DefaultAmbiguityThreshold is the score difference that marks ambiguity.
	DefaultAmbiguityThreshold = 0.1
	// DefaultSuggestions is the number of names Suggest returns at most.
	DefaultSuggestions = 3
)

// Candidate is a known name scored against a target.
type Candidate struct {
	Name string

	// Score is the normalized Levenshtein similarity (0-1), the better of the
	// plain and the suffix stripped comparison.
	Score float64

	// Metadata for debugging/explanation
	NormalizedName string
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankNames scores every name against target.
// Returns candidates sorted by score (descending).
func RankNames(target string, names []string) CandidateList {
	targetNorm := NormalizeIdent(target)
	targetNormStripped := NormalizeIdentWithSuffixStrip(target)

	candidates := make(CandidateList, 0, len(names))
	for _, name := range names {
		norm := NormalizeIdent(name)

		score := LevenshteinNormalized(norm, targetNorm)
		if stripped := LevenshteinNormalized(NormalizeIdentWithSuffixStrip(name), targetNormStripped); stripped > score {
			score = stripped
		}

		candidates = append(candidates, Candidate{Name: name, Score: score, NormalizedName: norm})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to DefaultSuggestions names close enough to target, best
// first. Names identical to target are never suggested.
func Suggest(target string, names []string) []string {
	var out []string
	for _, c := range RankNames(target, names).AboveThreshold(DefaultMinScore).Top(DefaultSuggestions + 1) {
		if c.Name == target || len(out) == DefaultSuggestions {
			continue
		}
		out = append(out, c.Name)
	}

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}
	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}
	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}
	return &c[0]
}

// IsAmbiguous returns true if the top two candidates are within the threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}
	return c[0].Score-c[1].Score < threshold
}

// AboveThreshold returns candidates with score above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}
	return result
}
