package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"trim", "trim", 0},
		{"", "list", 4},
		{"time", "tim", 1},
		{"upper", "uper", 1},
		{"kitten", "sitting", 3},
		{"lower", "upper", 3},
		{"created_at", "updated_at", 3},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestLevenshteinNormalized(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected float64
	}{
		{"", "", 1.0},
		{"map", "map", 1.0},
		{"abc", "xyz", 0.0},
		{"kitten", "sitting", 1.0 - 3.0/7.0},
		{"list", "lists", 1.0 - 1.0/5.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.expected, LevenshteinNormalized(tt.a, tt.b), 0.001)
		})
	}
}

func TestNormalizedLevenshteinScore(t *testing.T) {
	assert.InDelta(t, 1.0, NormalizedLevenshteinScore("created_at", "createdAt"), 0.001)
	assert.InDelta(t, 1.0, NormalizedLevenshteinScoreWithSuffixStrip("user_id", "user"), 0.001)
	assert.Less(t, NormalizedLevenshteinScore("email", "password"), 0.5)
}

func BenchmarkLevenshtein(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Levenshtein("created_at", "updated_at")
	}
}
