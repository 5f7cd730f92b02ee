package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankNames(t *testing.T) {
	candidates := RankNames("createdAt", []string{"email", "created_at", "updated_at", "created"})

	require.Len(t, candidates, 4)
	assert.Equal(t, "created", candidates[0].Name)
	assert.Equal(t, "created_at", candidates[1].Name)
	assert.InDelta(t, 1.0, candidates[0].Score, 0.001)
	assert.Equal(t, "email", candidates[3].Name)
	assert.True(t, candidates.IsAmbiguous(DefaultAmbiguityThreshold))
}

func TestCandidateList(t *testing.T) {
	list := CandidateList{
		{Name: "b", Score: 0.5},
		{Name: "a", Score: 0.5},
		{Name: "c", Score: 0.9},
	}

	assert.Nil(t, CandidateList(nil).Best())
	assert.False(t, list[:1].IsAmbiguous(1))

	ranked := RankNames("x", nil)
	assert.Empty(t, ranked)

	assert.Len(t, list.Top(2), 2)
	assert.Len(t, list.Top(10), 3)
	assert.Len(t, list.AboveThreshold(0.6), 1)
}

func TestSuggest(t *testing.T) {
	known := []string{"trim", "lower", "upper", "int", "float", "bool"}

	assert.Equal(t, []string{"trim"}, Suggest("trimm", known))
	assert.Equal(t, []string{"upper"}, Suggest("uper", known))
	assert.Empty(t, Suggest("trim", known))
	assert.Empty(t, Suggest("serialize", known))
}
