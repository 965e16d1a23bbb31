package sgns

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnigramTable(t *testing.T) {
	// a:4 b:2 c:1 in discovery order.
	table, e := NewUnigramTable([]int32{1, 2, 1, 2, 1, 3, 1})
	require.NoError(t, e)
	assert.Equal(t, []int32{1, 2, 3}, table.Ids)
	assert.InDeltaSlice(t,
		[]float64{math.Pow(4, 0.75), math.Pow(2, 0.75), 1},
		table.Weights, 1e-12)
	assert.Equal(t, 3, table.Len())
	assert.True(t, table.Contains(3))
	assert.False(t, table.Contains(0))

	sum := math.Pow(4, 0.75) + math.Pow(2, 0.75) + 1
	assert.InDelta(t, 1/sum, table.Probability(3), 1e-12)
	assert.Equal(t, 0.0, table.Probability(7))

	_, e = NewUnigramTable(nil)
	assert.ErrorIs(t, e, ErrEmptyCorpus)
}

func TestUnigramTableDrawFollowsDistribution(t *testing.T) {
	table, e := NewUnigramTable([]int32{5, 5, 5, 5, 5, 5, 5, 5, 7, 9, 9})
	require.NoError(t, e)

	const draws = 200000
	rng := CreateTestingRand()
	counts := map[int32]int{}
	for i := 0; i < draws; i++ {
		counts[table.Draw(rng)]++
	}
	assert.Len(t, counts, 3)
	for _, id := range table.Ids {
		assert.InDelta(t, table.Probability(id),
			float64(counts[id])/draws, 0.01, "id %d", id)
	}
}

func TestUnigramTableSingleWord(t *testing.T) {
	table, e := NewUnigramTable([]int32{4, 4})
	require.NoError(t, e)
	rng := CreateTestingRand()
	for i := 0; i < 10; i++ {
		assert.Equal(t, int32(4), table.Draw(rng))
	}
}

func TestUnigramTableCovers(t *testing.T) {
	table, e := NewUnigramTable([]int32{1, 2, 3})
	require.NoError(t, e)
	assert.False(t, table.Covers([]int32{1, 2}))
	assert.False(t, table.Covers([]int32{1, 2, 2, 0}))
	assert.True(t, table.Covers([]int32{3, 2, 1}))
	assert.True(t, table.Covers([]int32{3, 0, 2, 1, 1}))
}
