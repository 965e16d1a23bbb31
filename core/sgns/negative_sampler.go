package sgns

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync/atomic"

	"github.com/pkg/errors"
)

const (
	DefaultSamplerCacheSize   = 100000
	DefaultNegativePerContext = 5
)

// ErrExhaustedVocabulary is returned when the excluded contexts cover
// every word that could be drawn.
var ErrExhaustedVocabulary = errors.New("contexts exclude every word in the sampling table")

// NegativeSampler draws negative words from a UnigramTable through a
// cache of pre-drawn ids.  When the cursor reaches the end of the
// cache, the whole cache is drawn again.  A NegativeSampler owns its
// generator and cache and must not be shared between goroutines.
type NegativeSampler struct {
	table   *UnigramTable
	rng     *rand.Rand
	cache   []int32
	cursor  int
	refills atomic.Int64
}

func NewNegativeSampler(table *UnigramTable, cacheSize int,
	rng *rand.Rand) *NegativeSampler {
	if cacheSize <= 0 {
		panic(fmt.Sprintf("cacheSize (%d) <= 0", cacheSize))
	}
	s := &NegativeSampler{
		table: table,
		rng:   rng,
		cache: make([]int32, cacheSize),
	}
	table.Fill(s.cache, rng)
	return s
}

func (s *NegativeSampler) Table() *UnigramTable {
	return s.table
}

// Refills returns how many times the cache has been regenerated.
func (s *NegativeSampler) Refills() int64 {
	return s.refills.Load()
}

func (s *NegativeSampler) next() int32 {
	id := s.cache[s.cursor]
	s.cursor++
	if s.cursor >= len(s.cache) {
		s.table.Fill(s.cache, s.rng)
		s.cursor = 0
		s.refills.Add(1)
	}
	return id
}

// Sample returns k ids none of which is in contexts.  A draw that
// hits a context word is rejected and costs one cache slot.  The
// centre word is not excluded, so a negative may equal it.
func (s *NegativeSampler) Sample(contexts []int32, k int) ([]int32, error) {
	if k <= 0 {
		return []int32{}, nil
	}
	if s.table.Covers(contexts) {
		return nil, ErrExhaustedVocabulary
	}
	negatives := make([]int32, 0, k)
	for len(negatives) < k {
		if id := s.next(); !slices.Contains(contexts, id) {
			negatives = append(negatives, id)
		}
	}
	return negatives, nil
}
