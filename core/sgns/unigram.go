package sgns

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/wangkuiyi/skipgram/core/hist"
)

// UnigramPower smooths the unigram distribution of negative words.
const UnigramPower = 0.75

var ErrEmptyCorpus = errors.New("cannot build sampling table from empty corpus")

// UnigramTable draws word ids with probability proportional to
// count^UnigramPower.  It uses Vose's alias method: building is O(n)
// in the number of distinct ids and every draw is O(1).  A table is
// immutable once built and safe for concurrent draws with distinct
// generators.
type UnigramTable struct {
	Ids     []int32   // distinct ids in corpus discovery order
	Weights []float64 // count^UnigramPower of Ids[i]
	prob    []float64
	alias   []int32
	index   map[int32]int
}

// NewUnigramTable counts ids over the encoded corpus and builds the
// alias table.
func NewUnigramTable(corpus []int32) (*UnigramTable, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}
	return newUnigramTable(hist.CountIds(corpus)), nil
}

// h must not be empty.
func newUnigramTable(h *hist.Ordered) *UnigramTable {
	n := h.Len()
	t := &UnigramTable{
		Ids:     make([]int32, 0, n),
		Weights: make([]float64, 0, n),
		index:   make(map[int32]int, n),
	}
	h.ForEach(func(id int, count int64) error {
		t.index[int32(id)] = len(t.Ids)
		t.Ids = append(t.Ids, int32(id))
		t.Weights = append(t.Weights, math.Pow(float64(count), UnigramPower))
		return nil
	})
	t.buildAlias()
	return t
}

func (t *UnigramTable) buildAlias() {
	n := len(t.Weights)
	t.prob = make([]float64, n)
	t.alias = make([]int32, n)

	scaled := make([]float64, n)
	copy(scaled, t.Weights)
	floats.Scale(float64(n)/floats.Sum(scaled), scaled)

	small := make([]int32, 0, n)
	large := make([]int32, 0, n)
	for i, p := range scaled {
		if p < 1 {
			small = append(small, int32(i))
		} else {
			large = append(large, int32(i))
		}
	}
	for len(small) > 0 && len(large) > 0 {
		s, l := small[len(small)-1], large[len(large)-1]
		small = small[:len(small)-1]
		t.prob[s] = scaled[s]
		t.alias[s] = l
		scaled[l] -= 1 - scaled[s]
		if scaled[l] < 1 {
			large = large[:len(large)-1]
			small = append(small, l)
		}
	}
	// Leftovers are 1 up to rounding error.
	for _, i := range large {
		t.prob[i] = 1
		t.alias[i] = i
	}
	for _, i := range small {
		t.prob[i] = 1
		t.alias[i] = i
	}
}

func (t *UnigramTable) Len() int {
	return len(t.Ids)
}

// Probability returns the normalized sampling probability of id.
func (t *UnigramTable) Probability(id int32) float64 {
	i, ok := t.index[id]
	if !ok {
		return 0
	}
	return t.Weights[i] / floats.Sum(t.Weights)
}

func (t *UnigramTable) Contains(id int32) bool {
	_, ok := t.index[id]
	return ok
}

// Draw returns one id.
func (t *UnigramTable) Draw(rng *rand.Rand) int32 {
	i := rng.IntN(len(t.prob))
	if rng.Float64() < t.prob[i] {
		return t.Ids[i]
	}
	return t.Ids[t.alias[i]]
}

// Fill overwrites buf with independent draws.
func (t *UnigramTable) Fill(buf []int32, rng *rand.Rand) {
	for i := range buf {
		buf[i] = t.Draw(rng)
	}
}

// Covers reports whether excluded contains every id of the table, in
// which case rejection sampling against excluded would never stop.
func (t *UnigramTable) Covers(excluded []int32) bool {
	if len(excluded) < len(t.Ids) {
		return false
	}
	seen := make(map[int32]struct{}, len(t.Ids))
	for _, id := range excluded {
		if t.Contains(id) {
			seen[id] = struct{}{}
		}
	}
	return len(seen) == len(t.Ids)
}
