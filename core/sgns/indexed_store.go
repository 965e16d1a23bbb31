package sgns

import (
	"math/rand/v2"
	"slices"
	"sync/atomic"

	"github.com/pkg/errors"
)

// IndexedStore addresses examples by arithmetic on the index instead
// of walking a stream.  Index i decomposes into a window, a context
// slot within the window, and either the positive example or one of
// the negatives of that slot.  Negatives of a slot are drawn from a
// generator seeded by (seed, slot number), so At(i) always returns
// the same example and concurrent calls are safe.
type IndexedStore struct {
	windows  []Window
	table    *UnigramTable
	w        int
	negative int
	seed     uint64
	length   int
	served   atomic.Int64
}

func NewIndexedStore(windows []Window, table *UnigramTable, windowSize,
	negativePerContext int, seed uint64) *IndexedStore {
	return &IndexedStore{
		windows:  windows,
		table:    table,
		w:        windowSize,
		negative: negativePerContext,
		seed:     seed,
		length:   NumExamples(len(windows), windowSize, negativePerContext),
	}
}

func (s *IndexedStore) Len() int {
	return s.length
}

// Locate decomposes i, taken modulo Len(), into its window, context
// slot and position within the slot; position 0 is the positive
// example and position j > 0 is the j-th negative.
func (s *IndexedStore) Locate(i int) (window, slot, position int) {
	i %= s.length
	if i < 0 {
		i += s.length
	}
	perSlot := 1 + s.negative
	perWindow := 2 * s.w * perSlot
	window = i / perWindow
	slot = (i % perWindow) / perSlot
	position = i % perSlot
	return
}

// At returns the example at i.  Indices wrap around Len(), matching
// the cyclic behavior of SequentialStore.
func (s *IndexedStore) At(i int) (Example, error) {
	if s.length == 0 {
		return Example{}, errors.New("indexed store has no windows")
	}
	window, slot, position := s.Locate(i)
	win := s.windows[window]
	if position == 0 {
		s.served.Add(1)
		return Example{win.Centre, win.Contexts[slot], 1}, nil
	}

	negatives, e := s.Negatives(window, slot)
	if e != nil {
		return Example{}, e
	}
	s.served.Add(1)
	return Example{win.Centre, negatives[position-1], 0}, nil
}

// Negatives returns the negatives of a context slot of a window.
func (s *IndexedStore) Negatives(window, slot int) ([]int32, error) {
	contexts := s.windows[window].Contexts
	if s.table.Covers(contexts) {
		return nil, ErrExhaustedVocabulary
	}
	rng := rand.New(rand.NewPCG(s.seed, uint64(window*2*s.w+slot)))
	negatives := make([]int32, 0, s.negative)
	for len(negatives) < s.negative {
		if id := s.table.Draw(rng); !slices.Contains(contexts, id) {
			negatives = append(negatives, id)
		}
	}
	return negatives, nil
}

func (s *IndexedStore) Served() int64 {
	return s.served.Load()
}
