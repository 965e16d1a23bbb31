package sgns

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// ExampleStore is the random-access view a batching loader consumes.
// At must return a valid example for every i in [0, Len()).
type ExampleStore interface {
	Len() int
	At(i int) (Example, error)
}

// SequentialStore presents a PairStream as a fixed-length collection.
// It serves examples from an internal cursor and restarts the stream
// whenever it runs out, so it never fails on out-of-range or repeated
// reads.  The index passed to At is ignored: the i-th call returns the
// i-th item of the cyclic stream whatever index it asks for.  Use
// IndexedStore when the index must be honored.
type SequentialStore struct {
	windows  []Window
	sampler  *NegativeSampler
	negative int
	length   int

	stream   *PairStream
	restarts atomic.Int64
	served   atomic.Int64
}

func NewSequentialStore(windows []Window, sampler *NegativeSampler,
	negativePerContext int) *SequentialStore {
	w := 0
	if len(windows) > 0 {
		w = len(windows[0].Contexts) / 2
	}
	return &SequentialStore{
		windows:  windows,
		sampler:  sampler,
		negative: negativePerContext,
		length:   NumExamples(len(windows), w, negativePerContext),
		stream:   NewPairStream(windows, sampler, negativePerContext),
	}
}

func (s *SequentialStore) Len() int {
	return s.length
}

// Next returns the next example of the cyclic stream.  It fails only
// if the store has no windows or negative sampling fails.
func (s *SequentialStore) Next() (Example, error) {
	if len(s.windows) == 0 {
		return Example{}, errors.New("sequential store has no windows")
	}
	ex, ok, e := s.stream.Next()
	if e != nil {
		return Example{}, e
	}
	if !ok {
		s.stream = NewPairStream(s.windows, s.sampler, s.negative)
		s.restarts.Add(1)
		if ex, _, e = s.stream.Next(); e != nil {
			return Example{}, e
		}
	}
	s.served.Add(1)
	return ex, nil
}

// At ignores i and returns Next().
func (s *SequentialStore) At(i int) (Example, error) {
	return s.Next()
}

func (s *SequentialStore) Sampler() *NegativeSampler {
	return s.sampler
}

// Restarts returns how many times the stream was exhausted and
// started over.
func (s *SequentialStore) Restarts() int64 {
	return s.restarts.Load()
}

func (s *SequentialStore) Served() int64 {
	return s.served.Load()
}
