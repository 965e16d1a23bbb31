package dataset

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/wangkuiyi/skipgram/core/sgns"
)

// Batch is a column-wise slice of examples, the layout an embedding
// model consumes.
type Batch struct {
	Index   int // position of the batch in the epoch
	Worker  int
	Centres []int32
	Others  []int32
	Labels  []float32
}

func (b *Batch) Len() int {
	return len(b.Labels)
}

// Loader cuts a dataset into batches.  With one worker it reads the
// dataset's own store in order.  With more, each worker owns a store
// of its own and is assigned a contiguous range of batch indices, and
// batches arrive interleaved.  Worker stores persist across epochs.
//
// A sequential store ignores indices, so every worker reads its own
// stream from the first window.  With n workers one epoch serves the
// first 1/n of the examples n times, with independent negatives, and
// the rest of the windows are reached only in later epochs.  Set
// Params.Indexed to have every index served exactly once per epoch.
type Loader struct {
	Dataset    *Dataset
	BatchSize  int
	NumWorkers int

	stores []sgns.ExampleStore
}

func NewLoader(d *Dataset, batchSize, numWorkers int) *Loader {
	if batchSize <= 0 {
		panic(fmt.Sprintf("batchSize (%d) <= 0", batchSize))
	}
	if numWorkers <= 0 {
		panic(fmt.Sprintf("numWorkers (%d) <= 0", numWorkers))
	}
	l := &Loader{Dataset: d, BatchSize: batchSize, NumWorkers: numWorkers}
	if numWorkers == 1 {
		l.stores = []sgns.ExampleStore{d.store}
	} else {
		for w := 0; w < numWorkers; w++ {
			l.stores = append(l.stores, d.NewStore(w+1))
		}
	}
	return l
}

// NumBatches returns the number of batches per epoch.  The last batch
// may be smaller than BatchSize.
func (l *Loader) NumBatches() int {
	return (l.Dataset.Len() + l.BatchSize - 1) / l.BatchSize
}

func (l *Loader) batch(store sgns.ExampleStore, index, worker int) (Batch, error) {
	begin := index * l.BatchSize
	end := min(begin+l.BatchSize, l.Dataset.Len())
	b := Batch{
		Index:   index,
		Worker:  worker,
		Centres: make([]int32, 0, end-begin),
		Others:  make([]int32, 0, end-begin),
		Labels:  make([]float32, 0, end-begin),
	}
	for i := begin; i < end; i++ {
		ex, e := store.At(i)
		if e != nil {
			return Batch{}, errors.Wrapf(e, "example %d of %s", i,
				l.Dataset.Split)
		}
		b.Centres = append(b.Centres, ex.Centre)
		b.Others = append(b.Others, ex.Other)
		b.Labels = append(b.Labels, float32(ex.Label))
	}
	return b, nil
}

// Epoch produces every batch once and calls fn on each, from the
// calling goroutine.  It stops at the first error returned by fn or a
// worker, or when ctx is done.
func (l *Loader) Epoch(ctx context.Context, fn func(Batch) error) error {
	n := l.NumBatches()
	if l.NumWorkers == 1 {
		for i := 0; i < n; i++ {
			if e := ctx.Err(); e != nil {
				return e
			}
			b, e := l.batch(l.stores[0], i, 0)
			if e != nil {
				return e
			}
			if e := fn(b); e != nil {
				return e
			}
		}
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	ch := make(chan Batch, l.NumWorkers)
	for w, r := range NewSharder(l.NumWorkers).Shard(n) {
		store := l.stores[w]
		g.Go(func() error {
			for i := r.Begin; i < r.End; i++ {
				if e := gctx.Err(); e != nil {
					return e
				}
				b, e := l.batch(store, i, w)
				if e != nil {
					return e
				}
				select {
				case ch <- b:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	var workerErr error
	go func() {
		workerErr = g.Wait()
		close(ch)
	}()

	var fnErr error
	for b := range ch {
		if fnErr != nil {
			continue
		}
		if fnErr = fn(b); fnErr != nil {
			cancel()
		}
	}
	if fnErr != nil {
		return fnErr
	}
	return workerErr
}
