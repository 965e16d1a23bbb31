// Package dataset turns split corpus files into example stores that
// batching loaders consume.
package dataset

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wangkuiyi/skipgram/core/hist"
	"github.com/wangkuiyi/skipgram/core/sgns"
	"github.com/wangkuiyi/skipgram/core/text"
	"github.com/wangkuiyi/skipgram/core/utils"
)

const (
	DefaultCorpusPattern = "wikitext-2/wiki.%s.tokens"
	DefaultWindowSize    = 10
)

// Splits lists the valid split names.
var Splits = []string{"train", "valid", "test"}

var ErrInvalidSplit = errors.New("invalid split")

// ValidateSplit returns ErrInvalidSplit unless split is in Splits.
func ValidateSplit(split string) error {
	if !slices.Contains(Splits, split) {
		return errors.Wrapf(ErrInvalidSplit, "split must be one of %v, got %q",
			Splits, split)
	}
	return nil
}

// Params are the knobs of example generation shared by all splits.
type Params struct {
	DataDir            string
	CorpusPattern      string
	SubsampleThreshold float64
	SamplerCacheSize   int
	WindowSize         int
	NegativePerContext int
	Seed               uint64
	Indexed            bool
}

func DefaultParams() Params {
	return Params{
		CorpusPattern:      DefaultCorpusPattern,
		SubsampleThreshold: sgns.DefaultSubsampleThreshold,
		SamplerCacheSize:   sgns.DefaultSamplerCacheSize,
		WindowSize:         DefaultWindowSize,
		NegativePerContext: sgns.DefaultNegativePerContext,
		Seed:               42,
	}
}

func (p Params) Validate() error {
	switch {
	case p.WindowSize < 1:
		return errors.Wrapf(sgns.ErrWindowSize, "got %d", p.WindowSize)
	case p.SamplerCacheSize <= 0:
		return errors.Errorf("sampler cache size (%d) <= 0", p.SamplerCacheSize)
	case p.NegativePerContext < 0:
		return errors.Errorf("negative per context (%d) < 0",
			p.NegativePerContext)
	case p.SubsampleThreshold < 0:
		return errors.Errorf("subsample threshold (%g) < 0",
			p.SubsampleThreshold)
	}
	return nil
}

// CorpusFile returns the corpus file of split.
func (p Params) CorpusFile(split string) string {
	return filepath.Join(p.DataDir, fmt.Sprintf(p.CorpusPattern, split))
}

// Generators are derived from Seed, one stream per (split, purpose,
// worker), so that splits and workers draw independently.
const (
	streamSubsample = iota + 1
	streamNegative
	streamIndexed
)

func (p Params) stream(split string, purpose, worker int) uint64 {
	return uint64(slices.Index(Splits, split)+1)<<48 |
		uint64(purpose)<<32 | uint64(uint32(worker))
}

func (p Params) rand(split string, purpose, worker int) *rand.Rand {
	return rand.New(rand.NewPCG(p.Seed, p.stream(split, purpose, worker)))
}

// Dataset is the examples of one split.  Its own store, used through
// Len and At, follows the contract of sgns.ExampleStore.  Loaders
// with several workers obtain independent stores from NewStore.
type Dataset struct {
	Split   string
	Params  Params
	Vocab   *sgns.Vocabulary
	Counts  hist.Words // token counts before subsampling
	Ids     []int32    // subsampled and encoded corpus
	Windows []sgns.Window
	Table   *sgns.UnigramTable

	id     string
	log    logrus.FieldLogger
	store  sgns.ExampleStore
	mu     sync.Mutex
	stores []sgns.ExampleStore
}

// Load reads the corpus file of split and builds its dataset.  If
// vocab is nil, the dataset builds its own vocabulary from the
// corpus; otherwise it encodes with vocab, which is not modified.
func Load(split string, vocab *sgns.Vocabulary, p Params,
	log logrus.FieldLogger) (*Dataset, error) {
	if e := ValidateSplit(split); e != nil {
		return nil, e
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	filename := p.CorpusFile(split)
	log.WithField("split", split).Infof("Loading corpus %s ... ", filename)
	content, e := utils.ReadFile(filename)
	if e != nil {
		return nil, errors.Wrapf(e, "loading %s split", split)
	}
	return New(split, content, vocab, p, log)
}

// New builds the dataset of split from raw corpus text.
func New(split, content string, vocab *sgns.Vocabulary, p Params,
	log logrus.FieldLogger) (*Dataset, error) {
	if e := ValidateSplit(split); e != nil {
		return nil, e
	}
	if e := p.Validate(); e != nil {
		return nil, e
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	d := &Dataset{
		Split:  split,
		Params: p,
		Vocab:  vocab,
		id:     uuid.NewString(),
	}
	d.log = log.WithFields(logrus.Fields{"split": split, "dataset": d.id})

	tokens := text.Preprocess(content)
	d.Counts = hist.CountWords(tokens)
	if d.Vocab == nil {
		d.Vocab = sgns.NewVocabulary()
		d.Vocab.Build(tokens)
		d.log.Infof("Built vocabulary: %d tokens.", d.Vocab.Len())
	}

	kept := sgns.Subsample(tokens, p.SubsampleThreshold,
		p.rand(split, streamSubsample, 0))
	d.log.Debugf("Subsampling kept %d out of %d tokens.", len(kept), len(tokens))
	d.Ids = d.Vocab.Encode(kept)

	table, e := sgns.NewUnigramTable(d.Ids)
	if e != nil {
		return nil, errors.Wrapf(e, "%s split", split)
	}
	d.Table = table
	if d.Windows, e = sgns.NewWindows(d.Ids, p.WindowSize); e != nil {
		return nil, e
	}

	d.store = d.NewStore(0)
	d.log.WithFields(logrus.Fields{
		"pairs":    len(d.Windows),
		"examples": d.Len(),
	}).Info("Done preparing dataset.")
	return d, nil
}

// NewStore returns an example store over the windows of d.  Stores
// of distinct workers draw negatives from distinct generators.  With
// Params.Indexed all workers share one concurrency-safe store.
func (d *Dataset) NewStore(worker int) sgns.ExampleStore {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.Params.Indexed && len(d.stores) > 0 {
		return d.stores[0]
	}
	var s sgns.ExampleStore
	if d.Params.Indexed {
		// Mix the split into the seed so splits get distinct negatives.
		seed := d.Params.Seed ^ d.Params.stream(d.Split, streamIndexed, 0)
		s = sgns.NewIndexedStore(d.Windows, d.Table, d.Params.WindowSize,
			d.Params.NegativePerContext, seed)
	} else {
		sampler := sgns.NewNegativeSampler(d.Table, d.Params.SamplerCacheSize,
			d.Params.rand(d.Split, streamNegative, worker))
		s = sgns.NewSequentialStore(d.Windows, sampler,
			d.Params.NegativePerContext)
	}
	d.stores = append(d.stores, s)
	return s
}

// Len returns the number of examples in one pass over the windows.
func (d *Dataset) Len() int {
	return d.store.Len()
}

// At returns an example of d's own store.  Unless Params.Indexed is
// set, i is ignored and calls walk a cyclic stream; see
// sgns.SequentialStore.
func (d *Dataset) At(i int) (sgns.Example, error) {
	return d.store.At(i)
}

func (d *Dataset) Id() string {
	return d.id
}

func (d *Dataset) Log() logrus.FieldLogger {
	return d.log
}

func (d *Dataset) sum(f func(s sgns.ExampleStore) int64) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	var n int64
	for _, s := range d.stores {
		n += f(s)
	}
	return n
}

// Refills sums negative cache refills over all stores of d.
func (d *Dataset) Refills() int64 {
	return d.sum(func(s sgns.ExampleStore) int64 {
		if seq, ok := s.(*sgns.SequentialStore); ok {
			return seq.Sampler().Refills()
		}
		return 0
	})
}

func (d *Dataset) Restarts() int64 {
	return d.sum(func(s sgns.ExampleStore) int64 {
		if seq, ok := s.(*sgns.SequentialStore); ok {
			return seq.Restarts()
		}
		return 0
	})
}

func (d *Dataset) Served() int64 {
	return d.sum(func(s sgns.ExampleStore) int64 {
		switch s := s.(type) {
		case *sgns.SequentialStore:
			return s.Served()
		case *sgns.IndexedStore:
			return s.Served()
		}
		return 0
	})
}

func (d *Dataset) SplitName() string {
	return d.Split
}
