package dataset

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wangkuiyi/skipgram/core/sgns"
)

// DataModule prepares the train, valid and test datasets with the
// same knobs.  Valid and test are encoded with the vocabulary of
// train, so words unseen in training map to sgns.UnknownId.
type DataModule struct {
	Params Params
	Vocab  *sgns.Vocabulary // nil until Prepare, unless preloaded
	Train  *Dataset
	Valid  *Dataset
	Test   *Dataset
	Log    logrus.FieldLogger
}

// NewDataModule returns an unprepared DataModule.  A non-nil vocab is
// used for all splits instead of one built from the train corpus.
func NewDataModule(p Params, vocab *sgns.Vocabulary,
	log logrus.FieldLogger) *DataModule {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DataModule{Params: p, Vocab: vocab, Log: log}
}

// Prepare loads train first, then valid and test concurrently.
func (m *DataModule) Prepare(ctx context.Context) error {
	train, e := Load("train", m.Vocab, m.Params, m.Log)
	if e != nil {
		return e
	}
	m.Train, m.Vocab = train, train.Vocab

	g, ctx := errgroup.WithContext(ctx)
	load := func(split string, d **Dataset) {
		g.Go(func() error {
			if e := ctx.Err(); e != nil {
				return e
			}
			var e error
			*d, e = Load(split, m.Vocab, m.Params, m.Log)
			return e
		})
	}
	load("valid", &m.Valid)
	load("test", &m.Test)
	if e := g.Wait(); e != nil {
		return errors.Wrap(e, "preparing evaluation splits")
	}
	return nil
}

// Datasets returns the prepared datasets in the order of Splits.
func (m *DataModule) Datasets() []*Dataset {
	return []*Dataset{m.Train, m.Valid, m.Test}
}

// Split returns the dataset of split, or nil if split is invalid or
// not prepared.
func (m *DataModule) Split(split string) *Dataset {
	switch split {
	case "train":
		return m.Train
	case "valid":
		return m.Valid
	case "test":
		return m.Test
	}
	return nil
}

// Loader returns a loader over the dataset of split.
func (m *DataModule) Loader(split string, batchSize, numWorkers int) (*Loader, error) {
	if e := ValidateSplit(split); e != nil {
		return nil, e
	}
	d := m.Split(split)
	if d == nil {
		return nil, errors.Errorf("%s split is not prepared", split)
	}
	return NewLoader(d, batchSize, numWorkers), nil
}
