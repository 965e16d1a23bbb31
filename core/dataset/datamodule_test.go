package dataset

import (
	"context"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wangkuiyi/skipgram/core/sgns"
)

func TestPrepare(t *testing.T) {
	m := NewDataModule(createTestingParams(createTestingDataDir(t)), nil, nil)
	require.NoError(t, m.Prepare(context.Background()))

	assert.Same(t, m.Train.Vocab, m.Vocab)
	assert.Same(t, m.Vocab, m.Valid.Vocab)
	assert.Same(t, m.Vocab, m.Test.Vocab)
	assert.Equal(t, 4, m.Vocab.Len())
	assert.Equal(t, []int32{1, sgns.UnknownId, 2}, m.Valid.Ids)
	assert.Equal(t, []int32{3, 1}, m.Test.Ids)

	for i, d := range m.Datasets() {
		assert.Equal(t, Splits[i], d.Split)
		assert.Same(t, d, m.Split(d.Split))
	}
	assert.Nil(t, m.Split("dev"))
}

func TestPrepareWithVocabulary(t *testing.T) {
	vocab := sgns.NewVocabulary()
	vocab.Build([]string{"c", "a"})
	m := NewDataModule(createTestingParams(createTestingDataDir(t)), vocab, nil)
	require.NoError(t, m.Prepare(context.Background()))

	assert.Same(t, vocab, m.Train.Vocab)
	assert.Equal(t, 3, vocab.Len())
	assert.Equal(t, []int32{2, 0, 2, 0, 2, 1, 2}, m.Train.Ids)
}

func TestPrepareMissingSplit(t *testing.T) {
	dir := createTestingDataDir(t)
	p := createTestingParams(dir)
	require.NoError(t, os.Remove(p.CorpusFile("test")))

	m := NewDataModule(p, nil, nil)
	e := m.Prepare(context.Background())
	assert.True(t, errors.Is(e, os.ErrNotExist))
	assert.NotNil(t, m.Train)
}

func TestDataModuleLoader(t *testing.T) {
	m := NewDataModule(createTestingParams(createTestingDataDir(t)), nil, nil)
	_, e := m.Loader("train", 4, 1)
	assert.Error(t, e)

	require.NoError(t, m.Prepare(context.Background()))
	l, e := m.Loader("valid", 4, 2)
	require.NoError(t, e)
	assert.Same(t, m.Valid, l.Dataset)

	_, e = m.Loader("dev", 4, 1)
	assert.True(t, errors.Is(e, ErrInvalidSplit))
}
