package utils

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wangkuiyi/skipgram/core/sgns"
)

func writeFile(t *testing.T, filename, content string) {
	w, e := Create(filename)
	require.NoError(t, e)
	_, e = io.WriteString(w, content)
	require.NoError(t, e)
	require.NoError(t, w.Close())
}

func TestReadFilePlainAndGzip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"corpus", "corpus.gz", "sub/dir/corpus.gz"} {
		filename := filepath.Join(dir, name)
		writeFile(t, filename, "apple unknown orange\n")
		s, e := ReadFile(filename)
		require.NoError(t, e, name)
		assert.Equal(t, "apple unknown orange\n", s)
	}

	raw, e := os.ReadFile(filepath.Join(dir, "corpus.gz"))
	require.NoError(t, e)
	assert.Equal(t, []byte{0x1f, 0x8b}, raw[:2], "gzip magic")
}

func TestReadFileMissing(t *testing.T) {
	_, e := ReadFile(filepath.Join(t.TempDir(), "nonexistent"))
	assert.ErrorIs(t, e, os.ErrNotExist)
}

func TestSaveAndLoadVocab(t *testing.T) {
	dir := t.TempDir()
	v := sgns.CreateTestingVocabulary()
	for _, name := range []string{"vocab.json", "vocab.json.gz"} {
		filename := filepath.Join(dir, name)
		require.NoError(t, SaveVocab(v, filename))
		v1, e := LoadVocab(filename)
		require.NoError(t, e)
		assert.Equal(t, v.Tokens, v1.Tokens)
		assert.Equal(t, v.Len(), v1.Len())
		assert.Equal(t, v.Encode([]string{"a", "zzz", "c"}),
			v1.Encode([]string{"a", "zzz", "c"}))
	}

	v2, e := LoadVocabIfExists(filepath.Join(dir, "vocab.json"))
	require.NoError(t, e)
	assert.Equal(t, v.Tokens, v2.Tokens)
}

func TestLoadVocabMalformed(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "vocab.json")
	writeFile(t, filename, "{not json")
	_, e := LoadVocab(filename)
	assert.Error(t, e)

	_, e = LoadVocab(filename + ".missing")
	assert.ErrorIs(t, e, os.ErrNotExist)
}

func TestLoadVocabIfExists(t *testing.T) {
	dir := t.TempDir()
	v, e := LoadVocabIfExists(filepath.Join(dir, "vocab.json"))
	require.NoError(t, e)
	assert.Nil(t, v)

	filename := filepath.Join(dir, "broken.json")
	writeFile(t, filename, `{"<unk>": 0, "a": 7}`)
	_, e = LoadVocabIfExists(filename)
	assert.Error(t, e)
}
