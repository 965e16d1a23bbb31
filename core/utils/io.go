package utils

import (
	"compress/gzip"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wangkuiyi/skipgram/core/sgns"
)

const gzipExt = ".gz"

type gzipReadCloser struct {
	*gzip.Reader
	f *os.File
}

func (g gzipReadCloser) Close() error {
	e := g.Reader.Close()
	if e2 := g.f.Close(); e == nil {
		e = e2
	}
	return e
}

type gzipWriteCloser struct {
	*gzip.Writer
	f *os.File
}

func (g gzipWriteCloser) Close() error {
	e := g.Writer.Close()
	if e2 := g.f.Close(); e == nil {
		e = e2
	}
	return e
}

// Open opens filename for reading, decompressing it if its extension
// is .gz.
func Open(filename string) (io.ReadCloser, error) {
	f, e := os.Open(filename)
	if e != nil {
		return nil, errors.Wrapf(e, "cannot open %s", filename)
	}
	if path.Ext(filename) != gzipExt {
		return f, nil
	}
	r, e := gzip.NewReader(f)
	if e != nil {
		f.Close()
		return nil, errors.Wrapf(e, "cannot decompress %s", filename)
	}
	return gzipReadCloser{r, f}, nil
}

// Create creates filename, compressing its content if its extension
// is .gz.  Parent directories are created as needed.
func Create(filename string) (io.WriteCloser, error) {
	if dir := filepath.Dir(filename); dir != "" {
		if e := os.MkdirAll(dir, 0755); e != nil {
			return nil, errors.Wrapf(e, "cannot create directory %s", dir)
		}
	}
	f, e := os.Create(filename)
	if e != nil {
		return nil, errors.Wrapf(e, "cannot create %s", filename)
	}
	if path.Ext(filename) != gzipExt {
		return f, nil
	}
	return gzipWriteCloser{gzip.NewWriter(f), f}, nil
}

// ReadFile returns the whole content of filename.
func ReadFile(filename string) (string, error) {
	r, e := Open(filename)
	if e != nil {
		return "", e
	}
	defer r.Close()
	b, e := io.ReadAll(r)
	if e != nil {
		return "", errors.Wrapf(e, "cannot read %s", filename)
	}
	return string(b), nil
}

func LoadVocab(filename string) (*sgns.Vocabulary, error) {
	r, e := Open(filename)
	if e != nil {
		return nil, e
	}
	defer r.Close()
	vocab := sgns.NewVocabulary()
	if e := vocab.Load(r); e != nil {
		return nil, errors.Wrapf(e, "cannot load vocab %s", filename)
	}
	return vocab, nil
}

// LoadVocabIfExists is LoadVocab, except that it returns a nil
// vocabulary and no error if filename does not exist.
func LoadVocabIfExists(filename string) (*sgns.Vocabulary, error) {
	if _, e := os.Stat(filename); errors.Is(e, os.ErrNotExist) {
		return nil, nil
	}
	logrus.Infof("Loading vocab %s ... ", filename)
	vocab, e := LoadVocab(filename)
	if e != nil {
		return nil, e
	}
	logrus.Infof("Done loading vocabulary: %d tokens.", vocab.Len())
	return vocab, nil
}

func SaveVocab(vocab *sgns.Vocabulary, filename string) (err error) {
	w, e := Create(filename)
	if e != nil {
		return e
	}
	defer func() {
		if e := w.Close(); e != nil && err == nil {
			err = errors.Wrapf(e, "cannot close %s", filename)
		}
	}()
	if e := vocab.Save(w); e != nil {
		return errors.Wrapf(e, "cannot save vocab %s", filename)
	}
	return nil
}

func SaveVocabOrDie(vocab *sgns.Vocabulary, filename string) {
	if e := SaveVocab(vocab, filename); e != nil {
		logrus.Fatalf("Failed saving vocab: %v", e)
	}
	logrus.Infof("Saved vocabulary of %d tokens to %s.", vocab.Len(), filename)
}
