// Package config holds the knobs of example generation and loading.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wangkuiyi/skipgram/core/dataset"
)

// Config contains everything needed to prepare datasets of all splits
// and to feed them to a trainer.
type Config struct {
	// DataDir contains one corpus file per split, named by
	// fmt.Sprintf(CorpusPattern, split).  Files ending in .gz are
	// decompressed on the fly.
	DataDir       string `yaml:"data_dir" json:"data_dir"`
	CorpusPattern string `yaml:"corpus_pattern" json:"corpus_pattern"`

	// VocabFile is where the training vocabulary is saved to.  If
	// LoadVocab is set and VocabFile exists, the vocabulary is loaded
	// from it instead of built from the train split.
	VocabFile string `yaml:"vocab_file" json:"vocab_file"`
	LoadVocab bool   `yaml:"load_vocab" json:"load_vocab"`

	SubsampleThreshold float64 `yaml:"subsample_threshold" json:"subsample_threshold"`
	SamplerCacheSize   int     `yaml:"sampler_cache_size" json:"sampler_cache_size"`
	WindowSize         int     `yaml:"window_size" json:"window_size"`
	NegativePerContext int     `yaml:"negative_per_context" json:"negative_per_context"`
	Seed               uint64  `yaml:"seed" json:"seed"`

	// Indexed selects the index-addressable example store.  By
	// default datasets serve a cyclic stream and ignore indices.
	Indexed bool `yaml:"indexed" json:"indexed"`

	BatchSize  int `yaml:"batch_size" json:"batch_size"`
	NumWorkers int `yaml:"num_workers" json:"num_workers"`

	LogLevel    string `yaml:"log_level" json:"log_level"`
	LogFormat   string `yaml:"log_format" json:"log_format"`
	MetricsAddr string `yaml:"metrics_addr" json:"metrics_addr"`
}

// Default returns the library defaults.
func Default() *Config {
	p := dataset.DefaultParams()
	return &Config{
		DataDir:            ".data",
		CorpusPattern:      p.CorpusPattern,
		VocabFile:          "vocab.json",
		SubsampleThreshold: p.SubsampleThreshold,
		SamplerCacheSize:   p.SamplerCacheSize,
		WindowSize:         p.WindowSize,
		NegativePerContext: p.NegativePerContext,
		Seed:               p.Seed,
		Indexed:            p.Indexed,
		BatchSize:          512,
		NumWorkers:         1,
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

// TrainingDefaults returns the settings used to train embeddings on
// WikiText-2: a milder subsampling threshold, larger batches and two
// loader workers.
func TrainingDefaults() *Config {
	c := Default()
	c.SubsampleThreshold = 1e-3
	c.BatchSize = 1024
	c.NumWorkers = 2
	return c
}

func (c *Config) Validate() error {
	var msg []string
	if len(c.DataDir) == 0 {
		msg = append(msg, "data_dir must be specified")
	}
	if strings.Count(c.CorpusPattern, "%s") != 1 {
		msg = append(msg, "corpus_pattern must contain exactly one %s")
	}
	if c.SubsampleThreshold < 0 {
		msg = append(msg, "subsample_threshold must not be negative")
	}
	if c.SamplerCacheSize <= 0 {
		msg = append(msg, "sampler_cache_size must be positive")
	}
	if c.WindowSize <= 0 {
		msg = append(msg, "window_size must be positive")
	}
	if c.NegativePerContext < 0 {
		msg = append(msg, "negative_per_context must not be negative")
	}
	if c.BatchSize <= 0 {
		msg = append(msg, "batch_size must be positive")
	}
	if c.NumWorkers <= 0 {
		msg = append(msg, "num_workers must be positive")
	}
	if len(msg) > 0 {
		return errors.New("invalid configuration: " + strings.Join(msg, "; "))
	}
	return nil
}

// Params projects the dataset knobs.
func (c *Config) Params() dataset.Params {
	return dataset.Params{
		DataDir:            c.DataDir,
		CorpusPattern:      c.CorpusPattern,
		SubsampleThreshold: c.SubsampleThreshold,
		SamplerCacheSize:   c.SamplerCacheSize,
		WindowSize:         c.WindowSize,
		NegativePerContext: c.NegativePerContext,
		Seed:               c.Seed,
		Indexed:            c.Indexed,
	}
}

// Encode returns the YAML encoded Config.
func (c *Config) Encode() (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if e := enc.Encode(c); e != nil {
		return "", errors.Wrap(e, "YAML encoding failed")
	}
	if e := enc.Close(); e != nil {
		return "", errors.Wrap(e, "YAML encoding failed")
	}
	return buf.String(), nil
}

func (c *Config) String() string {
	if s, e := c.Encode(); e == nil {
		return s
	}
	return fmt.Sprintf("%+v", *c)
}

// Decode overrides fields of c with those present in the YAML (or
// JSON) document b.
func (c *Config) Decode(b []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if e := dec.Decode(c); e != nil && e != io.EOF {
		return errors.Wrap(e, "parse YAML config")
	}
	return nil
}

// Load reads filename over Default(), or over TrainingDefaults() if
// training is set, and validates the result.
func Load(filename string, training bool) (*Config, error) {
	cfg := Default()
	if training {
		cfg = TrainingDefaults()
	}
	b, e := readFile(filename)
	if e != nil {
		return nil, e
	}
	if e := cfg.Decode(b); e != nil {
		return nil, errors.Wrapf(e, "config file %s", filename)
	}
	if e := cfg.Validate(); e != nil {
		return nil, e
	}
	return cfg, nil
}

func readFile(filename string) ([]byte, error) {
	b, e := os.ReadFile(filename)
	if e != nil {
		return nil, errors.Wrapf(e, "cannot open config file %s", filename)
	}
	return b, nil
}
