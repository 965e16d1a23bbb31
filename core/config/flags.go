package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// AddFlags defines one flag per field of c, named by its YAML key,
// with the current value of the field as default.  Parsing the flags
// writes into c.
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.DataDir, "data_dir", c.DataDir, "Directory of corpus files")
	fs.StringVar(&c.CorpusPattern, "corpus_pattern", c.CorpusPattern,
		"Corpus file name with %s standing for the split")
	fs.StringVar(&c.VocabFile, "vocab_file", c.VocabFile, "Vocabulary file")
	fs.BoolVar(&c.LoadVocab, "load_vocab", c.LoadVocab,
		"Load the vocabulary from vocab_file instead of building it")
	fs.Float64Var(&c.SubsampleThreshold, "subsample_threshold",
		c.SubsampleThreshold, "Subsampling threshold, 0 keeps every token")
	fs.IntVar(&c.SamplerCacheSize, "sampler_cache_size", c.SamplerCacheSize,
		"Negatives drawn per cache refill")
	fs.IntVar(&c.WindowSize, "window_size", c.WindowSize,
		"Context words on each side of the centre")
	fs.IntVar(&c.NegativePerContext, "negative_per_context",
		c.NegativePerContext, "Negatives per context word")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Random seed")
	fs.BoolVar(&c.Indexed, "indexed", c.Indexed,
		"Serve examples by index instead of as a cyclic stream")
	fs.IntVar(&c.BatchSize, "batch_size", c.BatchSize, "Examples per batch")
	fs.IntVar(&c.NumWorkers, "num_workers", c.NumWorkers, "Loader workers")
	fs.StringVar(&c.LogLevel, "log_level", c.LogLevel, "Log level")
	fs.StringVar(&c.LogFormat, "log_format", c.LogFormat, "text or json")
	fs.StringVar(&c.MetricsAddr, "metrics_addr", c.MetricsAddr,
		"Address to serve Prometheus metrics, empty to disable")
}

// Merge returns base overridden by the fields of flagged whose flags
// were set on the command line, and validates the result.  fs must
// have been populated by flagged.AddFlags.
func Merge(base, flagged *Config, fs *pflag.FlagSet) (*Config, error) {
	b, e := yaml.Marshal(flagged)
	if e != nil {
		return nil, errors.Wrap(e, "YAML encoding failed")
	}
	var all map[string]any
	if e := yaml.Unmarshal(b, &all); e != nil {
		return nil, errors.Wrap(e, "YAML decoding failed")
	}
	set := map[string]any{}
	fs.Visit(func(f *pflag.Flag) {
		if v, ok := all[f.Name]; ok {
			set[f.Name] = v
		}
	})

	merged := *base
	if len(set) > 0 {
		if b, e = yaml.Marshal(set); e != nil {
			return nil, errors.Wrap(e, "YAML encoding failed")
		}
		if e := merged.Decode(b); e != nil {
			return nil, errors.Wrap(e, "command line flags")
		}
	}
	if e := merged.Validate(); e != nil {
		return nil, e
	}
	return &merged, nil
}

// Resolve builds the effective configuration of a command: the
// defaults (TrainingDefaults if training is set), overridden by the
// config file if any, overridden by the flags set on the command line.
func Resolve(filename string, training bool, flagged *Config,
	fs *pflag.FlagSet) (*Config, error) {
	base := Default()
	if training {
		base = TrainingDefaults()
	}
	if filename != "" {
		var e error
		if base, e = Load(filename, training); e != nil {
			return nil, e
		}
	}
	return Merge(base, flagged, fs)
}
