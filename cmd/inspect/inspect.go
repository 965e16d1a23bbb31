// inspect prints the most frequent words of a split and the first
// training examples it yields, decoded by the vocabulary.  For
// example, to check what a model would see first from the validation
// split, with the vocabulary saved by prepare:
/*
  inspect --config=prepare.yaml --split=valid --load_vocab --examples=24
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wangkuiyi/skipgram/core/config"
	"github.com/wangkuiyi/skipgram/core/dataset"
	"github.com/wangkuiyi/skipgram/core/hist"
	"github.com/wangkuiyi/skipgram/core/sgns"
	"github.com/wangkuiyi/skipgram/core/utils"
)

var (
	flagConfig   string
	flagTraining bool
	flagSplit    string
	flagExamples int
	flagTop      int
	flagged      = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print frequent words and leading examples of a split",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file")
	rootCmd.Flags().BoolVar(&flagTraining, "training", false,
		"Start from the settings used to train embeddings")
	rootCmd.Flags().StringVar(&flagSplit, "split", "train", "{train, valid, test}")
	rootCmd.Flags().IntVar(&flagExamples, "examples", 20, "Examples to print")
	rootCmd.Flags().IntVar(&flagTop, "top", 10,
		"Most frequent words to print, -1 for all")
	flagged.AddFlags(rootCmd.Flags())
}

func main() {
	if e := rootCmd.Execute(); e != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, e := config.Resolve(flagConfig, flagTraining, flagged, cmd.Flags())
	if e != nil {
		return e
	}
	if e := utils.ConfigureLogger(logrus.StandardLogger(), cfg.LogLevel,
		cfg.LogFormat, os.Stderr); e != nil {
		return e
	}
	if e := dataset.ValidateSplit(flagSplit); e != nil {
		return e
	}

	vocab, e := splitVocabulary(cfg.VocabFile, cfg.LoadVocab, flagSplit,
		logrus.StandardLogger())
	if e != nil {
		return e
	}
	d, e := dataset.Load(flagSplit, vocab, cfg.Params(), logrus.StandardLogger())
	if e != nil {
		return e
	}

	w := cmd.OutOrStdout()
	printTopWords(w, d, flagTop)
	return printExamples(w, d, flagExamples)
}

// splitVocabulary returns the vocabulary to encode split with.  The
// saved training vocabulary is loaded if load is set or split is not
// train, so that ids agree with those prepare produced.  A nil result
// means the dataset builds a vocabulary of its own.
func splitVocabulary(vocabFile string, load bool, split string,
	log logrus.FieldLogger) (*sgns.Vocabulary, error) {
	if !load && split == "train" {
		return nil, nil
	}
	vocab, e := utils.LoadVocabIfExists(vocabFile)
	if e != nil {
		return nil, e
	}
	if vocab == nil && split != "train" {
		log.Warnf("No vocabulary at %s, building one from the %s split. "+
			"Ids will differ from those of the train split.", vocabFile, split)
	}
	return vocab, nil
}

// printTopWords prints the n most frequent words of the split before
// and after subsampling.  Before, with their share of the corpus and
// their chance to be drawn as a negative.  After, by id.
func printTopWords(w io.Writer, d *dataset.Dataset, n int) {
	total := float64(d.Counts.Total())
	fmt.Fprintf(w, "%d tokens, %d distinct\n", d.Counts.Total(), d.Counts.Len())
	for _, t := range d.Counts.Top(n) {
		id := d.Vocab.Encode([]string{t})[0]
		fmt.Fprintf(w, "%-20s % 9d %6.2f%% %8.5f\n", t, d.Counts.At(t),
			100*float64(d.Counts.At(t))/total, d.Table.Probability(id))
	}
	fmt.Fprintln(w)

	h := hist.CountIds(d.Ids).Sorted()
	fmt.Fprintf(w, "%d tokens, %d distinct after subsampling\n",
		len(d.Ids), h.Len())
	for i, id := range h.Keys {
		if n >= 0 && i >= n {
			break
		}
		fmt.Fprintf(w, "%6d %-20s % 9d\n", id, d.Vocab.Token(id), h.Counts[i])
	}
	fmt.Fprintln(w)
}

func printExamples(w io.Writer, d *dataset.Dataset, n int) error {
	fmt.Fprintf(w, "%d examples over %d windows\n", d.Len(), len(d.Windows))
	for i := 0; i < n && i < d.Len(); i++ {
		ex, e := d.At(i)
		if e != nil {
			return e
		}
		fmt.Fprintf(w, "%-20s %-20s %d\n", d.Vocab.Token(ex.Centre),
			d.Vocab.Token(ex.Other), ex.Label)
	}
	return nil
}
