// prepare builds the skip-gram datasets of all splits, saves the
// training vocabulary, and runs each split through its loader once so
// that counts and negative sampling can be checked before training.
// For example:
/*
  prepare --data_dir=.data --training --metrics_addr=:6060
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wangkuiyi/skipgram/core/config"
	"github.com/wangkuiyi/skipgram/core/dataset"
	"github.com/wangkuiyi/skipgram/core/sgns"
	"github.com/wangkuiyi/skipgram/core/utils"
)

var (
	flagConfig   string
	flagTraining bool
	flagEpochs   int
	flagLinger   time.Duration
	flagged      = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Build skip-gram training examples for every split",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file")
	rootCmd.Flags().BoolVar(&flagTraining, "training", false,
		"Start from the settings used to train embeddings")
	rootCmd.Flags().IntVar(&flagEpochs, "epochs", 1,
		"Passes of every loader over its split")
	rootCmd.Flags().DurationVar(&flagLinger, "linger", 0,
		"Keep serving metrics this long after the last epoch")
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
	logrus.Debugf("Configuration:\n%s", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var vocab *sgns.Vocabulary
	if cfg.LoadVocab {
		if vocab, e = utils.LoadVocabIfExists(cfg.VocabFile); e != nil {
			return e
		}
		if vocab == nil {
			logrus.Warnf("No vocabulary at %s, building it from the train split.",
				cfg.VocabFile)
		}
	}
	m := dataset.NewDataModule(cfg.Params(), vocab, logrus.StandardLogger())
	if e := m.Prepare(ctx); e != nil {
		return e
	}
	if vocab == nil {
		utils.SaveVocabOrDie(m.Vocab, cfg.VocabFile)
	}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		sources := []utils.Source{}
		for _, d := range m.Datasets() {
			sources = append(sources, d)
		}
		if e := utils.RegisterDatasetMetrics(reg, sources...); e != nil {
			return e
		}
		srv := utils.ServeMetrics(cfg.MetricsAddr, reg)
		defer srv.Close()
	}

	for _, d := range m.Datasets() {
		l := dataset.NewLoader(d, cfg.BatchSize, cfg.NumWorkers)
		for epoch := 0; epoch < flagEpochs; epoch++ {
			start := time.Now()
			n := 0
			if e := l.Epoch(ctx, func(b dataset.Batch) error {
				n += b.Len()
				return nil
			}); e != nil {
				return e
			}
			d.Log().WithFields(logrus.Fields{
				"epoch":    epoch,
				"batches":  l.NumBatches(),
				"examples": n,
			}).Infof("Epoch done in %s.", time.Since(start))
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%-6s %10s %10s %12s %10s\n",
		"split", "tokens", "pairs", "examples", "batches")
	for _, d := range m.Datasets() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-6s %10d %10d %12d %10d\n",
			d.Split, len(d.Ids), len(d.Windows), d.Len(),
			dataset.NewLoader(d, cfg.BatchSize, 1).NumBatches())
	}

	if cfg.MetricsAddr != "" && flagLinger > 0 {
		logrus.Infof("Serving metrics for %s more.", flagLinger)
		select {
		case <-time.After(flagLinger):
		case <-ctx.Done():
		}
	}
	return nil
}
