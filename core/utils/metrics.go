package utils

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Source reports progress counters of a dataset.  Counters must be
// safe to read from other goroutines.
type Source interface {
	Id() string
	SplitName() string
	Len() int
	Refills() int64
	Restarts() int64
	Served() int64
}

// RegisterDatasetMetrics exports the counters of every source to reg.
func RegisterDatasetMetrics(reg prometheus.Registerer, sources ...Source) error {
	for _, s := range sources {
		s := s
		labels := prometheus.Labels{"split": s.SplitName(), "dataset": s.Id()}
		collectors := []prometheus.Collector{
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Name:        "skipgram_dataset_examples",
				Help:        "Number of examples in one pass over the dataset.",
				ConstLabels: labels,
			}, func() float64 { return float64(s.Len()) }),
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Name:        "skipgram_negative_cache_refills_total",
				Help:        "Times the negative sample cache was drawn again.",
				ConstLabels: labels,
			}, func() float64 { return float64(s.Refills()) }),
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Name:        "skipgram_stream_restarts_total",
				Help:        "Times the example stream was exhausted and restarted.",
				ConstLabels: labels,
			}, func() float64 { return float64(s.Restarts()) }),
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Name:        "skipgram_examples_served_total",
				Help:        "Examples returned to loaders.",
				ConstLabels: labels,
			}, func() float64 { return float64(s.Served()) }),
		}
		for _, c := range collectors {
			if e := reg.Register(c); e != nil {
				return errors.Wrapf(e, "registering metrics of %s", s.SplitName())
			}
		}
	}
	return nil
}

// ServeMetrics exposes g at addr/metrics in the background.
func ServeMetrics(addr string, g prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if e := srv.ListenAndServe(); e != nil && e != http.ErrServerClosed {
			logrus.Errorf("ListenAndServe on %s failed: %v", addr, e)
		}
	}()
	logrus.Infof("Serving metrics at %s/metrics", addr)
	return srv
}
