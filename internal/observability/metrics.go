package observability

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsNamespace = "charfang"

	readHeaderTimeout = 5 * time.Second
)

// Metrics holds the Prometheus instruments for one run. Each Metrics
// value owns an independent registry so repeated construction never
// trips duplicate-collector panics.
type Metrics struct {
	registry *prometheus.Registry

	CommitsProcessed   prometheus.Counter
	CommitsEmptyPatch  prometheus.Counter
	HunkFlushes        prometheus.Counter
	PairedLines        prometheus.Counter
	SurplusAddedLines  prometheus.Counter
	SurplusDeletedLine prometheus.Counter
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	PatchFailures      prometheus.Counter
}

// NewMetrics creates the instrument set on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      name,
			Help:      help,
		})
	}

	return &Metrics{
		registry: registry,

		CommitsProcessed:   counter("commits_processed_total", "Commits consumed by the engine."),
		CommitsEmptyPatch:  counter("commits_empty_patch_total", "Commits consumed without patch text."),
		HunkFlushes:        counter("hunk_flushes_total", "Hunk buffer flushes that produced a non-zero delta."),
		PairedLines:        counter("paired_lines_total", "Removed/added line pairs scored by edit distance."),
		SurplusAddedLines:  counter("surplus_added_lines_total", "Added lines left unpaired at flush."),
		SurplusDeletedLine: counter("surplus_deleted_lines_total", "Removed lines left unpaired at flush."),
		CacheHits:          counter("diffcache_hits_total", "Patch cache hits."),
		CacheMisses:        counter("diffcache_misses_total", "Patch cache misses."),
		PatchFailures:      counter("patch_failures_total", "Commits whose patch could not be rendered."),
	}
}

// Handler returns the /metrics scrape handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes the scrape endpoint on addr until the server fails.
// Meant to run on its own goroutine.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve metrics on %s: %w", addr, err)
	}

	return nil
}
