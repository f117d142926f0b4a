// Package metrics exports Prometheus collectors for compilations, casts and
// the program cache. Every Metrics value owns its own registry, so several
// application instances can live in one process.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/spellgrid/internal/executor"
	"github.com/specialistvlad/spellgrid/internal/model"
)

const namespace = "spellgrid"

// Metrics holds the collectors. It implements executor.Observer.
type Metrics struct {
	registry *prometheus.Registry

	compiles        *prometheus.CounterVec
	compileDuration prometheus.Histogram
	actions         *prometheus.CounterVec
	actionDuration  prometheus.Histogram
	suppressed      prometheus.Counter
	runs            *prometheus.CounterVec
	runDuration     prometheus.Histogram
	cacheLookups    *prometheus.CounterVec
}

var _ executor.Observer = (*Metrics)(nil)

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		compiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compiles_total",
			Help:      "Spell compilations by result (ok or the compile error kind).",
		}, []string{"result"}),
		compileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compile_duration_seconds",
			Help:      "Time spent compiling a spell.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Executed actions by piece key and outcome.",
		}, []string{"piece", "outcome"}),
		actionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_duration_seconds",
			Help:      "Time spent executing a single action.",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10),
		}),
		suppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suppressed_errors_total",
			Help:      "Runtime errors replaced by an error handler value.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished casts by final state.",
		}, []string{"state"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Time spent casting a program.",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "program_cache_lookups_total",
			Help:      "Program cache lookups by result (hit or miss).",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.compiles, m.compileDuration,
		m.actions, m.actionDuration, m.suppressed,
		m.runs, m.runDuration,
		m.cacheLookups,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// CompileFinished records the outcome of one compilation.
func (m *Metrics) CompileFinished(err error, elapsed time.Duration) {
	m.compileDuration.Observe(elapsed.Seconds())
	m.compiles.WithLabelValues(compileResult(err)).Inc()
}

func compileResult(err error) string {
	if err == nil {
		return "ok"
	}
	var ce *model.CompileError
	if errors.As(err, &ce) {
		if kind := ce.Kind(); kind != nil {
			return kind.Error()
		}
	}
	return "other"
}

// CacheLookup records a program cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ActionExecuted implements executor.Observer.
func (m *Metrics) ActionExecuted(p *model.Piece, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.actions.WithLabelValues(p.Key, outcome).Inc()
	m.actionDuration.Observe(elapsed.Seconds())
}

// ErrorSuppressed implements executor.Observer.
func (m *Metrics) ErrorSuppressed(*model.Piece, error) {
	m.suppressed.Inc()
}

// RunFinished implements executor.Observer.
func (m *Metrics) RunFinished(run *executor.Run, elapsed time.Duration) {
	m.runs.WithLabelValues(run.State.String()).Inc()
	m.runDuration.Observe(elapsed.Seconds())
}
