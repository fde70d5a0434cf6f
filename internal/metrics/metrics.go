package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	GenerationAttemptsTotal *prometheus.CounterVec
	GenerationDuration      *prometheus.HistogramVec
	BatchesTotal            *prometheus.CounterVec

	SynthRequestsTotal *prometheus.CounterVec
	SynthDuration      *prometheus.HistogramVec

	EvalRequestsTotal *prometheus.CounterVec

	TournamentRoundsTotal prometheus.Counter

	CriticVerdictsTotal *prometheus.CounterVec
	CriticFixesTotal    prometheus.Counter

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		GenerationAttemptsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandforge_generation_attempts_total",
				Help: "Style pipeline outcomes",
			},
			[]string{"style", "outcome"}, // outcome: passed | fallback | error
		),
		GenerationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "brandforge_generation_duration_seconds",
				Help:    "Full style pipeline duration",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
			},
			[]string{"style"},
		),
		BatchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandforge_batches_total",
				Help: "Orchestration batches by result",
			},
			[]string{"result"}, // full | partial | failed
		),

		SynthRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandforge_synth_requests_total",
				Help: "Image synthesis API requests",
			},
			[]string{"provider", "status"},
		),
		SynthDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "brandforge_synth_duration_seconds",
				Help:    "Image synthesis latency",
				Buckets: []float64{1, 5, 10, 30, 60, 120},
			},
			[]string{"provider"},
		),

		EvalRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandforge_eval_requests_total",
				Help: "Vision evaluation requests",
			},
			[]string{"status"},
		),

		TournamentRoundsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "brandforge_tournament_rounds_total",
				Help: "Multi-image tournament scoring calls",
			},
		),

		CriticVerdictsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brandforge_critic_verdicts_total",
				Help: "QA verdicts issued",
			},
			[]string{"verdict"},
		),
		CriticFixesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "brandforge_critic_fixes_total",
				Help: "Auto-applied contrast fixes",
			},
		),

		CacheHitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "brandforge_cache_hits_total",
				Help: "Evaluation cache hits",
			},
		),
		CacheMissesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "brandforge_cache_misses_total",
				Help: "Evaluation cache misses",
			},
		),
	}
}

// Record-хелперы терпят nil-приёмник: компоненты, собранные без метрик
// (тесты, моки), просто ничего не пишут.

func (m *Metrics) RecordGeneration(style, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.GenerationAttemptsTotal.WithLabelValues(style, outcome).Inc()
	m.GenerationDuration.WithLabelValues(style).Observe(duration.Seconds())
}

func (m *Metrics) RecordBatch(result string) {
	if m == nil {
		return
	}
	m.BatchesTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordSynthRequest(provider, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.SynthRequestsTotal.WithLabelValues(provider, status).Inc()
	m.SynthDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *Metrics) RecordEvalRequest(status string) {
	if m == nil {
		return
	}
	m.EvalRequestsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordTournamentRound() {
	if m == nil {
		return
	}
	m.TournamentRoundsTotal.Inc()
}

func (m *Metrics) RecordVerdict(verdict string, fixes int) {
	if m == nil {
		return
	}
	m.CriticVerdictsTotal.WithLabelValues(verdict).Inc()
	m.CriticFixesTotal.Add(float64(fixes))
}

func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
