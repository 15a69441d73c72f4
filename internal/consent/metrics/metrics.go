package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for consent and resource-load operations.
type Metrics struct {
	DecisionsRecorded *prometheus.CounterVec
	ConsentResets     prometheus.Counter
	BannerImpressions prometheus.Counter
	ReceiptsIssued    prometheus.Counter

	ResourceLoadsStarted *prometheus.CounterVec
	ResourceLoadResults  *prometheus.CounterVec
	ResourceLoadLatency  prometheus.Histogram
}

// New registers and returns consent metrics collectors.
func New() *Metrics {
	return &Metrics{
		DecisionsRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "consentgate_decisions_recorded_total",
			Help: "Total number of consent decisions recorded, labeled by decision",
		}, []string{"decision"}),
		ConsentResets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "consentgate_consent_resets_total",
			Help: "Total number of consent resets",
		}),
		BannerImpressions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "consentgate_banner_impressions_total",
			Help: "Total number of first-time banner presentations",
		}),
		ReceiptsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "consentgate_receipts_issued_total",
			Help: "Total number of signed consent receipts issued",
		}),
		ResourceLoadsStarted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "consentgate_resource_loads_started_total",
			Help: "Total number of resource load attempts dispatched, labeled by category",
		}, []string{"category"}),
		ResourceLoadResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "consentgate_resource_load_results_total",
			Help: "Total number of completed resource loads, labeled by category and result",
		}, []string{"category", "result"}),
		ResourceLoadLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "consentgate_resource_load_latency_seconds",
			Help:    "Latency of resource load attempts in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementDecisionsRecorded(decision string) {
	m.DecisionsRecorded.WithLabelValues(decision).Inc()
}

func (m *Metrics) IncrementConsentResets() {
	m.ConsentResets.Inc()
}

func (m *Metrics) IncrementBannerImpressions() {
	m.BannerImpressions.Inc()
}

func (m *Metrics) IncrementReceiptsIssued() {
	m.ReceiptsIssued.Inc()
}

// LoadStarted implements resource.LoadObserver.
func (m *Metrics) LoadStarted(category string) {
	m.ResourceLoadsStarted.WithLabelValues(category).Inc()
}

// LoadFinished implements resource.LoadObserver.
func (m *Metrics) LoadFinished(category, result string, seconds float64) {
	m.ResourceLoadResults.WithLabelValues(category, result).Inc()
	m.ResourceLoadLatency.Observe(seconds)
}
