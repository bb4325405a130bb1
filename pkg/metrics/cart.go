package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/shopnex/pkg/enums"
)

// CartMetrics records cart mutations and the durability of their snapshots.
type CartMetrics struct {
	mutations       *prometheus.CounterVec
	persistDuration prometheus.Histogram
	persistFailures *prometheus.CounterVec
	rehydrations    *prometheus.CounterVec
	lines           prometheus.Gauge
	units           prometheus.Gauge
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations applied, by operation.",
	}, []string{"op"})
	persistDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_persist_duration_seconds",
		Help:    "Time spent writing the cart snapshot to storage.",
		Buckets: prometheus.DefBuckets,
	})
	persistFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Cart snapshot writes that failed and were absorbed, by reason.",
	}, []string{"reason"})
	rehydrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_rehydrations_total",
		Help: "Cart loads from storage at startup, by outcome.",
	}, []string{"outcome"})
	lines := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_lines",
		Help: "Distinct products currently in the cart.",
	})
	units := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_units",
		Help: "Total units currently in the cart.",
	})
	reg.MustRegister(mutations, persistDuration, persistFailures, rehydrations, lines, units)
	return &CartMetrics{
		mutations:       mutations,
		persistDuration: persistDuration,
		persistFailures: persistFailures,
		rehydrations:    rehydrations,
		lines:           lines,
		units:           units,
	}
}

// IncMutation counts one applied mutation.
func (c *CartMetrics) IncMutation(op enums.CartOperation) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op.String())).Inc()
}

// ObservePersist records the duration of a snapshot write.
func (c *CartMetrics) ObservePersist(duration time.Duration) {
	if c == nil || c.persistDuration == nil {
		return
	}
	c.persistDuration.Observe(duration.Seconds())
}

// IncPersistFailure counts a failed, absorbed snapshot write.
func (c *CartMetrics) IncPersistFailure(reason enums.PersistFailure) {
	if c == nil || c.persistFailures == nil {
		return
	}
	c.persistFailures.WithLabelValues(normalizeLabel(reason.String())).Inc()
}

// IncRehydration counts a startup load outcome.
func (c *CartMetrics) IncRehydration(outcome enums.RehydrationOutcome) {
	if c == nil || c.rehydrations == nil {
		return
	}
	c.rehydrations.WithLabelValues(normalizeLabel(outcome.String())).Inc()
}

// SetSize publishes the current cart size.
func (c *CartMetrics) SetSize(lines, units int) {
	if c == nil || c.lines == nil {
		return
	}
	c.lines.Set(float64(lines))
	c.units.Set(float64(units))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
