// SPDX-License-Identifier: MIT

package factor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of a Basis. A nil *Metrics is a no-op.
type Metrics struct {
	updates          prometheus.Counter
	refactorizations *prometheus.CounterVec
	chainLength      prometheus.Gauge
	refactorSeconds  prometheus.Histogram
}

// NewMetrics registers the basis collectors with reg. A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		updates: f.NewCounter(prometheus.CounterOpts{
			Name: "linsys_basis_updates_total",
			Help: "Elementary factors appended to a basis chain.",
		}),
		refactorizations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "linsys_basis_refactorizations_total",
			Help: "Basis refactorizations by reason.",
		}, []string{"reason"}),
		chainLength: f.NewGauge(prometheus.GaugeOpts{
			Name: "linsys_basis_chain_length",
			Help: "Elementary factors on top of the base factor.",
		}),
		refactorSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "linsys_basis_refactorization_seconds",
			Help:    "Time spent decomposing the explicit basis.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
	}
}

func (m *Metrics) update(chainLen int) {
	if m == nil {
		return
	}
	m.updates.Inc()
	m.chainLength.Set(float64(chainLen))
}

func (m *Metrics) refactor(reason Reason, took time.Duration) {
	if m == nil {
		return
	}
	m.refactorizations.WithLabelValues(string(reason)).Inc()
	m.refactorSeconds.Observe(took.Seconds())
	m.chainLength.Set(0)
}
