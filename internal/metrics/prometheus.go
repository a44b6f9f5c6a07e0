package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/calendario/shiftboard/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	storeMutations *prometheus.CounterVec
	cycleDuration  *prometheus.HistogramVec
	violationCount prometheus.Gauge
	dropGestures   *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace (defaults to "shiftboard" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "shiftboard"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.storeMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Total assignment-store mutations by kind (add/remove/move).",
		}, []string{"kind"})

		p.cycleDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "sync",
			Name:      "cycle_duration_seconds",
			Help:      "Recalc+check cycle durations in seconds by outcome.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"outcome"})

		p.violationCount = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "sync",
			Name:      "violations_current",
			Help:      "Violation count applied by the most recent successful check.",
		})

		p.dropGestures = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "eventdrop",
			Name:      "gestures_total",
			Help:      "Terminal event move/copy gestures by operation and result.",
		}, []string{"operation", "result"})

		for _, c := range []prometheus.Collector{
			p.storeMutations, p.cycleDuration, p.violationCount, p.dropGestures,
		} {
			if err := p.reg.Register(c); err != nil {
				// Already-registered collectors are reused; anything else is
				// a programming error surfaced at first record.
				if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
					_ = are
					continue
				}
				panic(err)
			}
		}
	})
}

// RecordStoreMutation increments the mutation counter for the kind.
func (p *PrometheusCollector) RecordStoreMutation(kind string) {
	p.ensureRegistered()
	p.storeMutations.WithLabelValues(kind).Inc()
}

// RecordSyncCycle observes one cycle duration under its outcome label.
func (p *PrometheusCollector) RecordSyncCycle(duration float64, outcome string) {
	p.ensureRegistered()
	p.cycleDuration.WithLabelValues(outcome).Observe(duration)
}

// RecordViolationCount sets the current violation gauge.
func (p *PrometheusCollector) RecordViolationCount(count int) {
	p.ensureRegistered()
	p.violationCount.Set(float64(count))
}

// RecordDropGesture increments the gesture counter.
func (p *PrometheusCollector) RecordDropGesture(operation, result string) {
	p.ensureRegistered()
	p.dropGestures.WithLabelValues(operation, result).Inc()
}
