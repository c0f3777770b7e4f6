package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "greeter"

const (
	OutcomeSuccess  = "success"
	OutcomeReverted = "reverted"
	OutcomeFailed   = "failed"
)

type Metricer interface {
	RecordUp()

	// RecordInvocation counts one routed contract call
	RecordInvocation(operation string, outcome string)

	RecordUnauthorized()

	// RecordDispatch starts timing an outbound dispatch; call onDone with its result
	RecordDispatch() (onDone func(err error))
}

type Metrics struct {
	ns       string
	registry *prometheus.Registry

	invocations     *prometheus.CounterVec
	unauthorized    prometheus.Counter
	dispatches      *prometheus.CounterVec
	dispatchLatency prometheus.Histogram

	up prometheus.Gauge
}

var _ Metricer = (*Metrics)(nil)

func NewMetrics(procName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())
	return newMetrics(procName, registry)
}

func newMetrics(procName string, registry *prometheus.Registry) *Metrics {
	if procName == "" {
		procName = "default"
	}
	ns := Namespace + "_" + procName

	factory := promauto.With(registry)
	return &Metrics{
		ns:       ns,
		registry: registry,

		invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "invocations_total",
			Help:      "Count of contract invocations by operation and outcome",
		}, []string{"operation", "outcome"}),
		unauthorized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "unauthorized_total",
			Help:      "Count of inbound calls rejected by the alias check",
		}),
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "outbound_dispatches_total",
			Help:      "Count of outbound messages submitted to the transport",
		}, []string{"outcome"}),
		dispatchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "outbound_dispatch_duration_seconds",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 15, 60},
			Help:      "Duration of transport submissions",
		}),
		up: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "up",
			Help:      "1 if the greeter node has finished starting up",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordUp() {
	m.up.Set(1)
}

func (m *Metrics) RecordInvocation(operation string, outcome string) {
	m.invocations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) RecordUnauthorized() {
	m.unauthorized.Inc()
}

func (m *Metrics) RecordDispatch() (onDone func(err error)) {
	start := time.Now()
	return func(err error) {
		m.dispatchLatency.Observe(time.Since(start).Seconds())
		outcome := OutcomeSuccess
		if err != nil {
			outcome = OutcomeFailed
		}
		m.dispatches.WithLabelValues(outcome).Inc()
	}
}
