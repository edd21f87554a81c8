// Package metrics exposes Prometheus collectors for the relay.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arenaledger/arena-node/relay/ledger"
)

const namespace = "arenad"

const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
)

type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	deliverDuration *prometheus.HistogramVec
	blocks          prometheus.Counter
	blockSize       prometheus.Histogram
	height          prometheus.Gauge
}

// New registers the relay collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Delivered requests by instruction and result.",
		}, []string{"instruction", "result", "codespace"}),
		deliverDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "deliver_duration_seconds",
			Help:      "Time spent applying a single request.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"instruction"}),
		blocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_total",
			Help:      "Committed blocks.",
		}),
		blockSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "block_requests",
			Help:      "Requests per committed block.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_height",
			Help:      "Last committed ledger height.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.deliverDuration,
		m.blocks,
		m.blockSize,
		m.height,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// HandleBlock records b. It satisfies ledger.BlockHandler.
func (m *Metrics) HandleBlock(_ context.Context, b ledger.Block) {
	m.blocks.Inc()
	m.blockSize.Observe(float64(len(b.Results)))
	m.height.Set(float64(b.Height))

	for _, res := range b.Results {
		instruction := res.Instruction
		if instruction == "" {
			instruction = "unknown"
		}
		result := ResultAccepted
		if !res.IsOK() {
			result = ResultRejected
		}
		m.requests.WithLabelValues(instruction, result, res.Codespace).Inc()
		m.deliverDuration.WithLabelValues(instruction).Observe(res.Duration.Seconds())
	}
}

// SetHeight seeds the height gauge, e.g. after loading persisted state.
func (m *Metrics) SetHeight(h int64) {
	m.height.Set(float64(h))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
