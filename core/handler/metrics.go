package handler

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const (
	// MetricsSubsystem is a subsystem shared by all metrics exposed by this
	// package.
	MetricsSubsystem = "ibc_handler"
)

// Metrics contains metrics exposed by this package.
type Metrics struct {
	// Number of messages handled, labeled by type URL and outcome.
	Messages metrics.Counter
	// Time spent validating and executing a message, in seconds.
	MessageDuration metrics.Histogram
	// Number of packets committed for sending.
	PacketsSent metrics.Counter
}

// PrometheusMetrics returns Metrics build using Prometheus client library.
// Optionally, labels can be provided along with their values ("foo",
// "fooValue").
func PrometheusMetrics(namespace string, labelsAndValues ...string) *Metrics {
	labels := []string{}
	for i := 0; i < len(labelsAndValues); i += 2 {
		labels = append(labels, labelsAndValues[i])
	}
	return &Metrics{
		Messages: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "messages",
			Help:      "Number of IBC messages handled.",
		}, withLabels(labels, "type_url", "result")).With(labelsAndValues...),

		MessageDuration: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "message_duration_seconds",
			Help:      "Time spent validating and executing an IBC message.",
			Buckets:   stdprometheus.ExponentialBuckets(0.0001, 4, 8),
		}, withLabels(labels, "type_url")).With(labelsAndValues...),

		PacketsSent: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "packets_sent",
			Help:      "Number of packets committed for sending.",
		}, labels).With(labelsAndValues...),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		Messages:        discard.NewCounter(),
		MessageDuration: discard.NewHistogram(),
		PacketsSent:     discard.NewCounter(),
	}
}

func withLabels(labels []string, extra ...string) []string {
	out := make([]string, 0, len(labels)+len(extra))
	out = append(out, labels...)
	return append(out, extra...)
}
