package light

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const (
	// MetricsSubsystem is a subsystem shared by all metrics exposed by this
	// package.
	MetricsSubsystem = "grandpa_light"
)

// Metrics contains metrics exposed by this package.
type Metrics struct {
	// Height of the latest verified header.
	LatestHeight metrics.Gauge
	// Id of the authority set currently trusted.
	AuthoritySetID metrics.Gauge
	// 1 once the client is frozen.
	Frozen metrics.Gauge
	// Number of accepted headers.
	HeadersAccepted metrics.Counter
	// Number of rejected headers.
	HeadersRejected metrics.Counter
	// Number of times misbehaviour was proven.
	MisbehaviourDetected metrics.Counter
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
		LatestHeight: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "latest_height",
			Help:      "Height of the latest verified header.",
		}, labels).With(labelsAndValues...),
		AuthoritySetID: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "authority_set_id",
			Help:      "Id of the trusted GRANDPA authority set.",
		}, labels).With(labelsAndValues...),
		Frozen: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "frozen",
			Help:      "Whether the client is frozen (0 or 1).",
		}, labels).With(labelsAndValues...),
		HeadersAccepted: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "headers_accepted",
			Help:      "Number of headers accepted.",
		}, labels).With(labelsAndValues...),
		HeadersRejected: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "headers_rejected",
			Help:      "Number of headers rejected.",
		}, labels).With(labelsAndValues...),
		MisbehaviourDetected: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "misbehaviour_detected",
			Help:      "Number of times misbehaviour froze the client.",
		}, labels).With(labelsAndValues...),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		LatestHeight:         discard.NewGauge(),
		AuthoritySetID:       discard.NewGauge(),
		Frozen:               discard.NewGauge(),
		HeadersAccepted:      discard.NewCounter(),
		HeadersRejected:      discard.NewCounter(),
		MisbehaviourDetected: discard.NewCounter(),
	}
}
