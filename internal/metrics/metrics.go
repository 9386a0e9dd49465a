// Package metrics exposes Prometheus instruments for the stats poller, the
// contact form and live stream connections.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jpalmerr/svworldz/internal/poller"
)

const namespace = "svworldz"

// Poll outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeNetwork = "network"
	OutcomeParse   = "parse"
)

// Contact results.
const (
	ContactSent      = "sent"
	ContactInvalid   = "invalid"
	ContactThrottled = "throttled"
	ContactFailed    = "failed"
)

// Metrics holds the site's instruments. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	polls         *prometheus.CounterVec
	pollLatency   prometheus.Histogram
	subscribers   prometheus.Gauge
	views         prometheus.Gauge
	lastSuccess   prometheus.Gauge
	contacts      *prometheus.CounterVec
	streamClients prometheus.Gauge
}

// New registers the instruments with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		polls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stats_polls_total",
			Help:      "Stats endpoint polls by outcome.",
		}, []string{"outcome"}),
		pollLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stats_poll_duration_seconds",
			Help:      "Latency of stats endpoint requests.",
			Buckets:   prometheus.DefBuckets,
		}),
		subscribers: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channel_subscribers",
			Help:      "Last published subscriber count.",
		}),
		views: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channel_views",
			Help:      "Last published view count.",
		}),
		lastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stats_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful poll.",
		}),
		contacts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by result.",
		}, []string{"result"}),
		streamClients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_clients",
			Help:      "Open live stats stream connections.",
		}),
	}
}

// ObservePoll records one poll attempt.
func (m *Metrics) ObservePoll(r poller.Result) {
	if m == nil {
		return
	}
	m.pollLatency.Observe(r.Latency.Seconds())
	m.polls.WithLabelValues(Outcome(r.Error)).Inc()
	if r.Error == nil {
		m.subscribers.Set(float64(r.Snapshot.Subscribers))
		m.views.Set(float64(r.Snapshot.Views))
		m.lastSuccess.Set(float64(r.CheckedAt.Unix()))
	}
}

// Outcome classifies a poll error into an outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, poller.ErrParse):
		return OutcomeParse
	default:
		return OutcomeNetwork
	}
}

// Contact records a contact form result.
func (m *Metrics) Contact(result string) {
	if m == nil {
		return
	}
	m.contacts.WithLabelValues(result).Inc()
}

// StreamOpened records a new live stream connection.
func (m *Metrics) StreamOpened() {
	if m == nil {
		return
	}
	m.streamClients.Inc()
}

// StreamClosed records a closed live stream connection.
func (m *Metrics) StreamClosed() {
	if m == nil {
		return
	}
	m.streamClients.Dec()
}
