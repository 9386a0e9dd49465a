package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jpalmerr/svworldz/internal/poller"
)

// scrape renders the registry in the text exposition format.
func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func assertLines(t *testing.T, out string, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("metrics output missing %q", line)
		}
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{fmt.Errorf("%w: bad json", poller.ErrParse), OutcomeParse},
		{fmt.Errorf("%w: status 503", poller.ErrNetwork), OutcomeNetwork},
		{errors.New("unclassified"), OutcomeNetwork},
	}
	for _, tt := range tests {
		if got := Outcome(tt.err); got != tt.want {
			t.Errorf("Outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestMetrics_ObservePoll(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObservePoll(poller.Result{
		Snapshot:  poller.Snapshot{Subscribers: 774000, Views: 5000},
		Latency:   20 * time.Millisecond,
		CheckedAt: time.Unix(1000, 0),
	})
	m.ObservePoll(poller.Result{Error: fmt.Errorf("%w: boom", poller.ErrNetwork)})

	assertLines(t, scrape(t, reg),
		`svworldz_stats_polls_total{outcome="ok"} 1`,
		`svworldz_stats_polls_total{outcome="network"} 1`,
		`svworldz_channel_subscribers 774000`,
		`svworldz_channel_views 5000`,
		`svworldz_stats_last_success_timestamp_seconds 1000`,
		`svworldz_stats_poll_duration_seconds_count 2`,
	)
}

func TestMetrics_ContactAndStream(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Contact(ContactSent)
	m.Contact(ContactSent)
	m.Contact(ContactThrottled)
	m.StreamOpened()
	m.StreamOpened()
	m.StreamClosed()

	assertLines(t, scrape(t, reg),
		`svworldz_contact_submissions_total{result="sent"} 2`,
		`svworldz_contact_submissions_total{result="throttled"} 1`,
		`svworldz_stream_clients 1`,
	)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObservePoll(poller.Result{})
	m.Contact(ContactSent)
	m.StreamOpened()
	m.StreamClosed()
}
