package svworldz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// statsServer serves {"subscribers": n, "views": 10n} with n incrementing per
// request, and counts requests.
func statsServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"subscribers": %d, "views": %d}`, n, n*10)
	}))
	t.Cleanup(ts.Close)
	return ts, &hits
}

func runSite(t *testing.T, site *Site) (cancel func() error) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- site.Start(ctx) }()

	return func() error {
		stop()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("Start() did not return after context cancellation")
			return nil
		}
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// TestStart_BlocksUntilContextCancelled verifies that Start blocks until the
// provided context is cancelled.
func TestStart_BlocksUntilContextCancelled(t *testing.T) {
	ts, _ := statsServer(t)

	site, err := New(
		WithStatsURL(ts.URL),
		WithPort(19301),
		WithLogger(testLogger()),
		WithRefreshInterval(100*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- site.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)

	select {
	case err := <-done:
		t.Fatalf("Start() returned early with error: %v", err)
	default:
		// expected: still blocking
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after context cancellation")
	}
}

// TestStart_ReturnsImmediatelyIfContextAlreadyCancelled verifies that Start
// does no work with a dead context.
func TestStart_ReturnsImmediatelyIfContextAlreadyCancelled(t *testing.T) {
	ts, hits := statsServer(t)

	site, err := New(WithStatsURL(ts.URL), WithPort(19302), WithLogger(testLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if err := site.Start(ctx); err != nil {
		t.Errorf("Start() error = %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Start() should return immediately for a cancelled context")
	}
	if hits.Load() != 0 {
		t.Errorf("expected no stats fetches, got %d", hits.Load())
	}
}

func TestStart_PortInUse(t *testing.T) {
	ts, _ := statsServer(t)

	first, err := New(WithStatsURL(ts.URL), WithPort(19303), WithLogger(testLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	stop := runSite(t, first)
	defer func() { _ = stop() }()

	waitFor(t, "first site to listen", func() bool {
		resp, err := http.Get("http://127.0.0.1:19303/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	})

	second, err := New(WithStatsURL(ts.URL), WithPort(19303), WithLogger(testLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	err = second.Start(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to start HTTP server") {
		t.Errorf("Start() on busy port error = %v", err)
	}
}

// TestStart_ServesLiveStats checks the whole pipeline: the immediate fetch
// lands in the JSON API, the landing page and the health check.
func TestStart_ServesLiveStats(t *testing.T) {
	ts, hits := statsServer(t)

	site, err := New(
		WithStatsURL(ts.URL),
		WithPort(19304),
		WithLogger(testLogger()),
		WithRefreshInterval(time.Hour),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	stop := runSite(t, site)

	base := "http://127.0.0.1:19304"

	var stats struct {
		Subscribers int64 `json:"subscribers"`
		Views       int64 `json:"views"`
	}
	waitFor(t, "first snapshot", func() bool {
		resp, err := http.Get(base + "/api/youtube-stats")
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
			return false
		}
		return stats.Subscribers == 1
	})
	if stats.Views != 10 {
		t.Errorf("views = %d, want 10", stats.Views)
	}

	resp, err := http.Get(base + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if !strings.Contains(string(body), `<span data-stat="subscribers">1</span>`) {
		t.Error("landing page should show the fetched subscriber count")
	}

	resp, err = http.Get(base + "/assets/site.js")
	if err != nil {
		t.Fatalf("GET /assets/site.js: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("embedded asset status = %d, want 200", resp.StatusCode)
	}

	if err := stop(); err != nil {
		t.Errorf("Start() error = %v", err)
	}

	// one immediate fetch, the hour-long interval never fired
	if got := hits.Load(); got != 1 {
		t.Errorf("stats fetches = %d, want 1", got)
	}
}

func TestStart_NoFetchesAfterShutdown(t *testing.T) {
	ts, hits := statsServer(t)

	site, err := New(
		WithStatsURL(ts.URL),
		WithPort(19305),
		WithLogger(testLogger()),
		WithRefreshInterval(20*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	stop := runSite(t, site)

	waitFor(t, "a few refreshes", func() bool { return hits.Load() >= 3 })
	if err := stop(); err != nil {
		t.Errorf("Start() error = %v", err)
	}

	after := hits.Load()
	time.Sleep(100 * time.Millisecond)
	if got := hits.Load(); got != after {
		t.Errorf("fetches continued after shutdown: %d -> %d", after, got)
	}
}

func TestWithSnapshotCallback_InvokedInOrder(t *testing.T) {
	ts, _ := statsServer(t)

	var mu sync.Mutex
	var calls []string
	var last Snapshot

	site, err := New(
		WithStatsURL(ts.URL),
		WithPort(19306),
		WithLogger(testLogger()),
		WithRefreshInterval(time.Hour),
		WithSnapshotCallback(func(s Snapshot) {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, "first")
			last = s
		}),
		WithSnapshotCallback(func(Snapshot) {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, "second")
		}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	stop := runSite(t, site)

	waitFor(t, "callbacks", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) == 2
	})
	_ = stop()

	mu.Lock()
	defer mu.Unlock()
	if strings.Join(calls, ",") != "first,second" {
		t.Errorf("callback order = %v", calls)
	}
	if last != (Snapshot{Subscribers: 1, Views: 10}) {
		t.Errorf("callback snapshot = %+v", last)
	}
}

func TestWithSnapshotCallback_PanicRecovery(t *testing.T) {
	ts, _ := statsServer(t)

	var after atomic.Int32
	site, err := New(
		WithStatsURL(ts.URL),
		WithPort(19307),
		WithLogger(testLogger()),
		WithRefreshInterval(30*time.Millisecond),
		WithSnapshotCallback(func(Snapshot) { panic("callback exploded") }),
		WithSnapshotCallback(func(Snapshot) { after.Add(1) }),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	stop := runSite(t, site)

	// later callbacks and later polls keep running
	waitFor(t, "callbacks after panic", func() bool { return after.Load() >= 2 })
	if err := stop(); err != nil {
		t.Errorf("Start() error = %v", err)
	}
}

func TestWithSnapshotCallback_NotCalledOnFailure(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer ts.Close()

	var calls atomic.Int32
	site, err := New(
		WithStatsURL(ts.URL),
		WithPort(19308),
		WithLogger(testLogger()),
		WithRefreshInterval(20*time.Millisecond),
		WithSnapshotCallback(func(Snapshot) { calls.Add(1) }),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	stop := runSite(t, site)

	waitFor(t, "failed fetches", func() bool { return hits.Load() >= 3 })
	_ = stop()

	if calls.Load() != 0 {
		t.Errorf("callback invoked %d times for failed fetches", calls.Load())
	}
}

func TestStart_RecordsPollMetrics(t *testing.T) {
	ts, _ := statsServer(t)
	reg := prometheus.NewRegistry()

	site, err := New(
		WithStatsURL(ts.URL),
		WithPort(19309),
		WithLogger(testLogger()),
		WithRefreshInterval(time.Hour),
		WithMetricsRegistry(reg),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	stop := runSite(t, site)
	defer func() { _ = stop() }()

	waitFor(t, "poll metric", func() bool {
		resp, err := http.Get("http://127.0.0.1:19309/metrics")
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(resp.Body)
		return strings.Contains(string(body), `svworldz_stats_polls_total{outcome="ok"} 1`)
	})
}

func TestFetch(t *testing.T) {
	ts, _ := statsServer(t)

	site, err := New(WithStatsURL(ts.URL), WithLogger(testLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := site.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got != (Snapshot{Subscribers: 1, Views: 10}) {
		t.Errorf("Fetch() = %+v", got)
	}
}

func TestFetch_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			want:    ErrNetwork,
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"subscribers":`)) },
			want:    ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			site, err := New(WithStatsURL(ts.URL), WithLogger(testLogger()))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if _, err := site.Fetch(context.Background()); !errors.Is(err, tt.want) {
				t.Errorf("Fetch() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFetch_CustomDecoderAndHeaders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"items":[{"statistics":{"subscriberCount":"774000","viewCount":"50000000"}}]}`))
	}))
	defer ts.Close()

	site, err := New(
		WithStatsURL(ts.URL),
		WithLogger(testLogger()),
		WithStatsHeaders("X-Api-Key", "secret"),
		WithStatsDecoder(YouTubeChannelDecoder),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := site.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got != (Snapshot{Subscribers: 774000, Views: 50000000}) {
		t.Errorf("Fetch() = %+v", got)
	}
}
