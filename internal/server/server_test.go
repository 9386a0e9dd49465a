package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jpalmerr/svworldz/internal/store"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	testCSRFKey    = bytes.Repeat([]byte("c"), keyLen)
	testSessionKey = bytes.Repeat([]byte("s"), keyLen)
)

// newTestServer builds a server over ms with valid keys. Overrides may adjust
// the config before validation.
func newTestServer(t testing.TB, ms store.Store, overrides ...func(*Config)) *Server {
	t.Helper()
	cfg := Config{
		Store:      ms,
		Logger:     testLogger(),
		CSRFKey:    testCSRFKey,
		SessionKey: testSessionKey,
	}
	for _, o := range overrides {
		o(&cfg)
	}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func record(subs, views int64) store.StatsRecord {
	return store.StatsRecord{Subscribers: subs, Views: views, UpdatedAt: time.Now()}
}

// nonFlushWriter is a ResponseWriter that does NOT implement http.Flusher.
type nonFlushWriter struct {
	header http.Header
	code   int
	body   strings.Builder
}

func (w *nonFlushWriter) Header() http.Header {
	if w.header == nil {
		w.header = make(http.Header)
	}
	return w.header
}

func (w *nonFlushWriter) Write(b []byte) (int, error) { return w.body.Write(b) }
func (w *nonFlushWriter) WriteHeader(code int)        { w.code = code }

// parseSSEEvents decodes every data line in an SSE body.
func parseSSEEvents(body string) []store.StatsRecord {
	var records []store.StatsRecord
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var rec store.StatsRecord
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records
}

// --- New ---

func TestNew_Validation(t *testing.T) {
	ms := store.NewMemoryStore()
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"nil store", func(c *Config) { c.Store = nil }},
		{"negative port", func(c *Config) { c.Port = -1 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"short csrf key", func(c *Config) { c.CSRFKey = []byte("short") }},
		{"missing session key", func(c *Config) { c.SessionKey = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Store: ms, Logger: testLogger(), CSRFKey: testCSRFKey, SessionKey: testSessionKey}
			tt.modify(&cfg)
			if _, err := New(cfg); err == nil {
				t.Error("New() expected error")
			}
		})
	}
}

// --- SSE ---

func TestHandleStream_BasicFlow(t *testing.T) {
	ms := store.NewMemoryStore()
	ms.Update(record(774000, 50000000))

	srv := newTestServer(t, ms)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/stats/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	srv.handleStream(rec, req)

	body := rec.Body.String()
	if !strings.HasPrefix(body, "retry: 10000\n\n") {
		t.Errorf("expected retry preamble, got: %q", body)
	}

	events := parseSSEEvents(body)
	if len(events) != 1 {
		t.Fatalf("expected 1 initial event, got %d", len(events))
	}
	if events[0].Subscribers != 774000 || events[0].Views != 50000000 {
		t.Errorf("unexpected initial event: %+v", events[0])
	}
}

func TestHandleStream_NoInitialEventBeforeFirstPoll(t *testing.T) {
	ms := store.NewMemoryStore()
	srv := newTestServer(t, ms)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/stats/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	srv.handleStream(rec, req)

	if events := parseSSEEvents(rec.Body.String()); len(events) != 0 {
		t.Errorf("expected no events before first poll, got %+v", events)
	}
	if !rec.Flushed {
		t.Error("expected headers to be flushed")
	}
}

func TestHandleStream_StreamsUpdates(t *testing.T) {
	ms := store.NewMemoryStore()
	ms.Update(record(1, 1))

	srv := newTestServer(t, ms)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/stats/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		srv.handleStream(rec, req)
		close(done)
	}()

	// wait for the handler to subscribe
	deadline := time.Now().Add(time.Second)
	for ms.SubscriberCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	ms.Update(record(2, 20))
	ms.Update(record(3, 30))
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	events := parseSSEEvents(rec.Body.String())
	if len(events) != 3 {
		t.Fatalf("expected 3 events (initial + 2 updates), got %d", len(events))
	}
	if events[2].Subscribers != 3 || events[2].Views != 30 {
		t.Errorf("last event = %+v, want 3/30", events[2])
	}
}

func TestHandleStream_ClientDisconnect(t *testing.T) {
	ms := store.NewMemoryStore()
	srv := newTestServer(t, ms)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/stats/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		srv.handleStream(rec, req)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not exit after client disconnect")
	}

	if n := ms.SubscriberCount(); n != 0 {
		t.Errorf("expected subscriber to be removed, %d remain", n)
	}
}

func TestHandleStream_NoGoroutineLeaks(t *testing.T) {
	ms := store.NewMemoryStore()
	ms.Update(record(1, 1))
	srv := newTestServer(t, ms)

	before := runtime.NumGoroutine()

	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		req := httptest.NewRequest(http.MethodGet, "/api/stats/stream", nil).WithContext(ctx)
		srv.handleStream(httptest.NewRecorder(), req)
		cancel()
	}

	time.Sleep(50 * time.Millisecond)
	after := runtime.NumGoroutine()

	if after > before+2 {
		t.Errorf("possible goroutine leak: before=%d after=%d", before, after)
	}
	if n := ms.SubscriberCount(); n != 0 {
		t.Errorf("expected 0 subscribers, got %d", n)
	}
}

func TestHandleStream_SSENotSupported(t *testing.T) {
	srv := newTestServer(t, store.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/api/stats/stream", nil)
	w := &nonFlushWriter{}

	srv.handleStream(w, req)

	if w.code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.code)
	}
	if !strings.Contains(w.body.String(), "SSE not supported") {
		t.Errorf("unexpected body: %q", w.body.String())
	}
}

func TestHandleStream_Headers(t *testing.T) {
	srv := newTestServer(t, store.NewMemoryStore())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/stats/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	srv.handleStream(rec, req)

	want := map[string]string{
		"Content-Type":  "text/event-stream",
		"Cache-Control": "no-cache",
		"Connection":    "keep-alive",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("header %s = %q, want %q", k, got, v)
		}
	}
}

func TestHandleStream_JSONFormat(t *testing.T) {
	ms := store.NewMemoryStore()
	ms.Update(store.StatsRecord{
		Subscribers: 42,
		Views:       4200,
		UpdatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	srv := newTestServer(t, ms)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/stats/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	srv.handleStream(rec, req)

	want := `data: {"subscribers":42,"views":4200,"updated_at":"2024-01-02T03:04:05Z"}`
	if !strings.Contains(rec.Body.String(), want) {
		t.Errorf("expected %s in body, got: %s", want, rec.Body.String())
	}
}

// TestHandleStream_ServerShutdownIntegration verifies that open streams end
// when the server context is cancelled.
func TestHandleStream_ServerShutdownIntegration(t *testing.T) {
	ms := store.NewMemoryStore()
	ms.Update(record(1, 1))
	srv := newTestServer(t, ms)

	serverCtx, serverCancel := context.WithCancel(context.Background())

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.handleStream(w, r.WithContext(serverCtx))
	})

	ts := httptest.NewServer(handler)
	defer ts.Close()

	connDone := make(chan error, 1)
	go func() {
		resp, err := ts.Client().Get(ts.URL)
		if err != nil {
			connDone <- err
			return
		}
		defer func() { _ = resp.Body.Close() }()

		// read until connection closes
		_, _ = io.Copy(io.Discard, resp.Body)
		connDone <- nil
	}()

	time.Sleep(100 * time.Millisecond)
	serverCancel()

	select {
	case <-connDone:
	case <-time.After(3 * time.Second):
		t.Fatal("SSE connection did not close after server shutdown")
	}
}

// TestHandleStream_MultipleClientsShutdownIntegration tests shutdown with
// multiple concurrent SSE clients.
func TestHandleStream_MultipleClientsShutdownIntegration(t *testing.T) {
	ms := store.NewMemoryStore()
	ms.Update(record(1, 1))
	srv := newTestServer(t, ms)

	serverCtx, serverCancel := context.WithCancel(context.Background())

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.handleStream(w, r.WithContext(serverCtx))
	})

	ts := httptest.NewServer(handler)
	defer ts.Close()

	numClients := 5
	var wg sync.WaitGroup
	started := make(chan struct{})
	var startedCount atomic.Int32

	for i := 0; i < numClients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			resp, err := ts.Client().Get(ts.URL)
			if err != nil {
				return // server might have shut down
			}
			defer func() { _ = resp.Body.Close() }()

			if startedCount.Add(1) == int32(numClients) {
				close(started)
			}
			_, _ = io.Copy(io.Discard, resp.Body)
		}()
	}

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Log("not all clients started, continuing anyway")
	}

	time.Sleep(100 * time.Millisecond)
	serverCancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("not all SSE clients disconnected after shutdown")
	}
}

// TestHandleStream_WriteDeadlineFallback runs the stream on a recorder, which
// does not support write deadlines. The handler must still write and still
// exit on cancellation.
func TestHandleStream_WriteDeadlineFallback(t *testing.T) {
	ms := store.NewMemoryStore()
	ms.Update(record(99, 1))
	srv := newTestServer(t, ms)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/stats/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		srv.handleStream(rec, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
		if !strings.Contains(rec.Body.String(), `"subscribers":99`) {
			t.Errorf("expected initial event, got: %s", rec.Body.String())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not exit after context cancellation")
	}
}

// --- Start ---

func TestStart_AvailablePort_ReturnsNil(t *testing.T) {
	srv := newTestServer(t, store.NewMemoryStore())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start() on available port returned error: %v", err)
	}
	if srv.Addr() == nil {
		t.Error("Addr() should be set after Start")
	}
}

func TestStart_ServesHealthAndShutsDown(t *testing.T) {
	ms := store.NewMemoryStore()
	ms.Update(record(5, 6))
	srv := newTestServer(t, ms)

	ctx, cancel := context.WithCancel(context.Background())
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	port := srv.Addr().(*net.TCPAddr).Port
	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/healthz"

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := http.Get(url); err != nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("server still accepting connections after shutdown")
}

func TestStart_PortInUse_ReturnsError(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}
	defer func() { _ = ln.Close() }()

	port := ln.Addr().(*net.TCPAddr).Port
	srv := newTestServer(t, store.NewMemoryStore(), func(c *Config) { c.Port = port })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = srv.Start(ctx)
	if err == nil {
		t.Fatal("Start() on occupied port should return error")
	}
	if !strings.Contains(err.Error(), "failed to bind") {
		t.Errorf("expected bind error, got: %v", err)
	}
}

// --- Benchmark ---

func BenchmarkHandleStream_SingleClient(b *testing.B) {
	ms := store.NewMemoryStore()
	ms.Update(record(774000, 50000000))
	srv := newTestServer(b, ms)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		req := httptest.NewRequest(http.MethodGet, "/api/stats/stream", nil).WithContext(ctx)
		srv.handleStream(httptest.NewRecorder(), req)
		cancel()
	}
}
