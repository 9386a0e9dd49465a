package main

import (
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"
)

// mockChannel drifts channel counts upward and fails now and then, so the
// site's last-good behaviour is visible.
type mockChannel struct {
	mu          sync.Mutex
	subscribers int64
	views       int64
	failUntil   time.Time
}

// tick advances the counts and reports whether this request should fail.
func (m *mockChannel) tick() (subs, views int64, fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if now.Before(m.failUntil) {
		return 0, 0, true
	}
	// roughly one request in ten starts a 10-20 second outage
	if rand.IntN(10) == 0 {
		m.failUntil = now.Add(time.Duration(10+rand.IntN(11)) * time.Second)
		slog.Info("mock outage started", "until", m.failUntil.Format(time.TimeOnly))
		return 0, 0, true
	}

	m.subscribers += int64(rand.IntN(40))
	m.views += int64(500 + rand.IntN(5000))
	return m.subscribers, m.views, false
}

// StartMockStatsServer runs a mock channel stats endpoint at
// /api/youtube-stats. Call this in a goroutine before starting the site.
func StartMockStatsServer(addr string) {
	channel := &mockChannel{subscribers: 774000, views: 58000000}

	http.HandleFunc("/api/youtube-stats", func(w http.ResponseWriter, r *http.Request) {
		// simulate small latency variance
		time.Sleep(time.Duration(50+rand.IntN(150)) * time.Millisecond)

		subs, views, fail := channel.tick()
		if fail {
			http.Error(w, "upstream quota exceeded", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]int64{
			"subscribers": subs,
			"views":       views,
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("mock server error", "error", err)
	}
}
