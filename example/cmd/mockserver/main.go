// Standalone mock stats server for testing the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/svworldz serve -c example/svworldz.yaml
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

func main() {
	fmt.Println("Mock stats server starting on :9999")
	fmt.Println("  /api/youtube-stats     {\"subscribers\": n, \"views\": n}")
	fmt.Println("  /youtube/v3/channels   YouTube Data API shape")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	var (
		mu          sync.Mutex
		subscribers int64 = 774000
		views       int64 = 58000000
	)

	next := func() (int64, int64) {
		mu.Lock()
		defer mu.Unlock()
		subscribers += int64(rand.IntN(40))
		views += int64(500 + rand.IntN(5000))
		return subscribers, views
	}

	http.HandleFunc("/api/youtube-stats", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Duration(50+rand.IntN(150)) * time.Millisecond)

		subs, v := next()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]int64{
			"subscribers": subs,
			"views":       v,
		})
	})

	// counts arrive as strings, matching the real API
	http.HandleFunc("/youtube/v3/channels", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") == "" {
			http.Error(w, `{"error":{"code":403,"message":"missing key"}}`, http.StatusForbidden)
			return
		}

		subs, v := next()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []any{
				map[string]any{
					"id": r.URL.Query().Get("id"),
					"statistics": map[string]string{
						"subscriberCount": strconv.FormatInt(subs, 10),
						"viewCount":       strconv.FormatInt(v, 10),
					},
				},
			},
		})
	})

	slog.Info("listening", "addr", ":9999")
	if err := http.ListenAndServe(":9999", nil); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
