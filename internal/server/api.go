package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// handleStats returns the current stats as JSON. Before the first successful
// poll the counts are zero.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	rec, _ := s.cfg.Store.Get()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(rec); err != nil {
		s.logger.Error("failed to encode stats response", "error", err)
	}
}

type healthResponse struct {
	Status      string     `json:"status"`
	Stats       string     `json:"stats"`
	LastSuccess *time.Time `json:"last_success"`
}

// handleHealth always reports ok while the process serves; stats is
// "pending" until the first successful poll.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Stats: "pending"}
	if rec, ok := s.cfg.Store.Get(); ok {
		resp.Stats = "fresh"
		updated := rec.UpdatedAt
		resp.LastSuccess = &updated
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode health response", "error", err)
	}
}

// handleStream streams stats updates via Server-Sent Events.
//
// Writes carry a deadline so a slow or vanished client cannot pin the
// handler; it would otherwise never observe shutdown.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	rc := http.NewResponseController(w)
	deadlinesSupported := true

	writeAndFlush := func(data []byte) error {
		if deadlinesSupported {
			if err := rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout)); err != nil {
				s.logger.Warn("sse write deadlines not supported", "error", err)
				deadlinesSupported = false
			}
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		return rc.Flush()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.cfg.Store.Subscribe()
	defer s.cfg.Store.Unsubscribe(ch)

	s.cfg.Metrics.StreamOpened()
	defer s.cfg.Metrics.StreamClosed()

	// tell the browser how long to wait before reconnecting
	if _, err := fmt.Fprint(w, "retry: 10000\n\n"); err != nil {
		return
	}

	if rec, ok := s.cfg.Store.Get(); ok {
		data, err := json.Marshal(rec)
		if err == nil {
			if err := writeAndFlush(data); err != nil {
				return
			}
		}
	} else if err := rc.Flush(); err != nil {
		return
	}

	for {
		select {
		case rec, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(rec)
			if err != nil {
				continue
			}
			if err := writeAndFlush(data); err != nil {
				return
			}

		case <-r.Context().Done():
			// fires on both client disconnect and server shutdown
			return
		}
	}
}
