package poller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNetwork classifies transport failures and non-2xx responses.
	ErrNetwork = errors.New("network failure")

	// ErrParse classifies bodies that are not the expected JSON shape.
	ErrParse = errors.New("parse failure")
)

// Snapshot is the latest known pair of channel metrics.
//
// A Snapshot is a value: it is replaced wholesale, never mutated in place.
type Snapshot struct {
	Subscribers int64
	Views       int64
}

// Decoder turns a 2xx response body into a [Snapshot].
//
// Decoders must wrap [ErrParse] for any body they cannot interpret.
type Decoder func(body []byte) (Snapshot, error)

// statsPayload is the wire shape of the metrics endpoint.
// Pointer fields distinguish a missing field from a zero count.
type statsPayload struct {
	Subscribers *int64 `json:"subscribers"`
	Views       *int64 `json:"views"`
}

// DecodeJSON decodes the default `{"subscribers": N, "views": M}` body.
//
// Both fields are required and must be non-negative integers.
func DecodeJSON(body []byte) (Snapshot, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Snapshot{}, fmt.Errorf("%w: empty body", ErrParse)
	}

	var p statsPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if p.Subscribers == nil {
		return Snapshot{}, fmt.Errorf("%w: missing field %q", ErrParse, "subscribers")
	}
	if p.Views == nil {
		return Snapshot{}, fmt.Errorf("%w: missing field %q", ErrParse, "views")
	}

	return NewSnapshot(*p.Subscribers, *p.Views)
}

// NewSnapshot validates the counts and builds a [Snapshot].
func NewSnapshot(subscribers, views int64) (Snapshot, error) {
	if subscribers < 0 {
		return Snapshot{}, fmt.Errorf("%w: subscribers must be non-negative, got %d", ErrParse, subscribers)
	}
	if views < 0 {
		return Snapshot{}, fmt.Errorf("%w: views must be non-negative, got %d", ErrParse, views)
	}
	return Snapshot{Subscribers: subscribers, Views: views}, nil
}

// Result describes the outcome of one poll attempt.
type Result struct {
	// Snapshot is the decoded value. Only meaningful when Error is nil.
	Snapshot Snapshot

	// Latency is the time taken by the HTTP request.
	Latency time.Duration

	// CheckedAt is when the attempt completed.
	CheckedAt time.Time

	// StatusCode is the upstream HTTP status, zero on transport failure.
	StatusCode int

	// Error wraps [ErrNetwork] or [ErrParse] when the attempt failed.
	Error error
}
