package store

import "time"

// StatsRecord is the stored form of the latest channel metrics.
//
// It is decoupled from the poller's snapshot so the JSON served to pages
// (REST and SSE) can evolve on its own.
type StatsRecord struct {
	// Subscribers is the channel subscriber count.
	Subscribers int64 `json:"subscribers"`

	// Views is the channel's total view count.
	Views int64 `json:"views"`

	// UpdatedAt is when the values were last refreshed successfully.
	// Zero until the first successful poll.
	UpdatedAt time.Time `json:"updated_at"`
}

// Store holds the current [StatsRecord] and fans updates out to listeners.
//
// Implementations must be safe for concurrent access.
type Store interface {
	// Update replaces the stored record and notifies all subscribers.
	Update(record StatsRecord)

	// Get returns the current record. ok is false until the first Update.
	Get() (record StatsRecord, ok bool)

	// Subscribe returns a buffered channel that receives every update.
	// Slow consumers may miss updates. Callers must Unsubscribe when done.
	Subscribe() <-chan StatsRecord

	// Unsubscribe removes a subscription and closes its channel.
	// Safe to call with a channel that was already unsubscribed.
	Unsubscribe(ch <-chan StatsRecord)
}
