package store

import (
	"sync"
)

// subscriberBuffer is the per-subscriber channel capacity.
const subscriberBuffer = 16

// MemoryStore is an in-memory implementation of [Store].
//
// Subscribers receive updates via buffered channels. Sends are non-blocking;
// if a subscriber's buffer is full the update is dropped for that subscriber.
// Every record is a full replacement, so a dropped update is recovered by the
// next one.
type MemoryStore struct {
	mu      sync.RWMutex
	record  StatsRecord
	written bool

	subMu       sync.RWMutex
	subscribers map[chan StatsRecord]struct{}
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subscribers: make(map[chan StatsRecord]struct{}),
	}
}

// Update replaces the stored record and notifies all subscribers.
func (m *MemoryStore) Update(record StatsRecord) {
	m.mu.Lock()
	m.record = record
	m.written = true
	m.mu.Unlock()

	m.notifySubscribers(record)
}

// Get returns the current record and whether one has been stored yet.
func (m *MemoryStore) Get() (StatsRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.record, m.written
}

// Subscribe creates a new subscription.
//
// Caller must call [MemoryStore.Unsubscribe] when done to prevent leaks.
func (m *MemoryStore) Subscribe() <-chan StatsRecord {
	ch := make(chan StatsRecord, subscriberBuffer)

	m.subMu.Lock()
	m.subscribers[ch] = struct{}{}
	m.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (m *MemoryStore) Unsubscribe(ch <-chan StatsRecord) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for subCh := range m.subscribers {
		if subCh == ch {
			delete(m.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// SubscriberCount reports the number of live subscriptions.
func (m *MemoryStore) SubscriberCount() int {
	m.subMu.RLock()
	defer m.subMu.RUnlock()
	return len(m.subscribers)
}

func (m *MemoryStore) notifySubscribers(record StatsRecord) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	for ch := range m.subscribers {
		select {
		case ch <- record:
		default:
			// slow subscriber, drop
		}
	}
}
