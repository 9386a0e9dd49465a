// Package store keeps the latest channel metrics for the HTTP layer.
//
// The main components are:
//
//   - [Store]: interface for reading the current record and subscribing
//   - [MemoryStore]: in-memory implementation with pub/sub fanout
//   - [StatsRecord]: the stored, JSON-ready form of a snapshot
//
// Subscribers receive updates via channels with non-blocking sends, so a
// stalled browser connection can never hold up the poller.
package store
