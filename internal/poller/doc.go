// Package poller refreshes channel metrics from a remote endpoint.
//
// The main components are:
//
//   - [Client]: HTTP client wrapper with per-request timeouts and size limits
//   - [StatsPoller]: fetches on start and on a fixed interval, publishing
//     each successful [Snapshot] to subscribers
//   - [DecodeJSON]: the default `{"subscribers": N, "views": M}` decoder
//
// Failures are classified with [ErrNetwork] and [ErrParse], logged, and
// otherwise ignored: the previous snapshot stays in place until a later
// fetch succeeds.
package poller
