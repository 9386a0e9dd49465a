// Package server provides the HTTP server for the site's pages and API.
//
// Routes:
//
//   - GET /, /about, /contact, /privacy, /terms: rendered pages
//   - POST /contact: contact form submission (CSRF protected, rate limited)
//   - GET /api/youtube-stats: current channel stats as JSON
//   - GET /api/stats/stream: Server-Sent Events stream of stats updates
//   - GET /healthz: liveness and stats freshness
//   - GET /metrics: Prometheus metrics
//   - GET /assets/*: embedded stylesheet, script and media
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
package server
