// Package svworldz serves the SV Worldz channel's marketing site with live
// subscriber and view counts.
//
// The site is a single binary: pages are rendered on the server, static
// assets are embedded, and the channel metrics are refreshed in the
// background from a configurable stats endpoint.
//
// # Quick Start
//
//	site, _ := svworldz.New(svworldz.WithStatsURL("https://stats.example.com/channel"))
//
//	// Set up graceful shutdown on SIGINT/SIGTERM
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	site.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// Site uses the functional options pattern for configuration:
//
//	site, err := svworldz.New(
//	    svworldz.WithStatsURL(statsURL),
//	    svworldz.WithRefreshInterval(time.Minute),
//	    svworldz.WithPort(9090),
//	    svworldz.WithContactWebhook("https://hooks.example.com/contact", nil, 0),
//	)
//
// # Stats Refresh
//
// The stats endpoint is fetched once on start and then every refresh
// interval. Fetches never overlap. A failed fetch, network or parse, is
// logged and leaves the current [Snapshot] untouched; the next tick is the
// retry. Open pages receive each new snapshot over Server-Sent Events.
//
// # Decoders
//
// Decoders turn the stats response into a [Snapshot]:
//
//   - [JSONDecoder]: {"subscribers": N, "views": M}, the default
//   - [YouTubeChannelDecoder]: a YouTube Data API channels response
//   - [FieldDecoder]: any JSON, with dot-notation paths to both counts
//   - [FirstOf]: tries several decoders in order
//
// # Architecture
//
// The site consists of several internal packages (under internal/):
//
//   - internal/poller: periodic stats fetching with pub/sub
//   - internal/store: in-memory latest stats with pub/sub for live updates
//   - internal/motion: easing, counters and CSS animation timing
//   - internal/view: page and fragment rendering
//   - internal/contact: contact form parsing, validation and delivery
//   - internal/metrics: Prometheus instruments
//   - internal/server: HTTP routes, pages, JSON API and Server-Sent Events
//   - web: embedded static assets
package svworldz
