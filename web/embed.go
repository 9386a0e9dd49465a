// Package web provides the embedded static assets for the site.
//
// The stylesheet and script are compiled into the binary so the site deploys
// as a single file. Pages are rendered by the view package; this package only
// carries what the browser fetches separately.
package web

import "embed"

// Assets is an embedded filesystem containing the static assets.
//
// The filesystem structure is:
//
//	assets/
//	  site.css  - layout, typography and colour
//	  site.js   - counters, parallax, scroll progress, live stats, contact form
//
// The server mounts it under /assets/.
//
//go:embed assets/*
var Assets embed.FS
