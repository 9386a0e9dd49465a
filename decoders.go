package svworldz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpalmerr/svworldz/internal/poller"
)

// JSONDecoder is the default [SnapshotDecoder]. It reads
//
//	{"subscribers": 774000, "views": 50000000}
//
// Both fields are required non-negative integers; other fields are ignored.
var JSONDecoder SnapshotDecoder = func(body []byte) (Snapshot, error) {
	s, err := poller.DecodeJSON(body)
	return Snapshot(s), err
}

// YouTubeChannelDecoder reads a YouTube Data API v3 channels response
// (part=statistics), where the counts arrive as decimal strings:
//
//	{"items": [{"statistics": {"subscriberCount": "774000", "viewCount": "50000000"}}]}
//
// Channels that hide their subscriber count fail with [ErrParse].
var YouTubeChannelDecoder = FieldDecoder(
	"items.0.statistics.subscriberCount",
	"items.0.statistics.viewCount",
)

// FieldDecoder returns a [SnapshotDecoder] that reads the two counts from
// arbitrary JSON using dot notation. Path segments that are integers index
// into arrays.
//
// Values may be JSON integers or strings holding a decimal integer.
//
// Example:
//
//	// For response: {"data": {"channel": {"subs": 10, "views": "20"}}}
//	decoder := svworldz.FieldDecoder("data.channel.subs", "data.channel.views")
func FieldDecoder(subscribersPath, viewsPath string) SnapshotDecoder {
	subParts := strings.Split(subscribersPath, ".")
	viewParts := strings.Split(viewsPath, ".")

	return func(body []byte) (Snapshot, error) {
		var data any
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&data); err != nil {
			return Snapshot{}, fmt.Errorf("%w: %v", ErrParse, err)
		}

		subs, err := countAt(data, subParts)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: %s: %v", ErrParse, subscribersPath, err)
		}
		views, err := countAt(data, viewParts)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: %s: %v", ErrParse, viewsPath, err)
		}

		s, err := poller.NewSnapshot(subs, views)
		return Snapshot(s), err
	}
}

// countAt walks a decoded JSON value along parts and reads an integer.
func countAt(data any, parts []string) (int64, error) {
	current := data

	for _, part := range parts {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return 0, fmt.Errorf("missing field %q", part)
			}
			current = next
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return 0, fmt.Errorf("no element %q", part)
			}
			current = node[i]
		default:
			return 0, fmt.Errorf("cannot descend into %q", part)
		}
	}

	switch v := current.(type) {
	case json.Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		return 0, fmt.Errorf("value is %T, not an integer", current)
	}
}

// FirstOf returns a [SnapshotDecoder] that tries each decoder in order and
// returns the first success. If all fail, the errors are joined.
//
// Example:
//
//	// Accept either the site's own shape or a raw YouTube response
//	decoder := svworldz.FirstOf(svworldz.JSONDecoder, svworldz.YouTubeChannelDecoder)
func FirstOf(decoders ...SnapshotDecoder) SnapshotDecoder {
	return func(body []byte) (Snapshot, error) {
		if len(decoders) == 0 {
			return Snapshot{}, fmt.Errorf("%w: no decoders", ErrParse)
		}
		errs := make([]error, 0, len(decoders))
		for _, d := range decoders {
			s, err := d(body)
			if err == nil {
				return s, nil
			}
			errs = append(errs, err)
		}
		return Snapshot{}, errors.Join(errs...)
	}
}
