package svworldz

import (
	"github.com/jpalmerr/svworldz/internal/contact"
	"github.com/jpalmerr/svworldz/internal/poller"
)

var (
	// ErrNetwork classifies fetch failures: transport errors, timeouts and
	// non-2xx responses.
	ErrNetwork = poller.ErrNetwork

	// ErrParse classifies response bodies a [SnapshotDecoder] rejects.
	ErrParse = poller.ErrParse
)

// Snapshot is the latest known pair of channel metrics.
//
// A Snapshot is replaced wholesale on every successful refresh and never
// partially updated. Before the first success both counts are zero.
type Snapshot struct {
	Subscribers int64
	Views       int64
}

// SnapshotDecoder turns a 2xx stats response body into a [Snapshot].
//
// Decoders are pure functions. A body that cannot be interpreted must return
// an error; errors that do not already wrap [ErrParse] are wrapped with it.
// Counts must be non-negative.
//
// Built-in decoders: [JSONDecoder], [YouTubeChannelDecoder], [FieldDecoder]
// and [FirstOf] for composition.
//
// # Panic Safety
//
// Decoders run inside a panic recovery boundary. A panicking decoder fails
// the refresh with [ErrParse] and a correlation ID; the previous snapshot is
// kept.
type SnapshotDecoder func(body []byte) (Snapshot, error)

// ContactSubmission is a validated contact form submission.
type ContactSubmission = contact.Submission

// ContactSubmitter delivers contact submissions. Implementations must be safe
// for concurrent use.
type ContactSubmitter = contact.Submitter

// toPollerDecoder adapts a public decoder to the poller's.
func (d SnapshotDecoder) toPollerDecoder() poller.Decoder {
	return func(body []byte) (poller.Snapshot, error) {
		s, err := d(body)
		return poller.Snapshot(s), err
	}
}
