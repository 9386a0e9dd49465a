package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultInterval is the refresh cadence of the stats endpoint.
	DefaultInterval = 60 * time.Second

	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 10 * time.Second
)

// Config describes the endpoint a [StatsPoller] refreshes from.
type Config struct {
	// URL is the metrics endpoint. Required.
	URL string

	// Headers are sent with every request (API keys, etc.).
	Headers map[string]string

	// Interval is the time between fetches. Zero means [DefaultInterval].
	Interval time.Duration

	// Timeout bounds each fetch. Zero means [DefaultTimeout].
	Timeout time.Duration

	// Decode interprets a 2xx body. Nil means [DecodeJSON].
	Decode Decoder

	// Observe, if set, is called after every attempt that was not
	// abandoned by Stop, successful or not.
	Observe func(Result)
}

type subscriber struct {
	id uint64
	fn func(Snapshot)
}

// StatsPoller periodically fetches channel metrics and publishes them.
//
// The poller fetches once immediately on [StatsPoller.Start] and then on
// every tick of a fixed interval. A tick that fires while the previous fetch
// is still running is skipped, so fetches never overlap. Failed fetches leave
// the current snapshot untouched; the next tick is the retry.
//
// All methods are safe for concurrent use.
type StatsPoller struct {
	cfg    Config
	client *Client
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	started  bool
	stopped  bool
	snapshot Snapshot
	subs     []subscriber
	nextID   uint64

	inFlight atomic.Bool
}

// NewStatsPoller creates a [StatsPoller]. Defaults are applied for zero
// Interval, Timeout and Decode. The poller does nothing until started.
func NewStatsPoller(cfg Config, logger *slog.Logger) (*StatsPoller, error) {
	if cfg.URL == "" {
		return nil, errors.New("stats url is required")
	}
	if cfg.Interval < 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", cfg.Interval)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Decode == nil {
		cfg.Decode = DecodeJSON
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StatsPoller{
		cfg:    cfg,
		client: NewClient(),
		logger: logger,
	}, nil
}

// Interval returns the effective refresh interval.
func (s *StatsPoller) Interval() time.Duration {
	return s.cfg.Interval
}

// Snapshot returns the latest known values. Before the first successful
// fetch this is the zero snapshot.
func (s *StatsPoller) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Subscribe registers fn to receive every newly published snapshot, in
// registration order. The returned function unregisters it; calling it more
// than once is safe. A nil fn is ignored.
func (s *StatsPoller) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Start begins polling in a background goroutine and returns immediately.
//
// Start is idempotent; calls after the first, or after Stop, are no-ops.
// Cancelling ctx has the same effect as Stop except that it does not wait.
func (s *StatsPoller) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	pollCtx := s.ctx
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		s.tick(pollCtx)

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				s.tick(pollCtx)
			}
		}
	}()
}

// Stop cancels the interval timer and any in-flight fetch, then waits for
// the polling goroutines to exit. A fetch that completes after Stop is
// dropped. Stop is idempotent and safe to call before Start.
func (s *StatsPoller) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		if s.cancel != nil {
			s.cancel()
		}
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.client.Close()
}

// tick launches a fetch unless one is already running.
func (s *StatsPoller) tick(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Debug("stats fetch still in flight, skipping tick", "url", s.cfg.URL)
		return
	}

	// the loop goroutine holds a wg slot, so Add cannot race with Wait
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.inFlight.Store(false)
		s.pollAndPublish(ctx)
	}()
}

func (s *StatsPoller) pollAndPublish(ctx context.Context) {
	result := s.PollOnce(ctx)

	if ctx.Err() != nil {
		s.logger.Debug("dropping stats result after stop", "url", s.cfg.URL)
		return
	}

	if result.Error != nil {
		s.logger.Warn("stats fetch failed",
			"url", s.cfg.URL,
			"status_code", result.StatusCode,
			"latency_ms", result.Latency.Milliseconds(),
			"error", result.Error.Error(),
		)
	} else {
		s.logger.Debug("stats fetched",
			"subscribers", result.Snapshot.Subscribers,
			"views", result.Snapshot.Views,
			"latency_ms", result.Latency.Milliseconds(),
		)
		s.publish(result.Snapshot)
	}

	if s.cfg.Observe != nil {
		s.cfg.Observe(result)
	}
}

// PollOnce performs a single fetch-and-decode without publishing.
func (s *StatsPoller) PollOnce(ctx context.Context) Result {
	resp := s.client.Fetch(ctx, s.cfg.URL, s.cfg.Headers, s.cfg.Timeout)

	result := Result{
		Latency:    resp.Latency,
		CheckedAt:  time.Now(),
		StatusCode: resp.StatusCode,
	}

	switch {
	case resp.Error != nil:
		result.Error = fmt.Errorf("%w: %w", ErrNetwork, resp.Error)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		result.Error = fmt.Errorf("%w: unexpected status %d", ErrNetwork, resp.StatusCode)
	default:
		snap, err := s.safeDecode(resp.Body)
		if err != nil {
			result.Error = err
		} else {
			result.Snapshot = snap
		}
	}

	return result
}

// publish replaces the snapshot and notifies subscribers outside the lock.
func (s *StatsPoller) publish(snap Snapshot) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.snapshot = snap
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		s.notifySafe(sub.fn, snap)
	}
}

// notifySafe calls a subscriber with panic recovery.
func (s *StatsPoller) notifySafe(fn func(Snapshot), snap Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("stats subscriber panicked",
				"correlation_id", uuid.NewString(),
				"panic", fmt.Sprintf("%v", r),
			)
		}
	}()
	fn(snap)
}

// safeDecode runs the decoder with panic recovery. Every failure it returns
// wraps ErrParse.
func (s *StatsPoller) safeDecode(body []byte) (snap Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			s.logger.Error("stats decoder panic",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			snap = Snapshot{}
			err = fmt.Errorf("%w: decoder panic (correlation_id: %s)", ErrParse, correlationID)
		}
	}()

	snap, err = s.cfg.Decode(body)
	if err != nil {
		if !errors.Is(err, ErrParse) {
			err = fmt.Errorf("%w: %w", ErrParse, err)
		}
		return Snapshot{}, err
	}
	if snap.Subscribers < 0 || snap.Views < 0 {
		return Snapshot{}, fmt.Errorf("%w: negative counts %+v", ErrParse, snap)
	}
	return snap, nil
}
