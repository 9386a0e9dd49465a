package svworldz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/text/language"

	"github.com/jpalmerr/svworldz/internal/contact"
	"github.com/jpalmerr/svworldz/internal/metrics"
	"github.com/jpalmerr/svworldz/internal/poller"
	"github.com/jpalmerr/svworldz/internal/server"
	"github.com/jpalmerr/svworldz/internal/store"
	"github.com/jpalmerr/svworldz/internal/view"
	"github.com/jpalmerr/svworldz/web"
)

const (
	defaultRefreshInterval = poller.DefaultInterval
	defaultFetchTimeout    = poller.DefaultTimeout
	defaultPort            = 8080
	defaultContactEvery    = 12 * time.Second
	defaultContactBurst    = 5

	keyLen = 32
)

// Site serves the SV Worldz marketing pages with live channel metrics.
//
// Site polls the stats endpoint, keeps the latest [Snapshot], and serves the
// landing, about, contact and legal pages plus a small JSON API. It is
// created using [New] with functional options and started with
// [Site.Start].
//
// The typical lifecycle is:
//
//	site, err := svworldz.New(svworldz.WithStatsURL("https://stats.example.com/channel"))
//	if err != nil {
//	    slog.Error("failed to create site", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	site.Start(ctx) // blocks until context cancelled
type Site struct {
	statsURL          string
	statsHeaders      map[string]string
	refreshInterval   time.Duration
	fetchTimeout      time.Duration
	decoder           SnapshotDecoder
	port              int
	logger            *slog.Logger
	snapshotCallbacks []func(Snapshot)
	submitter         ContactSubmitter
	contactEvery      time.Duration
	contactBurst      int
	csrfKey           []byte
	sessionKey        []byte
	secureCookies     bool
	trustedOrigins    []string
	trustProxy        bool
	locale            language.Tag
	registry          *prometheus.Registry
	metrics           *metrics.Metrics
}

// New creates a [Site] with the given options.
//
// A stats URL must be configured via [WithStatsURL]. Other options have
// defaults:
//   - Refresh interval: 60 seconds
//   - Fetch timeout: 10 seconds
//   - Decoder: [JSONDecoder]
//   - Port: 8080
//   - Contact rate limit: 5 per minute per client
//   - Locale: en
//
// Returns an error if no stats URL is configured or if any option is invalid.
func New(opts ...Option) (*Site, error) {
	cfg := &siteConfig{
		refreshInterval: defaultRefreshInterval,
		fetchTimeout:    defaultFetchTimeout,
		decoder:         JSONDecoder,
		port:            defaultPort,
		contactEvery:    defaultContactEvery,
		contactBurst:    defaultContactBurst,
		locale:          view.DefaultTag,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.statsURL == "" {
		return nil, errors.New("stats url is required")
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.submitter == nil {
		cfg.submitter = contact.LogSubmitter{Logger: logger}
	}

	if cfg.csrfKey == nil {
		logger.Warn("no csrf key configured, generating one; form tokens will not survive a restart")
		cfg.csrfKey = securecookie.GenerateRandomKey(keyLen)
	}
	if cfg.sessionKey == nil {
		cfg.sessionKey = securecookie.GenerateRandomKey(keyLen)
	}
	if cfg.csrfKey == nil || cfg.sessionKey == nil {
		return nil, errors.New("failed to generate random keys")
	}

	if cfg.registry == nil {
		cfg.registry = prometheus.NewRegistry()
		cfg.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return &Site{
		statsURL:          cfg.statsURL,
		statsHeaders:      cfg.statsHeaders,
		refreshInterval:   cfg.refreshInterval,
		fetchTimeout:      cfg.fetchTimeout,
		decoder:           cfg.decoder,
		port:              cfg.port,
		logger:            logger,
		snapshotCallbacks: cfg.snapshotCallbacks,
		submitter:         cfg.submitter,
		contactEvery:      cfg.contactEvery,
		contactBurst:      cfg.contactBurst,
		csrfKey:           cfg.csrfKey,
		sessionKey:        cfg.sessionKey,
		secureCookies:     cfg.secureCookies,
		trustedOrigins:    cfg.trustedOrigins,
		trustProxy:        cfg.trustProxy,
		locale:            cfg.locale,
		registry:          cfg.registry,
		metrics:           metrics.New(cfg.registry),
	}, nil
}

// Start begins polling the stats endpoint and serving the site.
//
// Start is a blocking call that runs until the provided context is cancelled.
// During execution:
//
//   - The stats endpoint is fetched immediately, then every refresh interval
//   - Each successful fetch replaces the snapshot and is pushed to open pages
//   - Failed fetches are logged and the previous snapshot is kept
//   - The site is available at http://localhost:<port>
//
// Returns nil on graceful shutdown. Returns an error if the HTTP server fails
// to start.
func (s *Site) Start(ctx context.Context) error {
	s.logger.Info("svworldz starting", "stats_url", s.statsURL)
	s.logger.Info("stats refresh configured", "interval", s.refreshInterval.String())
	s.logger.Info("site available", "url", fmt.Sprintf("http://localhost:%d", s.port))

	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	statsStore := store.NewMemoryStore()

	statsPoller, err := s.newPoller(s.metrics.ObservePoll)
	if err != nil {
		return err
	}

	// store update first (callbacks fire after data is published)
	statsPoller.Subscribe(func(snap poller.Snapshot) {
		statsStore.Update(store.StatsRecord{
			Subscribers: snap.Subscribers,
			Views:       snap.Views,
			UpdatedAt:   time.Now().UTC(),
		})
		for _, cb := range s.snapshotCallbacks {
			invokeCallbackSafe(cb, Snapshot(snap), s.logger)
		}
	})

	httpServer, err := server.New(server.Config{
		Port:           s.port,
		Store:          statsStore,
		Assets:         web.Assets,
		Logger:         s.logger,
		Metrics:        s.metrics,
		Gatherer:       s.registry,
		Submitter:      s.submitter,
		Limiter:        contact.NewLimiter(s.contactEvery, s.contactBurst),
		CSRFKey:        s.csrfKey,
		SessionKey:     s.sessionKey,
		SecureCookies:  s.secureCookies,
		TrustedOrigins: s.trustedOrigins,
		TrustProxy:     s.trustProxy,
		DefaultTag:     s.locale,
	})
	if err != nil {
		return fmt.Errorf("failed to configure HTTP server: %w", err)
	}
	if err := httpServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	statsPoller.Start(ctx)

	<-ctx.Done()
	statsPoller.Stop()
	s.logger.Info("svworldz stopped")
	return nil
}

// Fetch performs a single stats request and decodes it, without starting the
// site. The returned error wraps [ErrNetwork] or [ErrParse].
func (s *Site) Fetch(ctx context.Context) (Snapshot, error) {
	p, err := s.newPoller(nil)
	if err != nil {
		return Snapshot{}, err
	}
	defer p.Stop()

	result := p.PollOnce(ctx)
	if result.Error != nil {
		return Snapshot{}, result.Error
	}
	return Snapshot(result.Snapshot), nil
}

func (s *Site) newPoller(observe func(poller.Result)) (*poller.StatsPoller, error) {
	return poller.NewStatsPoller(poller.Config{
		URL:      s.statsURL,
		Headers:  maps.Clone(s.statsHeaders),
		Interval: s.refreshInterval,
		Timeout:  s.fetchTimeout,
		Decode:   s.decoder.toPollerDecoder(),
		Observe:  observe,
	}, s.logger)
}

// Port returns the configured HTTP port.
func (s *Site) Port() int {
	return s.port
}

// RefreshInterval returns the configured time between stats fetches.
func (s *Site) RefreshInterval() time.Duration {
	return s.refreshInterval
}

// StatsURL returns the configured stats endpoint.
func (s *Site) StatsURL() string {
	return s.statsURL
}

// invokeCallbackSafe calls a snapshot callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(Snapshot), snap Snapshot, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("snapshot callback panicked",
				"panic", r,
				"subscribers", snap.Subscribers,
				"views", snap.Views,
			)
		}
	}()
	cb(snap)
}
