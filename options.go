package svworldz

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"

	"github.com/jpalmerr/svworldz/internal/contact"
	"github.com/jpalmerr/svworldz/internal/view"
)

// siteConfig holds mutable state during Site construction.
type siteConfig struct {
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
}

// Option is a function that configures a [Site] during construction.
//
// Options return an error if validation fails; [New] stops at the first
// failing option.
type Option func(*siteConfig) error

// WithStatsURL sets the endpoint the channel metrics are fetched from.
// Required.
//
// The URL must be absolute http or https.
func WithStatsURL(rawURL string) Option {
	return func(cfg *siteConfig) error {
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("invalid stats url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("stats url must be http or https, got %q", rawURL)
		}
		if u.Host == "" {
			return fmt.Errorf("stats url must include a host, got %q", rawURL)
		}
		cfg.statsURL = rawURL
		return nil
	}
}

// WithStatsHeaders sets headers sent with every stats request, in key/value
// pairs.
//
// Example:
//
//	svworldz.WithStatsHeaders("Authorization", "Bearer token")
//
// Returns an error if an odd number of arguments is given.
func WithStatsHeaders(kv ...string) Option {
	return func(cfg *siteConfig) error {
		if len(kv)%2 != 0 {
			return errors.New("stats headers must be key/value pairs")
		}
		if cfg.statsHeaders == nil {
			cfg.statsHeaders = make(map[string]string, len(kv)/2)
		}
		for i := 0; i < len(kv); i += 2 {
			if kv[i] == "" {
				return errors.New("stats header name cannot be empty")
			}
			cfg.statsHeaders[kv[i]] = kv[i+1]
		}
		return nil
	}
}

// WithRefreshInterval sets how often the stats are refetched. Defaults to 60
// seconds.
//
// Returns an error if the duration is zero or negative.
func WithRefreshInterval(d time.Duration) Option {
	return func(cfg *siteConfig) error {
		if d <= 0 {
			return errors.New("refresh interval must be positive")
		}
		cfg.refreshInterval = d
		return nil
	}
}

// WithFetchTimeout bounds a single stats request. Defaults to 10 seconds.
//
// Returns an error if the duration is zero or negative.
func WithFetchTimeout(d time.Duration) Option {
	return func(cfg *siteConfig) error {
		if d <= 0 {
			return errors.New("fetch timeout must be positive")
		}
		cfg.fetchTimeout = d
		return nil
	}
}

// WithStatsDecoder sets how stats responses are interpreted. Defaults to
// [JSONDecoder].
//
// Returns an error if the decoder is nil.
func WithStatsDecoder(d SnapshotDecoder) Option {
	return func(cfg *siteConfig) error {
		if d == nil {
			return errors.New("stats decoder cannot be nil")
		}
		cfg.decoder = d
		return nil
	}
}

// WithPort sets the HTTP port. Defaults to 8080.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *siteConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithLogger sets a custom [slog.Logger]. If not specified, [slog.Default]
// is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *siteConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithSnapshotCallback registers a function called with every newly
// published [Snapshot], after the site has been updated.
//
// Callbacks run synchronously in registration order on the polling
// goroutine and must not block. Panics are recovered and logged.
//
// Nil callbacks are silently ignored.
func WithSnapshotCallback(cb func(Snapshot)) Option {
	return func(cfg *siteConfig) error {
		if cb == nil {
			return nil
		}
		cfg.snapshotCallbacks = append(cfg.snapshotCallbacks, cb)
		return nil
	}
}

// WithSubmitter sets where contact submissions are delivered. By default
// they are only logged.
//
// Returns an error if the submitter is nil.
func WithSubmitter(s ContactSubmitter) Option {
	return func(cfg *siteConfig) error {
		if s == nil {
			return errors.New("submitter cannot be nil")
		}
		cfg.submitter = s
		return nil
	}
}

// WithContactWebhook delivers contact submissions as JSON POSTs to rawURL.
// A zero timeout means 10 seconds.
func WithContactWebhook(rawURL string, headers map[string]string, timeout time.Duration) Option {
	return func(cfg *siteConfig) error {
		s, err := contact.NewWebhookSubmitter(rawURL, maps.Clone(headers), timeout)
		if err != nil {
			return fmt.Errorf("contact webhook: %w", err)
		}
		cfg.submitter = s
		return nil
	}
}

// WithContactRateLimit allows burst contact submissions per client, refilling
// one every interval. Defaults to 5 per minute.
//
// Returns an error if every or burst is not positive.
func WithContactRateLimit(every time.Duration, burst int) Option {
	return func(cfg *siteConfig) error {
		if every <= 0 {
			return errors.New("contact rate interval must be positive")
		}
		if burst < 1 {
			return errors.New("contact rate burst must be at least 1")
		}
		cfg.contactEvery = every
		cfg.contactBurst = burst
		return nil
	}
}

// WithCSRFKey sets the 32-byte key that signs CSRF tokens. Without it a
// random key is generated at startup and tokens do not survive a restart.
func WithCSRFKey(key []byte) Option {
	return func(cfg *siteConfig) error {
		if len(key) != keyLen {
			return fmt.Errorf("csrf key must be %d bytes, got %d", keyLen, len(key))
		}
		cfg.csrfKey = append([]byte(nil), key...)
		return nil
	}
}

// WithSessionKey sets the 32-byte key that authenticates the session cookie
// carrying flash messages. Without it a random key is generated at startup.
func WithSessionKey(key []byte) Option {
	return func(cfg *siteConfig) error {
		if len(key) != keyLen {
			return fmt.Errorf("session key must be %d bytes, got %d", keyLen, len(key))
		}
		cfg.sessionKey = append([]byte(nil), key...)
		return nil
	}
}

// WithSecureCookies marks cookies Secure. Enable it when the site is served
// over HTTPS.
func WithSecureCookies(secure bool) Option {
	return func(cfg *siteConfig) error {
		cfg.secureCookies = secure
		return nil
	}
}

// WithTrustedOrigins allows the contact form to be posted from additional
// hosts, e.g. a CDN front end.
func WithTrustedOrigins(origins ...string) Option {
	return func(cfg *siteConfig) error {
		cfg.trustedOrigins = append(cfg.trustedOrigins, origins...)
		return nil
	}
}

// WithTrustedProxy takes the visitor address from X-Forwarded-For or
// X-Real-IP instead of the connection. Enable it only when the site sits
// behind a reverse proxy that overwrites those headers; otherwise a visitor
// can pick any address and slip past the contact rate limit.
func WithTrustedProxy(trust bool) Option {
	return func(cfg *siteConfig) error {
		cfg.trustProxy = trust
		return nil
	}
}

// WithLocale sets the fallback locale used to format numbers when a visitor
// sends no usable Accept-Language. Defaults to "en".
//
// Returns an error if the locale is not supported.
func WithLocale(locale string) Option {
	return func(cfg *siteConfig) error {
		tag, ok := view.ParseTag(locale)
		if !ok {
			return fmt.Errorf("unsupported locale %q", locale)
		}
		cfg.locale = tag
		return nil
	}
}

// WithMetricsRegistry registers the site's Prometheus instruments with reg
// and serves it at /metrics. By default a private registry with Go runtime
// and process collectors is used.
//
// Returns an error if the registry is nil.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(cfg *siteConfig) error {
		if reg == nil {
			return errors.New("metrics registry cannot be nil")
		}
		cfg.registry = reg
		return nil
	}
}
