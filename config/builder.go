package config

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/jpalmerr/svworldz"
)

// BuildOptions converts parsed configuration into [svworldz.Option] values
// for [svworldz.New].
//
// The stats URL is resolved from whichever source the configuration set: a
// literal url, a rendered url_template, or a YouTube channel.
func BuildOptions(cfg *Config, logger *slog.Logger) ([]svworldz.Option, error) {
	statsURL, err := resolveStatsURL(cfg.Stats)
	if err != nil {
		return nil, err
	}

	opts := []svworldz.Option{
		svworldz.WithStatsURL(statsURL),
		svworldz.WithPort(cfg.Port),
		svworldz.WithLocale(cfg.Locale),
		svworldz.WithRefreshInterval(cfg.Stats.RefreshInterval.Duration()),
		svworldz.WithSecureCookies(cfg.Security.SecureCookies),
		svworldz.WithTrustedProxy(cfg.Security.TrustProxy),
	}

	if logger != nil {
		opts = append(opts, svworldz.WithLogger(logger))
	}

	if cfg.Stats.Timeout != 0 {
		opts = append(opts, svworldz.WithFetchTimeout(cfg.Stats.Timeout.Duration()))
	}

	if len(cfg.Stats.Headers) > 0 {
		opts = append(opts, svworldz.WithStatsHeaders(mapToKeyValuePairs(cfg.Stats.Headers)...))
	}

	if decoder := buildDecoder(cfg.Stats.Decoder); decoder != nil {
		opts = append(opts, svworldz.WithStatsDecoder(decoder))
	}

	if cfg.Contact.WebhookURL != "" {
		opts = append(opts, svworldz.WithContactWebhook(
			cfg.Contact.WebhookURL,
			cfg.Contact.WebhookHeaders,
			cfg.Contact.WebhookTimeout.Duration(),
		))
	}

	if rl := cfg.Contact.RateLimit; rl.Every != 0 {
		opts = append(opts, svworldz.WithContactRateLimit(rl.Every.Duration(), rl.Burst))
	}

	if cfg.Security.CSRFKey != "" {
		key, err := DecodeKey(cfg.Security.CSRFKey)
		if err != nil {
			return nil, fmt.Errorf("security.csrf_key: %w", err)
		}
		opts = append(opts, svworldz.WithCSRFKey(key))
	}

	if cfg.Security.SessionKey != "" {
		key, err := DecodeKey(cfg.Security.SessionKey)
		if err != nil {
			return nil, fmt.Errorf("security.session_key: %w", err)
		}
		opts = append(opts, svworldz.WithSessionKey(key))
	}

	if len(cfg.Security.TrustedOrigins) > 0 {
		opts = append(opts, svworldz.WithTrustedOrigins(cfg.Security.TrustedOrigins...))
	}

	return opts, nil
}

// resolveStatsURL returns the effective stats endpoint.
func resolveStatsURL(sc StatsConfig) (string, error) {
	switch {
	case sc.URLTemplate != "":
		u, err := svworldz.ExpandStatsURL(sc.URLTemplate, sc.Params)
		if err != nil {
			return "", fmt.Errorf("stats: %w", err)
		}
		// the template only renders here, so its scheme and host are checked late
		if err := validateHTTPURL(u); err != nil {
			return "", fmt.Errorf("stats: url_template: %w", err)
		}
		return u, nil
	case sc.YouTube != nil:
		u, err := svworldz.YouTubeStatsURL(sc.YouTube.ChannelID, sc.YouTube.APIKey)
		if err != nil {
			return "", fmt.Errorf("stats.youtube: %w", err)
		}
		return u, nil
	default:
		return sc.URL, nil
	}
}

// mapToKeyValuePairs converts a map to a sorted slice of key-value pairs.
func mapToKeyValuePairs(m map[string]string) []string {
	// sort keys for deterministic ordering
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(m)*2)
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return pairs
}

// buildDecoder converts DecoderConfig to a SnapshotDecoder.
// Returns nil for default/empty decoders (the site uses JSONDecoder).
func buildDecoder(dc DecoderConfig) svworldz.SnapshotDecoder {
	switch dc.Type {
	case "", "json":
		return nil
	case "youtube":
		return svworldz.YouTubeChannelDecoder
	case "fields":
		return svworldz.FieldDecoder(dc.Subscribers, dc.Views)
	default:
		// validation should catch this, but return nil as fallback
		return nil
	}
}
