// Package config provides YAML configuration parsing for the svworldz
// binary.
//
// A configuration file is optional: every setting has a default or an
// environment override, so the site can also be configured from the
// environment alone.
//
// Example configuration:
//
//	port: 8080
//	locale: en
//
//	stats:
//	  url: ${STATS_URL:-http://localhost:3001/api/youtube-stats}
//	  refresh_interval: 60s
//	  decoder: json
//
//	contact:
//	  webhook_url: ${CONTACT_WEBHOOK_URL:-}
//	  rate_limit:
//	    every: 12s
//	    burst: 5
//
//	security:
//	  csrf_key: ${CSRF_KEY}
//	  session_key: ${SESSION_KEY}
//
// Environment variables prefixed SVWORLDZ_ (see [Overrides]) are applied
// after the file is read.
package config

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort            = 8080
	defaultRefreshInterval = 60 * time.Second
	defaultLocale          = "en"

	// minRefreshInterval keeps a misconfigured site from hammering the
	// stats endpoint.
	minRefreshInterval = 1 * time.Second

	keyLen = 32
)

// Config is the root configuration structure.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config.
type Config struct {
	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port"`

	// Locale is the fallback locale for number formatting. Defaults to "en".
	Locale string `yaml:"locale"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `yaml:"log_level"`

	Stats    StatsConfig    `yaml:"stats"`
	Contact  ContactConfig  `yaml:"contact"`
	Security SecurityConfig `yaml:"security"`
}

// StatsConfig describes where the channel metrics come from.
//
// Exactly one of URL, URLTemplate or YouTube must be set. After parsing, URL
// holds the effective endpoint.
type StatsConfig struct {
	// URL is the stats endpoint.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	URL string `yaml:"url"`

	// URLTemplate is a Go template rendered with Params.
	URLTemplate string `yaml:"url_template"`

	// Params fill URLTemplate. Values support environment variable
	// substitution and are URL-encoded.
	Params map[string]string `yaml:"params"`

	// YouTube queries the YouTube Data API directly.
	YouTube *YouTubeConfig `yaml:"youtube"`

	// RefreshInterval is the time between fetches. Defaults to 60s.
	RefreshInterval Duration `yaml:"refresh_interval"`

	// Timeout bounds a single fetch. Defaults to 10s.
	Timeout Duration `yaml:"timeout"`

	// Headers are sent with every request. Values support environment
	// variable substitution.
	Headers map[string]string `yaml:"headers"`

	// Decoder determines how the response is read. Defaults to "json", or
	// "youtube" when YouTube is set.
	Decoder DecoderConfig `yaml:"decoder"`
}

// YouTubeConfig identifies a channel for the YouTube Data API.
type YouTubeConfig struct {
	ChannelID string `yaml:"channel_id"`
	APIKey    string `yaml:"api_key"`
}

// DecoderConfig specifies how a stats response becomes a snapshot.
//
// It supports two formats in YAML:
//
// Shorthand string:
//
//	decoder: json
//	decoder: youtube
//	decoder: fields:data.subs,data.views
//
// Structured object:
//
//	decoder:
//	  type: fields
//	  subscribers: data.subs
//	  views: data.views
type DecoderConfig struct {
	// Type is the decoder type: "json", "youtube" or "fields".
	Type string

	// Subscribers and Views are dot paths (for type: fields).
	Subscribers string
	Views       string
}

// ContactConfig configures contact form delivery.
type ContactConfig struct {
	// WebhookURL receives submissions as JSON. Empty means submissions are
	// only logged.
	WebhookURL string `yaml:"webhook_url"`

	// WebhookHeaders are sent with every delivery.
	WebhookHeaders map[string]string `yaml:"webhook_headers"`

	// WebhookTimeout bounds a delivery. Defaults to 10s.
	WebhookTimeout Duration `yaml:"webhook_timeout"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig allows Burst submissions per client, refilling one every
// Every.
type RateLimitConfig struct {
	Every Duration `yaml:"every"`
	Burst int      `yaml:"burst"`
}

// SecurityConfig holds cookie keys and origin settings.
type SecurityConfig struct {
	// CSRFKey and SessionKey are 32-byte keys, written as 64 hex digits,
	// base64, or 32 raw characters. Empty means a random key per process.
	CSRFKey    string `yaml:"csrf_key"`
	SessionKey string `yaml:"session_key"`

	// SecureCookies marks cookies Secure; enable behind HTTPS.
	SecureCookies bool `yaml:"secure_cookies"`

	// TrustedOrigins may also post the contact form.
	TrustedOrigins []string `yaml:"trusted_origins"`

	// TrustProxy reads the client address from X-Forwarded-For or
	// X-Real-IP. Leave it off unless a reverse proxy sets those headers.
	TrustProxy bool `yaml:"trust_proxy"`
}

// Overrides are environment variables applied on top of the file.
type Overrides struct {
	Port            *int           `env:"SVWORLDZ_PORT"`
	Locale          *string        `env:"SVWORLDZ_LOCALE"`
	LogLevel        *string        `env:"SVWORLDZ_LOG_LEVEL"`
	StatsURL        *string        `env:"SVWORLDZ_STATS_URL"`
	RefreshInterval *time.Duration `env:"SVWORLDZ_REFRESH_INTERVAL"`
	WebhookURL      *string        `env:"SVWORLDZ_CONTACT_WEBHOOK_URL"`
	CSRFKey         *string        `env:"SVWORLDZ_CSRF_KEY"`
	SessionKey      *string        `env:"SVWORLDZ_SESSION_KEY"`
	SecureCookies   *bool          `env:"SVWORLDZ_SECURE_COOKIES"`
	TrustedOrigins  []string       `env:"SVWORLDZ_TRUSTED_ORIGINS" envSeparator:","`
	TrustProxy      *bool          `env:"SVWORLDZ_TRUST_PROXY"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements yaml.Unmarshaler for DecoderConfig.
func (dc *DecoderConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		return dc.parseShorthand(s)
	}

	if node.Kind == yaml.MappingNode {
		// temporary struct to avoid infinite recursion
		var raw struct {
			Type        string `yaml:"type"`
			Subscribers string `yaml:"subscribers"`
			Views       string `yaml:"views"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		dc.Type = raw.Type
		dc.Subscribers = raw.Subscribers
		dc.Views = raw.Views
		return nil
	}

	return fmt.Errorf("decoder must be a string or object, got %v", node.Kind)
}

// parseShorthand parses decoder shorthand syntax.
//
// Supported formats:
//   - "json" → the default {"subscribers", "views"} body
//   - "youtube" → a YouTube Data API channels response
//   - "fields:subs.path,views.path" → dot paths into any JSON
func (dc *DecoderConfig) parseShorthand(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if rest, ok := strings.CutPrefix(s, "fields:"); ok {
		subs, views, found := strings.Cut(rest, ",")
		if !found {
			return fmt.Errorf("decoder %q: expected fields:<subscribers path>,<views path>", s)
		}
		dc.Type = "fields"
		dc.Subscribers = strings.TrimSpace(subs)
		dc.Views = strings.TrimSpace(views)
		return nil
	}

	switch s {
	case "json", "youtube":
		dc.Type = s
	default:
		return fmt.Errorf("unknown decoder %q (expected 'json', 'youtube', or 'fields:subs,views')", s)
	}
	return nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		varName := submatches[1]
		hasDefault := submatches[2] != ""
		defaultVal := submatches[3]

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file. An empty path means no
// file: the configuration comes from defaults and the environment.
//
// Environment variables in the file are expanded before validation.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data, applies [Overrides] from the
// environment, then expands and validates.
//
// Defaults are applied for Port (8080), Locale (en) and RefreshInterval
// (60s).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var o Overrides
	if err := env.Parse(&o); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.apply(o)

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Locale == "" {
		cfg.Locale = defaultLocale
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Stats.RefreshInterval == 0 {
		cfg.Stats.RefreshInterval = Duration(defaultRefreshInterval)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// apply copies every set override onto c.
func (c *Config) apply(o Overrides) {
	if o.Port != nil {
		c.Port = *o.Port
	}
	if o.Locale != nil {
		c.Locale = *o.Locale
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.StatsURL != nil {
		// an explicit URL replaces whatever source the file chose
		c.Stats.URL = *o.StatsURL
		c.Stats.URLTemplate = ""
		c.Stats.YouTube = nil
	}
	if o.RefreshInterval != nil {
		c.Stats.RefreshInterval = Duration(*o.RefreshInterval)
	}
	if o.WebhookURL != nil {
		c.Contact.WebhookURL = *o.WebhookURL
	}
	if o.CSRFKey != nil {
		c.Security.CSRFKey = *o.CSRFKey
	}
	if o.SessionKey != nil {
		c.Security.SessionKey = *o.SessionKey
	}
	if o.SecureCookies != nil {
		c.Security.SecureCookies = *o.SecureCookies
	}
	if len(o.TrustedOrigins) > 0 {
		c.Security.TrustedOrigins = o.TrustedOrigins
	}
	if o.TrustProxy != nil {
		c.Security.TrustProxy = *o.TrustProxy
	}
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	if err := c.Stats.expandAndValidate(); err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	if err := c.Contact.expandAndValidate(); err != nil {
		return fmt.Errorf("contact: %w", err)
	}
	if err := c.Security.expandAndValidate(); err != nil {
		return fmt.Errorf("security: %w", err)
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.LogLevel))
	return level
}

func (s *StatsConfig) expandAndValidate() error {
	sources := 0
	for _, set := range []bool{s.URL != "", s.URLTemplate != "", s.YouTube != nil} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		return errors.New("one of url, url_template or youtube is required")
	case sources > 1:
		return errors.New("only one of url, url_template or youtube may be set")
	}

	switch {
	case s.URLTemplate != "":
		expanded, err := expandEnvVars(s.URLTemplate)
		if err != nil {
			return fmt.Errorf("url_template: %w", err)
		}
		s.URLTemplate = expanded

		// fail fast before the site tries to use an invalid template
		if _, err := template.New("").Parse(s.URLTemplate); err != nil {
			return fmt.Errorf("invalid url_template: %w", err)
		}
		for k, v := range s.Params {
			expanded, err := expandEnvVars(v)
			if err != nil {
				return fmt.Errorf("params[%s]: %w", k, err)
			}
			s.Params[k] = expanded
		}

	case s.YouTube != nil:
		channel, err := expandEnvVars(s.YouTube.ChannelID)
		if err != nil {
			return fmt.Errorf("youtube.channel_id: %w", err)
		}
		key, err := expandEnvVars(s.YouTube.APIKey)
		if err != nil {
			return fmt.Errorf("youtube.api_key: %w", err)
		}
		if channel == "" || key == "" {
			return errors.New("youtube requires channel_id and api_key")
		}
		s.YouTube.ChannelID = channel
		s.YouTube.APIKey = key
		if s.Decoder.Type == "" {
			s.Decoder.Type = "youtube"
		}

	default:
		expanded, err := expandEnvVars(s.URL)
		if err != nil {
			return fmt.Errorf("url: %w", err)
		}
		s.URL = expanded
		if err := validateHTTPURL(s.URL); err != nil {
			return fmt.Errorf("url: %w", err)
		}
	}

	for k, v := range s.Headers {
		expanded, err := expandEnvVars(v)
		if err != nil {
			return fmt.Errorf("headers[%s]: %w", k, err)
		}
		s.Headers[k] = expanded
	}

	if s.RefreshInterval.Duration() < minRefreshInterval {
		return fmt.Errorf("refresh_interval must be at least %s, got %s", minRefreshInterval, s.RefreshInterval.Duration())
	}
	if s.Timeout != 0 && s.Timeout.Duration() < time.Second {
		return fmt.Errorf("timeout must be at least 1s if specified, got %s", s.Timeout.Duration())
	}

	return validateDecoder(s.Decoder)
}

func (c *ContactConfig) expandAndValidate() error {
	expanded, err := expandEnvVars(c.WebhookURL)
	if err != nil {
		return fmt.Errorf("webhook_url: %w", err)
	}
	c.WebhookURL = expanded
	if c.WebhookURL != "" {
		if err := validateHTTPURL(c.WebhookURL); err != nil {
			return fmt.Errorf("webhook_url: %w", err)
		}
	}

	for k, v := range c.WebhookHeaders {
		expanded, err := expandEnvVars(v)
		if err != nil {
			return fmt.Errorf("webhook_headers[%s]: %w", k, err)
		}
		c.WebhookHeaders[k] = expanded
	}

	if c.WebhookTimeout.Duration() < 0 {
		return fmt.Errorf("webhook_timeout cannot be negative, got %s", c.WebhookTimeout.Duration())
	}

	rl := c.RateLimit
	if (rl.Every == 0) != (rl.Burst == 0) {
		return errors.New("rate_limit needs both every and burst")
	}
	if rl.Every.Duration() < 0 || rl.Burst < 0 {
		return errors.New("rate_limit values must be positive")
	}
	return nil
}

func (s *SecurityConfig) expandAndValidate() error {
	for _, k := range []struct {
		name string
		val  *string
	}{
		{"csrf_key", &s.CSRFKey},
		{"session_key", &s.SessionKey},
	} {
		expanded, err := expandEnvVars(*k.val)
		if err != nil {
			return fmt.Errorf("%s: %w", k.name, err)
		}
		*k.val = expanded
		if expanded == "" {
			continue
		}
		if _, err := DecodeKey(expanded); err != nil {
			return fmt.Errorf("%s: %w", k.name, err)
		}
	}

	for i, origin := range s.TrustedOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("trusted_origins[%d] is empty", i)
		}
	}
	return nil
}

// DecodeKey reads a 32-byte key written as 64 hex digits, standard or URL
// base64, or 32 raw characters.
func DecodeKey(s string) ([]byte, error) {
	if len(s) == 2*keyLen {
		if b, err := hex.DecodeString(s); err == nil {
			return b, nil
		}
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawStdEncoding, base64.RawURLEncoding} {
		if b, err := enc.DecodeString(s); err == nil && len(b) == keyLen {
			return b, nil
		}
	}
	if len(s) == keyLen {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("key must be %d bytes (64 hex digits, base64, or %d characters)", keyLen, keyLen)
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme == "" {
		return errors.New("url must have a scheme (http:// or https://)")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url must include a host")
	}
	return nil
}

// validateDecoder validates a decoder configuration.
func validateDecoder(d DecoderConfig) error {
	switch d.Type {
	case "", "json", "youtube":
		return nil
	case "fields":
		if d.Subscribers == "" || d.Views == "" {
			return errors.New("decoder type 'fields' requires subscribers and views paths")
		}
		return nil
	default:
		return fmt.Errorf("unknown decoder type %q", d.Type)
	}
}
