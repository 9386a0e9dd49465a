package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"

	"github.com/jpalmerr/svworldz/internal/contact"
	"github.com/jpalmerr/svworldz/internal/metrics"
	"github.com/jpalmerr/svworldz/internal/store"
	"github.com/jpalmerr/svworldz/internal/view"
)

const (
	// sseWriteTimeout is the maximum time allowed for a single SSE write operation.
	// Must be <= shutdown timeout to ensure clean shutdown.
	sseWriteTimeout = 5 * time.Second

	// shutdownTimeout bounds graceful shutdown.
	shutdownTimeout = 5 * time.Second

	// pageTimeout bounds page and form requests. The SSE stream is exempt.
	pageTimeout = 30 * time.Second

	// keyLen is the required length of the CSRF and session keys.
	keyLen = 32

	sessionName    = "svworldz_session"
	csrfCookieName = "svworldz_csrf"
	csrfFieldName  = "csrf_token"
)

// Config holds everything the server needs.
type Config struct {
	// Port is the TCP port to listen on. Zero picks a free port.
	Port int

	// Store supplies the current stats and live updates. Required.
	Store store.Store

	// Assets is served under /assets/. It must contain an "assets" directory.
	// Nil disables the route.
	Assets fs.FS

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics and Gatherer back /metrics. A nil Gatherer disables the route.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	// Submitter delivers contact submissions. Defaults to a LogSubmitter.
	Submitter contact.Submitter

	// Limiter throttles contact submissions per client. Nil disables it.
	Limiter *contact.Limiter

	// CSRFKey and SessionKey must be 32 bytes each.
	CSRFKey    []byte
	SessionKey []byte

	// SecureCookies marks cookies Secure and enforces HTTPS origin checks.
	SecureCookies bool

	// TrustedOrigins are extra hosts allowed to post the contact form.
	TrustedOrigins []string

	// TrustProxy takes the client address from X-Forwarded-For or
	// X-Real-IP. Only enable it behind a proxy that sets those headers.
	TrustProxy bool

	// DefaultTag is the locale used when a request has no preference.
	DefaultTag language.Tag
}

// Server handles HTTP requests for the site.
type Server struct {
	cfg        Config
	logger     *slog.Logger
	sessions   *sessions.CookieStore
	handler    http.Handler
	httpServer *http.Server
	addr       net.Addr
}

// New validates cfg and builds the router. The server does not listen until
// [Server.Start] is called.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port must be between 0 and 65535, got %d", cfg.Port)
	}
	if len(cfg.CSRFKey) != keyLen {
		return nil, fmt.Errorf("csrf key must be %d bytes, got %d", keyLen, len(cfg.CSRFKey))
	}
	if len(cfg.SessionKey) != keyLen {
		return nil, fmt.Errorf("session key must be %d bytes, got %d", keyLen, len(cfg.SessionKey))
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Submitter == nil {
		cfg.Submitter = contact.LogSubmitter{Logger: cfg.Logger}
	}
	if cfg.DefaultTag == language.Und {
		cfg.DefaultTag = view.DefaultTag
	}

	cs := sessions.NewCookieStore(cfg.SessionKey)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		Secure:   cfg.SecureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	s := &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		sessions: cs,
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the listening address once started.
func (s *Server) Addr() net.Addr {
	return s.addr
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the server
// is listening. The server runs until ctx is cancelled, then shuts down
// gracefully.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	// create listener first to verify port availability synchronously
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.cfg.Port, err)
	}
	s.addr = ln.Addr()

	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		// request contexts derive from ctx so long-lived SSE handlers end on shutdown
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	s.logger.Info("http server listening", "addr", s.addr.String())
	return nil
}
