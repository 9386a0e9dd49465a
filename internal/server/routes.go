package server

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if s.cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(s.recoverer)
	r.Use(s.requestLogger)
	r.Use(securityHeaders)

	// pages and the contact form: CSRF, request timeout
	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(pageTimeout))
		r.Use(s.csrfMiddleware())

		r.Get("/", s.handleLanding)
		r.Get("/about", s.handleAbout)
		r.Get("/contact", s.handleContact)
		r.Post("/contact", s.handleContactSubmit)
		r.Get("/privacy", s.handlePrivacy)
		r.Get("/terms", s.handleTerms)
		r.NotFound(s.handleNotFound)
	})

	// read-only JSON API, open to any origin
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Cache-Control", "Last-Event-ID"},
			MaxAge:         int((24 * time.Hour).Seconds()),
		}))
		r.Get("/youtube-stats", s.handleStats)
		r.Get("/stats/stream", s.handleStream)
	})

	r.Get("/healthz", s.handleHealth)

	if s.cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	if s.cfg.Assets != nil {
		if sub, err := fs.Sub(s.cfg.Assets, "assets"); err == nil {
			fileServer := http.StripPrefix("/assets/", http.FileServer(http.FS(sub)))
			r.Get("/assets/*", func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Cache-Control", "public, max-age=3600")
				fileServer.ServeHTTP(w, req)
			})
		}
	}

	return r
}

func (s *Server) csrfMiddleware() func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.Secure(s.cfg.SecureCookies),
		csrf.Path("/"),
		csrf.CookieName(csrfCookieName),
		csrf.FieldName(csrfFieldName),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Warn("csrf validation failed",
				"path", r.URL.Path,
				"method", r.Method,
				"reason", csrf.FailureReason(r),
			)
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	if len(s.cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(s.cfg.TrustedOrigins))
	}
	protect := csrf.Protect(s.cfg.CSRFKey, opts...)

	return func(next http.Handler) http.Handler {
		h := protect(next)
		if s.cfg.SecureCookies {
			return h
		}
		// without TLS the origin check must compare against http:// origins
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
