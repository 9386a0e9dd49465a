package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	g "maragu.dev/gomponents"

	"github.com/jpalmerr/svworldz/internal/contact"
	"github.com/jpalmerr/svworldz/internal/metrics"
	"github.com/jpalmerr/svworldz/internal/view"
)

const (
	// maxFormBytes caps the contact form body.
	maxFormBytes = 64 * 1024

	flashSent      = "Thanks for reaching out! We'll get back to you soon."
	alertThrottled = "You've sent a few messages already. Please wait a minute and try again."
	alertFailed    = "We couldn't send your message right now. Please try again later."
	alertBadForm   = "We couldn't read that submission. Please try again."
)

// page resolves the visitor's locale from ?lang= or Accept-Language.
func (s *Server) page(r *http.Request) view.Page {
	if tag, ok := view.ParseTag(r.URL.Query().Get("lang")); ok {
		return view.NewPage(tag, r.URL.Path)
	}
	return view.NewPage(view.ResolveTag(r.Header.Get("Accept-Language"), s.cfg.DefaultTag), r.URL.Path)
}

// render writes n as an HTML response with status.
func (s *Server) render(w http.ResponseWriter, status int, n g.Node) {
	var buf bytes.Buffer
	if err := n.Render(&buf); err != nil {
		s.logger.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Debug("failed to write page response", "error", err)
	}
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	rec, _ := s.cfg.Store.Get()
	stats := view.Stats{Subscribers: rec.Subscribers, Views: rec.Views}
	s.render(w, http.StatusOK, view.Landing(s.page(r), stats))
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, view.About(s.page(r)))
}

func (s *Server) handlePrivacy(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, view.Privacy(s.page(r)))
}

func (s *Server) handleTerms(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, view.Terms(s.page(r)))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusNotFound, view.NotFound(s.page(r)))
}

func (s *Server) contactData(r *http.Request, form contact.Form) view.ContactData {
	return view.ContactData{
		Form:          form,
		CSRFFieldName: csrfFieldName,
		CSRFToken:     csrf.Token(r),
	}
}

// handleContact shows the form and any flash left by a successful submit.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	d := s.contactData(r, contact.NewForm())

	if sess, err := s.sessions.Get(r, sessionName); err == nil {
		if flashes := sess.Flashes(); len(flashes) > 0 {
			if msg, ok := flashes[0].(string); ok {
				d.Notice = msg
			}
			if err := sess.Save(r, w); err != nil {
				s.logger.Warn("failed to clear flash", "error", err)
			}
		}
	}

	s.render(w, http.StatusOK, view.Contact(s.page(r), d))
}

// handleContactSubmit validates and delivers a contact submission, then
// redirects (Post/Redirect/Get) so a reload does not resend it.
func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	p := s.page(r)

	if s.cfg.Limiter != nil && !s.cfg.Limiter.Allow(contact.ClientIP(r)) {
		s.cfg.Metrics.Contact(metrics.ContactThrottled)
		d := s.contactData(r, contact.NewForm())
		d.Alert = alertThrottled
		s.render(w, http.StatusTooManyRequests, view.Contact(p, d))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.cfg.Metrics.Contact(metrics.ContactInvalid)
		d := s.contactData(r, contact.NewForm())
		d.Alert = alertBadForm
		s.render(w, http.StatusBadRequest, view.Contact(p, d))
		return
	}

	form := contact.ParseForm(r.PostForm)
	sub, errs := form.Validate(time.Now())
	if len(errs) > 0 {
		s.cfg.Metrics.Contact(metrics.ContactInvalid)
		d := s.contactData(r, form)
		d.Errors = errs
		s.render(w, http.StatusUnprocessableEntity, view.Contact(p, d))
		return
	}

	if err := s.cfg.Submitter.Submit(r.Context(), sub); err != nil {
		s.cfg.Metrics.Contact(metrics.ContactFailed)
		s.logger.Error("contact submission failed",
			"id", sub.ID,
			"error", err.Error(),
		)
		d := s.contactData(r, form)
		d.Alert = alertFailed
		s.render(w, http.StatusBadGateway, view.Contact(p, d))
		return
	}
	s.cfg.Metrics.Contact(metrics.ContactSent)

	sess, err := s.sessions.Get(r, sessionName)
	if err == nil {
		sess.AddFlash(flashSent)
		err = sess.Save(r, w)
	}
	if err != nil {
		s.logger.Warn("failed to store contact flash", "error", err)
	}

	http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
}
