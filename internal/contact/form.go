package contact

import (
	"html"
	"net/mail"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// Type is the kind of contact.
type Type string

const (
	Personal Type = "personal"
	Business Type = "business"
)

// Form field names, in the order they appear on the page.
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldType         = "contact_type"
	FieldOrganization = "organization"
	FieldSubject      = "subject"
	FieldMessage      = "message"
)

// Field length limits, in runes.
const (
	MaxNameLen         = 100
	MaxEmailLen        = 254
	MaxOrganizationLen = 200
	MaxSubjectLen      = 200
	MaxMessageLen      = 5000
)

// stripAll removes every tag; contact fields are plain text.
var stripAll = bluemonday.StrictPolicy()

// Form holds the submitted values as the visitor typed them, after trimming
// and tag stripping. It is what the page re-renders on a validation error.
type Form struct {
	Name         string
	Email        string
	Type         Type
	Organization string
	Subject      string
	Message      string
}

// ShowOrganization reports whether the organization field is visible.
func (f Form) ShowOrganization() bool {
	return f.Type == Business
}

// FieldErrors maps a field name to a message for the visitor.
type FieldErrors map[string]string

// Submission is a validated contact request.
type Submission struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Type         Type      `json:"contact_type"`
	Organization string    `json:"organization,omitempty"`
	Subject      string    `json:"subject"`
	Message      string    `json:"message"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// NewForm returns the blank form shown on first visit.
func NewForm() Form {
	return Form{Type: Personal}
}

// ParseForm reads a form from posted values. A missing contact type means
// personal.
func ParseForm(values url.Values) Form {
	f := Form{
		Name:         clean(values.Get(FieldName)),
		Email:        clean(values.Get(FieldEmail)),
		Type:         Type(strings.ToLower(clean(values.Get(FieldType)))),
		Organization: clean(values.Get(FieldOrganization)),
		Subject:      clean(values.Get(FieldSubject)),
		Message:      cleanMultiline(values.Get(FieldMessage)),
	}
	if f.Type == "" {
		f.Type = Personal
	}
	return f
}

// Validate checks the form and builds a [Submission]. When errs is non-empty
// the submission is the zero value.
func (f Form) Validate(now time.Time) (Submission, FieldErrors) {
	errs := FieldErrors{}

	required(errs, FieldName, f.Name, "Please tell us your name.", MaxNameLen)
	required(errs, FieldEmail, f.Email, "Please enter your email address.", MaxEmailLen)
	if _, ok := errs[FieldEmail]; !ok && !validEmail(f.Email) {
		errs[FieldEmail] = "Please enter a valid email address."
	}

	switch f.Type {
	case Personal, Business:
	default:
		errs[FieldType] = "Please choose personal or business."
	}
	if f.Type == Business && utf8.RuneCountInString(f.Organization) > MaxOrganizationLen {
		errs[FieldOrganization] = "Organization name is too long."
	}

	required(errs, FieldSubject, f.Subject, "Please add a subject.", MaxSubjectLen)
	required(errs, FieldMessage, f.Message, "Please write a message.", MaxMessageLen)

	if len(errs) > 0 {
		return Submission{}, errs
	}

	s := Submission{
		ID:          uuid.NewString(),
		Name:        f.Name,
		Email:       f.Email,
		Type:        f.Type,
		Subject:     f.Subject,
		Message:     f.Message,
		SubmittedAt: now.UTC(),
	}
	if f.Type == Business {
		s.Organization = f.Organization
	}
	return s, nil
}

func required(errs FieldErrors, field, value, msg string, max int) {
	switch {
	case value == "":
		errs[field] = msg
	case utf8.RuneCountInString(value) > max:
		errs[field] = "This field is too long."
	}
}

// validEmail accepts a bare addr-spec such as "you@example.com"; display-name
// forms like "Me <you@example.com>" are rejected.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && strings.Contains(s[at+1:], ".")
}

func clean(s string) string {
	s = html.UnescapeString(stripAll.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

func cleanMultiline(s string) string {
	s = html.UnescapeString(stripAll.Sanitize(s))
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}
