package contact

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func validValues() url.Values {
	return url.Values{
		FieldName:    {"Asha Rao"},
		FieldEmail:   {"asha@example.com"},
		FieldType:    {"personal"},
		FieldSubject: {"Loved the WeWork episode"},
		FieldMessage: {"Please cover Byju's next."},
	}
}

func TestParseForm_DefaultsToPersonal(t *testing.T) {
	v := validValues()
	v.Del(FieldType)

	f := ParseForm(v)
	if f.Type != Personal {
		t.Errorf("Type = %q, want %q", f.Type, Personal)
	}
	if f.ShowOrganization() {
		t.Error("ShowOrganization() = true for personal contact")
	}
}

func TestParseForm_StripsMarkupAndWhitespace(t *testing.T) {
	v := validValues()
	v.Set(FieldName, "  <b>Asha</b>   Rao ")
	v.Set(FieldSubject, "Tom & Jerry")
	v.Set(FieldMessage, "line one\r\n<i>line</i> two  ")
	v.Set(FieldType, " Business ")

	f := ParseForm(v)
	if f.Name != "Asha Rao" {
		t.Errorf("Name = %q, want %q", f.Name, "Asha Rao")
	}
	if f.Subject != "Tom & Jerry" {
		t.Errorf("Subject = %q, want %q", f.Subject, "Tom & Jerry")
	}
	if f.Message != "line one\nline two" {
		t.Errorf("Message = %q, want %q", f.Message, "line one\nline two")
	}
	if f.Type != Business {
		t.Errorf("Type = %q, want %q", f.Type, Business)
	}
}

func TestForm_ValidateSuccess(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	s, errs := ParseForm(validValues()).Validate(now)
	if len(errs) != 0 {
		t.Fatalf("Validate() errs = %v", errs)
	}
	if s.ID == "" {
		t.Error("Submission.ID is empty")
	}
	if s.Name != "Asha Rao" || s.Email != "asha@example.com" || s.Type != Personal {
		t.Errorf("Submission = %+v", s)
	}
	if !s.SubmittedAt.Equal(now) {
		t.Errorf("SubmittedAt = %v, want %v", s.SubmittedAt, now)
	}
}

func TestForm_PersonalDropsOrganization(t *testing.T) {
	v := validValues()
	v.Set(FieldOrganization, "Acme Corp")

	s, errs := ParseForm(v).Validate(time.Now())
	if len(errs) != 0 {
		t.Fatalf("Validate() errs = %v", errs)
	}
	if s.Organization != "" {
		t.Errorf("Organization = %q, want dropped for personal contact", s.Organization)
	}
}

func TestForm_BusinessKeepsOrganization(t *testing.T) {
	v := validValues()
	v.Set(FieldType, "business")
	v.Set(FieldOrganization, "Acme Corp")

	f := ParseForm(v)
	if !f.ShowOrganization() {
		t.Error("ShowOrganization() = false for business contact")
	}
	s, errs := f.Validate(time.Now())
	if len(errs) != 0 {
		t.Fatalf("Validate() errs = %v", errs)
	}
	if s.Organization != "Acme Corp" {
		t.Errorf("Organization = %q, want %q", s.Organization, "Acme Corp")
	}
}

func TestForm_BusinessOrganizationOptional(t *testing.T) {
	v := validValues()
	v.Set(FieldType, "business")

	if _, errs := ParseForm(v).Validate(time.Now()); len(errs) != 0 {
		t.Errorf("Validate() errs = %v, want none without organization", errs)
	}
}

func TestForm_ValidateErrors(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(url.Values)
		field string
	}{
		{"missing name", func(v url.Values) { v.Del(FieldName) }, FieldName},
		{"blank name", func(v url.Values) { v.Set(FieldName, "   ") }, FieldName},
		{"markup-only name", func(v url.Values) { v.Set(FieldName, "<b></b>") }, FieldName},
		{"missing email", func(v url.Values) { v.Del(FieldEmail) }, FieldEmail},
		{"email without at", func(v url.Values) { v.Set(FieldEmail, "asha.example.com") }, FieldEmail},
		{"email without domain dot", func(v url.Values) { v.Set(FieldEmail, "asha@localhost") }, FieldEmail},
		{"email with display name", func(v url.Values) { v.Set(FieldEmail, "Asha <asha@example.com>") }, FieldEmail},
		{"unknown type", func(v url.Values) { v.Set(FieldType, "enterprise") }, FieldType},
		{"missing subject", func(v url.Values) { v.Del(FieldSubject) }, FieldSubject},
		{"missing message", func(v url.Values) { v.Del(FieldMessage) }, FieldMessage},
		{"long message", func(v url.Values) { v.Set(FieldMessage, strings.Repeat("a", MaxMessageLen+1)) }, FieldMessage},
		{"long organization", func(v url.Values) {
			v.Set(FieldType, "business")
			v.Set(FieldOrganization, strings.Repeat("o", MaxOrganizationLen+1))
		}, FieldOrganization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validValues()
			tt.edit(v)

			s, errs := ParseForm(v).Validate(time.Now())
			if _, ok := errs[tt.field]; !ok {
				t.Errorf("Validate() errs = %v, want error on %q", errs, tt.field)
			}
			if s != (Submission{}) {
				t.Errorf("Validate() submission = %+v, want zero on error", s)
			}
		})
	}
}

func TestForm_PersonalIgnoresLongOrganization(t *testing.T) {
	v := validValues()
	v.Set(FieldOrganization, strings.Repeat("o", MaxOrganizationLen+50))

	if _, errs := ParseForm(v).Validate(time.Now()); len(errs) != 0 {
		t.Errorf("Validate() errs = %v, want organization ignored for personal", errs)
	}
}
