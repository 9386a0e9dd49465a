package view

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supportedTags = []language.Tag{
	language.English,
	language.MustParse("en-IN"),
	language.Hindi,
	language.Telugu,
	language.German,
	language.French,
}

var tagMatcher = language.NewMatcher(supportedTags)

// DefaultTag is the locale used when a request expresses no preference.
var DefaultTag = language.English

// ParseTag returns the supported tag matching value.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, false
	}
	_, idx, conf := tagMatcher.Match(tag)
	if conf == language.No {
		return language.Und, false
	}
	return supportedTags[idx], true
}

// ResolveTag picks the best supported tag for an Accept-Language header,
// falling back to fallback when nothing matches.
func ResolveTag(acceptLanguage string, fallback language.Tag) language.Tag {
	accept := strings.TrimSpace(acceptLanguage)
	if accept == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := tagMatcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return supportedTags[idx]
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// FormatCount groups digits the way tag's locale does, e.g. 774000 as
// "774,000" in English.
func FormatCount(p *message.Printer, n int64) string {
	return p.Sprintf("%d", n)
}
