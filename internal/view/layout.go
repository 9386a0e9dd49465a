package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"
)

// Page carries per-request rendering context.
type Page struct {
	// Tag is the visitor's resolved locale.
	Tag language.Tag

	// Printer formats numbers for Tag.
	Printer *message.Printer

	// Path is the request path, used to mark the active nav link.
	Path string
}

// NewPage builds a Page for tag.
func NewPage(tag language.Tag, path string) Page {
	return Page{Tag: tag, Printer: Printer(tag), Path: path}
}

// Stats is the pair of live channel numbers shown on the landing page.
type Stats struct {
	Subscribers int64
	Views       int64
}

type navLink struct {
	Label string
	Href  string
}

var landingNav = []navLink{
	{"About", "#about"},
	{"Videos", "#videos"},
	{"Creator", "#creator"},
	{"Impact", "#impact"},
	{"Sponsors", "#sponsors"},
	{"Contact", "/contact"},
}

var siteNav = []navLink{
	{"Home", "/"},
	{"About", "/about"},
	{"Contact", "/contact"},
}

func layout(p Page, title, description string, body ...g.Node) g.Node {
	if title != "" {
		title += " | " + brandName
	} else {
		title = brandName
	}
	return components.HTML5(components.HTML5Props{
		Title:       title,
		Description: description,
		Language:    p.Tag.String(),
		Head: []g.Node{
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			Link(Rel("stylesheet"), Href("/assets/site.css")),
			StyleEl(g.Raw(Stylesheet())),
			Script(Src("/assets/site.js"), Defer()),
		},
		Body: []g.Node{
			Class("site"),
			g.Group(body),
		},
	})
}

func navBar(p Page, links []navLink) g.Node {
	return Nav(
		Class("site-nav"),
		Div(
			Class("container site-nav__inner"),
			A(Class("site-nav__brand"), Href("/"), GoldText(g.Text(brandName))),
			Div(
				Class("site-nav__links"),
				g.Map(links, func(l navLink) g.Node {
					return A(Href(l.Href), g.If(l.Href == p.Path, Class("active")), g.Text(l.Label))
				}),
			),
			PremiumCTA(
				A(Class("button button--dark"), Href(channelURL), Target("_blank"), Rel("noopener"), g.Text("Subscribe")),
			),
		),
	)
}

func siteFooter(dark bool) g.Node {
	class := "site-footer"
	if dark {
		class += " site-footer--dark"
	}
	return Footer(
		Class(class),
		Div(
			Class("container site-footer__inner"),
			A(Class("site-footer__brand"), Href("/"), GoldText(g.Text(brandName))),
			Div(
				Class("site-footer__links"),
				A(Href("/"), g.Text("Home")),
				A(Href("/privacy"), g.Text("Privacy Policy")),
				A(Href("/terms"), g.Text("Terms of Service")),
				A(Href("/contact"), g.Text("Contact Us")),
			),
		),
		P(Class("site-footer__copyright"), g.Text(copyright)),
	)
}

// pageHeader is the dark banner at the top of the inner pages.
func pageHeader(lead string, gold string, sub string) g.Node {
	return Header(
		Class("page-header"),
		Div(
			Class("container"),
			g.If(gold == "", H1(g.Text(lead))),
			g.If(gold != "", H1(g.Text(lead+" "), GoldText(g.Text(gold)))),
			P(g.Text(sub)),
		),
	)
}

func paragraphs(class string, texts []string) g.Node {
	return g.Map(texts, func(s string) g.Node {
		return P(Class(class), g.Text(s))
	})
}
