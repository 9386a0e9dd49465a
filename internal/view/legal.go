package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type legalSection struct {
	Heading string
	Body    string
}

var privacySections = []legalSection{
	{"What we collect", "When you use the contact form we receive your name, email address, contact type, organization (business contacts only), subject and message. We use these only to reply to you."},
	{"Channel statistics", "Subscriber and view counts shown on this site are public figures fetched from our channel. No visitor data is sent with those requests."},
	{"Cookies", "We set a security cookie to protect the contact form and a short-lived session cookie to show you a confirmation after sending. We do not use tracking or advertising cookies."},
	{"Contact", "Questions about this policy can be sent through the contact page."},
}

var termsSections = []legalSection{
	{"Content", "Videos, text and images on this site are provided for education and entertainment. They are not financial, legal or investment advice."},
	{"Use of the site", "You may browse and share links to this site. Do not attempt to disrupt it or submit the contact form automatically."},
	{"Third-party links", "Links to YouTube and social networks are governed by those services' own terms."},
	{"Changes", "We may update these terms from time to time. Continued use of the site means you accept the current version."},
}

// Privacy renders the privacy policy.
func Privacy(p Page) g.Node {
	return legalPage(p, "Privacy Policy", privacySections)
}

// Terms renders the terms of service.
func Terms(p Page) g.Node {
	return legalPage(p, "Terms of Service", termsSections)
}

// NotFound renders the 404 page.
func NotFound(p Page) g.Node {
	return layout(p, "Not Found", "",
		navBar(p, siteNav),
		pageHeader("Page", "Not Found", "That page has vanished like a failed startup."),
		Main(
			Class("container page center"),
			PremiumCTA(A(Class("button button--dark"), Href("/"), g.Text("Back to Home"))),
		),
		siteFooter(true),
	)
}

func legalPage(p Page, title string, sections []legalSection) g.Node {
	return layout(p, title, "",
		navBar(p, siteNav),
		pageHeader(title, "", brandName),
		Main(
			Class("container page narrow legal"),
			g.Map(sections, func(s legalSection) g.Node {
				return Section(H2(g.Text(s.Heading)), P(g.Text(s.Body)))
			}),
		),
		siteFooter(true),
	)
}
