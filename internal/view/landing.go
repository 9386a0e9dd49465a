package view

import (
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Parallax offsets per landing section.
const (
	parallaxDefault = 50
	parallaxVideos  = -50
	parallaxImpact  = -25
)

// Landing renders the home page. Both places that show the subscriber count
// render from the same stats value.
func Landing(p Page, stats Stats) g.Node {
	return layout(p, "", "Business case studies, rise & fall stories and corporate scandals, explained.",
		ScrollProgress(),
		navBar(p, landingNav),
		Main(
			Data("stream", "/api/stats/stream"),
			hero(p, stats),
			ParallaxSection(parallaxDefault, aboutSection()),
			ParallaxSection(parallaxVideos, videosSection()),
			ParallaxSection(parallaxDefault, creatorSection()),
			ParallaxSection(parallaxImpact, impactSection(p, stats)),
			ParallaxSection(parallaxDefault, sponsorsSection()),
			contactCTA(),
		),
		siteFooter(false),
	)
}

func liveStat(p Page, name string, n int64) g.Node {
	return Span(Data("stat", name), g.Text(FormatCount(p.Printer, n)))
}

func hero(p Page, stats Stats) g.Node {
	return Section(
		Class("hero"),
		HeroScene(),
		Div(
			Class("hero__content"),
			H1(
				animate(dropInKeyframes, entrance(0)),
				g.Text("Welcome to "), GoldText(g.Text(brandName)),
			),
			P(
				animate(riseKeyframes, entrance(200*time.Millisecond)),
				g.Text("Unraveling Business Mysteries for "),
				GoldText(liveStat(p, "subscribers", stats.Subscribers)),
				g.Text(" Subscribers"),
			),
			Div(
				animate(fadeInKeyframes, entrance(400*time.Millisecond)),
				PremiumCTA(A(Class("button button--dark button--large"), Href("#videos"), g.Text("Explore Our Content"))),
			),
		),
	)
}

func aboutSection() g.Node {
	return Section(
		ID("about"),
		Class("section"),
		Div(
			Class("container narrow center"),
			H2(g.Text("About "), GoldText(g.Text(brandName))),
			paragraphs("lead", aboutParagraphs),
			FloatingElement(
				Div(
					Class("chips"),
					Span(Class("chip"), g.Text("Rise Stories")),
					Span(Class("chip"), g.Text("Fall Stories")),
					Span(Class("chip"), g.Text("Scandals")),
				),
			),
		),
	)
}

func videosSection() g.Node {
	return Section(
		ID("videos"),
		Class("section section--dark"),
		Div(
			Class("container"),
			H2(g.Text("Featured "), GoldText(g.Text("Videos"))),
			Div(Class("video-grid"), g.Map(featuredVideos, VideoCard)),
		),
	)
}

func creatorSection() g.Node {
	return Section(
		ID("creator"),
		Class("section"),
		Div(
			Class("container creator"),
			H2(g.Text("About the "), GoldText(g.Text("Creator"))),
			Div(
				Class("creator__body"),
				Img(Class("creator__photo"), Src(creatorImg), Alt(creatorName+" - SV Worldz Creator"), Width("400"), Height("400")),
				Div(
					H3(g.Text(creatorName+" - The Best Telugu Creator")),
					paragraphs("lead", creatorParagraphs),
					Div(
						Class("chips"),
						A(Class("chip"), Href("https://www.linkedin.com/company/svworldz"), g.Text("LinkedIn")),
						A(Class("chip"), Href("https://twitter.com/svworldz"), g.Text("Twitter")),
					),
				),
			),
		),
	)
}

func impactCard(label string, value ...g.Node) g.Node {
	return Div(
		Class("impact-card"),
		H3(g.Group(value)),
		P(g.Text(label)),
	)
}

func impactSection(p Page, stats Stats) g.Node {
	return Section(
		ID("impact"),
		Class("section section--dark"),
		Div(
			Class("container"),
			H2(g.Text("Our "), GoldText(g.Text("Impact"))),
			Div(
				Class("impact-grid"),
				impactCard("Subscribers", liveStat(p, "subscribers", stats.Subscribers)),
				impactCard("Views", liveStat(p, "views", stats.Views)),
				impactCard("Videos", AnimatedCounter(p.Printer, 200, 0), g.Text("+")),
				impactCard("Scandals Exposed", AnimatedCounter(p.Printer, 50, 0), g.Text("+")),
			),
		),
	)
}

func sponsorsSection() g.Node {
	return Section(
		ID("sponsors"),
		Class("section"),
		Div(
			Class("container"),
			H2(g.Text("Our "), GoldText(g.Text("Sponsors"))),
			ScrollingSponsors(sponsors),
		),
	)
}

func contactCTA() g.Node {
	return Section(
		Class("section section--dark center"),
		Div(
			Class("container"),
			H2(g.Text("Get in "), GoldText(g.Text("Touch"))),
			P(Class("muted"), g.Text("Have questions or want to collaborate? We'd love to hear from you!")),
			PremiumCTA(A(Class("button button--gold button--large"), Href("/contact"), g.Text("Contact Us"))),
		),
	)
}
