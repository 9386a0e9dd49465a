package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// About renders the about page.
func About(p Page) g.Node {
	return layout(p, "About", "Unraveling Business Mysteries with a Twist of Humor",
		navBar(p, siteNav),
		pageHeader("About", brandName, "Unraveling Business Mysteries with a Twist of Humor"),
		Main(
			Class("container page"),
			Section(
				Class("page-section"),
				H2(g.Text("Our "), GoldText(g.Text("Slightly Serious")), g.Text(" Mission")),
				Div(
					Class("two-col"),
					Div(paragraphs("lead", missionParagraphs)),
					FloatingElement(
						Div(
							Class("card card--dark"),
							H3(g.Text("SV Worldz by Numbers")),
							Ul(g.Map(byNumbers, func(s string) g.Node { return Li(g.Text(s)) })),
						),
					),
				),
			),
			Section(
				Class("page-section"),
				H2(g.Text("Meet the "), GoldText(g.Text("Mastermind"))),
				Div(
					Class("mastermind"),
					Img(Class("mastermind__photo"), Src(creatorImg), Alt(creatorName+" - The Business Whisperer"), Width("300"), Height("300")),
					Div(
						H3(g.Text(creatorName+" - The Business Whisperer")),
						paragraphs("lead", mastermindParagraphs),
						A(Class("chip"), Href(channelURL), Target("_blank"), Rel("noopener"), g.Text("Follow Sai's Business Adventures")),
					),
				),
			),
			Section(
				Class("page-section"),
				H2(g.Text("Our "), GoldText(g.Text("Not-So-Secret")), g.Text(" Sauce")),
				Div(
					Class("three-col"),
					g.Map(secretSauce, func(s sauceStep) g.Node {
						return Div(Class("card"), H3(g.Text(s.Title)), P(g.Text(s.Body)))
					}),
				),
			),
			Section(
				Class("page-section center"),
				H2(g.Text("Why "), GoldText(g.Text("Choose Us")), g.Text("?")),
				paragraphs("lead", whyChooseUs),
				FloatingElement(
					A(Class("button button--dark button--large"), Href(channelURL), Target("_blank"), Rel("noopener"), g.Text("Subscribe")),
				),
			),
		),
		siteFooter(true),
	)
}
