package view

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/message"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/jpalmerr/svworldz/internal/motion"
)

// GoldText renders children in the brand's gold gradient.
func GoldText(children ...g.Node) g.Node {
	return Span(Class("gold-text"), g.Group(children))
}

// FloatingElement bobs its children up and down, 2s each way, forever.
func FloatingElement(children ...g.Node) g.Node {
	return Div(Class("floating"), animate(floatKeyframes, floatTiming), g.Group(children))
}

// ParallaxSection shifts its children vertically by up to offset px as the
// section scrolls from entering to leaving the viewport. Negative offsets
// move against the scroll.
func ParallaxSection(offset int, children ...g.Node) g.Node {
	return Div(
		Class("parallax"),
		Data("parallax-offset", strconv.Itoa(offset)),
		g.Group(children),
	)
}

// AnimatedCounter counts from 0 to end over duration (2s when zero) with
// ease-out cubic easing. The server renders the final value and the per-frame
// sample table; the browser replays the table when the counter scrolls into
// view.
func AnimatedCounter(p *message.Printer, end int64, duration time.Duration) g.Node {
	return animatedCounter(p, end, duration, counterFPS)
}

// animatedCounter renders the counter sampled at fps. Without a usable sample
// table the span carries only the final value and the browser leaves it
// static.
func animatedCounter(p *message.Printer, end int64, duration time.Duration, fps int) g.Node {
	if duration <= 0 {
		duration = motion.DefaultCounterDuration
	}
	c := motion.Counter{End: end, Duration: duration, Ease: motion.EaseOutCubic}
	samples, err := c.Samples(fps)
	if err != nil || len(samples) == 0 {
		return Span(Class("counter"), g.Text(FormatCount(p, end)))
	}

	return Span(
		Class("counter"),
		Data("samples", joinInts(samples)),
		Data("fps", strconv.Itoa(fps)),
		g.Text(FormatCount(p, end)),
	)
}

// PremiumCTA grows on hover and shrinks while pressed.
func PremiumCTA(children ...g.Node) g.Node {
	return Div(Class("premium-cta"), g.Group(children))
}

// VideoCard links a featured video's thumbnail, title and stats.
func VideoCard(v FeaturedVideo) g.Node {
	return A(
		Class("video-card"),
		Href(v.URL()),
		Target("_blank"),
		Rel("noopener"),
		Img(
			Src(v.Thumbnail()),
			Alt(v.Title),
			Width("640"),
			Height("360"),
			g.Attr("loading", "lazy"),
		),
		Div(
			Class("video-card__caption"),
			H3(g.Text(v.Title)),
			P(g.Textf("%s views • %s", v.Views, v.Duration)),
		),
	)
}

// ScrollingSponsors renders the sponsor logos twice, side by side, each copy
// translating left by the strip width every 20 seconds so the loop is
// seamless.
func ScrollingSponsors(list []Sponsor) g.Node {
	track := func(hidden bool) g.Node {
		return Div(
			Class("sponsors__track"),
			animate(marqueeKeyframes, marqueeTiming),
			g.If(hidden, Aria("hidden", "true")),
			g.Map(list, func(s Sponsor) g.Node {
				return Img(Src(s.Logo), Alt(s.Name), Width("250"), Height("100"))
			}),
		)
	}
	return Div(Class("sponsors"), track(false), track(true))
}

// HeroScene is the hero backdrop: a looping muted reel behind a floating,
// perspective-tilted brand title.
func HeroScene() g.Node {
	return Div(
		Class("hero-scene"),
		Aria("hidden", "true"),
		g.El("video",
			Class("hero-scene__reel"),
			Src(heroReel),
			g.Attr("autoplay"),
			g.Attr("muted"),
			g.Attr("loop"),
			g.Attr("playsinline"),
			g.Attr("crossorigin", "anonymous"),
		),
		Div(
			Class("hero-scene__title"),
			animate(heroFloatKeyframes, heroFloatTiming),
			g.Text(brandName),
		),
	)
}

// ScrollProgress is the fixed bar across the top of the page that follows
// scroll position through a spring.
func ScrollProgress() g.Node {
	return Div(
		Class("scroll-progress"),
		Data("spring-stiffness", strconv.Itoa(progressStiffness)),
		Data("spring-damping", strconv.Itoa(progressDamping)),
		Data("spring-rest-delta", strconv.FormatFloat(progressRestDelta, 'f', -1, 64)),
	)
}

func joinInts(vs []int64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ",")
}
