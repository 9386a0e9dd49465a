package view

import (
	"strconv"
	"strings"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/jpalmerr/svworldz/internal/motion"
)

// Interaction scales for PremiumCTA.
const (
	ctaHoverScale = 1.05
	ctaPressScale = 0.95
)

// ScrollProgress spring parameters.
const (
	progressStiffness = 100
	progressDamping   = 30
	progressRestDelta = 0.001
)

// counterFPS is the frame rate of rendered counter sample tables.
const counterFPS = 60

// sponsorTravel is how far the sponsor strip scrolls per loop, in px.
const sponsorTravel = 1920

func translateY(px int) string { return "translateY(" + strconv.Itoa(px) + "px)" }

var (
	floatKeyframes = motion.FromTo("sv-float",
		[]motion.Prop{{Name: "transform", Value: translateY(20)}, {Name: "opacity", Value: "0"}},
		[]motion.Prop{{Name: "transform", Value: translateY(0)}, {Name: "opacity", Value: "1"}},
	)
	floatTiming = motion.Transition{
		Duration:  2 * time.Second,
		Ease:      "cubic-bezier(0.34, 1.56, 0.64, 1)",
		Repeat:    motion.Infinite,
		Alternate: true,
	}

	marqueeKeyframes = motion.FromTo("sv-marquee",
		[]motion.Prop{{Name: "transform", Value: "translateX(0px)"}},
		[]motion.Prop{{Name: "transform", Value: "translateX(-" + strconv.Itoa(sponsorTravel) + "px)"}},
	)
	marqueeTiming = motion.Transition{
		Duration: 20 * time.Second,
		Ease:     "linear",
		Repeat:   motion.Infinite,
	}

	dropInKeyframes = motion.FromTo("sv-drop-in",
		[]motion.Prop{{Name: "opacity", Value: "0"}, {Name: "transform", Value: translateY(-50)}},
		[]motion.Prop{{Name: "opacity", Value: "1"}, {Name: "transform", Value: translateY(0)}},
	)
	riseKeyframes = motion.FromTo("sv-rise",
		[]motion.Prop{{Name: "opacity", Value: "0"}, {Name: "transform", Value: translateY(50)}},
		[]motion.Prop{{Name: "opacity", Value: "1"}, {Name: "transform", Value: translateY(0)}},
	)
	riseShortKeyframes = motion.FromTo("sv-rise-short",
		[]motion.Prop{{Name: "opacity", Value: "0"}, {Name: "transform", Value: translateY(20)}},
		[]motion.Prop{{Name: "opacity", Value: "1"}, {Name: "transform", Value: translateY(0)}},
	)
	fadeInKeyframes = motion.FromTo("sv-fade-in",
		[]motion.Prop{{Name: "opacity", Value: "0"}},
		[]motion.Prop{{Name: "opacity", Value: "1"}},
	)

	heroFloatKeyframes = motion.Keyframes{
		Name: "sv-hero-float",
		Frames: []motion.Keyframe{
			{Offset: 0, Props: []motion.Prop{{Name: "transform", Value: "translateY(0px) rotateX(0deg) rotateY(0deg)"}}},
			{Offset: 0.5, Props: []motion.Prop{{Name: "transform", Value: "translateY(-12px) rotateX(4deg) rotateY(-6deg)"}}},
			{Offset: 1, Props: []motion.Prop{{Name: "transform", Value: "translateY(0px) rotateX(0deg) rotateY(0deg)"}}},
		},
	}
	heroFloatTiming = motion.Transition{
		Duration: 4 * time.Second,
		Ease:     "ease-in-out",
		Repeat:   motion.Infinite,
	}
)

// entrance is the one-shot timing for page elements fading into place.
func entrance(delay time.Duration) motion.Transition {
	return motion.Transition{Duration: 500 * time.Millisecond, Delay: delay, Ease: "ease-out"}
}

var allKeyframes = []motion.Keyframes{
	floatKeyframes,
	marqueeKeyframes,
	dropInKeyframes,
	riseKeyframes,
	riseShortKeyframes,
	fadeInKeyframes,
	heroFloatKeyframes,
}

// animate attaches keyframes k with timing t to an element.
func animate(k motion.Keyframes, t motion.Transition) g.Node {
	return Style("animation: " + t.Animation(k.Name))
}

// Stylesheet returns the generated animation rules shared by every page.
func Stylesheet() string {
	var b strings.Builder
	for _, k := range allKeyframes {
		b.WriteString(k.CSS())
		b.WriteByte('\n')
	}

	hover := strconv.FormatFloat(ctaHoverScale, 'f', -1, 64)
	press := strconv.FormatFloat(ctaPressScale, 'f', -1, 64)
	b.WriteString(".premium-cta { display: inline-block; transition: transform 0.2s ease, box-shadow 0.2s ease; }\n")
	b.WriteString(".premium-cta:hover { transform: scale(" + hover + "); box-shadow: 0 0 15px rgba(255,215,0,0.5); }\n")
	b.WriteString(".premium-cta:active { transform: scale(" + press + "); }\n")
	b.WriteString("@media (prefers-reduced-motion: reduce) { *, *::before, *::after { animation: none !important; transition: none !important; } }\n")
	return b.String()
}
