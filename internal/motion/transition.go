package motion

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Infinite repeats an animation forever.
const Infinite = -1

// Transition describes the timing of a CSS animation.
type Transition struct {
	Duration time.Duration
	Delay    time.Duration

	// Ease is a CSS timing function, e.g. "linear" or "ease-out".
	// Empty means "ease".
	Ease string

	// Repeat is the iteration count; 0 plays once and [Infinite] loops.
	Repeat int

	// Alternate reverses direction on every other iteration.
	Alternate bool
}

// Animation renders the `animation` shorthand for the named keyframes.
func (t Transition) Animation(name string) string {
	ease := t.Ease
	if ease == "" {
		ease = "ease"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s %s", name, seconds(t.Duration), ease, seconds(t.Delay))

	switch {
	case t.Repeat == Infinite:
		b.WriteString(" infinite")
	case t.Repeat > 0:
		fmt.Fprintf(&b, " %d", t.Repeat)
	}
	if t.Alternate {
		b.WriteString(" alternate")
	}
	b.WriteString(" both")
	return b.String()
}

// Prop is a single CSS declaration.
type Prop struct {
	Name  string
	Value string
}

// Keyframe is the set of declarations at an offset in [0, 1].
type Keyframe struct {
	Offset float64
	Props  []Prop
}

// Keyframes is a named CSS @keyframes rule.
type Keyframes struct {
	Name   string
	Frames []Keyframe
}

// CSS renders the @keyframes rule.
func (k Keyframes) CSS() string {
	var b strings.Builder
	fmt.Fprintf(&b, "@keyframes %s {", k.Name)
	for _, f := range k.Frames {
		fmt.Fprintf(&b, " %s%% {", strconv.FormatFloat(f.Offset*100, 'f', -1, 64))
		for _, p := range f.Props {
			fmt.Fprintf(&b, " %s: %s;", p.Name, p.Value)
		}
		b.WriteString(" }")
	}
	b.WriteString(" }")
	return b.String()
}

// FromTo is a two-frame rule from the from declarations to the to
// declarations.
func FromTo(name string, from, to []Prop) Keyframes {
	return Keyframes{
		Name: name,
		Frames: []Keyframe{
			{Offset: 0, Props: from},
			{Offset: 1, Props: to},
		},
	}
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}
