// Package motion models the site's decorative animation as plain values.
//
// An animated number is a [Counter]: a pure function of elapsed time that
// eases from a start value to a target. Pages render a counter's per-frame
// [Counter.Samples] so the browser only replays a table, and the terminal
// preview runs the same counter through a [Driver].
//
// CSS animations for the fragments are described by [Transition] and
// [Keyframes] and rendered to CSS text, so timing lives next to the code that
// uses it instead of in a hand-maintained stylesheet.
package motion
