// Package view renders the site's pages as gomponents node trees.
//
// Fragments (GoldText, FloatingElement, ParallaxSection, AnimatedCounter,
// VideoCard, ScrollingSponsors, PremiumCTA, HeroScene, ScrollProgress) are
// pure functions of their arguments. Pages compose them with the static
// marketing copy in content.go and the current channel stats.
//
// Animation timing comes from [motion.Transition] values; the browser script
// only reads data attributes and replays what the server computed.
package view
