package view

// FeaturedVideo is a video shown on the landing page.
type FeaturedVideo struct {
	ID       string
	Title    string
	Views    string
	Duration string
}

// Thumbnail is the YouTube max-resolution thumbnail URL.
func (v FeaturedVideo) Thumbnail() string {
	return "https://img.youtube.com/vi/" + v.ID + "/maxresdefault.jpg"
}

// URL is the watch page for the video.
func (v FeaturedVideo) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// Sponsor is a brand logo in the sponsor strip.
type Sponsor struct {
	Name string
	Logo string
}

// SocialLink is an outbound profile link.
type SocialLink struct {
	Label string
	Href  string
}

const (
	brandName   = "SV Worldz"
	channelURL  = "https://www.youtube.com/@SVWorldz"
	creatorName = "Sai Vardhan"
	heroReel    = "/assets/sv-worldz-reel.mp4"
	creatorImg  = "/assets/creator-image.jpg"
	copyright   = "© 2024 SV Worldz. All rights reserved."
)

var featuredVideos = []FeaturedVideo{
	{ID: "rNJWZ7SFhEM", Title: "The Rise and Fall of WeWork", Views: "1.2M", Duration: "15:23"},
	{ID: "0ic47fAqRHs", Title: "How Theranos Fooled the World", Views: "2.5M", Duration: "20:17"},
	{ID: "2kg4LArtymg", Title: "The Enron Scandal Explained", Views: "1.8M", Duration: "18:45"},
	{ID: "wZD1NXvotEk", Title: "Tesla: The Electric Revolution", Views: "3.1M", Duration: "22:09"},
	{ID: "dQw4w9WgXcQ", Title: "The Dot-Com Bubble Burst", Views: "1.5M", Duration: "17:32"},
	{ID: "dQw4w9WgXcQ", Title: "Amazon's Path to Dominance", Views: "2.2M", Duration: "19:56"},
}

var sponsors = []Sponsor{
	{Name: "ZebraLearn", Logo: "/assets/sponsors/zebralearn.png"},
	{Name: "Man Matters", Logo: "/assets/sponsors/man-matters.png"},
	{Name: "PolicyBazaar", Logo: "/assets/sponsors/policybazaar.png"},
	{Name: "KUKU FM", Logo: "/assets/sponsors/kukufm.png"},
	{Name: "Upstox", Logo: "/assets/sponsors/upstox.png"},
}

var socialLinks = []SocialLink{
	{Label: "YouTube", Href: channelURL},
	{Label: "Instagram", Href: "https://www.instagram.com/svworldz"},
	{Label: "Twitter", Href: "https://twitter.com/svworldz"},
	{Label: "LinkedIn", Href: "https://www.linkedin.com/company/svworldz"},
}

// FeaturedVideos returns the landing page video list.
func FeaturedVideos() []FeaturedVideo {
	return append([]FeaturedVideo(nil), featuredVideos...)
}

// Sponsors returns the sponsor strip entries.
func Sponsors() []Sponsor {
	return append([]Sponsor(nil), sponsors...)
}

var aboutParagraphs = []string{
	"SV Worldz is your premier destination for unraveling the mysteries of the business world. We deliver top-quality content focused on business case studies, rise & fall stories, and in-depth analyses of corporate scandals and innovations.",
	"Our mission is to educate, inform, and entertain our audience with compelling narratives that shed light on the inner workings of companies, startups, and industries.",
}

var creatorParagraphs = []string{
	"With a passion for unraveling complex business narratives, Sai Vardhan, the creator behind SV Worldz, brings years of experience in financial journalism and corporate analysis to the YouTube platform.",
	"Driven by a mission to make intricate business stories accessible to all, Sai combines meticulous research with engaging storytelling to shed light on the most fascinating chapters of corporate history.",
}

var missionParagraphs = []string{
	"At SV Worldz, we're on a mission to demystify the business world, one YouTube video at a time. We're like the Sherlock Holmes of the corporate world, but with better hair and a much cooler magnifying glass (it's actually a 4K camera).",
	"Our goal? To make business case studies so entertaining that you'll forget you're actually learning something. It's like sneaking vegetables into a kid's meal, but instead of carrots, we're serving up knowledge bombs.",
}

var byNumbers = []string{
	"774k+ Subscribers",
	"1,000+ Cups of Coffee Consumed",
	"50+ Business Mysteries Solved",
	"100+ Companies Analyzed",
}

var mastermindParagraphs = []string{
	"Legend has it that Sai Vardhan can smell a failing business model from miles away. Some say he was born with a silver PowerPoint clicker in his hand. Others claim he learned to read balance sheets before bedtime stories.",
	"What we know for sure is that Sai has an uncanny ability to turn complex business concepts into bite-sized, easily digestible content. It's like he's got a PhD in Corporate Simplification (if that were a real thing).",
}

type sauceStep struct {
	Title string
	Body  string
}

var secretSauce = []sauceStep{
	{"1. Thorough Research", "We dig deeper than a mole on espresso. Our fact-checking is so intense, even our fact-checkers have fact-checkers."},
	{"2. Engaging Storytelling", "We turn dry business cases into edge-of-your-seat thrillers. Move over, Hollywood!"},
	{"3. Sprinkle of Humor", "We believe laughter is the best medicine... unless you're actually sick. Then please see a doctor."},
}

var whyChooseUs = []string{
	"Because where else can you learn about corporate strategies while simultaneously improving your dad-joke game?",
	"We're like the cool economics teacher you wish you had in high school, but with better production value and fewer pop quizzes.",
}
