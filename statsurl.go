package svworldz

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"text/template"
)

// youTubeChannelsTemplate is the YouTube Data API v3 channel statistics
// request. Use it with [YouTubeChannelDecoder].
const youTubeChannelsTemplate = "https://www.googleapis.com/youtube/v3/channels?part=statistics&id={{.channel}}&key={{.key}}"

// ExpandStatsURL renders a stats URL from a text/template and parameters.
//
// Parameter values are URL-encoded before interpolation. A key referenced by
// the template but missing from params is an error.
//
// Example:
//
//	u, err := svworldz.ExpandStatsURL(
//	    "https://stats.example.com/channels/{{.channel}}",
//	    map[string]string{"channel": "UC123"},
//	)
func ExpandStatsURL(tmpl string, params map[string]string) (string, error) {
	if strings.TrimSpace(tmpl) == "" {
		return "", errors.New("stats url template cannot be empty")
	}

	// missingkey=error for fail-fast behaviour
	t, err := template.New("url").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("invalid stats url template: %w", err)
	}

	encoded := make(map[string]string, len(params))
	for k, v := range params {
		encoded[k] = url.QueryEscape(v)
	}

	var buf strings.Builder
	if err := t.Execute(&buf, encoded); err != nil {
		return "", fmt.Errorf("stats url template execution failed: %w", err)
	}
	return buf.String(), nil
}

// YouTubeStatsURL returns the YouTube Data API request for a channel's
// statistics.
func YouTubeStatsURL(channelID, apiKey string) (string, error) {
	if channelID == "" {
		return "", errors.New("youtube channel id is required")
	}
	if apiKey == "" {
		return "", errors.New("youtube api key is required")
	}
	return ExpandStatsURL(youTubeChannelsTemplate, map[string]string{
		"channel": channelID,
		"key":     apiKey,
	})
}
