// Package youtube resolves video references: extracting video IDs from the
// URL shapes users paste in, parsing API durations, and looking up title,
// thumbnail, and duration metadata.
package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

var urlPatterns = []*regexp.Regexp{
	// Standard watch URL: https://www.youtube.com/watch?v=VIDEO_ID
	regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.+&v=([a-zA-Z0-9_-]{11})`),
	// Short URL: https://youtu.be/VIDEO_ID
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	// Embed URL: https://www.youtube.com/embed/VIDEO_ID
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	// Mobile URL: https://m.youtube.com/watch?v=VIDEO_ID
	regexp.MustCompile(`m\.youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID extracts a YouTube video ID from the URL formats users
// paste in, or from a bare 11-character ID. Returns "" when nothing matches.
func ExtractVideoID(url string) string {
	if url == "" {
		return ""
	}

	if videoIDPattern.MatchString(url) {
		return url
	}

	for _, pattern := range urlPatterns {
		if match := pattern.FindStringSubmatch(url); match != nil {
			return match[1]
		}
	}

	return ""
}

// IsValidURL reports whether a video ID can be extracted from the given URL
func IsValidURL(url string) bool {
	return ExtractVideoID(url) != ""
}

var iso8601DurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISO8601Duration converts a Data API duration like "PT1H30M45S" to
// seconds. Malformed input yields 0.
func ParseISO8601Duration(duration string) int64 {
	match := iso8601DurationPattern.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}

	parse := func(s string) int64 {
		if s == "" {
			return 0
		}
		n, _ := strconv.ParseInt(s, 10, 64)
		return n
	}

	hours := parse(match[1])
	minutes := parse(match[2])
	seconds := parse(match[3])

	return hours*3600 + minutes*60 + seconds
}

// ThumbnailURL returns the predictable thumbnail URL for a video ID.
// quality is one of "default", "medium", "high", "maxres"; anything else
// falls back to high.
func ThumbnailURL(videoID, quality string) string {
	name := map[string]string{
		"default": "default",
		"medium":  "mqdefault",
		"high":    "hqdefault",
		"maxres":  "maxresdefault",
	}[quality]
	if name == "" {
		name = "hqdefault"
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/%s.jpg", videoID, name)
}
