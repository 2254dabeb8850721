// Package youtube extracts video IDs from the YouTube URL forms users
// paste into the upload form.
package youtube

import "regexp"

// A video ID is exactly 11 characters from [A-Za-z0-9_-].
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})(?:[^a-zA-Z0-9_-]|$)`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})(?:[^a-zA-Z0-9_-]|$)`),
}

// ExtractID pulls the video ID out of a watch, youtu.be, embed or
// shorts URL. Returns false when the URL matches none of the known
// forms.
func ExtractID(url string) (string, bool) {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
