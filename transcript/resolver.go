package transcript

import "regexp"

// Canonical YouTube video IDs are exactly 11 characters of [A-Za-z0-9_-].
var videoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// URL shapes carrying the ID, tried in order. First match wins. The
// trailing group rejects tokens longer than 11 characters.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com|youtube-nocookie\.com)/watch\?(?:[^#]*&)?v=([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`(?:youtube\.com|youtube-nocookie\.com)/embed/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`youtube\.com/v/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
}

// ExtractVideoID resolves an arbitrary user-supplied string into a canonical
// video ID. Accepted shapes: full watch URLs, youtu.be short URLs, embed
// URLs, legacy /v/ URLs, and bare 11-character IDs. Returns ErrInvalidURL
// when no shape matches. Pure; never touches the network.
func ExtractVideoID(raw string) (string, error) {
	if videoIDRE.MatchString(raw) {
		return raw, nil
	}
	for _, re := range urlPatterns {
		if m := re.FindStringSubmatch(raw); len(m) == 2 {
			return m[1], nil
		}
	}
	return "", ErrInvalidURL
}

// ValidVideoID reports whether s already has the canonical ID shape.
func ValidVideoID(s string) bool {
	return videoIDRE.MatchString(s)
}
