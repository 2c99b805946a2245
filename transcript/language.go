package transcript

import "strings"

// Track describes one caption track offered by the source.
type Track struct {
	Code          string
	AutoGenerated bool
}

// SelectLanguage picks a language code from the available tracks.
//
// With preferences: the first preferred code (case-insensitive) present in
// tracks wins. When no preference matches, selection falls through to the
// no-preference rule instead of failing. Without preferences: the first
// non-auto-generated track in source order, else the first track.
//
// Returns ErrNoMatchingLanguage only when tracks is empty. Identical inputs
// always yield the identical output.
func SelectLanguage(prefs []string, tracks []Track) (string, error) {
	if len(tracks) == 0 {
		return "", ErrNoMatchingLanguage
	}

	for _, pref := range prefs {
		want := NormalizeLanguage(pref)
		if want == "" {
			continue
		}
		for _, t := range tracks {
			if NormalizeLanguage(t.Code) == want {
				return t.Code, nil
			}
		}
	}

	for _, t := range tracks {
		if !t.AutoGenerated {
			return t.Code, nil
		}
	}
	return tracks[0].Code, nil
}

// NormalizeLanguage canonicalizes a language code for comparison and for
// cache-key construction: trimmed and lowercased. Order of a preference
// list is significant and is never altered.
func NormalizeLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
