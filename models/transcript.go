package models

// TranscriptSegment is a single timed caption line as returned by the
// transcript source. Start and Duration are in seconds.
type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// TranscriptResult is the outcome of a successful fetch+select for one video.
type TranscriptResult struct {
	VideoID  string              `json:"video_id"`
	Language string              `json:"language"`
	Segments []TranscriptSegment `json:"segments"`
}

// TotalSegments returns the derived segment count.
func (r TranscriptResult) TotalSegments() int {
	return len(r.Segments)
}

// TranscriptPayload is the formatted, cacheable body of a transcript
// response. It is stored and returned by value so cache internals are
// never shared with callers.
type TranscriptPayload struct {
	VideoID       string `json:"video_id"`
	Language      string `json:"language"`
	Transcript    string `json:"transcript"`
	TotalSegments int    `json:"total_segments"`
}
