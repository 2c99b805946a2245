package transcript

import "errors"

// Error kinds surfaced by the transcript pipeline. Handlers map each kind
// to a distinct HTTP status and a stable (error, message) pair; nothing
// else in the pipeline inspects error text.
var (
	// ErrInvalidURL means the input is not a recognizable YouTube URL or ID.
	ErrInvalidURL = errors.New("invalid video URL or ID")

	// ErrNoMatchingLanguage means the video offers no caption tracks at all.
	ErrNoMatchingLanguage = errors.New("no matching transcript language")

	// ErrTranscriptsDisabled means the video exists but exposes no usable
	// caption track.
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")

	// ErrVideoUnavailable means the source reports the video as private,
	// removed, or nonexistent.
	ErrVideoUnavailable = errors.New("video is unavailable")

	// ErrUpstream covers transport or decode failures talking to the
	// transcript source.
	ErrUpstream = errors.New("upstream transcript source error")
)
