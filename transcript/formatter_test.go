package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tubetext/api-gateway/models"
)

func TestFormatSegmentsWithTimestamps(t *testing.T) {
	t.Run("single segment", func(t *testing.T) {
		segs := []models.TranscriptSegment{{Start: 65, Duration: 3, Text: "hi"}}
		assert.Equal(t, "[01:05] hi", FormatSegments(segs, true))
	})

	t.Run("multiple segments one per line", func(t *testing.T) {
		segs := []models.TranscriptSegment{
			{Start: 0, Duration: 2, Text: "hello"},
			{Start: 2.9, Duration: 3, Text: "world"},
		}
		assert.Equal(t, "[00:00] hello\n[00:02] world", FormatSegments(segs, true))
	})

	t.Run("minutes are unbounded past the hour", func(t *testing.T) {
		segs := []models.TranscriptSegment{{Start: 4000, Duration: 1, Text: "late"}}
		assert.Equal(t, "[66:40] late", FormatSegments(segs, true))
	})

	t.Run("offset floored to whole seconds", func(t *testing.T) {
		segs := []models.TranscriptSegment{{Start: 59.99, Duration: 1, Text: "x"}}
		assert.Equal(t, "[00:59] x", FormatSegments(segs, true))
	})
}

func TestFormatSegmentsWithoutTimestamps(t *testing.T) {
	segs := []models.TranscriptSegment{
		{Start: 0, Duration: 2, Text: "  hello "},
		{Start: 2, Duration: 2, Text: "world"},
	}
	// Texts are joined with a single space, trimmed.
	assert.Equal(t, "hello world", FormatSegments(segs, false))
}

func TestFormatSegmentsSkipsEmptyText(t *testing.T) {
	segs := []models.TranscriptSegment{
		{Start: 0, Duration: 1, Text: "a"},
		{Start: 1, Duration: 1, Text: "   "},
		{Start: 2, Duration: 1, Text: "b"},
	}
	assert.Equal(t, "a b", FormatSegments(segs, false))
	assert.Equal(t, "[00:00] a\n[00:02] b", FormatSegments(segs, true))
}

func TestFormatSegmentsEmptyInput(t *testing.T) {
	assert.Equal(t, "", FormatSegments(nil, true))
	assert.Equal(t, "", FormatSegments([]models.TranscriptSegment{}, false))
}
