package transcript

import (
	"fmt"
	"strings"

	"tubetext/api-gateway/models"
)

// FormatSegments renders ordered segments into a single display string.
//
// With timestamps every segment becomes "[mm:ss] text" on its own line;
// the offset is floored to whole seconds and minutes are unbounded, so
// 4000s renders as [66:40], not wrapped at the hour. Without timestamps
// the segment texts are joined with a single space. Segment text is
// whitespace-trimmed and empty segments are skipped either way.
func FormatSegments(segments []models.TranscriptSegment, includeTimestamps bool) string {
	var sb strings.Builder
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			if includeTimestamps {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		}
		if includeTimestamps {
			sb.WriteString(formatTimestamp(seg.Start))
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String()
}

func formatTimestamp(start float64) string {
	if start < 0 {
		start = 0
	}
	total := int(start)
	return fmt.Sprintf("[%02d:%02d]", total/60, total%60)
}
