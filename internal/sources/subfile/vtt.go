package subfile

import (
	"regexp"
	"strconv"
	"strings"

	"scriba/internal/media"
)

// timingPattern matches a WebVTT cue timing line. The hours component is
// optional (WebVTT permits mm:ss.ttt short form, and some generators emit
// it) and may exceed two digits for very long streams. Trailing cue
// settings (alignment, position) are tolerated after the end timestamp.
var timingPattern = regexp.MustCompile(`^(?:(\d{2,}):)?(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(?:(\d{2,}):)?(\d{2}):(\d{2})\.(\d{3})`)

// tagPattern strips inline angle-bracket markup such as <c>, </c>, and
// timestamp tags embedded in cue text.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// ParseVTT converts WebVTT content into ordered transcript segments.
//
// Blocks are separated by one or more blank lines. Within a block, the
// first line matching the timing pattern is the cue timing; every line
// after it is joined with a single space, inline tags are stripped, and
// the result trimmed. Blocks without a timing line, or whose text is empty
// after stripping, are discarded.
func ParseVTT(content string) []media.Segment {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var segments []media.Segment
	for _, block := range splitBlocks(content) {
		lines := strings.Split(block, "\n")

		timingIdx := -1
		var match []string
		for i, line := range lines {
			if m := timingPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				timingIdx = i
				match = m
				break
			}
		}
		if timingIdx < 0 {
			continue
		}

		text := strings.Join(lines[timingIdx+1:], " ")
		text = tagPattern.ReplaceAllString(text, "")
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		start := timestampMS(match[1], match[2], match[3], match[4])
		end := timestampMS(match[5], match[6], match[7], match[8])
		duration := end - start
		if duration < 0 {
			duration = 0
		}

		segments = append(segments, media.Segment{
			Text:       text,
			OffsetMS:   start,
			DurationMS: duration,
		})
	}
	return segments
}

func splitBlocks(content string) []string {
	lines := strings.Split(content, "\n")
	var blocks []string
	var current []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, "\n"))
				current = current[:0]
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

// timestampMS converts timing submatches to milliseconds. hours is ""
// for short-form timings.
func timestampMS(hours, minutes, seconds, millis string) int64 {
	var h int64
	if hours != "" {
		h, _ = strconv.ParseInt(hours, 10, 64)
	}
	m, _ := strconv.ParseInt(minutes, 10, 64)
	s, _ := strconv.ParseInt(seconds, 10, 64)
	ms, _ := strconv.ParseInt(millis, 10, 64)
	return h*3600000 + m*60000 + s*1000 + ms
}
