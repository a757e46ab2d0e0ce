package media

import (
	"sort"
	"strings"
	"time"
)

// Item is one unit of acquisition work, supplied wholesale by the playlist
// lister at batch start and immutable afterwards.
type Item struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	SourceURL       string `json:"sourceUrl"`
	DurationSeconds int64  `json:"durationSeconds"`
	GroupID         string `json:"groupId"`
	GroupLabel      string `json:"groupLabel"`
}

// Segment is a single timed piece of transcript text. Offsets and durations
// are integer milliseconds; overlap between segments is not forbidden
// because upstream caption data may overlap.
type Segment struct {
	Text       string `json:"text"`
	OffsetMS   int64  `json:"offset"`
	DurationMS int64  `json:"duration"`
}

// Record is the durable output for one item. Segments and FetchedAt are
// written only as a whole-file overwrite; PublishedAt may be filled in later
// by the date enrichment pass without touching the rest.
type Record struct {
	Item        Item      `json:"item"`
	Segments    []Segment `json:"segments"`
	FetchedAt   time.Time `json:"fetchedAt"`
	PublishedAt string    `json:"publishedAt,omitempty"`
}

// SortSegments orders segments by start offset. Adapters already emit
// ordered sequences; this keeps the invariant when sources misbehave.
func SortSegments(segments []Segment) {
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].OffsetMS < segments[j].OffsetMS
	})
}

// WordCount counts whitespace-separated tokens across all segments.
func (r Record) WordCount() int {
	total := 0
	for _, seg := range r.Segments {
		total += len(strings.Fields(seg.Text))
	}
	return total
}

// SpokenDuration sums segment durations in milliseconds.
func (r Record) SpokenDuration() time.Duration {
	var total int64
	for _, seg := range r.Segments {
		total += seg.DurationMS
	}
	return time.Duration(total) * time.Millisecond
}
