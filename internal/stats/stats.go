// Package stats aggregates archive-wide numbers from stored records into a
// summary document. The summary is derived data, regenerated on demand.
package stats

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"scriba/internal/fileutil"
	"scriba/internal/media"
)

// GroupStats aggregates one playlist's records.
type GroupStats struct {
	GroupID       string `json:"groupId"`
	GroupLabel    string `json:"groupLabel"`
	Videos        int    `json:"videos"`
	Segments      int    `json:"segments"`
	Words         int    `json:"words"`
	SpokenSeconds int64  `json:"spokenSeconds"`
}

// Summary is the archive-wide aggregation written to stats.json.
type Summary struct {
	GeneratedAt   time.Time    `json:"generatedAt"`
	Videos        int          `json:"videos"`
	Segments      int          `json:"segments"`
	Words         int          `json:"words"`
	SpokenSeconds int64        `json:"spokenSeconds"`
	Groups        []GroupStats `json:"groups"`
}

// Build aggregates records into a summary. Groups are ordered by collated
// label so the output is stable across runs and locales.
func Build(recs []media.Record, now time.Time) Summary {
	summary := Summary{GeneratedAt: now.UTC()}
	byGroup := make(map[string]*GroupStats)

	for _, rec := range recs {
		group, ok := byGroup[rec.Item.GroupID]
		if !ok {
			group = &GroupStats{GroupID: rec.Item.GroupID, GroupLabel: rec.Item.GroupLabel}
			byGroup[rec.Item.GroupID] = group
		}

		words := rec.WordCount()
		spoken := int64(rec.SpokenDuration() / time.Second)

		group.Videos++
		group.Segments += len(rec.Segments)
		group.Words += words
		group.SpokenSeconds += spoken

		summary.Videos++
		summary.Segments += len(rec.Segments)
		summary.Words += words
		summary.SpokenSeconds += spoken
	}

	groups := make([]GroupStats, 0, len(byGroup))
	for _, group := range byGroup {
		groups = append(groups, *group)
	}
	collator := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(groups, func(i, j int) bool {
		if cmp := collator.CompareString(groups[i].GroupLabel, groups[j].GroupLabel); cmp != 0 {
			return cmp < 0
		}
		return groups[i].GroupID < groups[j].GroupID
	})
	summary.Groups = groups
	return summary
}

// WriteSummary persists the summary atomically.
func WriteSummary(path string, summary Summary) error {
	return fileutil.WriteJSON(path, summary)
}

// ReadSummary loads a previously written summary.
func ReadSummary(path string) (Summary, error) {
	var summary Summary
	err := fileutil.ReadJSON(path, &summary)
	return summary, err
}
