package stats_test

import (
	"path/filepath"
	"testing"
	"time"

	"scriba/internal/media"
	"scriba/internal/stats"
)

func rec(id, groupID, groupLabel string, segments ...media.Segment) media.Record {
	return media.Record{
		Item:      media.Item{ID: id, GroupID: groupID, GroupLabel: groupLabel},
		Segments:  segments,
		FetchedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildAggregatesByGroup(t *testing.T) {
	recs := []media.Record{
		rec("v1", "PL1", "Endgames",
			media.Segment{Text: "one two three", DurationMS: 2000},
			media.Segment{Text: "four", DurationMS: 1000},
		),
		rec("v2", "PL1", "Endgames",
			media.Segment{Text: "five six", DurationMS: 3000},
		),
		rec("v3", "PL2", "Attacking chess",
			media.Segment{Text: "seven", DurationMS: 500},
		),
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	summary := stats.Build(recs, now)

	if summary.GeneratedAt != now {
		t.Fatalf("generatedAt = %v", summary.GeneratedAt)
	}
	if summary.Videos != 3 || summary.Segments != 4 || summary.Words != 7 {
		t.Fatalf("totals = %+v", summary)
	}
	if summary.SpokenSeconds != 6 {
		t.Fatalf("spokenSeconds = %d, want 6", summary.SpokenSeconds)
	}

	if len(summary.Groups) != 2 {
		t.Fatalf("groups = %d", len(summary.Groups))
	}
	// Collated label order: "Attacking chess" before "Endgames".
	if summary.Groups[0].GroupID != "PL2" {
		t.Fatalf("group order = %q, %q", summary.Groups[0].GroupID, summary.Groups[1].GroupID)
	}
	endgames := summary.Groups[1]
	if endgames.Videos != 2 || endgames.Words != 6 || endgames.Segments != 3 {
		t.Fatalf("endgame stats = %+v", endgames)
	}
}

func TestBuildEmptyArchive(t *testing.T) {
	summary := stats.Build(nil, time.Now())
	if summary.Videos != 0 || len(summary.Groups) != 0 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestWriteAndReadSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	want := stats.Build([]media.Record{
		rec("v1", "PL1", "Endgames", media.Segment{Text: "hello", DurationMS: 1000}),
	}, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	if err := stats.WriteSummary(path, want); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	got, err := stats.ReadSummary(path)
	if err != nil {
		t.Fatalf("ReadSummary: %v", err)
	}
	if got.Videos != want.Videos || got.Words != want.Words || len(got.Groups) != 1 {
		t.Fatalf("got = %+v, want = %+v", got, want)
	}
}
