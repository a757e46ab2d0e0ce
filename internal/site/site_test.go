package site_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"scriba/internal/logging"
	"scriba/internal/media"
	"scriba/internal/site"
)

func testRecords() []media.Record {
	return []media.Record{
		{
			Item: media.Item{
				ID:         "v1",
				Title:      "Rook Endgames",
				SourceURL:  "https://www.youtube.com/watch?v=v1",
				GroupID:    "PL1",
				GroupLabel: "Endgames",
			},
			Segments: []media.Segment{
				{Text: "the rook belongs behind the pawn", OffsetMS: 61000, DurationMS: 3000},
			},
			FetchedAt:   time.Now().UTC(),
			PublishedAt: "2024-01-15",
		},
		{
			Item: media.Item{
				ID:         "v2",
				Title:      "Opening Traps",
				SourceURL:  "https://www.youtube.com/watch?v=v2",
				GroupID:    "PL2",
				GroupLabel: "Openings",
			},
			Segments: []media.Segment{
				{Text: "never bring your queen out early", OffsetMS: 0, DurationMS: 2000},
			},
			FetchedAt: time.Now().UTC(),
		},
	}
}

func TestGenerateWritesIndexAndVideoPages(t *testing.T) {
	dir := t.TempDir()
	gen, err := site.NewGenerator(dir, "Chess Lectures", logging.NewNop())
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	if err := gen.Generate(testRecords()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	html := string(index)
	for _, want := range []string{"Chess Lectures", "Endgames", "Openings", `v/v1.html`, "Rook Endgames", "2024-01-15"} {
		if !strings.Contains(html, want) {
			t.Fatalf("index missing %q:\n%s", want, html)
		}
	}
	// Collated group order: Endgames before Openings.
	if strings.Index(html, "Endgames") > strings.Index(html, "Openings") {
		t.Fatal("groups out of collated order")
	}

	page, err := os.ReadFile(filepath.Join(dir, "v", "v1.html"))
	if err != nil {
		t.Fatalf("read video page: %v", err)
	}
	videoHTML := string(page)
	for _, want := range []string{"the rook belongs behind the pawn", "1:01", "t=61s"} {
		if !strings.Contains(videoHTML, want) {
			t.Fatalf("video page missing %q:\n%s", want, videoHTML)
		}
	}
}

func TestGenerateOverwritesExistingPages(t *testing.T) {
	dir := t.TempDir()
	gen, err := site.NewGenerator(dir, "", logging.NewNop())
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	recs := testRecords()
	if err := gen.Generate(recs); err != nil {
		t.Fatalf("first Generate: %v", err)
	}

	recs[0].Item.Title = "Rook Endgames, Revised"
	if err := gen.Generate(recs); err != nil {
		t.Fatalf("second Generate: %v", err)
	}

	page, err := os.ReadFile(filepath.Join(dir, "v", "v1.html"))
	if err != nil {
		t.Fatalf("read video page: %v", err)
	}
	if !strings.Contains(string(page), "Rook Endgames, Revised") {
		t.Fatal("page not regenerated")
	}
}

func TestNewGeneratorRequiresDirectory(t *testing.T) {
	if _, err := site.NewGenerator("  ", "Title", logging.NewNop()); err == nil {
		t.Fatal("expected error for blank directory")
	}
}
