package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"scriba/internal/config"
	"scriba/internal/media"
	"scriba/internal/records"
)

// WriteConfig serializes the config to TOML at the given path.
func WriteConfig(t testing.TB, path string, cfg *config.Config) {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// SeedRecord writes a minimal transcript record into the store.
func SeedRecord(t testing.TB, store *records.Store, id, groupID, groupLabel string, segments ...media.Segment) media.Record {
	t.Helper()

	if len(segments) == 0 {
		segments = []media.Segment{{Text: "seed segment", OffsetMS: 0, DurationMS: 1000}}
	}
	rec := media.Record{
		Item: media.Item{
			ID:         id,
			Title:      "Video " + id,
			SourceURL:  "https://www.youtube.com/watch?v=" + id,
			GroupID:    groupID,
			GroupLabel: groupLabel,
		},
		Segments:  segments,
		FetchedAt: time.Now().UTC(),
	}
	if err := store.Write(rec); err != nil {
		t.Fatalf("seed record %s: %v", id, err)
	}
	return rec
}
