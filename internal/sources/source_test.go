package sources_test

import (
	"errors"
	"strings"
	"testing"

	"scriba/internal/media"
	"scriba/internal/sources"
)

func TestFoundDowngradesEmptySequence(t *testing.T) {
	outcome := sources.Found(nil)
	if outcome.IsFound() {
		t.Fatal("empty sequence must not be reported as found")
	}
	if outcome.State != sources.StateNotFound {
		t.Fatalf("expected not_found, got %s", outcome.State)
	}
}

func TestFoundKeepsSegments(t *testing.T) {
	segs := []media.Segment{{Text: "hi", OffsetMS: 0, DurationMS: 500}}
	outcome := sources.Found(segs)
	if !outcome.IsFound() || len(outcome.Segments) != 1 {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestTransientCarriesDetail(t *testing.T) {
	outcome := sources.Transient(errors.New("connection reset"))
	if outcome.State != sources.StateTransient {
		t.Fatalf("expected transient, got %s", outcome.State)
	}
	if outcome.Detail != "connection reset" {
		t.Fatalf("unexpected detail %q", outcome.Detail)
	}
}

func TestWrapIncludesContextAndMarker(t *testing.T) {
	base := errors.New("exit status 1")
	err := sources.Wrap(sources.ErrExternalTool, "subfile", "download subtitles", base)
	if !errors.Is(err, sources.ErrExternalTool) {
		t.Fatalf("marker lost: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("base error lost: %v", err)
	}
	for _, fragment := range []string{"subfile", "download subtitles"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %q", fragment, err.Error())
		}
	}
}
