package playlist_test

import (
	"context"
	"errors"
	"testing"

	"scriba/internal/config"
	"scriba/internal/logging"
	"scriba/internal/playlist"
	"scriba/internal/ytdlp"
)

type fakeExecutor struct {
	outputs map[string][]byte
	err     error
}

func (f *fakeExecutor) Run(_ context.Context, _ string, args []string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	url := args[len(args)-1]
	out, ok := f.outputs[url]
	if !ok {
		return nil, errors.New("unknown playlist")
	}
	return out, nil
}

func newLister(t *testing.T, exec ytdlp.Executor) *playlist.Lister {
	t.Helper()
	client, err := ytdlp.New("sh", ytdlp.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return playlist.NewLister(client, logging.NewNop())
}

const listingJSON = `{
	"title": "Remote Title",
	"entries": [
		{"id": "v1", "title": "First", "url": "https://example.com/v1", "duration": 120},
		{"id": "v2", "title": "Second", "duration": 60},
		{"id": "", "title": "placeholder"}
	]
}`

func TestListMapsEntries(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string][]byte{
		ytdlp.PlaylistURL("PL1"): []byte(listingJSON),
	}}
	lister := newLister(t, exec)

	items, err := lister.List(context.Background(), config.Playlist{ID: "PL1", Label: "Endgames"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (blank id dropped)", len(items))
	}
	first := items[0]
	if first.ID != "v1" || first.Title != "First" || first.SourceURL != "https://example.com/v1" {
		t.Fatalf("first item = %+v", first)
	}
	if first.GroupID != "PL1" || first.GroupLabel != "Endgames" {
		t.Fatalf("grouping = %q/%q", first.GroupID, first.GroupLabel)
	}
	if items[1].SourceURL == "" {
		t.Fatal("missing entry URL not defaulted to watch URL")
	}
}

func TestListFallsBackToRemoteTitle(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string][]byte{
		ytdlp.PlaylistURL("PL1"): []byte(listingJSON),
	}}
	lister := newLister(t, exec)

	items, err := lister.List(context.Background(), config.Playlist{ID: "PL1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if items[0].GroupLabel != "Remote Title" {
		t.Fatalf("label = %q", items[0].GroupLabel)
	}
}

func TestListRejectsMalformedListing(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string][]byte{
		ytdlp.PlaylistURL("PL1"): []byte("not json"),
	}}
	lister := newLister(t, exec)

	if _, err := lister.List(context.Background(), config.Playlist{ID: "PL1"}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestListAllSkipsFailingPlaylist(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string][]byte{
		ytdlp.PlaylistURL("GOOD"): []byte(listingJSON),
	}}
	lister := newLister(t, exec)

	items := lister.ListAll(context.Background(), []config.Playlist{
		{ID: "BROKEN"},
		{ID: "GOOD", Label: "Good"},
	})
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 from the good playlist", len(items))
	}
}
