package resolver_test

import (
	"context"
	"strings"
	"testing"

	"scriba/internal/logging"
	"scriba/internal/media"
	"scriba/internal/resolver"
	"scriba/internal/sources"
)

type stubAdapter struct {
	name    string
	outcome sources.Outcome
	calls   int
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Attempt(_ context.Context, _ media.Item) sources.Outcome {
	s.calls++
	return s.outcome
}

func segs(text string) []media.Segment {
	return []media.Segment{{Text: text, OffsetMS: 0, DurationMS: 1000}}
}

func TestResolveFirstFoundWins(t *testing.T) {
	first := &stubAdapter{name: "captions", outcome: sources.Found(segs("from captions"))}
	second := &stubAdapter{name: "subfile", outcome: sources.Found(segs("from subfile"))}
	r := resolver.New(logging.NewNop(), first, second)

	res := r.Resolve(context.Background(), media.Item{ID: "a"})
	if !res.Found() {
		t.Fatal("expected a resolution")
	}
	if res.Source != "captions" {
		t.Fatalf("source = %q, want captions", res.Source)
	}
	if second.calls != 0 {
		t.Fatalf("later adapter called %d times after a win", second.calls)
	}
}

func TestResolveContinuesPastNotFoundAndTransient(t *testing.T) {
	first := &stubAdapter{name: "captions", outcome: sources.NotFound("no track")}
	second := &stubAdapter{name: "subfile", outcome: sources.Transient(context.DeadlineExceeded)}
	third := &stubAdapter{name: "speech", outcome: sources.Found(segs("spoken"))}
	r := resolver.New(logging.NewNop(), first, second, third)

	res := r.Resolve(context.Background(), media.Item{ID: "a"})
	if res.Source != "speech" {
		t.Fatalf("source = %q, want speech", res.Source)
	}
	if first.calls != 1 || second.calls != 1 || third.calls != 1 {
		t.Fatalf("call counts = %d/%d/%d", first.calls, second.calls, third.calls)
	}
}

func TestResolveExhaustionJoinsDetails(t *testing.T) {
	first := &stubAdapter{name: "captions", outcome: sources.NotFound("no track")}
	second := &stubAdapter{name: "subfile", outcome: sources.NotFound("no subtitle file")}
	r := resolver.New(logging.NewNop(), first, second)

	res := r.Resolve(context.Background(), media.Item{ID: "a"})
	if res.Found() {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	if !strings.Contains(res.Detail, "captions: no track") || !strings.Contains(res.Detail, "subfile: no subtitle file") {
		t.Fatalf("detail = %q", res.Detail)
	}
}

func TestResolveStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	first := &stubAdapter{name: "captions", outcome: sources.Found(segs("x"))}
	r := resolver.New(logging.NewNop(), first)

	res := r.Resolve(ctx, media.Item{ID: "a"})
	if res.Found() {
		t.Fatal("expected no resolution after cancellation")
	}
	if !res.Cancelled {
		t.Fatal("resolution not marked cancelled")
	}
	if first.calls != 0 {
		t.Fatalf("adapter called %d times after cancellation", first.calls)
	}
}

// cancellingAdapter cancels the run while its attempt is in flight, the
// shape of an interrupt arriving mid-item.
type cancellingAdapter struct {
	cancel  context.CancelFunc
	outcome sources.Outcome
}

func (c *cancellingAdapter) Name() string { return "cancelling" }

func (c *cancellingAdapter) Attempt(_ context.Context, _ media.Item) sources.Outcome {
	c.cancel()
	return c.outcome
}

func TestResolveCancellationMidChainIsNotExhaustion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := &cancellingAdapter{cancel: cancel, outcome: sources.NotFound("no track")}
	second := &stubAdapter{name: "subfile", outcome: sources.Found(segs("never reached"))}
	r := resolver.New(logging.NewNop(), first, second)

	res := r.Resolve(ctx, media.Item{ID: "a"})
	if res.Found() {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	if !res.Cancelled {
		t.Fatal("cut-short chain reported as exhaustion")
	}
	if res.Detail != "" {
		t.Fatalf("cancelled resolution carries failure detail %q", res.Detail)
	}
	if second.calls != 0 {
		t.Fatalf("later adapter called %d times after cancellation", second.calls)
	}
}

func TestResolveCancellationDuringLastAdapter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	only := &cancellingAdapter{cancel: cancel, outcome: sources.Transient(context.Canceled)}
	r := resolver.New(logging.NewNop(), only)

	res := r.Resolve(ctx, media.Item{ID: "a"})
	if !res.Cancelled {
		t.Fatal("mid-attempt cancellation reported as exhaustion")
	}
}
