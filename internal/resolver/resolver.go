package resolver

import (
	"context"
	"log/slog"
	"strings"

	"scriba/internal/logging"
	"scriba/internal/media"
	"scriba/internal/sources"
)

// Resolution is the end result of walking the source chain for one item.
type Resolution struct {
	Segments []media.Segment
	Source   string // adapter that produced the transcript
	Detail   string // per-adapter failure summary when nothing was found
	// Cancelled marks a chain cut short by context cancellation. The item
	// was not exhausted and must not be recorded as failed.
	Cancelled bool
}

// Found reports whether the chain produced a transcript.
func (r Resolution) Found() bool {
	return len(r.Segments) > 0
}

// Resolver walks a fixed-order adapter chain.
type Resolver struct {
	adapters []sources.Adapter
	logger   *slog.Logger
}

// New builds a resolver over the given chain. Order is priority order.
func New(logger *slog.Logger, adapters ...sources.Adapter) *Resolver {
	return &Resolver{
		adapters: adapters,
		logger:   logging.NewComponentLogger(logger, "resolver"),
	}
}

// Resolve tries each adapter in order and stops at the first Found
// outcome. When the chain is exhausted, the resolution carries a joined
// summary of each adapter's failure detail. A chain stopped by context
// cancellation is reported as Cancelled, not exhausted: the untried
// adapters might still have produced a transcript.
func (r *Resolver) Resolve(ctx context.Context, item media.Item) Resolution {
	var details []string
	for _, adapter := range r.adapters {
		if ctx.Err() != nil {
			return Resolution{Cancelled: true}
		}
		outcome := adapter.Attempt(ctx, item)
		switch outcome.State {
		case sources.StateFound:
			r.logger.Debug("transcript resolved",
				logging.String(logging.FieldItemID, item.ID),
				logging.String(logging.FieldAdapter, adapter.Name()),
				logging.Int("segments", len(outcome.Segments)),
			)
			return Resolution{Segments: outcome.Segments, Source: adapter.Name()}
		case sources.StateNotFound, sources.StateTransient:
			detail := outcome.Detail
			if detail == "" {
				detail = outcome.State.String()
			}
			details = append(details, adapter.Name()+": "+detail)
		}
	}
	// The last adapter may have failed only because the context was
	// cancelled mid-attempt; that is an interruption too.
	if ctx.Err() != nil {
		return Resolution{Cancelled: true}
	}
	return Resolution{Detail: strings.Join(details, "; ")}
}
