package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"scriba/internal/ledger"
	"scriba/internal/logging"
	"scriba/internal/media"
	"scriba/internal/records"
	"scriba/internal/resolver"
)

// Options configures a batch run.
type Options struct {
	Concurrency   int
	SnapshotEvery int
	// Progress receives one line per completed item. Nil disables
	// progress output.
	Progress io.Writer
}

// Result summarizes a finished batch.
type Result struct {
	Processed int // items attempted this run
	Resolved  int // items that produced a transcript
	Failed    int // items whose source chain was exhausted
	Skipped   int // items already done before the run
}

// Runner resolves a batch of items and records the outcomes.
type Runner struct {
	resolver *resolver.Resolver
	ledger   *ledger.Ledger
	store    *records.Store
	opts     Options
	logger   *slog.Logger

	mu        sync.Mutex
	completed int
}

// New builds a runner. Concurrency and snapshot cadence fall back to
// serial execution and per-item snapshots when unset.
func New(res *resolver.Resolver, led *ledger.Ledger, store *records.Store, opts Options, logger *slog.Logger) *Runner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.SnapshotEvery <= 0 {
		opts.SnapshotEvery = 1
	}
	return &Runner{
		resolver: res,
		ledger:   led,
		store:    store,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "runner"),
	}
}

// Run resolves every pending item in the batch. Items already marked done
// are skipped, duplicates are collapsed to their first occurrence, and a
// final ledger snapshot is always written, even on early cancellation.
func (r *Runner) Run(ctx context.Context, items []media.Item) (Result, error) {
	runID := uuid.NewString()
	pending := r.pending(items)

	result := Result{Skipped: len(items) - len(pending)}
	r.logger.Info("batch started",
		logging.String(logging.FieldRunID, runID),
		logging.Int("pending", len(pending)),
		logging.Int("skipped", result.Skipped),
		logging.Int("concurrency", r.opts.Concurrency),
	)

	var (
		resultMu sync.Mutex
		group    errgroup.Group
	)
	group.SetLimit(r.opts.Concurrency)

	for _, item := range pending {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			resolved, cancelled := r.processItem(ctx, runID, item, len(pending))
			if cancelled {
				return nil
			}

			resultMu.Lock()
			result.Processed++
			if resolved {
				result.Resolved++
			} else {
				result.Failed++
			}
			resultMu.Unlock()
			return nil
		})
	}
	waitErr := group.Wait()

	if err := r.ledger.Snapshot(); err != nil {
		r.logger.Error("final ledger snapshot failed", logging.Error(err))
		if waitErr == nil {
			waitErr = err
		}
	}

	r.logger.Info("batch finished",
		logging.String(logging.FieldRunID, runID),
		logging.Int("resolved", result.Resolved),
		logging.Int("failed", result.Failed),
		logging.Int("skipped", result.Skipped),
	)
	return result, waitErr
}

// pending filters out done items and collapses duplicate ids, keeping the
// first occurrence so an item listed in two playlists is fetched once.
func (r *Runner) pending(items []media.Item) []media.Item {
	seen := make(map[string]struct{}, len(items))
	var pending []media.Item
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		if r.ledger.IsDone(item.ID) {
			continue
		}
		pending = append(pending, item)
	}
	return pending
}

// processItem resolves one item and records the outcome. Interrupted items
// are neither persisted nor counted; the next run retries them from scratch.
func (r *Runner) processItem(ctx context.Context, runID string, item media.Item, total int) (resolved, cancelled bool) {
	res := r.resolver.Resolve(ctx, item)
	if res.Cancelled {
		r.logger.Debug("item interrupted",
			logging.String(logging.FieldRunID, runID),
			logging.String(logging.FieldItemID, item.ID),
		)
		return false, true
	}
	switch {
	case !res.Found():
		r.ledger.MarkFailed(item.ID, res.Detail)
		r.logger.Warn("item failed",
			logging.String(logging.FieldRunID, runID),
			logging.String(logging.FieldItemID, item.ID),
			logging.String("reason", res.Detail),
		)
	default:
		rec := media.Record{
			Item:      item,
			Segments:  res.Segments,
			FetchedAt: time.Now().UTC(),
		}
		if err := r.store.Write(rec); err != nil {
			r.ledger.MarkFailed(item.ID, "record write: "+err.Error())
			r.logger.Error("record write failed",
				logging.String(logging.FieldItemID, item.ID),
				logging.Error(err),
			)
		} else {
			r.ledger.MarkDone(item.ID)
			resolved = true
			r.logger.Info("item resolved",
				logging.String(logging.FieldRunID, runID),
				logging.String(logging.FieldItemID, item.ID),
				logging.String(logging.FieldAdapter, res.Source),
				logging.Int("segments", len(res.Segments)),
			)
		}
	}

	r.advance(item, total, resolved, res.Source)
	return resolved, false
}

// advance bumps the completion counter, emits a progress line, and
// snapshots the ledger on cadence so an interrupted run loses at most
// one snapshot interval of progress.
func (r *Runner) advance(item media.Item, total int, resolved bool, source string) {
	r.mu.Lock()
	r.completed++
	count := r.completed
	snapshot := count%r.opts.SnapshotEvery == 0
	r.mu.Unlock()

	if r.opts.Progress != nil {
		status := "failed"
		if resolved {
			status = "via " + source
		}
		fmt.Fprintf(r.opts.Progress, "[%d/%d] %s %s\n", count, total, item.ID, status)
	}

	if snapshot {
		if err := r.ledger.Snapshot(); err != nil {
			r.logger.Error("ledger snapshot failed", logging.Error(err))
		}
	}
}
