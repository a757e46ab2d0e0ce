package ledger

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"scriba/internal/fileutil"
	"scriba/internal/logging"
)

// Failure records why an item could not be acquired and when it was last
// attempted. Re-attempts update the entry in place.
type Failure struct {
	Reason      string    `json:"reason"`
	LastAttempt time.Time `json:"lastAttempt"`
}

// fileState is the durable JSON shape.
type fileState struct {
	Done    []string           `json:"done"`
	Failed  map[string]Failure `json:"failed"`
	LastRun time.Time          `json:"lastRun"`
}

// Ledger is the in-memory resumability state for one batch run. Membership
// in the done set is the sole gate the runner uses to skip items. All
// mutating methods are safe for concurrent use.
type Ledger struct {
	mu     sync.Mutex
	path   string
	done   map[string]struct{}
	failed map[string]Failure
	now    func() time.Time
}

// Load reads the ledger file at path. A missing file yields a fresh empty
// ledger. A corrupt file also yields a fresh ledger (progress resets rather
// than the batch aborting), but the broken file is preserved alongside and
// a warning is logged so the reset is at least visible.
func Load(path string, logger *slog.Logger) *Ledger {
	log := logging.NewComponentLogger(logger, "ledger")
	led := &Ledger{
		path:   path,
		done:   make(map[string]struct{}),
		failed: make(map[string]Failure),
		now:    time.Now,
	}

	var state fileState
	err := fileutil.ReadJSON(path, &state)
	switch {
	case err == nil:
	case fileutil.IsNotExist(err):
		return led
	default:
		preserved := fmt.Sprintf("%s.corrupt-%d", path, time.Now().Unix())
		if renameErr := os.Rename(path, preserved); renameErr != nil {
			preserved = "(could not preserve)"
		}
		log.Warn("ledger unreadable, starting with empty progress",
			logging.Error(err),
			logging.String("preserved_as", preserved),
			logging.String(logging.FieldEventType, "ledger_reset"),
		)
		return led
	}

	for _, id := range state.Done {
		led.done[id] = struct{}{}
	}
	for id, failure := range state.Failed {
		led.failed[id] = failure
	}
	return led
}

// MarkDone records a successful acquisition. Any previous failure entry for
// the id is cleared so the enrichment pass does not retry an item that now
// has a record.
func (l *Ledger) MarkDone(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.done[id] = struct{}{}
	delete(l.failed, id)
}

// MarkFailed upserts a failure entry for id with the current timestamp.
func (l *Ledger) MarkFailed(id, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failed[id] = Failure{Reason: reason, LastAttempt: l.now().UTC()}
}

// IsDone reports whether id has already been archived.
func (l *Ledger) IsDone(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.done[id]
	return ok
}

// DoneCount returns the number of archived ids.
func (l *Ledger) DoneCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.done)
}

// FailedCount returns the number of ids whose last attempt failed.
func (l *Ledger) FailedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.failed)
}

// Failure returns the failure entry for id, if any.
func (l *Ledger) Failure(id string) (Failure, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	failure, ok := l.failed[id]
	return failure, ok
}

// FailedIDs returns failed ids in deterministic (sorted) order, so retry
// selection with a limit is stable across runs.
func (l *Ledger) FailedIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]string, 0, len(l.failed))
	for id := range l.failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot serializes the whole ledger to its file, stamping lastRun. The
// write is atomic so an interrupted snapshot never corrupts prior state.
func (l *Ledger) Snapshot() error {
	l.mu.Lock()
	state := fileState{
		Done:    make([]string, 0, len(l.done)),
		Failed:  make(map[string]Failure, len(l.failed)),
		LastRun: l.now().UTC(),
	}
	for id := range l.done {
		state.Done = append(state.Done, id)
	}
	for id, failure := range l.failed {
		state.Failed[id] = failure
	}
	l.mu.Unlock()

	sort.Strings(state.Done)
	if err := fileutil.WriteJSON(l.path, state); err != nil {
		return fmt.Errorf("snapshot ledger: %w", err)
	}
	return nil
}
