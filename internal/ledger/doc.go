// Package ledger persists batch progress: the set of item ids already
// archived, the ids whose acquisition failed (with reason and timestamp),
// and the last run time. The ledger is loaded once per run, mutated in
// memory, and flushed as a whole JSON file.
package ledger
