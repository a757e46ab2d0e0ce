// Package runner drives a batch of items through the transcript resolver
// under a concurrency cap, persisting each result to the record store and
// the progress ledger. Periodic ledger snapshots make interrupted runs
// resumable: completed items are skipped on the next invocation.
package runner
