// Package resolver runs the transcript source chain: adapters are tried in
// fixed priority order and the first one to produce segments wins. The
// chain never short-circuits on errors; each adapter folds its failures
// into an outcome and the next adapter gets its turn.
package resolver
