// Package main hosts the scriba CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the archive lifecycle: fetch acquires
// transcripts for new playlist videos, transcribe runs the paid
// speech-to-text fallback over the failed set, dates enriches records with
// publish dates, and stats, search, and site expose the archive. It
// centralizes configuration resolution, run locking, and structured logging
// setup so subcommands can focus on user experience instead of wiring.
package main
