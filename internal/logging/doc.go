// Package logging wraps log/slog with the console and JSON handlers used by
// every scriba command, plus attribute helpers shared across components.
package logging
