// Package captions implements the direct-caption source: a thin HTTP
// client for the timedtext API that maps its json3 payload onto transcript
// segments. It is the first and cheapest link in the fallback chain.
package captions
