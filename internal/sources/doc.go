// Package sources defines the contract every transcript source satisfies
// and the tagged outcome the fallback resolver matches on. A source never
// writes records and never partially succeeds: it returns a fully-formed
// segment sequence or an explicit no-result.
package sources
