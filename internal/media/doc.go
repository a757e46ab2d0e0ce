// Package media defines the domain types shared across the archive:
// playlist items, timed transcript segments, and the persisted record
// produced for each item.
package media
