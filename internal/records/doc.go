// Package records persists one immutable JSON record per archived item.
// Records are only ever written whole-file; a re-fetch overwrites the
// previous record rather than appending to it.
package records
