package sources

import (
	"context"

	"scriba/internal/media"
)

// State tags the result of one acquisition attempt.
type State int

const (
	// StateFound means the source produced a non-empty segment sequence.
	StateFound State = iota
	// StateNotFound means the source has nothing for this item; retrying
	// later will not help.
	StateNotFound
	// StateTransient means the attempt failed for reasons that may clear
	// up (network errors, rate limits, missing binaries being installed).
	StateTransient
)

func (s State) String() string {
	switch s {
	case StateFound:
		return "found"
	case StateNotFound:
		return "not_found"
	case StateTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one adapter attempt. The resolver treats
// any non-Found outcome as "try the next adapter"; the detail is kept so
// ledger failures carry the adapter-reported reason instead of a generic
// string.
type Outcome struct {
	State    State
	Segments []media.Segment
	Detail   string
}

// Found builds a successful outcome. An empty sequence downgrades to
// NotFound so callers never see a Found outcome with nothing in it.
func Found(segments []media.Segment) Outcome {
	if len(segments) == 0 {
		return NotFound("empty result")
	}
	return Outcome{State: StateFound, Segments: segments}
}

// NotFound builds a definitive no-result outcome.
func NotFound(detail string) Outcome {
	return Outcome{State: StateNotFound, Detail: detail}
}

// Transient builds an outcome for a failure that may clear up later.
func Transient(err error) Outcome {
	detail := "transient failure"
	if err != nil {
		detail = err.Error()
	}
	return Outcome{State: StateTransient, Detail: detail}
}

// IsFound reports whether the attempt produced segments.
func (o Outcome) IsFound() bool {
	return o.State == StateFound
}

// Adapter is one concrete strategy for obtaining a transcript. Attempt
// must never propagate source errors; everything is folded into the
// returned Outcome.
type Adapter interface {
	Name() string
	Attempt(ctx context.Context, item media.Item) Outcome
}
