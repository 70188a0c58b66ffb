// Package session drives a single classify-and-display cycle for one input.
package session

import "github.com/Veraticus/ecosort/internal/model"

// Status is the phase of a classification session.
type Status int

const (
	// StatusIdle means no input is staged.
	StatusIdle Status = iota
	// StatusReady means an input is staged and has no result yet.
	StatusReady
	// StatusPending means a request for the staged input is in flight.
	StatusPending
	// StatusSucceeded means the service returned a result.
	StatusSucceeded
	// StatusFailed means the last request failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusReady:
		return "ready"
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FallbackMessage is shown when a failure carries no server message.
const FallbackMessage = "An error occurred during classification"

// State is an immutable view of a session. Transition functions return a new
// State and never modify their argument.
type State struct {
	Input      *model.Input
	Result     *model.Result
	Message    string
	Status     Status
	Retryable  bool
	generation uint64
}

// HasInput reports whether an input is staged.
func (s State) HasInput() bool {
	return s.Input != nil
}

// CanClassify reports whether a classify request may be issued now.
func (s State) CanClassify() bool {
	return s.Status == StatusReady
}

// CanRetry reports whether the last failure can be retried with the staged input.
func (s State) CanRetry() bool {
	return s.Status == StatusFailed && s.Input != nil
}

// IsPending reports whether a request is in flight.
func (s State) IsPending() bool {
	return s.Status == StatusPending
}

// stage replaces the input and discards any result or error.
func stage(s State, in model.Input) State {
	return State{
		Status:     StatusReady,
		Input:      &in,
		generation: s.generation + 1,
	}
}

// reset drops the input and returns to Idle.
func reset(s State) State {
	return State{
		Status:     StatusIdle,
		generation: s.generation + 1,
	}
}

// begin moves to Pending if the current status is one of from. The returned
// generation identifies the request so a late response can be matched.
func begin(s State, from ...Status) (State, uint64, bool) {
	if s.Input == nil {
		return s, 0, false
	}
	for _, status := range from {
		if s.Status == status {
			next := State{
				Status:     StatusPending,
				Input:      s.Input,
				generation: s.generation + 1,
			}
			return next, next.generation, true
		}
	}
	return s, 0, false
}

// succeed commits a result if it answers the in-flight request.
func succeed(s State, generation uint64, result model.Result) (State, bool) {
	if s.Status != StatusPending || s.generation != generation {
		return s, false
	}
	r := result.Clone()
	return State{
		Status:     StatusSucceeded,
		Input:      s.Input,
		Result:     &r,
		generation: s.generation,
	}, true
}

// fail commits a failure if it answers the in-flight request.
func fail(s State, generation uint64, message string, retryable bool) (State, bool) {
	if s.Status != StatusPending || s.generation != generation {
		return s, false
	}
	if message == "" {
		message = FallbackMessage
	}
	return State{
		Status:     StatusFailed,
		Input:      s.Input,
		Message:    message,
		Retryable:  retryable,
		generation: s.generation,
	}, true
}
