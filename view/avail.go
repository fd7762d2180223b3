package view

import "github.com/capsulex/libcapsule-go/gate"

// Kind is the readiness of one gated action.
type Kind int

const (
	// KindLoading means some required upstream datum has not settled.
	KindLoading Kind = iota

	// KindNotAvailable means all data is in but the action is not legal
	// for this viewer right now.
	KindNotAvailable

	// KindAvailable means the action may be offered; Payload carries
	// everything the action needs to execute.
	KindAvailable
)

// Availability is the uniform three-state result for a gated action.
//
// Composition is monotone: if any required upstream datum is still
// loading, the composite is Loading; it may never skip ahead to
// Available on partial data.
type Availability[T any] struct {
	Kind    Kind
	Reason  string // NotAvailable only
	Payload T      // Available only
}

// Loading returns a Loading availability.
func Loading[T any]() Availability[T] {
	return Availability[T]{Kind: KindLoading}
}

// NotAvailable returns a NotAvailable availability with a reason for
// diagnostics. The reason is not user-facing copy.
func NotAvailable[T any](reason string) Availability[T] {
	return Availability[T]{Kind: KindNotAvailable, Reason: reason}
}

// Available returns an Available availability carrying the payload.
func Available[T any](payload T) Availability[T] {
	return Availability[T]{Kind: KindAvailable, Payload: payload}
}

// IsAvailable reports whether the action may be offered.
func (a Availability[T]) IsAvailable() bool { return a.Kind == KindAvailable }

// IsLoading reports whether a dependency is still settling.
func (a Availability[T]) IsLoading() bool { return a.Kind == KindLoading }

// anyPending reports whether any of the gates is still untrustworthy:
// in flight, or never settled.
func anyPending(states ...gate.State) bool {
	for _, s := range states {
		if s.InFlight || !s.Loaded {
			return true
		}
	}
	return false
}

// anyFailed reports whether any of the gates last settled with an error.
func anyFailed(states ...gate.State) bool {
	for _, s := range states {
		if s.Loaded && s.Err != nil {
			return true
		}
	}
	return false
}
