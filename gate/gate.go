// Package gate tracks the lifecycle of one logical remote operation so
// consumers know when its result is trustworthy. A gate moves
// Idle → InFlight → Settled, where Settled records either a value or an
// error; the Loaded flag is sticky so a UI never regresses to a
// "never loaded" display once data has been seen.
//
// Concurrent invocations with the same request key join a single
// underlying call rather than duplicating it. Results are keyed to the
// inputs that produced them: a result arriving after the gate has moved
// to a different key is discarded, never applied.
package gate

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// State is a consistent snapshot of a gate. The Loaded/Err pair is
// applied atomically with the operation's result: there is no window
// where Loaded is true but the result is stale.
type State struct {
	InFlight bool
	Loaded   bool
	Err      error
}

// Ready reports whether the gate holds a trustworthy, settled value.
func (s State) Ready() bool {
	return s.Loaded && !s.InFlight && s.Err == nil
}

// Gate tracks one logical remote operation producing a T.
// The zero value is an idle gate ready for use.
type Gate[T any] struct {
	sf singleflight.Group

	mu     sync.Mutex
	key    string // key of the most recent Do, or "" after Reset
	hasKey bool
	active int
	loaded bool
	err    error
	value  T
}

// Do runs fn through the gate under the given request key.
//
// If a call with the same key is already in flight, fn is not invoked
// again; the caller joins the in-flight call and observes its result.
// When the call settles, the result is applied to the gate only if the
// gate's current key still matches: a Reset or a Do with a different
// key in the meantime marks the result stale, and Do returns
// ErrStaleResult instead of applying it.
func (g *Gate[T]) Do(ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	g.mu.Lock()
	g.key = key
	g.hasKey = true
	g.active++
	g.mu.Unlock()

	res, err, _ := g.sf.Do(key, func() (interface{}, error) {
		return fn(ctx)
	})

	g.mu.Lock()
	defer g.mu.Unlock()
	g.active--

	if !g.hasKey || g.key != key {
		var zero T
		return zero, ErrStaleResult
	}

	g.loaded = true
	g.err = err
	if err != nil {
		var zero T
		g.value = zero
		return zero, err
	}
	g.value = res.(T)
	return g.value, nil
}

// State returns a consistent snapshot of the gate.
func (g *Gate[T]) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{
		InFlight: g.active > 0,
		Loaded:   g.loaded,
		Err:      g.err,
	}
}

// Loaded reports whether the gate has ever settled. It stays true across
// re-entries until an explicit Reset.
func (g *Gate[T]) Loaded() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loaded
}

// Value returns the settled value and whether one is held. A gate that
// last settled with an error holds no value.
func (g *Gate[T]) Value() (T, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.loaded || g.err != nil {
		var zero T
		return zero, false
	}
	return g.value, true
}

// Reset returns the gate to Idle, dropping the held value, error, and
// key. Results of calls still in flight at reset time are discarded when
// they arrive. Use when the inputs change enough that stale data must
// not be shown, e.g. switching the buyer under inspection.
func (g *Gate[T]) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	var zero T
	g.key = ""
	g.hasKey = false
	g.loaded = false
	g.err = nil
	g.value = zero
}
