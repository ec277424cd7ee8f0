// Package view implements the per-view fetch state machine shared by the
// search, browse and detail orchestrators.
//
// A Machine moves Idle -> Loading -> Success | Failure and back to Loading on
// every new trigger. Each trigger takes a token from a monotonically
// increasing sequence; a completion is applied only if its token is still the
// latest one, so a slow superseded call can never overwrite a newer result.
package view

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hadithview/internal/domain"
)

// Status is the machine state.
type Status string

// States.
const (
	Idle    Status = "idle"
	Loading Status = "loading"
	Success Status = "success"
	Failure Status = "failure"
)

// State is an immutable snapshot of a machine.
// Value is set only in Success; Err, Kind and Message only in Failure.
type State[T any] struct {
	Status  Status
	Value   T
	Err     error
	Kind    domain.FailureKind
	Message string
}

// NotFound reports a failure caused by a missing entity.
func (s State[T]) NotFound() bool {
	return s.Status == Failure && s.Kind == domain.KindNotFound
}

// Token identifies one triggered fetch.
type Token uint64

// Fetch runs a triggered call and reports whether its result was applied.
// It blocks on the network; callers run it off the render loop.
type Fetch func(ctx context.Context) bool

// Describer turns a failure into the one-line message shown to the user.
type Describer func(err error) string

// Machine is safe for concurrent use.
type Machine[T any] struct {
	name     string
	describe Describer
	logger   *zap.Logger

	mu    sync.Mutex
	seq   Token
	state State[T]
}

// NewMachine creates an Idle machine. logger may be nil.
func NewMachine[T any](name string, describe Describer, logger *zap.Logger) *Machine[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if describe == nil {
		describe = func(err error) string { return err.Error() }
	}
	return &Machine[T]{
		name:     name,
		describe: describe,
		logger:   logger,
		state:    State[T]{Status: Idle},
	}
}

// Begin moves to Loading and returns the token of the new authoritative fetch.
// Any fetch still in flight is superseded.
func (m *Machine[T]) Begin() Token {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	m.state = State[T]{Status: Loading}
	return m.seq
}

// Complete applies a result if tok is still current and reports whether it did.
// A failure replaces any previous value; nothing is merged.
func (m *Machine[T]) Complete(tok Token, v T, err error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tok != m.seq {
		m.logger.Debug("discarding stale response",
			zap.String("view", m.name),
			zap.Uint64("token", uint64(tok)),
			zap.Uint64("current", uint64(m.seq)),
			zap.Bool("failed", err != nil),
		)
		return false
	}

	if err != nil {
		m.state = State[T]{
			Status:  Failure,
			Err:     err,
			Kind:    domain.KindOf(err),
			Message: m.describe(err),
		}
		return true
	}
	m.state = State[T]{Status: Success, Value: v}
	return true
}

// Reset returns to Idle and supersedes any fetch in flight.
func (m *Machine[T]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	m.state = State[T]{Status: Idle}
}

// State returns the current snapshot.
func (m *Machine[T]) State() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Trigger begins a fetch now and returns the deferred call that completes it.
func (m *Machine[T]) Trigger(call func(ctx context.Context) (T, error)) Fetch {
	tok := m.Begin()
	return func(ctx context.Context) bool {
		v, err := call(ctx)
		return m.Complete(tok, v, err)
	}
}

// Run executes fetches one after another and reports whether all were applied.
// Nil entries are skipped.
func Run(ctx context.Context, fetches ...Fetch) bool {
	applied := true
	for _, f := range fetches {
		if f == nil {
			continue
		}
		if !f(ctx) {
			applied = false
		}
	}
	return applied
}

// RunConcurrently executes fetches in parallel and waits for all of them.
// Independent fetches of one view (browse metadata and list) use this.
func RunConcurrently(ctx context.Context, fetches ...Fetch) {
	var wg sync.WaitGroup
	for _, f := range fetches {
		if f == nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			f(ctx)
		}()
	}
	wg.Wait()
}
