// Package routine runs background work with a concurrency limit. Returned
// errors are collected for Wait and panics are logged instead of crashing
// the process.
package routine

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 4

// ErrPanic wraps a recovered panic value.
var ErrPanic = errors.New("panic in background task")

type Manager struct {
	mu    sync.Mutex
	errs  []error
	group *errgroup.Group
	log   zerolog.Logger
}

func NewManager(maxGoroutine int, log zerolog.Logger) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}

	g := &errgroup.Group{}
	g.SetLimit(maxGoroutine)

	return &Manager{group: g, log: log}
}

// Go schedules f, blocking while the manager is at its limit. f is skipped
// if ctx is done before it starts.
func (m *Manager) Go(ctx context.Context, name string, f func(ctx context.Context) error) {
	m.group.Go(func() (err error) {
		defer func() {
			if rvr := recover(); rvr != nil {
				m.log.Error().
					Str("task", name).
					Interface("panic", rvr).
					Str("stack", string(debug.Stack())).
					Msg("panic occurred in background task")
				m.record(fmt.Errorf("%s: %w: %v", name, ErrPanic, rvr))
			}
		}()

		if ctxErr := ctx.Err(); ctxErr != nil {
			m.log.Warn().Str("task", name).Err(ctxErr).Msg("background task canceled before start")
			return nil
		}

		if err := f(ctx); err != nil {
			m.record(fmt.Errorf("%s: %w", name, err))
		}
		return nil
	})
}

// Wait blocks until all scheduled tasks finish and returns the errors
// collected since the previous Wait.
func (m *Manager) Wait() error {
	_ = m.group.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	err := errors.Join(m.errs...)
	m.errs = nil
	return err
}

func (m *Manager) record(err error) {
	m.mu.Lock()
	m.errs = append(m.errs, err)
	m.mu.Unlock()
}
