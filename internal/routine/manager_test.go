package routine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestManagerCollectsErrors(t *testing.T) {
	mgr := NewManager(2, zerolog.Nop())
	errOne := errors.New("one")
	errTwo := errors.New("two")

	mgr.Go(context.Background(), "first", func(ctx context.Context) error {
		return errOne
	})
	mgr.Go(context.Background(), "second", func(ctx context.Context) error {
		return errTwo
	})

	joined := mgr.Wait()
	if !errors.Is(joined, errOne) || !errors.Is(joined, errTwo) {
		t.Fatalf("expected both errors, got %v", joined)
	}

	if err := mgr.Wait(); err != nil {
		t.Fatalf("expected errors to be drained, got %v", err)
	}
}

func TestManagerRecoversPanics(t *testing.T) {
	mgr := NewManager(1, zerolog.Nop())
	mgr.Go(context.Background(), "explode", func(ctx context.Context) error {
		panic("boom")
	})

	if err := mgr.Wait(); !errors.Is(err, ErrPanic) {
		t.Fatalf("expected ErrPanic, got %v", err)
	}
}

func TestManagerSkipsCanceledContext(t *testing.T) {
	mgr := NewManager(1, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	mgr.Go(ctx, "late", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	if err := mgr.Wait(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if ran.Load() {
		t.Fatalf("task should not run on a canceled context")
	}
}

func TestManagerLimit(t *testing.T) {
	mgr := NewManager(2, zerolog.Nop())

	var running, peak atomic.Int32
	for i := 0; i < 6; i++ {
		mgr.Go(context.Background(), "work", func(ctx context.Context) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return nil
		})
	}

	if err := mgr.Wait(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if peak.Load() > 2 {
		t.Fatalf("expected at most 2 concurrent tasks, saw %d", peak.Load())
	}
}
