package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingSweeper struct {
	calls atomic.Int32
	after atomic.Int64
	err   error
}

func (c *countingSweeper) SweepFollowUps(_ context.Context, after time.Duration) (int, error) {
	c.calls.Add(1)
	c.after.Store(int64(after))
	return 0, c.err
}

func TestStartRunsImmediateSweep(t *testing.T) {
	sw := &countingSweeper{}
	s := New(sw, "@every 1h", 48*time.Hour, nil)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if sw.calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", sw.calls.Load())
	}
	if time.Duration(sw.after.Load()) != 48*time.Hour {
		t.Errorf("after = %v", time.Duration(sw.after.Load()))
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := New(&countingSweeper{}, "every tuesday-ish", 0, nil)
	if err := s.Start(); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

func TestSweepErrorIsLogged(t *testing.T) {
	sw := &countingSweeper{err: errors.New("db down")}
	s := New(sw, "", 0, nil)
	s.runSweep()
	if sw.calls.Load() != 1 || time.Duration(sw.after.Load()) != DefaultAfter {
		t.Errorf("calls = %d, after = %v", sw.calls.Load(), time.Duration(sw.after.Load()))
	}
}
