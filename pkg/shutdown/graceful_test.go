package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStopRunsAllComponentsInOrder(t *testing.T) {
	var order []int
	boom := errors.New("boom")

	err := Stop(time.Second,
		Func(func(context.Context) error { order = append(order, 1); return nil }),
		nil,
		Func(func(context.Context) error { order = append(order, 2); return boom }),
		Func(func(context.Context) error { order = append(order, 3); return nil }),
	)

	if !errors.Is(err, boom) {
		t.Fatalf("Stop error = %v, want %v", err, boom)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("order = %v, want [1 2 3]", order)
	}
}

func TestStopPassesDeadline(t *testing.T) {
	err := Stop(50*time.Millisecond, Func(func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			return errors.New("no deadline")
		}
		return nil
	}))
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
