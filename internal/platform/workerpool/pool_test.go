package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestPool_RunVisitsEveryIndex(t *testing.T) {
	t.Parallel()

	pool, err := New(4)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer pool.Release()

	out := make([]int, 50)
	if err := pool.Run(context.Background(), len(out), func(_ context.Context, i int) {
		out[i] = i * i
	}); err != nil {
		t.Fatalf("run: %v", err)
	}
	for i, v := range out {
		if v != i*i {
			t.Fatalf("index %d: got %d", i, v)
		}
	}
}

func TestPool_RunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	var nilPool *Pool
	err := nilPool.Run(ctx, 3, func(context.Context, int) { calls.Add(1) })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no calls, got %d", calls.Load())
	}
}
