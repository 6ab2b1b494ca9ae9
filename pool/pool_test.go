// ABOUTME: Tests for the bounded worker pool
// ABOUTME: Checks ordering of results, the concurrency bound and cancellation

package pool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestEachKeepsItemOrder(t *testing.T) {
	items := []int{5, 1, 4, 2, 3}

	got := Each(context.Background(), 3, items, func(_ context.Context, n int) int {
		time.Sleep(time.Duration(n) * time.Millisecond)

		return n * 10
	})

	want := []int{50, 10, 40, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestEachRespectsSize(t *testing.T) {
	var active, peak atomic.Int32

	items := make([]int, 12)

	Each(context.Background(), 2, items, func(context.Context, int) struct{} {
		n := active.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}

		time.Sleep(2 * time.Millisecond)
		active.Add(-1)

		return struct{}{}
	})

	if peak.Load() > 2 {
		t.Errorf("Expected at most 2 concurrent calls, got %d", peak.Load())
	}
}

func TestEachEmpty(t *testing.T) {
	got := Each(context.Background(), 4, nil, func(context.Context, string) int { return 1 })
	if len(got) != 0 {
		t.Errorf("Expected no results, got %v", got)
	}
}

func TestSubmitAfterCancel(t *testing.T) {
	p := New(1)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	if err := p.Submit(ctx, func() { ran = true }); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	p.Wait()

	if ran {
		t.Error("Task should not run after cancel")
	}
}

func TestNewDefaultsToCPUCount(t *testing.T) {
	p := New(0)
	defer p.Close()

	if p.Size() < 1 {
		t.Errorf("Expected at least one worker, got %d", p.Size())
	}

	p.Close() // idempotent
}
