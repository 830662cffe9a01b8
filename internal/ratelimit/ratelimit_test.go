package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestWait_UnderLimitImmediate(t *testing.T) {
	l := New(2, time.Second)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 2; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("two admissions took %v, want immediate", elapsed)
	}
}

func TestWait_BlocksUntilWindowSlides(t *testing.T) {
	const interval = 300 * time.Millisecond
	l := New(2, interval)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 2; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}

	// The third admission has to wait for the first to leave the window.
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < interval-50*time.Millisecond {
		t.Errorf("third admission after %v, want at least about %v", elapsed, interval)
	}
}

func TestWait_FIFO(t *testing.T) {
	l := New(1, 100*time.Millisecond)
	ctx := context.Background()

	if err := l.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := l.Wait(ctx); err != nil {
				t.Errorf("Wait() error = %v", err)
				return
			}
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
		}(i)
		// Stagger arrivals so queue order is deterministic.
		time.Sleep(20 * time.Millisecond)
	}
	wg.Wait()

	for i, n := range order {
		if n != i {
			t.Fatalf("release order = %v, want FIFO [0 1 2]", order)
		}
	}
}

func TestWait_ContextCancel(t *testing.T) {
	l := New(1, time.Hour)
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := l.Wait(ctx)
	if err == nil {
		t.Fatal("Wait() = nil, want context error")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("cancelled Wait() returned after %v, want promptly", elapsed)
	}
}

func TestNew_ClampsLimit(t *testing.T) {
	l := New(0, time.Hour)
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); err == nil {
		t.Error("second Wait() admitted, want a limit of one")
	}
}
