package loader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMemoSharesOneLoad(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	m := New(func(ctx context.Context) (*int, error) {
		calls.Add(1)
		<-release
		v := 7
		return &v, nil
	})

	const callers = 16
	results := make([]*int, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := m.Get(context.Background())
			if err != nil {
				t.Errorf("caller %d: %v", i, err)
			}
			results[i] = v
		}(i)
	}

	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("expected 1 load, got %d", calls.Load())
	}
	for i := 1; i < callers; i++ {
		if results[i] != results[0] {
			t.Fatalf("caller %d got a different instance", i)
		}
	}
}

func TestMemoCachesError(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32
	m := New(func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 0, boom
	})

	for i := 0; i < 3; i++ {
		if _, err := m.Get(context.Background()); !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 load, got %d", calls.Load())
	}
}

func TestMemoPoll(t *testing.T) {
	release := make(chan struct{})
	m := New(func(ctx context.Context) (string, error) {
		<-release
		return "ready", nil
	})

	if _, ready, _ := m.Poll(); ready {
		t.Fatal("expected not ready before start")
	}
	m.Start()
	if _, ready, _ := m.Poll(); ready {
		t.Fatal("expected not ready while loading")
	}
	close(release)

	deadline := time.Now().Add(2 * time.Second)
	for {
		v, ready, err := m.Poll()
		if ready {
			if err != nil || v != "ready" {
				t.Fatalf("unexpected result %q, %v", v, err)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("load never completed")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestMemoGetHonoursContext(t *testing.T) {
	m := New(func(ctx context.Context) (int, error) {
		select {}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := m.Get(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
