package story2pdf

import (
	"errors"
	"sync"
	"testing"
)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{name: "explicit within bounds", requested: 3, want: 3},
		{name: "explicit above cap", requested: 100, want: MaxPoolSize},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.requested); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.requested, got, tt.want)
			}
		})
	}

	t.Run("auto stays within bounds", func(t *testing.T) {
		t.Parallel()

		got := ResolvePoolSize(0)
		if got < MinPoolSize || got > MaxPoolSize {
			t.Errorf("ResolvePoolSize(0) = %d, want within [%d, %d]", got, MinPoolSize, MaxPoolSize)
		}
	})
}

func TestServicePool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := NewServicePool(2)
	defer func() { _ = pool.Close() }()

	if pool.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", pool.Size())
	}

	svc1, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	svc2, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if svc1 == svc2 {
		t.Error("distinct acquisitions should yield distinct services")
	}

	pool.Release(svc1)
	svc3, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() after Release error = %v", err)
	}
	if svc3 != svc1 {
		t.Error("released service should be reused")
	}
	pool.Release(svc2)
	pool.Release(svc3)
}

func TestServicePool_Close(t *testing.T) {
	t.Parallel()

	pool := NewServicePool(1)

	svc, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	pool.Release(svc)

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := pool.Acquire(); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close = %v, want ErrPoolClosed", err)
	}

	// Second Close is a no-op
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestServicePool_ConcurrentUse(t *testing.T) {
	t.Parallel()

	pool := NewServicePool(4)
	defer func() { _ = pool.Close() }()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			svc, err := pool.Acquire()
			if err != nil {
				t.Errorf("Acquire() error = %v", err)
				return
			}
			pool.Release(svc)
		}()
	}
	wg.Wait()
}

func TestServicePool_ReleaseNil(t *testing.T) {
	t.Parallel()

	pool := NewServicePool(1)
	defer func() { _ = pool.Close() }()

	// Must not panic
	pool.Release(nil)
}
