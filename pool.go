package story2pdf

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// Pool sizing bounds. Each pooled Service owns a headless Chrome instance,
// so the cap keeps memory use bounded on large machines.
const (
	MinPoolSize = 1
	MaxPoolSize = 8
	cpuDivisor  = 2
)

// ResolvePoolSize picks a pool size for the current machine: half the CPU
// count, clamped to [MinPoolSize, MaxPoolSize]. A positive requested value
// wins (still clamped).
func ResolvePoolSize(requested int) int {
	size := requested
	if size <= 0 {
		size = runtime.NumCPU() / cpuDivisor
	}
	if size < MinPoolSize {
		size = MinPoolSize
	}
	if size > MaxPoolSize {
		size = MaxPoolSize
	}
	return size
}

// ServicePool manages a fixed number of Services for parallel conversion.
// Services are created lazily: a browser is only launched when the pool
// hands out a slot that has no Service yet.
type ServicePool struct {
	size int
	opts []Option

	mu       sync.Mutex
	created  int
	closed   bool
	services []*Service // all created services, for Close()
	sem      chan *Service
}

// NewServicePool creates a pool of up to size Services, each configured
// with opts. Size is clamped via ResolvePoolSize.
func NewServicePool(size int, opts ...Option) *ServicePool {
	size = ResolvePoolSize(size)
	return &ServicePool{
		size: size,
		opts: opts,
		sem:  make(chan *Service, size),
	}
}

// Size returns the pool capacity.
func (p *ServicePool) Size() int {
	return p.size
}

// Acquire obtains a Service from the pool, blocking until one is available.
// Returns ErrPoolClosed after Close().
func (p *ServicePool) Acquire() (*Service, error) {
	// Lazily create a service if capacity remains
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		svc, err := NewService(p.opts...)
		if err != nil {
			// Roll back so a later Acquire can retry creation
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, fmt.Errorf("creating pooled service: %w", err)
		}

		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			_ = svc.Close()
			return nil, ErrPoolClosed
		}
		p.services = append(p.services, svc)
		p.mu.Unlock()
		return svc, nil
	}
	p.mu.Unlock()

	svc, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return svc, nil
}

// Release returns a Service to the pool. Releasing after Close() closes
// the service instead.
func (p *ServicePool) Release(svc *Service) {
	if svc == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		_ = svc.Close()
		return
	}

	select {
	case p.sem <- svc:
	default:
		// Pool is full (double release); close the extra service.
		_ = svc.Close()
	}
}

// Close shuts down every Service created by the pool.
// Subsequent Acquire calls return ErrPoolClosed.
func (p *ServicePool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	services := p.services
	p.services = nil
	close(p.sem)
	p.mu.Unlock()

	// Drain any services parked in the channel (already in services slice,
	// so just empty it).
	for range p.sem {
	}

	var errs []error
	for _, svc := range services {
		if err := svc.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
