package main

import (
	story2pdf "github.com/alnah/go-story2pdf"
)

// servicePool adapts story2pdf.ServicePool to the CLI's Pool interface.
type servicePool struct {
	pool *story2pdf.ServicePool
}

// Compile-time check that servicePool implements Pool.
var _ Pool = (*servicePool)(nil)

func newServicePool(size int, opts ...story2pdf.Option) *servicePool {
	return &servicePool{pool: story2pdf.NewServicePool(size, opts...)}
}

func (p *servicePool) Acquire() (Converter, error) {
	svc, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (p *servicePool) Release(c Converter) {
	if svc, ok := c.(*story2pdf.Service); ok {
		p.pool.Release(svc)
	}
}

func (p *servicePool) Size() int {
	return p.pool.Size()
}

func (p *servicePool) Close() error {
	return p.pool.Close()
}
