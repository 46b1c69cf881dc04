// Package workerpool runs indexed jobs on a shared ants goroutine pool.
package workerpool

import (
	"context"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
)

type Pool struct {
	ants *ants.Pool
}

func New(size int) (*Pool, error) {
	if size <= 0 {
		size = 1
	}
	p, err := ants.NewPool(size)
	if err != nil {
		return nil, crerr.Wrap(err, "create worker pool")
	}
	return &Pool{ants: p}, nil
}

func (p *Pool) Cap() int {
	if p == nil || p.ants == nil {
		return 0
	}
	return p.ants.Cap()
}

func (p *Pool) Release() {
	if p == nil || p.ants == nil {
		return
	}
	p.ants.Release()
}

// Run calls fn for every index in [0, n) and waits for all of them. Jobs not
// yet started when ctx is cancelled are skipped; fn sees the same ctx. A nil
// pool runs the jobs inline.
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	if p == nil || p.ants == nil {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(ctx, i)
		}
		return nil
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		if err := p.ants.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			fn(ctx, i)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return crerr.Wrap(err, "submit job to worker pool")
		}
	}
	wg.Wait()
	return ctx.Err()
}
