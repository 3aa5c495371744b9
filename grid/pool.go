package grid

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// pool is a persistent set of workers shared by every grid the parallel backend computes.
type pool struct {
	workers int
	workC   chan func()
	// m guards closed and sends on workC, so close never races a submission.
	m      sync.RWMutex
	closed bool
}

func newPool(workers int) *pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &pool{
		workers: workers,
		workC:   make(chan func(), workers*2),
	}
	for range workers {
		go func() {
			for fn := range p.workC {
				fn()
			}
		}()
	}
	return p
}

// close stops the workers once pending work is drained. Safe to call twice.
func (p *pool) close() {
	p.m.Lock()
	defer p.m.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.workC)
}

// forEach runs fn for every index in [0, n). Workers steal indices atomically,
// which balances tiles that take very different times. Blocks until done.
func (p *pool) forEach(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := min(p.workers, n)
	if workers == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	steal := func() {
		for {
			i := int(next.Add(1)) - 1
			if i >= n {
				return
			}
			fn(i)
		}
	}

	p.m.RLock()
	if p.closed {
		p.m.RUnlock()
		steal()
		return
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- func() {
			defer wg.Done()
			steal()
		}
	}
	p.m.RUnlock()
	wg.Wait()
}
