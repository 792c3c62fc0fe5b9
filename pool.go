package fbx

import "sync"

// PoolInterface is the optional worker-pool contract (spec §5): the core
// never assumes tasks actually run in parallel, only that wait(group, n)
// does not return until every task [0, n) of that group has completed.
// Load does not submit tasks to Config.Pool; every load step runs on the
// calling goroutine whether or not a pool is set.
type PoolInterface interface {
	// Run schedules count tasks in group, each invoking fn(start+i) for
	// i in [0, count).
	Run(group int, start, count int, fn func(index int))
	// Wait blocks until every task [0, maxIndex) submitted to group has
	// completed.
	Wait(group int, maxIndex int)
}

// InlinePool is the single-threaded PoolInterface: Run executes every task
// synchronously before returning, so Wait is always a no-op.
type InlinePool struct{}

func (InlinePool) Run(group int, start, count int, fn func(index int)) {
	for i := 0; i < count; i++ {
		fn(start + i)
	}
}

func (InlinePool) Wait(group int, maxIndex int) {}

// GoroutinePool is a small real concurrent PoolInterface implementation
// built on goroutines and a WaitGroup per group, demonstrating that the
// deferred-execution side of the contract holds: Wait still blocks until
// every submitted task in range has completed, whether or not it has
// actually started running yet.
type GoroutinePool struct {
	mu     sync.Mutex
	groups map[int]*sync.WaitGroup
}

// NewGoroutinePool returns a ready-to-use concurrent pool.
func NewGoroutinePool() *GoroutinePool {
	return &GoroutinePool{groups: make(map[int]*sync.WaitGroup)}
}

func (p *GoroutinePool) wgFor(group int) *sync.WaitGroup {
	p.mu.Lock()
	defer p.mu.Unlock()
	wg, ok := p.groups[group]
	if !ok {
		wg = &sync.WaitGroup{}
		p.groups[group] = wg
	}
	return wg
}

// Run launches count goroutines, each calling fn(start+i).
func (p *GoroutinePool) Run(group int, start, count int, fn func(index int)) {
	wg := p.wgFor(group)
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func(idx int) {
			defer wg.Done()
			fn(idx)
		}(start + i)
	}
}

// Wait blocks until every task submitted to group via Run has completed.
// maxIndex is accepted for interface parity, but GoroutinePool tracks
// completion per group as a whole, so Wait returns only once every task
// submitted to the group has finished, whatever maxIndex is.
func (p *GoroutinePool) Wait(group int, maxIndex int) {
	p.wgFor(group).Wait()
}
