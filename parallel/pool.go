// Package parallel provides the worker pool that fans file conversions out
// over the available CPUs.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc hands one task to the pool. It blocks while all workers
	// are busy and their queue is full.
	WorkerFunc func(func())
	// WaitFunc blocks until every submitted task has finished. Passing
	// done closes the pool first; a pool that is never closed never
	// drains.
	WaitFunc func(done bool)
	// CancelFunc closes the pool. Submitting to a closed pool panics.
	CancelFunc func()
)

// Pool runs tasks on a fixed set of goroutines. A pool of one worker
// degenerates to running every task inline on the submitting goroutine.
type Pool struct {
	wg     sync.WaitGroup
	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc
}

// Start launches the workers. Values below one mean one worker per
// available CPU.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		Do:     func(f func()) { f() },
		Wait:   func(bool) {},
		Cancel: func() {},
	}
	if numWorkers == 1 {
		return pool
	}

	tasks := make(chan func(), numWorkers)
	for i := 0; i < numWorkers; i++ {
		pool.wg.Add(1)
		go func() {
			defer pool.wg.Done()
			for f := range tasks {
				f()
			}
		}()
	}

	pool.Do = func(f func()) {
		tasks <- f
	}
	pool.Cancel = sync.OnceFunc(func() { close(tasks) })
	pool.Wait = func(done bool) {
		if done {
			pool.Cancel()
		}
		pool.wg.Wait()
	}

	return pool
}
