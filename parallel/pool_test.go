package parallel

import (
	"fmt"
	"sync/atomic"
	"testing"
)

func TestPoolRunsEveryTask(t *testing.T) {
	for _, workers := range []int{0, 1, 4, 32} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			pool := Start(workers)
			var ran atomic.Int64
			for i := 0; i < 100; i++ {
				pool.Do(func() { ran.Add(1) })
			}
			pool.Wait(true)
			if got := ran.Load(); got != 100 {
				t.Errorf("ran %d tasks, want 100", got)
			}
		})
	}
}

func TestPoolWaitIsIdempotent(t *testing.T) {
	pool := Start(4)
	var ran atomic.Int64
	pool.Do(func() { ran.Add(1) })
	pool.Wait(true)
	pool.Wait(true)
	if got := ran.Load(); got != 1 {
		t.Errorf("ran %d tasks, want 1", got)
	}
}

func TestPoolCancelIsIdempotent(t *testing.T) {
	pool := Start(2)
	pool.Cancel()
	pool.Cancel()
	pool.Wait(false)
}

func TestPoolSingleWorkerRunsInline(t *testing.T) {
	pool := Start(1)
	ran := false
	pool.Do(func() { ran = true })
	if !ran {
		t.Error("task did not run inline")
	}
	pool.Wait(true)
}
