// Package bg runs side effects that must not hold up an HTTP response.
package bg

import "sync"

// Runner executes fn, either in the calling goroutine or in a new one.
type Runner interface {
	Do(fn func())
}

// Async runs each function in its own goroutine. This is what the server uses.
type Async struct{}

func (Async) Do(fn func()) {
	go fn()
}

// Sync runs each function before Do returns.
type Sync struct{}

func (Sync) Do(fn func()) {
	fn()
}

// Tracked is an Async runner that can wait for the functions it started,
// used on shutdown so queued mail is not dropped mid-send.
type Tracked struct {
	wg sync.WaitGroup
}

func (t *Tracked) Do(fn func()) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		fn()
	}()
}

// Wait blocks until every started function has returned.
func (t *Tracked) Wait() {
	t.wg.Wait()
}
