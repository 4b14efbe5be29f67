/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package aggregator

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// recoveryCaller logs a recovered panic for the given caller name.
func recoveryCaller(caller string, rec interface{}) {
	if rec == nil {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "recovering panic in %s: %v\n", caller, rec)
}

// startStopRunner is a minimal Start/Stop lifecycle wrapper around a pair of
// run/stop functions. It tracks uptime and the errors returned by the run
// function, and signals Start() readiness through the ckStartSignal context
// value, matching what run() sends back via ctx.Value(ckStartSignal).
type startStopRunner struct {
	run  func(ctx context.Context) error
	stop func(ctx context.Context) error

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
	started time.Time

	errMu sync.Mutex
	errs  []error
}

func newStartStopRunner(run, stop func(ctx context.Context) error) *startStopRunner {
	return &startStopRunner{run: run, stop: stop}
}

func (r *startStopRunner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrStillRunning
	}

	if ctx == nil {
		ctx = context.Background()
	}

	cctx, cancel := context.WithCancel(ctx)
	sig := make(chan error, 1)
	cctx = context.WithValue(cctx, ckStartSignal, sig)

	r.cancel = cancel
	r.running = true
	r.started = time.Now()
	r.mu.Unlock()

	go func() {
		err := r.run(cctx)

		r.mu.Lock()
		r.running = false
		r.mu.Unlock()

		if err != nil {
			r.addError(err)
		}
	}()

	select {
	case err := <-sig:
		if err != nil {
			r.mu.Lock()
			r.running = false
			r.mu.Unlock()
		}
		return err
	case <-time.After(time.Second):
		return nil
	}
}

func (r *startStopRunner) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel := r.cancel
	stop := r.stop
	r.running = false
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if stop == nil {
		return nil
	}

	e := stop(ctx)
	if e != nil {
		r.addError(e)
	}
	return e
}

func (r *startStopRunner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *startStopRunner) Uptime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return 0
	}
	return time.Since(r.started)
}

func (r *startStopRunner) addError(e error) {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	r.errs = append(r.errs, e)
}

func (r *startStopRunner) ErrorsLast() error {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[len(r.errs)-1]
}

func (r *startStopRunner) ErrorsList() []error {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	out := make([]error, len(r.errs))
	copy(out, r.errs)
	return out
}

// boundedSemaphore is a non-blocking counting semaphore used to cap the number
// of concurrent async callback invocations. A size <= 0 means unbounded: every
// tryAcquire succeeds.
type boundedSemaphore struct {
	c        chan struct{}
	unbound  bool
}

func newBoundedSemaphore(n int) *boundedSemaphore {
	if n <= 0 {
		return &boundedSemaphore{unbound: true}
	}
	return &boundedSemaphore{c: make(chan struct{}, n)}
}

func (s *boundedSemaphore) tryAcquire() bool {
	if s.unbound {
		return true
	}
	select {
	case s.c <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *boundedSemaphore) release() {
	if s.unbound {
		return
	}
	select {
	case <-s.c:
	default:
	}
}
