// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package harness drives a core from its own goroutine so that accesses made
// by two cores can be interleaved in a fixed order.
//
// A controller, running on its own goroutine, hands accesses to a Worker one
// at a time with NextAndWait(). The Worker executes the access on its
// goroutine and the controller is blocked until the access has been executed
// in full. The controller and the worker therefore strictly alternate, which
// makes cross-core scenarios deterministic.
package harness

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/armexclusive/assert"
	"github.com/jetsetilly/armexclusive/hardware/access"
	"github.com/jetsetilly/armexclusive/hardware/core"
	"github.com/jetsetilly/armexclusive/logger"
)

// Worker runs a core on a dedicated goroutine.
type Worker struct {
	core *core.Core

	// request is the sig channel and response is the ack channel. both are
	// unbuffered so the controller and the worker meet at every step
	request  chan access.Access
	response chan core.Result

	// finish is closed by Finish(). finishOnce means Finish() can be called
	// more than once
	finish     chan bool
	finishOnce sync.Once
	finished   atomic.Bool

	// pending is true while a request is outstanding
	pending atomic.Bool

	// done is closed when the worker goroutine has ended
	done chan bool

	// the ID of the worker goroutine
	routine atomic.Uint64

	// number of steps executed by the worker
	steps atomic.Int64
}

// NewWorker is the preferred method of initialisation for the Worker type.
// The worker goroutine is started immediately.
func NewWorker(c *core.Core) *Worker {
	wrk := &Worker{
		core:     c,
		request:  make(chan access.Access),
		response: make(chan core.Result),
		finish:   make(chan bool),
		done:     make(chan bool),
	}

	started := make(chan bool)
	go wrk.run(started)
	<-started

	return wrk
}

func (wrk *Worker) run(started chan bool) {
	defer close(wrk.done)

	wrk.routine.Store(assert.GetGoRoutineID())
	close(started)

	logger.Logf(logger.Allow, "harness", "worker for %s started", wrk.core)

	for {
		select {
		case acc := <-wrk.request:
			assert.SameGoRoutine(wrk.routine.Load())
			res := wrk.core.Execute(acc)
			wrk.steps.Add(1)
			wrk.response <- res
		case <-wrk.finish:
			logger.Logf(logger.Allow, "harness", "worker for %s finished after %d steps", wrk.core, wrk.steps.Load())
			return
		}
	}
}

// NextAndWait hands the access to the worker and waits for it to be
// executed. It is a programming error to call NextAndWait() while another
// call is outstanding or after Finish() has been called.
func (wrk *Worker) NextAndWait(acc access.Access) core.Result {
	if wrk.finished.Load() {
		panic(fmt.Sprintf("harness: request to %s after finish", wrk.core))
	}
	if err := acc.Valid(); err != nil {
		panic(fmt.Sprintf("harness: %v", err))
	}
	if !wrk.pending.CompareAndSwap(false, true) {
		panic(fmt.Sprintf("harness: request to %s while previous request is outstanding", wrk.core))
	}
	defer wrk.pending.Store(false)

	wrk.request <- acc
	return <-wrk.response
}

// Finish tells the worker to end. It does not wait for the worker goroutine
// to end, use Wait() for that. Calling Finish() more than once has no
// additional effect.
func (wrk *Worker) Finish() {
	wrk.finishOnce.Do(func() {
		wrk.finished.Store(true)
		close(wrk.finish)
	})
}

// Wait blocks until the worker goroutine has ended. Finish() must have been
// called or Wait() will block forever.
func (wrk *Worker) Wait() {
	<-wrk.done
}

// Core returns the core being driven by the worker.
func (wrk *Worker) Core() *core.Core {
	return wrk.core
}

// GoRoutineID returns the ID of the goroutine the worker executes accesses
// on.
func (wrk *Worker) GoRoutineID() uint64 {
	return wrk.routine.Load()
}

// Steps returns the number of accesses executed by the worker.
func (wrk *Worker) Steps() int {
	return int(wrk.steps.Load())
}
