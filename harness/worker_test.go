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

package harness_test

import (
	"testing"

	"github.com/jetsetilly/armexclusive/assert"
	"github.com/jetsetilly/armexclusive/hardware/access"
	"github.com/jetsetilly/armexclusive/hardware/core"
	"github.com/jetsetilly/armexclusive/hardware/memory"
	"github.com/jetsetilly/armexclusive/hardware/monitor"
	"github.com/jetsetilly/armexclusive/harness"
	"github.com/jetsetilly/armexclusive/test"
)

const (
	w     = 0x40
	dummy = w + 4
)

// core a is driven directly by the test. core b is driven by a worker
func setup(t *testing.T) (*core.Core, *harness.Worker, *memory.Image) {
	t.Helper()
	g, err := monitor.NewGlobal(monitor.DefaultGranuleBits)
	test.DemandSuccess(t, err)
	mem := memory.NewImage(128)
	mem.Write(w, access.Word, 1)

	a := core.NewCore(0, mem, g)
	b := harness.NewWorker(core.NewCore(1, mem, g))
	t.Cleanup(func() {
		b.Finish()
		b.Wait()
	})
	return a, b, mem
}

func TestCompetingStoreExclusive(t *testing.T) {
	a, b, mem := setup(t)

	b.NextAndWait(access.NewLoadExclusive(access.Word, w))
	a.Execute(access.NewLoadExclusive(access.Word, w))
	res := b.NextAndWait(access.NewStoreExclusive(access.Word, w, 5))
	test.ExpectEquality(t, res.Status(), core.Success)
	test.ExpectEquality(t, mem.Read(w, access.Word), 5)

	res = a.Execute(access.NewStoreExclusive(access.Word, w, 7))
	test.ExpectEquality(t, res.Status(), core.Failure)
	test.ExpectEquality(t, mem.Read(w, access.Word), 5)
}

func TestNeighbouringStoreExclusive(t *testing.T) {
	a, b, mem := setup(t)

	a.Execute(access.NewLoadExclusive(access.Word, w))
	b.NextAndWait(access.NewLoadExclusive(access.Word, dummy))
	res := b.NextAndWait(access.NewStoreExclusive(access.Word, dummy, 5))
	test.ExpectEquality(t, res.Status(), core.Success)

	res = a.Execute(access.NewStoreExclusive(access.Word, w, 7))
	test.ExpectEquality(t, res.Status(), core.Failure)
	test.ExpectEquality(t, mem.Read(w, access.Word), 1)
	test.ExpectEquality(t, mem.Read(dummy, access.Word), 5)
}

func TestNeighbouringStore(t *testing.T) {
	a, b, mem := setup(t)

	a.Execute(access.NewLoadExclusive(access.Word, w))
	b.NextAndWait(access.NewStore(access.Word, dummy, 5))

	res := a.Execute(access.NewStoreExclusive(access.Word, w, 7))
	test.ExpectEquality(t, res.Status(), core.Failure)
	test.ExpectEquality(t, mem.Read(w, access.Word), 1)
}

func TestWorkerGoRoutine(t *testing.T) {
	_, b, _ := setup(t)
	b.NextAndWait(access.NewLoad(access.Word, w))
	test.ExpectInequality(t, b.GoRoutineID(), assert.GetGoRoutineID())
	test.ExpectEquality(t, b.Steps(), 1)
	test.ExpectEquality(t, b.Core().ID(), 1)
}

func TestFinish(t *testing.T) {
	_, b, _ := setup(t)
	b.Finish()

	// finish is idempotent and the worker ends
	b.Finish()
	b.Wait()

	test.ExpectPanic(t, func() {
		b.NextAndWait(access.NewLoad(access.Word, w))
	})
}

func TestInvalidRequest(t *testing.T) {
	_, b, _ := setup(t)
	test.ExpectPanic(t, func() {
		b.NextAndWait(access.Access{Kind: access.StoreExclusive, Size: access.Word})
	})

	// the worker is still usable
	test.ExpectEquality(t, b.NextAndWait(access.NewLoad(access.Word, w)).Value, 1)
}

// blocker stalls the worker in the middle of an access until released
type blocker struct {
	entered chan bool
	release chan bool
}

func (o *blocker) Observe(_ int, _ access.Access, _ core.Result) {
	o.entered <- true
	<-o.release
}

func (o *blocker) Invalidated(_ int, _ monitor.Invalidation) {
}

func TestOutstandingRequest(t *testing.T) {
	_, b, _ := setup(t)

	o := &blocker{
		entered: make(chan bool),
		release: make(chan bool),
	}
	b.Core().SetObserver(o)

	done := make(chan core.Result)
	go func() {
		done <- b.NextAndWait(access.NewLoad(access.Word, w))
	}()
	<-o.entered

	test.ExpectPanic(t, func() {
		b.NextAndWait(access.NewLoad(access.Word, w))
	})

	close(o.release)
	test.ExpectEquality(t, (<-done).Value, 1)
}
