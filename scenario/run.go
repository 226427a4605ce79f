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

package scenario

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/armexclusive/curated"
	"github.com/jetsetilly/armexclusive/hardware/access"
	"github.com/jetsetilly/armexclusive/hardware/core"
	"github.com/jetsetilly/armexclusive/hardware/memory"
	"github.com/jetsetilly/armexclusive/hardware/monitor"
	"github.com/jetsetilly/armexclusive/harness"
	"github.com/jetsetilly/armexclusive/logger"
)

// Sentinal error patterns returned by Run().
const (
	Failed        = "scenario: %s: %d of %d checks failed"
	SetupError    = "scenario: %s: %v"
	StepMismatch  = "step %d: %s: expected %#x got %#x"
	CheckMismatch = "check %d: %s at %#08x: expected %#x got %#x"
)

// Option changes how a scenario is run.
type Option func(*options)

type options struct {
	granuleBits int
	spurious    int
	observer    core.Observer
	trace       logger.Permission
	hook        func(step int, act Action)
	dot         io.Writer
	logging     logger.Permission
	byteOrder   binary.ByteOrder
}

// WithGranule sets the reservation granule. It is overridden by a granule
// specified in the scenario itself.
func WithGranule(bits int) Option {
	return func(o *options) {
		o.granuleBits = bits
	}
}

// WithSpuriousInterval sets the spurious failure interval of the global
// monitor.
func WithSpuriousInterval(n int) Option {
	return func(o *options) {
		o.spurious = n
	}
}

// WithObserver attaches the observer to every core.
func WithObserver(obs core.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithTrace logs every access with the supplied permission.
func WithTrace(perm logger.Permission) Option {
	return func(o *options) {
		o.trace = perm
	}
}

// WithStepHook sets a function to be called before every step. The function
// is called on the controller goroutine and can block, for example to wait
// for user input.
func WithStepHook(hook func(step int, act Action)) Option {
	return func(o *options) {
		o.hook = hook
	}
}

// WithDot writes a graphviz rendering of the global monitor, as it is at the
// end of the scenario, to the io.Writer.
func WithDot(w io.Writer) Option {
	return func(o *options) {
		o.dot = w
	}
}

// WithMonitorLogging sets the permission for the global monitor's log
// entries.
func WithMonitorLogging(perm logger.Permission) Option {
	return func(o *options) {
		o.logging = perm
	}
}

// WithByteOrder sets the byte order of the memory image.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		o.byteOrder = order
	}
}

// Outcome of a single step.
type Outcome struct {
	Action Action
	Result core.Result
	Match  bool
}

func (o Outcome) String() string {
	s := fmt.Sprintf("%-32s %s", o.Action, o.Result)
	if o.Action.HasExpect && !o.Match {
		s = fmt.Sprintf("%s (expected %#x)", s, o.Action.Expect)
	}
	return s
}

// Report is the result of running a scenario.
type Report struct {
	Name     string
	Outcomes []Outcome
	Failures []string
	Checks   int
	Memory   string
}

// Passed returns true if every expectation of the scenario was met.
func (r Report) Passed() bool {
	return len(r.Failures) == 0
}

// Write the report to the io.Writer.
func (r Report) Write(w io.Writer) {
	status := "pass"
	if !r.Passed() {
		status = "FAIL"
	}
	fmt.Fprintf(w, "%s: %s\n", status, r.Name)
	for i, o := range r.Outcomes {
		fmt.Fprintf(w, "  %2d %s\n", i, o)
	}
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  ! %s\n", f)
	}
}

func (r Report) String() string {
	s := strings.Builder{}
	r.Write(&s)
	return s.String()
}

// stepper is implemented by core.Core directly and by harness.Worker for
// cores that are not the controller
type stepper func(access.Access) core.Result

// Run the scenario. An error is returned if the scenario could not be set up
// or if any expectation in the scenario was not met. In the latter case the
// Report describes the mismatches.
func Run(s Scenario, opts ...Option) (Report, error) {
	o := options{
		granuleBits: monitor.DefaultGranuleBits,
		trace:       logger.Deny,
		logging:     logger.Allow,
	}
	for _, opt := range opts {
		opt(&o)
	}

	rep := Report{Name: s.Name}

	acts, err := s.Actions()
	if err != nil {
		return rep, curated.Errorf(SetupError, s.Name, err)
	}

	initial := make([]cell, 0, len(s.Initial))
	for i, c := range s.Initial {
		r, err := c.resolve(s.Symbols)
		if err != nil {
			return rep, curated.Errorf(SetupError, s.Name, curated.Errorf(InvalidCell, i, err))
		}
		initial = append(initial, r)
	}

	check := make([]cell, 0, len(s.Check))
	for i, c := range s.Check {
		r, err := c.resolve(s.Symbols)
		if err != nil {
			return rep, curated.Errorf(SetupError, s.Name, curated.Errorf(InvalidCell, i, err))
		}
		check = append(check, r)
	}

	if s.GranuleBits != 0 {
		o.granuleBits = s.GranuleBits
	}
	global, err := monitor.NewGlobal(o.granuleBits)
	if err != nil {
		return rep, curated.Errorf(SetupError, s.Name, err)
	}
	global.SetLogging(o.logging)
	if err := global.SetSpuriousInterval(o.spurious); err != nil {
		return rep, curated.Errorf(SetupError, s.Name, err)
	}

	if s.Memory < 0 {
		return rep, curated.Errorf(SetupError, s.Name, fmt.Sprintf("memory size must not be negative (%d)", s.Memory))
	}

	size := s.Memory
	if size == 0 {
		size = DefaultMemory
	}
	mem := memory.NewImage(size)
	if o.byteOrder != nil {
		mem.SetByteOrder(o.byteOrder)
	}

	// initial and check cells are validated against the image here so that a
	// bad scenario file is an error and not a panic
	for i, c := range append(initial, check...) {
		if uint64(c.address)+uint64(c.size.Bytes()) > uint64(mem.Len()) {
			return rep, curated.Errorf(SetupError, s.Name, curated.Errorf(InvalidCell, i, fmt.Sprintf("address %#08x outside of memory", c.address)))
		}
	}
	for i, a := range acts {
		if uint64(a.Access.Address)+uint64(a.Access.Size.Bytes()) > uint64(mem.Len()) {
			return rep, curated.Errorf(SetupError, s.Name, curated.Errorf(InvalidStep, i, fmt.Sprintf("address %#08x outside of memory", a.Access.Address)))
		}
	}

	for _, c := range initial {
		mem.Write(c.address, c.size, c.value)
	}

	logger.Logf(logger.Allow, "scenario", "running %s", s.Name)

	// create cores. the controller is driven directly and every other core is
	// driven by a worker
	steppers := make(map[string]stepper)
	var cores []*core.Core
	var workers []*harness.Worker

	for id, name := range s.Cores() {
		c := core.NewCore(id, mem, global)
		c.SetTrace(o.trace)
		if o.observer != nil {
			c.SetObserver(o.observer)
		}
		cores = append(cores, c)

		if name == Controller {
			steppers[name] = c.Execute
		} else {
			wrk := harness.NewWorker(c)
			workers = append(workers, wrk)
			steppers[name] = wrk.NextAndWait
		}
	}

	defer func() {
		for _, wrk := range workers {
			wrk.Finish()
		}
		for _, wrk := range workers {
			wrk.Wait()
		}
		for _, c := range cores {
			c.Close()
		}
	}()

	for i, act := range acts {
		if o.hook != nil {
			o.hook(i, act)
		}

		res := steppers[act.Core](act.Access)

		out := Outcome{Action: act, Result: res, Match: true}
		if act.HasExpect {
			rep.Checks++
			if res.Value != act.Expect {
				out.Match = false
				rep.Failures = append(rep.Failures, fmt.Sprintf(StepMismatch, i, act, act.Expect, res.Value))
			}
		}
		rep.Outcomes = append(rep.Outcomes, out)
	}

	for i, c := range check {
		rep.Checks++
		if v := mem.Read(c.address, c.size); v != c.value {
			rep.Failures = append(rep.Failures, fmt.Sprintf(CheckMismatch, i, c.size, c.address, c.value, v))
		}
	}

	rep.Memory = mem.String()

	if o.dot != nil {
		global.WriteDot(o.dot)
	}

	if !rep.Passed() {
		return rep, curated.Errorf(Failed, s.Name, len(rep.Failures), rep.Checks)
	}

	return rep, nil
}
