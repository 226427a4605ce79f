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

// Package core implements the access dispatcher for a single emulated core.
//
// A Core owns a Local exclusive monitor and an entry in the shared Global
// monitor. Every access is executed with the global monitor locked, which
// means that accesses from all cores happen in a total order.
package core

import (
	"fmt"

	"github.com/jetsetilly/armexclusive/hardware/access"
	"github.com/jetsetilly/armexclusive/hardware/memory"
	"github.com/jetsetilly/armexclusive/hardware/monitor"
	"github.com/jetsetilly/armexclusive/logger"
)

// Status is the value written to the status register by a store exclusive.
type Status uint32

// List of valid Status values. The values are the values the architecture
// writes to the destination register of STREX.
const (
	Success Status = 0
	Failure Status = 1
)

func (s Status) String() string {
	if s == Success {
		return "success"
	}
	return "failure"
}

// Result of an access. For loads Value is the zero extended value read from
// memory. For store exclusives Value is the Status. For ordinary stores Value
// is always zero.
type Result struct {
	Kind  access.Kind
	Value uint32
}

// Status returns the result of a store exclusive as a Status value. Panics
// if the result is not for a store exclusive.
func (r Result) Status() Status {
	if r.Kind != access.StoreExclusive {
		panic(fmt.Sprintf("core: status requested for %s result", r.Kind))
	}
	return Status(r.Value)
}

// Succeeded is a convenience function equivalent to Status() == Success.
func (r Result) Succeeded() bool {
	return r.Status() == Success
}

func (r Result) String() string {
	switch r.Kind {
	case access.Load, access.LoadExclusive:
		return fmt.Sprintf("%s = %#08x", r.Kind, r.Value)
	case access.StoreExclusive:
		return fmt.Sprintf("%s %s", r.Kind, Status(r.Value))
	}
	return r.Kind.String()
}

// Observer is notified of every access made by a core. Observe() is called
// with the global monitor locked and must not call back into any core.
type Observer interface {
	Observe(id int, acc access.Access, res Result)
	Invalidated(id int, inv monitor.Invalidation)
}

// Core is a single emulated core. Execute() may be called from any goroutine
// but the caller must not make concurrent calls to Execute() for the same
// Core.
type Core struct {
	id     int
	mem    *memory.Image
	global *monitor.Global
	proc   *monitor.Processor
	local  monitor.Local

	observer Observer

	// permission for trace logging of every access
	trace logger.Permission
}

// NewCore is the preferred method of initialisation for the Core type. The
// core is attached to the global monitor with the supplied ID, which must be
// unique.
func NewCore(id int, mem *memory.Image, global *monitor.Global) *Core {
	return &Core{
		id:     id,
		mem:    mem,
		global: global,
		proc:   global.Attach(id),
		trace:  logger.Deny,
	}
}

// Close detaches the core from the global monitor. The core should not be
// used after Close().
func (c *Core) Close() {
	c.global.Detach(c.proc)
}

// ID returns the ID of the core.
func (c *Core) ID() int {
	return c.id
}

func (c *Core) String() string {
	return fmt.Sprintf("core %d", c.id)
}

// SetObserver sets the Observer for the core. A nil value removes the
// observer.
func (c *Core) SetObserver(o Observer) {
	c.global.Lock()
	defer c.global.Unlock()
	c.observer = o
}

// SetTrace sets the permission for logging every access.
func (c *Core) SetTrace(perm logger.Permission) {
	c.global.Lock()
	defer c.global.Unlock()
	c.trace = perm
}

// Reservation returns the state of the core's local monitor.
func (c *Core) Reservation() monitor.Reservation {
	c.global.Lock()
	defer c.global.Unlock()
	c.drain()
	return c.local.Reservation()
}

// drain the invalidation mailbox. must be called with the global lock held
func (c *Core) drain() {
	for {
		select {
		case inv := <-c.proc.Invalidations():
			c.local.Clear()
			if c.observer != nil {
				c.observer.Invalidated(c.id, inv)
			}
		default:
			return
		}
	}
}

// Execute a single access. An access that is not valid is a programming
// error and will cause a panic.
func (c *Core) Execute(acc access.Access) Result {
	if err := acc.Valid(); err != nil {
		panic(fmt.Sprintf("core %d: %v", c.id, err))
	}

	c.global.Lock()
	defer c.global.Unlock()

	c.drain()

	res := Result{Kind: acc.Kind}

	switch acc.Kind {
	case access.Load:
		res.Value = c.mem.Read(acc.Address, acc.Size)
		c.local.NotifyLoad()

		// an ordinary load by this core does not affect other cores but the
		// core's own published reservation must follow the local monitor
		c.global.Clear(c.proc)

	case access.LoadExclusive:
		res.Value = c.mem.Read(acc.Address, acc.Size)
		c.local.NotifyLoadExcl(acc.Address, acc.Size)
		c.global.NotifyLoadExcl(c.proc, acc.Address)

	case access.Store:
		c.mem.Write(acc.Address, acc.Size, acc.Value)
		c.local.NotifyStore()
		c.global.NotifyStore(c.proc, acc.Address)

	case access.StoreExclusive:
		res.Value = uint32(Failure)
		if c.local.NotifyStoreExcl(acc.Address, acc.Size) {
			if c.global.NotifyStoreExcl(c.proc, acc.Address) {
				c.mem.Write(acc.Address, acc.Size, acc.Value)
				res.Value = uint32(Success)
			}
		} else {
			c.global.Clear(c.proc)
		}
	}

	logger.Logf(c.trace, "core", "%d: %s: %s", c.id, acc, res)

	if c.observer != nil {
		c.observer.Observe(c.id, acc, res)
	}

	return res
}
