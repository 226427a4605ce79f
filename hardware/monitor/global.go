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

package monitor

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jetsetilly/armexclusive/curated"
	"github.com/jetsetilly/armexclusive/logger"
)

// The exclusive reservation granule is the size of the block of memory that
// the global monitor tracks. Two addresses in the same granule are treated as
// the same address when deciding whether a store by one core conflicts with
// the reservation of another.
//
// The architecture allows a granule of between 8 and 2048 bytes.
const (
	MinGranuleBits     = 3
	MaxGranuleBits     = 11
	DefaultGranuleBits = MaxGranuleBits
)

// Sentinal error patterns.
const (
	InvalidGranule = "monitor: granule bits must be between %d and %d (%d)"
	InvalidSpurios = "monitor: spurious failure interval must not be negative (%d)"
)

// Invalidation is sent to a core when a store by another core clears the
// reservation the core has published in the global monitor.
type Invalidation struct {
	// the ID of the core that made the store
	By int

	// the address of the store
	Address uint32
}

// Processor is the entry for a single core in the global monitor. It is
// created with Global.Attach().
//
// The fields of the Processor are owned by the global monitor and are only
// accessed with the global monitor lock held. The exception is the mailbox,
// which is drained by the owning core with the Invalidations() channel.
type Processor struct {
	id int

	// published reservation. the tagged address is the reserved address
	// masked to the granule
	active bool
	tagged uint32

	// number of successful store exclusives since the last spurious failure
	failureCounter int

	// pending invalidations for the owning core. the channel has a capacity
	// of one and sends never block. more than one pending invalidation has
	// the same meaning as a single invalidation so extra messages are
	// dropped
	mailbox chan Invalidation

	attached bool
}

// ID returns the ID of the core the processor entry was attached for.
func (p *Processor) ID() int {
	return p.id
}

// Invalidations returns the channel on which the global monitor posts
// invalidations for the owning core. The owning core should drain the channel
// before every access.
func (p *Processor) Invalidations() <-chan Invalidation {
	return p.mailbox
}

// Published describes the state of a processor entry in the global monitor.
type Published struct {
	Active bool
	Tagged uint32
}

func (p Published) String() string {
	if !p.Active {
		return Open.String()
	}
	return fmt.Sprintf("%s granule %#08x", Reserved, p.Tagged)
}

// Global is the exclusive monitor shared by all cores. It is the table of
// reservations published by each core.
//
// The lock in Global serialises the cores. A core must hold the lock, with
// Lock() and Unlock(), for the duration of every access, including the memory
// operation itself. The Notify*() functions must only be called with the lock
// held.
type Global struct {
	crit sync.Mutex

	granuleBits uint
	granuleMask uint32

	// every Nth store exclusive that would otherwise succeed will fail. a
	// value of zero means that spurious failures never happen
	spuriousInterval int

	processors map[int]*Processor

	// permission for logging reservation changes
	logging logger.Permission
}

// NewGlobal is the preferred method of initialisation for the Global type.
func NewGlobal(granuleBits int) (*Global, error) {
	if granuleBits < MinGranuleBits || granuleBits > MaxGranuleBits {
		return nil, curated.Errorf(InvalidGranule, MinGranuleBits, MaxGranuleBits, granuleBits)
	}

	g := &Global{
		granuleBits: uint(granuleBits),
		granuleMask: ^((uint32(1) << granuleBits) - 1),
		processors:  make(map[int]*Processor),
		logging:     logger.Allow,
	}

	logger.Logf(logger.Allow, "monitor", "reservation granule is %d bytes", g.Granule())

	return g, nil
}

// SetSpuriousInterval sets how often a store exclusive fails even though the
// reservation is intact. This mimics the behaviour of real hardware where a
// store exclusive can fail because of a cache eviction. A value of zero
// disables spurious failures.
func (g *Global) SetSpuriousInterval(n int) error {
	if n < 0 {
		return curated.Errorf(InvalidSpurios, n)
	}
	g.crit.Lock()
	defer g.crit.Unlock()
	g.spuriousInterval = n
	return nil
}

// SetLogging sets the permission used when logging changes to the table.
func (g *Global) SetLogging(perm logger.Permission) {
	g.crit.Lock()
	defer g.crit.Unlock()
	g.logging = perm
}

// Granule returns the size of the reservation granule in bytes.
func (g *Global) Granule() uint32 {
	return uint32(1) << g.granuleBits
}

// Tag returns the address masked to the reservation granule.
func (g *Global) Tag(addr uint32) uint32 {
	return addr & g.granuleMask
}

// Lock the global monitor. Every access made by a core must be made with the
// lock held.
func (g *Global) Lock() {
	g.crit.Lock()
}

// Unlock the global monitor.
func (g *Global) Unlock() {
	g.crit.Unlock()
}

// Attach a new core to the global monitor. The ID must be unique among
// attached cores.
func (g *Global) Attach(id int) *Processor {
	g.crit.Lock()
	defer g.crit.Unlock()

	if _, ok := g.processors[id]; ok {
		panic(fmt.Sprintf("monitor: core %d is already attached", id))
	}

	p := &Processor{
		id:       id,
		mailbox:  make(chan Invalidation, 1),
		attached: true,
	}
	g.processors[id] = p

	return p
}

// Detach core from the global monitor. Any reservation published by the core
// is discarded.
func (g *Global) Detach(p *Processor) {
	g.crit.Lock()
	defer g.crit.Unlock()

	if !p.attached {
		return
	}

	p.attached = false
	p.active = false
	delete(g.processors, p.id)
}

// Reservations returns a copy of the table of published reservations, keyed
// by core ID.
func (g *Global) Reservations() map[int]Published {
	g.crit.Lock()
	defer g.crit.Unlock()

	r := make(map[int]Published, len(g.processors))
	for id, p := range g.processors {
		r[id] = Published{Active: p.active, Tagged: p.tagged}
	}
	return r
}

// sortedProcessors returns the attached processors in ID order. the order in
// which processors are visited has no effect on the result of an access but
// a stable order makes the log easier to follow
func (g *Global) sortedProcessors() []*Processor {
	ps := make([]*Processor, 0, len(g.processors))
	for _, p := range g.processors {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool {
		return ps[i].id < ps[j].id
	})
	return ps
}

// invalidate the published reservation of processor p, because of a store to
// addr made by the core with ID by. the owning core is told about the
// invalidation through its mailbox
func (g *Global) invalidate(p *Processor, by int, addr uint32) {
	p.active = false

	logger.Logf(g.logging, "monitor", "core %d: reservation for granule %08x invalidated by core %d store to %08x",
		p.id, p.tagged, by, addr)

	select {
	case p.mailbox <- Invalidation{By: by, Address: addr}:
	default:
		// an invalidation is already pending
	}
}

// invalidateOthers clears the reservation of every processor other than the
// requesting processor that conflicts with the address
func (g *Global) invalidateOthers(requesting *Processor, addr uint32) {
	tag := g.Tag(addr)
	for _, p := range g.sortedProcessors() {
		if p == requesting {
			continue
		}
		if p.active && p.tagged == tag {
			g.invalidate(p, requesting.id, addr)
		}
	}
}

func (g *Global) mustBeAttached(p *Processor) {
	if !p.attached {
		panic(fmt.Sprintf("monitor: core %d is not attached", p.id))
	}
}

// NotifyLoadExcl publishes a reservation for the processor. Any previous
// reservation for the processor is replaced. Must be called with the lock
// held.
func (g *Global) NotifyLoadExcl(p *Processor, addr uint32) {
	g.mustBeAttached(p)
	p.active = true
	p.tagged = g.Tag(addr)
}

// NotifyStore clears the reservation of the requesting processor and of every
// other processor with a reservation in the same granule as the address.
// Must be called with the lock held.
func (g *Global) NotifyStore(p *Processor, addr uint32) {
	g.mustBeAttached(p)
	p.active = false
	g.invalidateOthers(p, addr)
}

// Clear the reservation of the processor without affecting any other
// processor. Used when a store exclusive has failed the local monitor check.
// Must be called with the lock held.
func (g *Global) Clear(p *Processor) {
	g.mustBeAttached(p)
	p.active = false
}

// NotifyStoreExcl returns true if the requesting processor's reservation is
// still intact. If it is then the reservation of every other processor in
// the same granule is cleared, as it would be for an ordinary store. The
// reservation of the requesting processor is cleared in all cases.
//
// Must be called with the lock held. The caller is expected to have already
// checked the local monitor for an exact match of address and size.
func (g *Global) NotifyStoreExcl(p *Processor, addr uint32) bool {
	g.mustBeAttached(p)

	if !p.active || p.tagged != g.Tag(addr) {
		p.active = false
		return false
	}
	p.active = false

	if g.spuriousInterval > 0 {
		p.failureCounter++
		if p.failureCounter >= g.spuriousInterval {
			p.failureCounter = 0
			logger.Logf(g.logging, "monitor", "core %d: spurious store exclusive failure at %08x", p.id, addr)
			return false
		}
	}

	g.invalidateOthers(p, addr)

	return true
}
