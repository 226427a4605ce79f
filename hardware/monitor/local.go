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
	"github.com/jetsetilly/armexclusive/hardware/access"
)

// Local is the exclusive monitor private to a single core. The zero value is
// a monitor in the Open state.
//
// The local monitor is only ever changed by the core that owns it. Stores by
// other cores reach the local monitor as an Invalidation message, which the
// owning core applies with Clear().
type Local struct {
	reservation Reservation
}

// Reservation returns the current state of the local monitor.
func (l *Local) Reservation() Reservation {
	return l.reservation
}

// Clear returns the monitor to the Open state.
func (l *Local) Clear() {
	l.reservation = Reservation{}
}

// NotifyLoadExcl marks the address as reserved. Any previous reservation is
// replaced.
func (l *Local) NotifyLoadExcl(addr uint32, size access.Size) {
	l.reservation = Reservation{
		State:   Reserved,
		Address: addr,
		Size:    size,
	}
}

// NotifyLoad should be called for every ordinary load made by the core.
//
// A load could cause a cache eviction which would affect the monitor. The
// strictest interpretation is to clear the monitor on every load, whatever
// the address.
func (l *Local) NotifyLoad() {
	l.Clear()
}

// NotifyStore should be called for every ordinary store made by the core.
//
// It is implementation defined whether a store to an address not covered by
// the monitor changes the monitor state. As with NotifyLoad() we take the
// strictest interpretation and always clear the monitor.
func (l *Local) NotifyStore() {
	l.Clear()
}

// NotifyStoreExcl returns true if the store exclusive access matches the
// reservation exactly. The monitor is returned to the Open state in all
// cases.
func (l *Local) NotifyStoreExcl(addr uint32, size access.Size) bool {
	ok := l.reservation.Matches(addr, size)
	l.Clear()
	return ok
}
