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

	"github.com/jetsetilly/armexclusive/hardware/access"
)

// State of an exclusive monitor.
type State int

// List of valid State values.
const (
	Open State = iota
	Reserved
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Reserved:
		return "reserved"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Reservation is the state of a monitor. The Address and Size fields are only
// meaningful when State is Reserved.
type Reservation struct {
	State   State
	Address uint32
	Size    access.Size
}

func (r Reservation) String() string {
	if r.State != Reserved {
		return r.State.String()
	}
	return fmt.Sprintf("%s %s at %#08x", r.State, r.Size, r.Address)
}

// Matches returns true if the reservation is active and covers exactly the
// address and size. There is no partial matching.
func (r Reservation) Matches(addr uint32, size access.Size) bool {
	return r.State == Reserved && r.Address == addr && r.Size == size
}
