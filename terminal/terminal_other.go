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

//go:build !unix

package terminal

import (
	"os"

	"golang.org/x/term"

	"github.com/jetsetilly/armexclusive/curated"
)

// Sentinal error patterns.
const (
	NotTerminal = "terminal: %s is not a terminal"
	ReadError   = "terminal: %v"
)

// Terminal is not supported on this platform.
type Terminal struct{}

// NewTerminal always returns an error on this platform.
func NewTerminal(input, _ *os.File) (*Terminal, error) {
	if !term.IsTerminal(int(input.Fd())) {
		return nil, curated.Errorf(NotTerminal, input.Name())
	}
	return nil, curated.Errorf(ReadError, "cbreak mode not supported")
}

// CleanUp has no effect.
func (pt *Terminal) CleanUp() {}

// Key always returns an error.
func (pt *Terminal) Key(_ string) (byte, error) {
	return 0, curated.Errorf(ReadError, "cbreak mode not supported")
}
