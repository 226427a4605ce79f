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

//go:build unix

package terminal_test

import (
	"os"
	"testing"

	"github.com/jetsetilly/armexclusive/curated"
	"github.com/jetsetilly/armexclusive/terminal"
	"github.com/jetsetilly/armexclusive/test"
)

func TestNotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "input")
	test.DemandSuccess(t, err)
	defer f.Close()

	_, err = terminal.NewTerminal(f, os.Stdout)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Is(err, terminal.NotTerminal), true)
}
