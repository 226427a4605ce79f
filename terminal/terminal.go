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

// Package terminal puts the controlling terminal into cbreak mode so that
// single key presses can be read without waiting for the return key. It is
// used to step through a scenario one access at a time.
package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/jetsetilly/armexclusive/curated"
)

// Sentinal error patterns.
const (
	NotTerminal = "terminal: %s is not a terminal"
	ReadError   = "terminal: %v"
)

// Terminal reads single key presses from the input file.
type Terminal struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	// sig/ack channels to control the interrupt handler
	terminateHandlerSig chan bool
	terminateHandlerAck chan bool

	crit sync.Mutex
}

// NewTerminal is the preferred method of initialisation for the Terminal
// type. The input file must be a terminal.
func NewTerminal(input, output *os.File) (*Terminal, error) {
	if !term.IsTerminal(int(input.Fd())) {
		return nil, curated.Errorf(NotTerminal, input.Name())
	}

	pt := &Terminal{
		input:  input,
		output: output,
	}

	if err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr); err != nil {
		return nil, curated.Errorf(ReadError, err)
	}
	pt.cbreakAttr = pt.canAttr
	termios.Cfmakecbreak(&pt.cbreakAttr)

	pt.terminateHandlerSig = make(chan bool)
	pt.terminateHandlerAck = make(chan bool)

	// an interrupt while the terminal is in cbreak mode would leave the
	// terminal in that mode. restore canonical mode before exiting
	go func() {
		intr := make(chan os.Signal, 1)
		signal.Notify(intr, syscall.SIGINT)
		defer func() {
			signal.Stop(intr)
			pt.terminateHandlerAck <- true
		}()

		select {
		case <-intr:
			pt.CanonicalMode()
			os.Exit(10)
		case <-pt.terminateHandlerSig:
			return
		}
	}()

	return pt, nil
}

// CleanUp returns the terminal to canonical mode and stops the interrupt
// handler.
func (pt *Terminal) CleanUp() {
	pt.CanonicalMode()
	pt.terminateHandlerSig <- true
	<-pt.terminateHandlerAck
}

// CanonicalMode puts terminal into normal, everyday canonical mode.
func (pt *Terminal) CanonicalMode() {
	pt.crit.Lock()
	defer pt.crit.Unlock()
	_ = termios.Tcsetattr(pt.input.Fd(), termios.TCSANOW, &pt.canAttr)
}

// CBreakMode puts terminal into cbreak mode.
func (pt *Terminal) CBreakMode() {
	pt.crit.Lock()
	defer pt.crit.Unlock()
	_ = termios.Tcsetattr(pt.input.Fd(), termios.TCSANOW, &pt.cbreakAttr)
}

// Flush discards any unread input.
func (pt *Terminal) Flush() error {
	if err := termios.Tcflush(pt.input.Fd(), termios.TCIFLUSH); err != nil {
		return curated.Errorf(ReadError, err)
	}
	return nil
}

// Print writes the formatted string to the output file.
func (pt *Terminal) Print(s string, a ...interface{}) {
	pt.output.WriteString(fmt.Sprintf(s, a...))
	pt.output.Sync()
}

// Key prints the prompt and waits for a single key press.
func (pt *Terminal) Key(prompt string) (byte, error) {
	pt.Print("%s", prompt)

	pt.CBreakMode()
	defer pt.CanonicalMode()

	if err := pt.Flush(); err != nil {
		return 0, err
	}

	b := make([]byte, 1)
	if _, err := pt.input.Read(b); err != nil {
		return 0, curated.Errorf(ReadError, err)
	}
	pt.Print("\n")

	return b[0], nil
}
