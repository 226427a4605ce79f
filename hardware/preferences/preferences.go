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

// Package preferences collates the preference values for the emulated
// hardware. Values can be changed from the command line with the prefs
// command line stack.
package preferences

import (
	"encoding/binary"
	"strings"

	"github.com/jetsetilly/armexclusive/curated"
	"github.com/jetsetilly/armexclusive/hardware/memory"
	"github.com/jetsetilly/armexclusive/hardware/monitor"
	"github.com/jetsetilly/armexclusive/prefs"
)

// Sentinal error patterns.
const (
	InvalidByteOrder = "preferences: byte order must be little or big (%s)"
	InvalidMemory    = "preferences: memory size must be positive (%d)"
)

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	grp *prefs.Group

	// size of the reservation granule as a power of two
	GranuleBits prefs.Int

	// every Nth otherwise successful store exclusive fails. zero disables
	// spurious failures
	SpuriousInterval prefs.Int

	// size of the memory image in bytes. scenarios that specify a size
	// override this value
	MemorySize prefs.Int

	// "little" or "big"
	ByteOrder prefs.String

	// log every access made by every core
	Trace prefs.Bool
}

func (p *Preferences) String() string {
	return p.grp.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{
		grp: prefs.NewGroup(),
	}

	p.GranuleBits.SetHookPre(func(v prefs.Value) error {
		n := v.(int)
		if n < monitor.MinGranuleBits || n > monitor.MaxGranuleBits {
			return curated.Errorf(monitor.InvalidGranule, monitor.MinGranuleBits, monitor.MaxGranuleBits, n)
		}
		return nil
	})
	p.SpuriousInterval.SetHookPre(func(v prefs.Value) error {
		if n := v.(int); n < 0 {
			return curated.Errorf(monitor.InvalidSpurios, n)
		}
		return nil
	})
	p.MemorySize.SetHookPre(func(v prefs.Value) error {
		if n := v.(int); n <= 0 {
			return curated.Errorf(InvalidMemory, n)
		}
		return nil
	})
	p.ByteOrder.SetHookPre(func(v prefs.Value) error {
		switch strings.ToLower(v.(string)) {
		case "little", "big":
			return nil
		}
		return curated.Errorf(InvalidByteOrder, v)
	})

	err := p.grp.Add("monitor.granuleBits", &p.GranuleBits)
	if err != nil {
		return nil, err
	}
	err = p.grp.Add("monitor.spuriousInterval", &p.SpuriousInterval)
	if err != nil {
		return nil, err
	}
	err = p.grp.Add("monitor.memorySize", &p.MemorySize)
	if err != nil {
		return nil, err
	}
	err = p.grp.Add("monitor.byteOrder", &p.ByteOrder)
	if err != nil {
		return nil, err
	}
	err = p.grp.Add("monitor.trace", &p.Trace)
	if err != nil {
		return nil, err
	}

	if err := p.SetDefaults(); err != nil {
		return nil, err
	}

	if err := p.grp.ApplyCommandLine(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() error {
	if err := p.GranuleBits.Set(monitor.DefaultGranuleBits); err != nil {
		return err
	}
	if err := p.SpuriousInterval.Set(0); err != nil {
		return err
	}
	if err := p.MemorySize.Set(64); err != nil {
		return err
	}
	if err := p.ByteOrder.Set("little"); err != nil {
		return err
	}
	return p.Trace.Set(false)
}

// Set a preference by key.
func (p *Preferences) Set(key string, v prefs.Value) error {
	return p.grp.Set(key, v)
}

// Order returns the binary.ByteOrder described by the ByteOrder preference.
func (p *Preferences) Order() binary.ByteOrder {
	if strings.ToLower(p.ByteOrder.String()) == "big" {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// NewGlobal creates a global monitor configured by the preferences.
func (p *Preferences) NewGlobal() (*monitor.Global, error) {
	g, err := monitor.NewGlobal(p.GranuleBits.Get().(int))
	if err != nil {
		return nil, err
	}
	if err := g.SetSpuriousInterval(p.SpuriousInterval.Get().(int)); err != nil {
		return nil, err
	}
	return g, nil
}

// NewImage creates a memory image configured by the preferences.
func (p *Preferences) NewImage() *memory.Image {
	img := memory.NewImage(p.MemorySize.Get().(int))
	img.SetByteOrder(p.Order())
	return img
}
