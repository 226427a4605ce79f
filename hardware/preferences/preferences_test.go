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

package preferences_test

import (
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/armexclusive/hardware/access"
	"github.com/jetsetilly/armexclusive/hardware/monitor"
	"github.com/jetsetilly/armexclusive/hardware/preferences"
	"github.com/jetsetilly/armexclusive/prefs"
	"github.com/jetsetilly/armexclusive/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.GranuleBits.Get().(int), monitor.DefaultGranuleBits)
	test.ExpectEquality(t, p.SpuriousInterval.Get().(int), 0)
	test.ExpectEquality(t, p.Order(), binary.ByteOrder(binary.LittleEndian))
	test.ExpectEquality(t, p.String(),
		"monitor.byteOrder::little; monitor.granuleBits::11; monitor.memorySize::64; monitor.spuriousInterval::0; monitor.trace::false")

	g, err := p.NewGlobal()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, g.Granule(), 2048)
	test.ExpectEquality(t, p.NewImage().Len(), 64)
}

func TestValidation(t *testing.T) {
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, p.Set("monitor.granuleBits", 12))
	test.ExpectFailure(t, p.Set("monitor.granuleBits", 2))
	test.ExpectSuccess(t, p.Set("monitor.granuleBits", "3"))
	test.ExpectEquality(t, p.GranuleBits.Get().(int), 3)

	test.ExpectFailure(t, p.Set("monitor.spuriousInterval", -1))
	test.ExpectFailure(t, p.Set("monitor.memorySize", 0))
	test.ExpectFailure(t, p.Set("monitor.byteOrder", "middle"))
	test.ExpectFailure(t, p.Set("monitor.nothing", 1))

	test.ExpectSuccess(t, p.Set("monitor.byteOrder", "big"))
	img := p.NewImage()
	img.Write(0, access.HalfWord, 0x0102)
	test.ExpectEquality(t, img.Bytes()[0], uint8(0x01))

	test.ExpectSuccess(t, p.SetDefaults())
	test.ExpectEquality(t, p.GranuleBits.Get().(int), monitor.DefaultGranuleBits)
}

func TestCommandLine(t *testing.T) {
	prefs.PushCommandLineStack("monitor.granuleBits::4; monitor.spuriousInterval::0x5")
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.GranuleBits.Get().(int), 4)
	test.ExpectEquality(t, p.SpuriousInterval.Get().(int), 5)

	// the values have been consumed
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
	prefs.PushCommandLineStack("")
}

func TestCommandLineInvalid(t *testing.T) {
	prefs.PushCommandLineStack("monitor.granuleBits::20")
	defer prefs.PopCommandLineStack()

	_, err := preferences.NewPreferences()
	test.ExpectFailure(t, err)
}
