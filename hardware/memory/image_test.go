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

package memory_test

import (
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/armexclusive/hardware/access"
	"github.com/jetsetilly/armexclusive/hardware/memory"
	"github.com/jetsetilly/armexclusive/test"
)

func TestReadWrite(t *testing.T) {
	img := memory.NewImage(16)
	test.ExpectEquality(t, img.Len(), 16)

	img.Write(0, access.Word, 0x11223344)
	test.ExpectEquality(t, img.Read(0, access.Word), 0x11223344)

	// little-endian by default
	test.ExpectEquality(t, img.Read(0, access.Byte), 0x44)
	test.ExpectEquality(t, img.Read(0, access.HalfWord), 0x3344)
	test.ExpectEquality(t, img.Read(2, access.HalfWord), 0x1122)

	// narrow writes are truncated and do not touch neighbouring bytes
	img.Write(1, access.Byte, 0xfffffeaa)
	test.ExpectEquality(t, img.Read(0, access.Word), 0x1122aa44)

	img.Write(2, access.HalfWord, 0xabcd)
	test.ExpectEquality(t, img.Read(0, access.Word), 0xabcdaa44)
}

func TestUnaligned(t *testing.T) {
	img := memory.NewImage(8)

	// no alignment requirements
	img.Write(3, access.Word, 0xdeadbeef)
	test.ExpectEquality(t, img.Read(3, access.Word), 0xdeadbeef)
	test.ExpectEquality(t, img.Read(3, access.Byte), 0xef)
	test.ExpectEquality(t, img.Read(6, access.Byte), 0xde)
}

func TestByteOrder(t *testing.T) {
	img := memory.NewImage(4)
	img.SetByteOrder(binary.BigEndian)
	img.Write(0, access.Word, 0x11223344)
	test.ExpectEquality(t, img.Read(0, access.Byte), 0x11)
	test.ExpectEquality(t, img.Bytes()[3], uint8(0x44))
}

func TestReset(t *testing.T) {
	img := memory.NewImage(4)
	img.Write(0, access.Word, 0xffffffff)
	img.Reset()
	test.ExpectEquality(t, img.Read(0, access.Word), 0)
}

func TestOutOfRange(t *testing.T) {
	img := memory.NewImage(4)

	// last valid word
	img.Write(0, access.Word, 1)

	test.ExpectPanic(t, func() {
		img.Read(1, access.Word)
	})
	test.ExpectPanic(t, func() {
		img.Write(4, access.Byte, 0)
	})
	test.ExpectPanic(t, func() {
		img.Read(0xffffffff, access.HalfWord)
	})
}

func TestHexDump(t *testing.T) {
	img := memory.NewImage(18)
	img.Write(16, access.HalfWord, 0x0201)
	test.ExpectEquality(t, img.String(),
		"00000000: 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00\n"+
			"00000010: 01 02\n")
}
