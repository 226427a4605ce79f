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

// Package memory implements the memory image shared by all emulated cores.
//
// The image is a flat, byte addressable buffer. There are no alignment
// requirements and no memory map. Values are stored in little-endian order
// by default, matching the ARM cores being emulated, but the byte order can
// be changed with SetByteOrder().
//
// The image does no locking of its own. Serialisation of accesses is the
// responsibility of the caller. In practice this is the lock in the global
// exclusive monitor, which is held for the duration of every access made by a
// core.
package memory

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/jetsetilly/armexclusive/hardware/access"
	"github.com/jetsetilly/armexclusive/logger"
)

// Image is the memory shared by all cores in an emulation.
type Image struct {
	data []uint8

	// the binary interface for reading and writing multi-byte values.
	// defaults to LittleEndian
	byteOrder binary.ByteOrder
}

// NewImage is the preferred method of initialisation for the Image type.
func NewImage(size int) *Image {
	return &Image{
		data:      make([]uint8, size),
		byteOrder: binary.LittleEndian,
	}
}

// SetByteOrder changes the byte order used for multi-byte values.
func (img *Image) SetByteOrder(o binary.ByteOrder) {
	img.byteOrder = o
}

// Len returns the extent of the image in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

// Reset sets every byte in the image to zero.
func (img *Image) Reset() {
	clear(img.data)
}

// Bytes returns the underlying memory. Changes to the returned slice are
// changes to the image.
func (img *Image) Bytes() []uint8 {
	return img.data
}

// the image does not return errors for addresses outside of the image. the
// caller is trusted to generate valid addresses and an address outside the
// image is a programming error
func (img *Image) boundsCheck(event string, addr uint32, size access.Size) {
	n := size.Bytes()
	if n == 0 {
		panic(fmt.Sprintf("memory: %s: invalid access size (%v)", event, size))
	}
	if uint64(addr)+uint64(n) > uint64(len(img.data)) {
		logger.Logf(logger.Allow, "memory", "%s: address %08x outside of image (%d bytes)", event, addr, len(img.data))
		panic(fmt.Sprintf("memory: %s: address %08x outside of image", event, addr))
	}
}

// Read value of the given size from address. Values narrower than 32bits are
// zero extended.
func (img *Image) Read(addr uint32, size access.Size) uint32 {
	img.boundsCheck("read", addr, size)

	switch size {
	case access.Byte:
		return uint32(img.data[addr])
	case access.HalfWord:
		return uint32(img.byteOrder.Uint16(img.data[addr:]))
	}
	return img.byteOrder.Uint32(img.data[addr:])
}

// Write value of the given size to address. Values are truncated to the
// size of the access.
func (img *Image) Write(addr uint32, size access.Size, value uint32) {
	img.boundsCheck("write", addr, size)

	switch size {
	case access.Byte:
		img.data[addr] = uint8(value)
	case access.HalfWord:
		img.byteOrder.PutUint16(img.data[addr:], uint16(value))
	default:
		img.byteOrder.PutUint32(img.data[addr:], value)
	}
}

// String returns a hex dump of the image. Sixteen bytes per line.
func (img *Image) String() string {
	s := strings.Builder{}
	for i := 0; i < len(img.data); i += 16 {
		end := min(i+16, len(img.data))
		s.WriteString(fmt.Sprintf("%08x:", i))
		for _, b := range img.data[i:end] {
			s.WriteString(fmt.Sprintf(" %02x", b))
		}
		s.WriteString("\n")
	}
	return s.String()
}
