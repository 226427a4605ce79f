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

// Package access describes a single memory access made by an emulated core.
// An Access is the unit of work consumed by the dispatcher in the core
// package. How accesses are produced (by an instruction decoder, a scenario
// file, a test) is of no concern to this package.
package access

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/armexclusive/curated"
)

// Kind of memory access.
type Kind int

// List of valid Kind values.
const (
	Load Kind = iota
	LoadExclusive
	Store
	StoreExclusive
)

func (k Kind) String() string {
	switch k {
	case Load:
		return "ldr"
	case LoadExclusive:
		return "ldrex"
	case Store:
		return "str"
	case StoreExclusive:
		return "strex"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsStore returns true if the access kind writes to memory.
func (k Kind) IsStore() bool {
	return k == Store || k == StoreExclusive
}

// Size of memory access.
type Size int

// List of valid Size values.
const (
	Byte Size = iota
	HalfWord
	Word
)

// Bytes returns the number of bytes covered by an access of the size. Returns
// zero for an invalid size.
func (s Size) Bytes() uint32 {
	switch s {
	case Byte:
		return 1
	case HalfWord:
		return 2
	case Word:
		return 4
	}
	return 0
}

// Suffix returns the mnemonic suffix used by ARM for the size. Word accesses
// have no suffix.
func (s Size) Suffix() string {
	switch s {
	case Byte:
		return "b"
	case HalfWord:
		return "h"
	}
	return ""
}

func (s Size) String() string {
	switch s {
	case Byte:
		return "byte"
	case HalfWord:
		return "halfword"
	case Word:
		return "word"
	}
	return fmt.Sprintf("size(%d)", int(s))
}

// Access is an immutable description of a single memory access. Value is only
// meaningful for Store and StoreExclusive kinds, as indicated by HasValue.
//
// Access values should be created with one of the New*() functions, which
// guarantee that HasValue is set correctly for the kind.
type Access struct {
	Kind     Kind
	Size     Size
	Address  uint32
	Value    uint32
	HasValue bool
}

// NewLoad creates an ordinary load access.
func NewLoad(size Size, addr uint32) Access {
	return Access{Kind: Load, Size: size, Address: addr}
}

// NewLoadExclusive creates a load-exclusive access.
func NewLoadExclusive(size Size, addr uint32) Access {
	return Access{Kind: LoadExclusive, Size: size, Address: addr}
}

// NewStore creates an ordinary store access.
func NewStore(size Size, addr uint32, value uint32) Access {
	return Access{Kind: Store, Size: size, Address: addr, Value: value, HasValue: true}
}

// NewStoreExclusive creates a store-exclusive access.
func NewStoreExclusive(size Size, addr uint32, value uint32) Access {
	return Access{Kind: StoreExclusive, Size: size, Address: addr, Value: value, HasValue: true}
}

// Sentinal error patterns returned by Valid().
const (
	InvalidKind     = "access: invalid kind (%v)"
	InvalidSize     = "access: invalid size (%v)"
	MissingValue    = "access: %s requires a value"
	UnexpectedValue = "access: %s does not take a value"
)

// Valid returns an error if the access breaks the contract of the access
// type. The dispatcher treats an invalid access as a programming error.
func (a Access) Valid() error {
	switch a.Kind {
	case Load, LoadExclusive, Store, StoreExclusive:
	default:
		return curated.Errorf(InvalidKind, a.Kind)
	}

	if a.Size.Bytes() == 0 {
		return curated.Errorf(InvalidSize, a.Size)
	}

	if a.Kind.IsStore() {
		if !a.HasValue {
			return curated.Errorf(MissingValue, a.Kind)
		}
	} else if a.HasValue {
		return curated.Errorf(UnexpectedValue, a.Kind)
	}

	return nil
}

// String returns the access as an ARM style mnemonic. For example:
//
//	ldrexh [0x00000004]
//	str [0x00000000], 0x00000007
func (a Access) String() string {
	s := strings.Builder{}
	s.WriteString(a.Kind.String())
	s.WriteString(a.Size.Suffix())
	s.WriteString(fmt.Sprintf(" [%#08x]", a.Address))
	if a.HasValue {
		s.WriteString(fmt.Sprintf(", %#08x", a.Value))
	}
	return s.String()
}

// ParseKind converts a mnemonic to a Kind. The mnemonic may include a size
// suffix, in which case the size is also returned. For example, "ldrexh"
// returns LoadExclusive and HalfWord. Mnemonics without a suffix return Word.
//
// The longer mnemonics are checked first so that "strex" is not mistaken for
// "str" with an unknown suffix.
func ParseKind(mnemonic string) (Kind, Size, error) {
	m := strings.ToLower(strings.TrimSpace(mnemonic))

	for _, k := range []Kind{LoadExclusive, StoreExclusive, Load, Store} {
		suffix, ok := strings.CutPrefix(m, k.String())
		if !ok {
			continue
		}
		switch suffix {
		case "":
			return k, Word, nil
		case "b":
			return k, Byte, nil
		case "h":
			return k, HalfWord, nil
		}
	}

	return 0, 0, curated.Errorf(InvalidKind, mnemonic)
}

// ParseSize converts a size name to a Size. Both long and short names are
// accepted, case insensitive: byte/b, halfword/h, word/w.
func ParseSize(name string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "byte", "b":
		return Byte, nil
	case "halfword", "half", "h":
		return HalfWord, nil
	case "word", "w":
		return Word, nil
	}
	return 0, curated.Errorf(InvalidSize, name)
}
