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

package scenario

// symbols used by the builtin scenarios. the word at w is initialised to 1.
// dummy is the next word in memory
const (
	builtinW     = 0x10
	builtinDummy = builtinW + 4
)

func builtin(name string, description string, steps []Step, final uint32) Scenario {
	return Scenario{
		Name:        name,
		Description: description,
		Memory:      DefaultMemory,
		Symbols: map[string]uint32{
			"w":     builtinW,
			"dummy": builtinDummy,
		},
		Initial: []Cell{{Address: "w", Value: Num(1)}},
		Steps:   steps,
		Check:   []Cell{{Address: "w", Value: Num(final)}},
	}
}

// Builtin returns the reference scenarios for the exclusive monitor. The
// first five use a single core and the remainder use two.
func Builtin() []Scenario {
	return []Scenario{
		builtin("address mismatch",
			"a second load exclusive replaces the reservation",
			[]Step{
				{Op: "ldrex", Address: "w"},
				{Op: "ldrex", Address: "dummy"},
				{Op: "strex", Address: "w", Value: "7", Expect: "1"},
			}, 1),

		builtin("size mismatch",
			"store exclusive must be the same size as the load exclusive",
			[]Step{
				{Op: "ldrex", Address: "w"},
				{Op: "strexh", Address: "w", Value: "7", Expect: "1"},
			}, 1),

		builtin("load invalidates",
			"an ordinary load clears the reservation",
			[]Step{
				{Op: "ldrex", Address: "w"},
				{Op: "ldr", Address: "dummy"},
				{Op: "strex", Address: "w", Value: "7", Expect: "1"},
			}, 1),

		builtin("store invalidates",
			"an ordinary store clears the reservation",
			[]Step{
				{Op: "ldrex", Address: "w"},
				{Op: "str", Address: "dummy", Value: "0"},
				{Op: "strex", Address: "w", Value: "7", Expect: "1"},
			}, 1),

		builtin("success",
			"store exclusive with nothing in between",
			[]Step{
				{Op: "ldrex", Address: "w", Expect: "1"},
				{Op: "strex", Address: "w", Value: "7", Expect: "0"},
				{Op: "ldr", Address: "w", Expect: "7"},
			}, 7),

		builtin("competing store exclusive",
			"the first core to store exclusive wins",
			[]Step{
				{Core: "B", Op: "ldrex", Address: "w"},
				{Core: "A", Op: "ldrex", Address: "w"},
				{Core: "B", Op: "strex", Address: "w", Value: "5", Expect: "0"},
				{Core: "A", Op: "strex", Address: "w", Value: "7", Expect: "1"},
			}, 5),

		builtin("neighbouring store exclusive",
			"a store exclusive to the same reservation granule invalidates",
			[]Step{
				{Core: "A", Op: "ldrex", Address: "w"},
				{Core: "B", Op: "ldrex", Address: "dummy"},
				{Core: "B", Op: "strex", Address: "dummy", Value: "5", Expect: "0"},
				{Core: "A", Op: "strex", Address: "w", Value: "7", Expect: "1"},
			}, 1),

		builtin("neighbouring store",
			"an ordinary store by another core invalidates",
			[]Step{
				{Core: "A", Op: "ldrex", Address: "w"},
				{Core: "B", Op: "str", Address: "dummy", Value: "5"},
				{Core: "A", Op: "strex", Address: "w", Value: "7", Expect: "1"},
			}, 1),
	}
}
