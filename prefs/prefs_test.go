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

package prefs_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/armexclusive/prefs"
	"github.com/jetsetilly/armexclusive/test"
)

func TestBool(t *testing.T) {
	var v prefs.Bool
	test.ExpectEquality(t, v.String(), "false")

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectEquality(t, v.Get().(bool), true)

	test.ExpectSuccess(t, v.Set("TRUE"))
	test.ExpectEquality(t, v.Get().(bool), true)

	test.ExpectSuccess(t, v.Set("foo"))
	test.ExpectEquality(t, v.Get().(bool), false)

	test.ExpectFailure(t, v.Set(10))
}

func TestInt(t *testing.T) {
	var v prefs.Int
	test.ExpectEquality(t, v.String(), "0")

	test.ExpectSuccess(t, v.Set(11))
	test.ExpectEquality(t, v.Get().(int), 11)

	test.ExpectSuccess(t, v.Set("0x10"))
	test.ExpectEquality(t, v.Get().(int), 16)

	test.ExpectFailure(t, v.Set("foo"))
	test.ExpectEquality(t, v.Get().(int), 16)

	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.Get().(int), 0)
}

func TestHooks(t *testing.T) {
	var v prefs.Int
	var post int

	v.SetHookPre(func(nv prefs.Value) error {
		if nv.(int) < 0 {
			return fmt.Errorf("negative")
		}
		return nil
	})
	v.SetHookPost(func(nv prefs.Value) error {
		post = nv.(int)
		return nil
	})

	test.ExpectSuccess(t, v.Set(5))
	test.ExpectEquality(t, post, 5)

	// pre-hook prevents the value from changing
	test.ExpectFailure(t, v.Set(-1))
	test.ExpectEquality(t, v.Get().(int), 5)
	test.ExpectEquality(t, post, 5)
}

func TestGroup(t *testing.T) {
	var a prefs.Int
	var b prefs.Bool

	grp := prefs.NewGroup()
	test.ExpectSuccess(t, grp.Add("foo.a", &a))
	test.ExpectSuccess(t, grp.Add("foo.b", &b))
	test.ExpectFailure(t, grp.Add("foo.a", &a))

	test.ExpectSuccess(t, grp.Set("foo.a", 3))
	test.ExpectFailure(t, grp.Set("foo.c", 3))
	test.ExpectEquality(t, grp.String(), "foo.a::3; foo.b::false")

	prefs.PushCommandLineStack("foo.b::true; bar::baz")
	test.ExpectSuccess(t, grp.ApplyCommandLine())
	test.ExpectEquality(t, b.Get().(bool), true)

	// unused entries remain on the stack
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "bar::baz")
}

func TestString(t *testing.T) {
	var v prefs.String
	test.ExpectEquality(t, v.String(), "")

	test.ExpectSuccess(t, v.Set("little"))
	test.ExpectEquality(t, v.Get().(string), "little")

	test.ExpectFailure(t, v.Set(10))
	test.ExpectEquality(t, v.String(), "little")

	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.String(), "")
}
