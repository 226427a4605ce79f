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

package random_test

import (
	"testing"

	"github.com/jetsetilly/armexclusive/random"
	"github.com/jetsetilly/armexclusive/test"
)

func sequence(s *random.Stream, n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = s.Intn(1000)
	}
	return seq
}

func TestStreams(t *testing.T) {
	a := random.NewRandom(12345)
	b := random.NewRandom(12345)
	test.ExpectEquality(t, a.Seed(), 12345)

	// same seed and ID produces the same sequence whatever the order of
	// creation
	b1 := b.Stream(1)
	b0 := b.Stream(0)
	seqA0 := sequence(a.Stream(0), 20)
	seqA1 := sequence(a.Stream(1), 20)
	seqB0 := sequence(b0, 20)
	seqB1 := sequence(b1, 20)

	var diff bool
	for i := range seqA0 {
		test.ExpectEquality(t, seqA0[i], seqB0[i])
		test.ExpectEquality(t, seqA1[i], seqB1[i])
		diff = diff || seqA0[i] != seqA1[i]
	}
	test.ExpectEquality(t, diff, true)
}

func TestZeroSeed(t *testing.T) {
	r := random.NewRandom(0)
	test.ExpectInequality(t, r.Seed(), 0)
	test.ExpectEquality(t, r.Stream(0).Intn(0), 0)
}
