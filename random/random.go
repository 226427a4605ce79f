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

package random

import (
	"math/rand"
	"time"
)

// Random creates per-core sources of random numbers from a single seed.
type Random struct {
	seed int64
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{seed: seed}
}

// Seed returns the seed in use. Never zero.
func (rnd *Random) Seed() int64 {
	return rnd.seed
}

// Stream returns a source of random numbers for the core with the ID. The
// returned value is not safe for concurrent use and should only be used by
// the core it was created for.
func (rnd *Random) Stream(id int) *Stream {
	// spread the ID across the seed so that neighbouring IDs produce
	// unrelated sequences
	s := rnd.seed ^ (int64(id+1) * 0x5851f42d4c957f2d)
	return &Stream{rng: rand.New(rand.NewSource(s))}
}

// Stream is the source of random numbers for a single core.
type Stream struct {
	rng *rand.Rand
}

// Intn returns a number in the range [0, n). Returns zero if n is less than
// one.
func (s *Stream) Intn(n int) int {
	if n < 1 {
		return 0
	}
	return s.rng.Intn(n)
}
