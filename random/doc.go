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

// Package random provides reproducible sources of random numbers for
// emulated cores.
//
// Each core is given its own stream, derived from a shared seed and the ID
// of the core. The sequence for a core depends only on the seed and the ID,
// and not on the order in which cores ask for numbers, so a parallel run can
// be repeated with the same seed and each core will make the same choices.
//
// A seed of zero is replaced with a seed based on the current time. The
// chosen seed is available from Seed() so that a run can be repeated.
package random
