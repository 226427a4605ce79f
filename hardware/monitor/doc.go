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

// Package monitor implements the ARM exclusive monitors used by LDREX and
// STREX.
//
// Each core has a Local monitor which records the exact address and size of
// its most recent load exclusive. The Global monitor is shared by all cores
// and records, for each core, the reservation granule that the core has
// reserved.
//
// A store exclusive succeeds only if both monitors agree. The local monitor
// requires an exact match. The global monitor requires that no other core
// has stored to the same granule since the load exclusive.
//
// The global monitor never changes a Local monitor directly. When a store by
// one core invalidates the reservation of another core, an Invalidation is
// posted to the other core's mailbox. The owning core drains its mailbox at
// the start of every access and clears its Local monitor accordingly. Because
// mailboxes are drained with the global lock held, a core never sees a local
// reservation that the global monitor has already cancelled.
package monitor
