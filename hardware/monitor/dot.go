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

package monitor

import (
	"io"
	"sort"

	"github.com/bradleyjkemp/memviz"
)

// dotEntry and dotTable are plain copies of the table. memviz follows every
// pointer and field so the live types, with their lock and channels, are not
// suitable for rendering.
type dotEntry struct {
	Core     int
	Active   bool
	Tagged   uint32
	Pending  int
	Failures int
}

type dotTable struct {
	Granule    uint32
	Spurious   int
	Processors []*dotEntry
}

// WriteDot writes a graphviz rendering of the global reservation table to
// the io.Writer.
func (g *Global) WriteDot(w io.Writer) {
	g.crit.Lock()
	tbl := &dotTable{
		Granule:  g.Granule(),
		Spurious: g.spuriousInterval,
	}
	for _, p := range g.sortedProcessors() {
		tbl.Processors = append(tbl.Processors, &dotEntry{
			Core:     p.id,
			Active:   p.active,
			Tagged:   p.tagged,
			Pending:  len(p.mailbox),
			Failures: p.failureCounter,
		})
	}
	g.crit.Unlock()

	sort.Slice(tbl.Processors, func(i, j int) bool {
		return tbl.Processors[i].Core < tbl.Processors[j].Core
	})

	memviz.Map(w, tbl)
}
