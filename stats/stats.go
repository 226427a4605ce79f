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

// Package stats counts the activity of the exclusive monitor. Counters are
// prometheus metrics registered with a private registry so that more than one
// Stats instance can exist at once.
package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jetsetilly/armexclusive/curated"
	"github.com/jetsetilly/armexclusive/hardware/access"
	"github.com/jetsetilly/armexclusive/hardware/core"
	"github.com/jetsetilly/armexclusive/hardware/monitor"
)

const namespace = "armexclusive"

// Sentinal error patterns.
const (
	SummaryError = "stats: %v"
)

// Stats implements the core.Observer interface.
type Stats struct {
	registry *prometheus.Registry

	// accesses by kind and size
	Accesses *prometheus.CounterVec

	// store exclusive outcomes. labelled "success" or "failure"
	StoreExclusive *prometheus.CounterVec

	// reservations invalidated by another core
	Invalidations prometheus.Counter
}

// NewStats is the preferred method of initialisation for the Stats type.
func NewStats() *Stats {
	reg := prometheus.NewRegistry()
	fact := promauto.With(reg)

	return &Stats{
		registry: reg,
		Accesses: fact.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "core",
			Name:      "accesses_total",
			Help:      "Memory accesses by kind and size",
		}, []string{"kind", "size"}),
		StoreExclusive: fact.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "store_exclusive_total",
			Help:      "Store exclusive outcomes",
		}, []string{"status"}),
		Invalidations: fact.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "invalidations_total",
			Help:      "Reservations invalidated by a store from another core",
		}),
	}
}

// Registry returns the registry the counters are registered with.
func (s *Stats) Registry() *prometheus.Registry {
	return s.registry
}

// Observe implements the core.Observer interface.
func (s *Stats) Observe(_ int, acc access.Access, res core.Result) {
	s.Accesses.WithLabelValues(acc.Kind.String(), acc.Size.String()).Inc()
	if acc.Kind == access.StoreExclusive {
		s.StoreExclusive.WithLabelValues(res.Status().String()).Inc()
	}
}

// Invalidated implements the core.Observer interface.
func (s *Stats) Invalidated(_ int, _ monitor.Invalidation) {
	s.Invalidations.Inc()
}

// Summary writes the value of every non-zero counter to the io.Writer. One
// counter per line, sorted by name.
func (s *Stats) Summary(w io.Writer) error {
	families, err := s.registry.Gather()
	if err != nil {
		return curated.Errorf(SummaryError, err)
	}

	var lines []string
	for _, f := range families {
		for _, m := range f.GetMetric() {
			v := m.GetCounter().GetValue()
			if v == 0 {
				continue
			}
			var labels []string
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%s", l.GetName(), l.GetValue()))
			}
			name := f.GetName()
			if len(labels) > 0 {
				name = fmt.Sprintf("%s{%s}", name, strings.Join(labels, ","))
			}
			lines = append(lines, fmt.Sprintf("%s %.0f", name, v))
		}
	}
	sort.Strings(lines)

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return curated.Errorf(SummaryError, err)
		}
	}

	return nil
}
