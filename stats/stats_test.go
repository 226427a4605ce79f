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

package stats_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jetsetilly/armexclusive/curated"
	"github.com/jetsetilly/armexclusive/logger"
	"github.com/jetsetilly/armexclusive/scenario"
	"github.com/jetsetilly/armexclusive/stats"
	"github.com/jetsetilly/armexclusive/test"
)

func TestStats(t *testing.T) {
	st := stats.NewStats()

	// competing store exclusive
	s := scenario.Builtin()[5]
	_, err := scenario.Run(s, scenario.WithObserver(st), scenario.WithMonitorLogging(logger.Deny))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, testutil.ToFloat64(st.Accesses.WithLabelValues("ldrex", "word")), 2.0)
	test.ExpectEquality(t, testutil.ToFloat64(st.Accesses.WithLabelValues("strex", "word")), 2.0)
	test.ExpectEquality(t, testutil.ToFloat64(st.StoreExclusive.WithLabelValues("success")), 1.0)
	test.ExpectEquality(t, testutil.ToFloat64(st.StoreExclusive.WithLabelValues("failure")), 1.0)
	test.ExpectEquality(t, testutil.ToFloat64(st.Invalidations), 1.0)

	w := &test.Writer{}
	test.ExpectSuccess(t, st.Summary(w))
	test.ExpectEquality(t, strings.Contains(w.String(), "armexclusive_monitor_invalidations_total 1"), true)
	test.ExpectEquality(t, strings.Contains(w.String(), "armexclusive_core_accesses_total{kind=ldrex,size=word} 2"), true)
}

func TestIndependent(t *testing.T) {
	a := stats.NewStats()
	b := stats.NewStats()
	a.Invalidations.Inc()
	test.ExpectEquality(t, testutil.ToFloat64(a.Invalidations), 1.0)
	test.ExpectEquality(t, testutil.ToFloat64(b.Invalidations), 0.0)
}

type brokenWriter struct{}

func (brokenWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("broken")
}

func TestSummaryError(t *testing.T) {
	st := stats.NewStats()
	st.Invalidations.Inc()

	err := st.Summary(brokenWriter{})
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Is(err, stats.SummaryError), true)

	// nothing to write is not an error
	test.ExpectSuccess(t, stats.NewStats().Summary(brokenWriter{}))
}
