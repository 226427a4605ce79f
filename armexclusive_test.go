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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/armexclusive/test"
)

func TestLaunchRun(t *testing.T) {
	tw := &test.Writer{}
	test.ExpectEquality(t, launch(tw, []string{"run", "-stats"}), exitOK)
	test.ExpectEquality(t, strings.Contains(tw.String(), "pass: competing store exclusive"), true)
	test.ExpectEquality(t, strings.Contains(tw.String(), "armexclusive_monitor_invalidations_total"), true)
}

func TestLaunchDefaultMode(t *testing.T) {
	tw := &test.Writer{}
	test.ExpectEquality(t, launch(tw, []string{"-prefs", "monitor.granuleBits::3"}), exitOK)
	test.ExpectEquality(t, strings.Contains(tw.String(), "FAIL"), false)
}

func TestLaunchScenario(t *testing.T) {
	tw := &test.Writer{}
	dot := filepath.Join(t.TempDir(), "monitor.dot")
	test.ExpectEquality(t, launch(tw, []string{"scenario", "-dot", dot, "scenario/testdata/counter.yaml"}), exitOK)
	test.ExpectEquality(t, strings.Contains(tw.String(), "pass: counter"), true)

	b, err := os.ReadFile(dot)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, strings.HasPrefix(string(b), "digraph"), true)

	tw.Clear()
	test.ExpectEquality(t, launch(tw, []string{"scenario"}), exitModeError)
}

func TestLaunchFailure(t *testing.T) {
	// every store exclusive fails spuriously
	tw := &test.Writer{}
	test.ExpectEquality(t, launch(tw, []string{"-prefs", "monitor.spuriousInterval::1", "run", "-quiet"}), exitFailed)
	test.ExpectEquality(t, strings.Contains(tw.String(), "FAIL: success"), true)
}

func TestLaunchStress(t *testing.T) {
	tw := &test.Writer{}
	test.ExpectEquality(t, launch(tw, []string{"stress", "-cores", "2", "-increments", "50", "-seed", "7"}), exitOK)
	test.ExpectEquality(t, strings.Contains(tw.String(), "counter 100"), true)
}

func TestLaunchErrors(t *testing.T) {
	tw := &test.Writer{}
	test.ExpectEquality(t, launch(tw, []string{"-bogus"}), exitParseError)
	test.ExpectEquality(t, launch(tw, []string{"-prefs", "monitor.granuleBits::1"}), exitParseError)
	test.ExpectEquality(t, launch(tw, []string{"-help"}), exitOK)
}

func TestLaunchVersion(t *testing.T) {
	tw := &test.Writer{}
	test.ExpectEquality(t, launch(tw, []string{"-version"}), exitOK)
	test.ExpectEquality(t, strings.HasPrefix(tw.String(), "armexclusive "), true)
}
