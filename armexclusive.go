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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jetsetilly/armexclusive/curated"
	"github.com/jetsetilly/armexclusive/hardware/preferences"
	"github.com/jetsetilly/armexclusive/logger"
	"github.com/jetsetilly/armexclusive/modalflag"
	"github.com/jetsetilly/armexclusive/prefs"
	"github.com/jetsetilly/armexclusive/scenario"
	"github.com/jetsetilly/armexclusive/stats"
	"github.com/jetsetilly/armexclusive/statsview"
	"github.com/jetsetilly/armexclusive/stress"
	"github.com/jetsetilly/armexclusive/terminal"
	"github.com/jetsetilly/armexclusive/version"
)

// exit values.
const (
	exitOK         = 0
	exitParseError = 10
	exitModeError  = 20
	exitFailed     = 30
)

// errFailed is returned by a mode when the emulation ran correctly but one or
// more expectations were not met.
const errFailed = "%d scenarios failed"

func main() {
	os.Exit(launch(os.Stdout, os.Args[1:]))
}

func launch(output io.Writer, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "SCENARIO", "STRESS")
	md.AdditionalHelp("RUN runs the builtin scenarios. SCENARIO runs scenarios from YAML files.\nSTRESS increments a shared counter from many cores in parallel.")

	log := md.AddBool("log", false, "echo log to stdout")
	prefsString := md.AddString("prefs", "", "preferences (eg. \"monitor.granuleBits::3; monitor.spuriousInterval::5\")")
	view := md.AddString("statsview", "", "run statsview server on address (eg. localhost:12600)")
	showVersion := md.AddBool("version", false, "print version information and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	if *showVersion {
		fmt.Fprintln(output, version.String())
		return exitOK
	}

	if *log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}

	if *view != "" {
		statsview.Launch(output, *view)
	}

	prefs.PushCommandLineStack(*prefsString)
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			fmt.Fprintf(output, "* unused preferences: %s\n", unused)
		}
	}()

	hw, err := preferences.NewPreferences()
	if err != nil {
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, output, hw)

	case "SCENARIO":
		err = runFiles(md, output, hw)

	case "STRESS":
		err = runStress(md, output, hw)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		if curated.Is(err, errFailed) || curated.Is(err, stress.LostIncrement) {
			return exitFailed
		}
		return exitModeError
	}

	return exitOK
}

// flags shared by the RUN and SCENARIO modes
type scenarioFlags struct {
	dot   *string
	step  *bool
	stats *bool
	quiet *bool
}

func addScenarioFlags(md *modalflag.Modes) scenarioFlags {
	return scenarioFlags{
		dot:   md.AddString("dot", "", "write graphviz rendering of the global monitor to file"),
		step:  md.AddBool("step", false, "step through scenarios one access at a time"),
		stats: md.AddBool("stats", false, "print monitor statistics"),
		quiet: md.AddBool("quiet", false, "only report failing scenarios"),
	}
}

func run(md *modalflag.Modes, output io.Writer, hw *preferences.Preferences) error {
	md.NewMode()
	flgs := addScenarioFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("%s mode takes no arguments", md)
	}

	return runScenarios(output, scenario.Builtin(), flgs, hw)
}

func runFiles(md *modalflag.Modes, output io.Writer, hw *preferences.Preferences) error {
	md.NewMode()
	flgs := addScenarioFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("scenario file required for %s mode", md)
	}

	var scenarios []scenario.Scenario
	for _, path := range md.RemainingArgs() {
		s, err := scenario.LoadFile(path)
		if err != nil {
			return err
		}
		scenarios = append(scenarios, s...)
	}

	return runScenarios(output, scenarios, flgs, hw)
}

func runScenarios(output io.Writer, scenarios []scenario.Scenario, flgs scenarioFlags, hw *preferences.Preferences) error {
	opts := []scenario.Option{
		scenario.WithGranule(hw.GranuleBits.Get().(int)),
		scenario.WithSpuriousInterval(hw.SpuriousInterval.Get().(int)),
		scenario.WithByteOrder(hw.Order()),
		scenario.WithTrace(logger.Conditional(hw.Trace.Get().(bool))),
	}

	var st *stats.Stats
	if *flgs.stats {
		st = stats.NewStats()
		opts = append(opts, scenario.WithObserver(st))
	}

	if *flgs.dot != "" {
		f, err := os.Create(*flgs.dot)
		if err != nil {
			return err
		}
		defer f.Close()
		opts = append(opts, scenario.WithDot(f))
	}

	if *flgs.step {
		term, err := terminal.NewTerminal(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		defer term.CleanUp()

		stepping := true
		opts = append(opts, scenario.WithStepHook(func(step int, act scenario.Action) {
			if !stepping {
				return
			}
			k, err := term.Key(fmt.Sprintf("%2d %s [any key to step, c to continue] ", step, act))
			if err != nil || k == 'c' {
				stepping = false
			}
		}))
	}

	var failed int
	for _, s := range scenarios {
		if s.Memory == 0 {
			s.Memory = hw.MemorySize.Get().(int)
		}

		rep, err := scenario.Run(s, opts...)
		if err != nil && !curated.Is(err, scenario.Failed) {
			return err
		}
		if !rep.Passed() {
			failed++
			rep.Write(output)
		} else if !*flgs.quiet {
			rep.Write(output)
		}
	}

	if st != nil {
		if err := st.Summary(output); err != nil {
			return err
		}
	}

	if failed > 0 {
		return curated.Errorf(errFailed, failed)
	}

	return nil
}

func runStress(md *modalflag.Modes, output io.Writer, hw *preferences.Preferences) error {
	md.NewMode()

	def := stress.DefaultConfig()
	cores := md.AddInt("cores", def.Cores, "number of cores running in parallel")
	increments := md.AddInt("increments", def.Increments, "number of increments made by each core")
	interfere := md.AddBool("interfere", def.Interfere, "make an ordinary store to a neighbouring word between increments")
	jitter := md.AddInt("jitter", def.Jitter, "maximum number of scheduler yields between load and store exclusive")
	seed := md.AddInt("seed", 0, "seed for random jitter (0 for a time based seed)")
	printStats := md.AddBool("stats", false, "print monitor statistics")
	verbose := md.AddBool("verbose", false, "log every retry")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cfg := def
	cfg.Cores = *cores
	cfg.Increments = *increments
	cfg.Interfere = *interfere
	cfg.Jitter = *jitter
	cfg.Seed = int64(*seed)
	cfg.Verbose = *verbose
	cfg.GranuleBits = hw.GranuleBits.Get().(int)
	cfg.SpuriousInterval = hw.SpuriousInterval.Get().(int)

	var st *stats.Stats
	if *printStats {
		st = stats.NewStats()
		cfg.Observer = st
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := stress.Run(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(output, res)

	if st != nil {
		return st.Summary(output)
	}

	return nil
}
