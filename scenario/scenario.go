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

// Package scenario describes sequences of memory accesses made by one or more
// cores and runs them against the exclusive monitor.
//
// Scenarios can be created in code or loaded from YAML. For example:
//
//	name: competing store exclusive
//	memory: 64
//	symbols:
//	  w: 0x10
//	initial:
//	  - {address: w, value: 1}
//	steps:
//	  - {core: B, op: ldrex, address: w}
//	  - {core: A, op: ldrex, address: w}
//	  - {core: B, op: strex, address: w, value: 5, expect: 0}
//	  - {core: A, op: strex, address: w, value: 7, expect: 1}
//	check:
//	  - {address: w, value: 5}
//
// Core A is the controller and runs on the goroutine that called Run(). Every
// other core is driven by a harness.Worker.
package scenario

import (
	"errors"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jetsetilly/armexclusive/curated"
	"github.com/jetsetilly/armexclusive/hardware/access"
)

// Sentinal error patterns.
const (
	LoadError      = "scenario: load: %v"
	FileError      = "scenario: %s: %v"
	UnknownSymbol  = "scenario: unknown symbol (%s)"
	InvalidOperand = "scenario: invalid operand (%s)"
	InvalidStep    = "scenario: step %d: %v"
	InvalidCell    = "scenario: cell %d: %v"
)

// Controller is the name of the core that runs on the calling goroutine.
const Controller = "A"

// DefaultMemory is the size of the memory image used if a scenario does not
// specify one.
const DefaultMemory = 64

// Operand is a number or a symbol name. Numbers can be in any base accepted
// by strconv.ParseUint() with a base of zero.
type Operand string

// UnmarshalYAML implements the yaml.Unmarshaler interface. The text of the
// scalar is kept as it is so that hexadecimal numbers and symbol names are
// treated the same way.
func (o *Operand) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return curated.Errorf(InvalidOperand, value.Tag)
	}
	*o = Operand(value.Value)
	return nil
}

// Num returns an Operand for a number.
func Num(n uint32) Operand {
	return Operand(strconv.FormatUint(uint64(n), 10))
}

// resolve the operand using the symbol table
func (o Operand) resolve(symbols map[string]uint32) (uint32, error) {
	s := strings.TrimSpace(string(o))
	if v, ok := symbols[s]; ok {
		return v, nil
	}
	if s == "" {
		return 0, curated.Errorf(InvalidOperand, "empty")
	}
	if c := s[0]; c < '0' || c > '9' {
		return 0, curated.Errorf(UnknownSymbol, s)
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, curated.Errorf(InvalidOperand, s)
	}
	return uint32(v), nil
}

// Cell is a value in memory. Used to initialise memory and to check memory
// at the end of a scenario. Size defaults to word.
type Cell struct {
	Address Operand `yaml:"address"`
	Size    string  `yaml:"size,omitempty"`
	Value   Operand `yaml:"value"`
}

// Step is a single access by a named core. Op is an ARM mnemonic, with an
// optional size suffix (eg. ldrexh). An explicit Size overrides the suffix.
// Expect is optional and is compared against the value of the result.
type Step struct {
	Core    string  `yaml:"core,omitempty"`
	Op      string  `yaml:"op"`
	Size    string  `yaml:"size,omitempty"`
	Address Operand `yaml:"address"`
	Value   Operand `yaml:"value,omitempty"`
	Expect  Operand `yaml:"expect,omitempty"`
}

// Scenario is a sequence of steps and the memory before and after.
type Scenario struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Memory      int               `yaml:"memory,omitempty"`
	GranuleBits int               `yaml:"granule,omitempty"`
	Symbols     map[string]uint32 `yaml:"symbols,omitempty"`
	Initial     []Cell            `yaml:"initial,omitempty"`
	Steps       []Step            `yaml:"steps"`
	Check       []Cell            `yaml:"check,omitempty"`
}

// Action is a resolved Step.
type Action struct {
	Core      string
	Access    access.Access
	Expect    uint32
	HasExpect bool
}

func (a Action) String() string {
	return a.Core + ": " + a.Access.String()
}

// resolved value of a Cell
type cell struct {
	address uint32
	size    access.Size
	value   uint32
}

func (c Cell) resolve(symbols map[string]uint32) (cell, error) {
	var r cell
	var err error

	r.size = access.Word
	if c.Size != "" {
		r.size, err = access.ParseSize(c.Size)
		if err != nil {
			return r, err
		}
	}
	r.address, err = c.Address.resolve(symbols)
	if err != nil {
		return r, err
	}
	r.value, err = c.Value.resolve(symbols)
	if err != nil {
		return r, err
	}
	return r, nil
}

func (s Step) resolve(symbols map[string]uint32) (Action, error) {
	act := Action{Core: s.Core}
	if act.Core == "" {
		act.Core = Controller
	}

	kind, size, err := access.ParseKind(s.Op)
	if err != nil {
		return act, err
	}
	if s.Size != "" {
		size, err = access.ParseSize(s.Size)
		if err != nil {
			return act, err
		}
	}

	addr, err := s.Address.resolve(symbols)
	if err != nil {
		return act, err
	}

	switch kind {
	case access.Load:
		act.Access = access.NewLoad(size, addr)
	case access.LoadExclusive:
		act.Access = access.NewLoadExclusive(size, addr)
	default:
		var value uint32
		value, err = s.Value.resolve(symbols)
		if err != nil {
			return act, err
		}
		if kind == access.Store {
			act.Access = access.NewStore(size, addr, value)
		} else {
			act.Access = access.NewStoreExclusive(size, addr, value)
		}
	}

	if s.Expect != "" {
		act.Expect, err = s.Expect.resolve(symbols)
		if err != nil {
			return act, err
		}
		act.HasExpect = true
	}

	return act, nil
}

// Actions returns the resolved steps of the scenario.
func (s Scenario) Actions() ([]Action, error) {
	acts := make([]Action, 0, len(s.Steps))
	for i, st := range s.Steps {
		act, err := st.resolve(s.Symbols)
		if err != nil {
			return nil, curated.Errorf(InvalidStep, i, err)
		}
		acts = append(acts, act)
	}
	return acts, nil
}

// Cores returns the names of the cores used in the scenario, with the
// controller first and the remainder in alphabetical order. The controller is
// always included.
func (s Scenario) Cores() []string {
	names := map[string]bool{}
	for _, st := range s.Steps {
		if st.Core != "" && st.Core != Controller {
			names[st.Core] = true
		}
	}
	cores := make([]string, 0, len(names)+1)
	for n := range names {
		cores = append(cores, n)
	}
	sort.Strings(cores)
	return append([]string{Controller}, cores...)
}

// Load one or more scenarios from YAML. Multiple scenarios are separated by
// the YAML document separator.
func Load(r io.Reader) ([]Scenario, error) {
	var scenarios []Scenario

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	for {
		var s Scenario
		err := dec.Decode(&s)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, curated.Errorf(LoadError, err)
		}
		scenarios = append(scenarios, s)
	}

	return scenarios, nil
}

// LoadFile is a convenience function for Load() with a named file. Scenarios
// without a name are named after the file.
func LoadFile(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}
	defer f.Close()

	scenarios, err := Load(f)
	if err != nil {
		return nil, curated.Errorf(FileError, path, err)
	}

	for i := range scenarios {
		if scenarios[i].Name == "" {
			scenarios[i].Name = path
		}
	}

	return scenarios, nil
}
