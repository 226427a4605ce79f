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

package prefs

import (
	"fmt"
	"sort"
	"strings"
)

// Group is a collection of named preference values. Values are added to the
// group with a key and can then be set by key or in bulk from the top of the
// command line stack.
type Group struct {
	entries map[string]pref
}

// NewGroup is the preferred method of initialisation for the Group type.
func NewGroup() *Group {
	return &Group{
		entries: make(map[string]pref),
	}
}

// String returns every key/value pair in the group in the same format as
// accepted by PushCommandLineStack(). Keys are sorted.
func (grp *Group) String() string {
	keys := make([]string, 0, len(grp.entries))
	for k := range grp.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s::%s; ", k, grp.entries[k].String()))
	}
	return strings.TrimSuffix(s.String(), "; ")
}

// Add preference value to group. Keys must be unique.
func (grp *Group) Add(key string, p pref) error {
	if _, ok := grp.entries[key]; ok {
		return fmt.Errorf("prefs: already added %s", key)
	}
	grp.entries[key] = p
	return nil
}

// Set the value of a preference by key.
func (grp *Group) Set(key string, v Value) error {
	p, ok := grp.entries[key]
	if !ok {
		return fmt.Errorf("prefs: no such preference %s", key)
	}
	if err := p.Set(v); err != nil {
		return fmt.Errorf("prefs: %s: %w", key, err)
	}
	return nil
}

// ApplyCommandLine sets any values in the group that have been specified at
// the top of the command line stack. Values that are applied are removed from
// the stack.
func (grp *Group) ApplyCommandLine() error {
	for k, p := range grp.entries {
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}
	return nil
}
