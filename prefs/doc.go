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

// Package prefs facilitates the handling of configuration values. Values are
// typed (Bool, Int) and can have hooks attached that run before and after a
// value changes. A pre-hook can reject a new value by returning an error.
//
// Values are collected into a Group under a key. Groups can be populated from
// the command line stack, which is filled from the -prefs command line flag.
package prefs
