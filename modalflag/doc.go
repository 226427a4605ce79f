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

// Package modalflag wraps the flag package of the standard library so that a
// command line can be divided into modes, each with its own flags.
//
// Arguments are given with NewArgs() and parsed one layer at a time with
// Parse(). Before each Parse() call the flags and sub-modes for that layer
// are added. For example:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "SCENARIO", "STRESS")
//	log := md.AddBool("log", false, "echo log to stdout")
//
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "SCENARIO":
//		md.NewMode()
//		step := md.AddBool("step", false, "step through scenario")
//		...
//	}
//
// The first sub-mode is the default and is selected if the next argument does
// not name a sub-mode. Sub-mode names are case insensitive.
//
// The -help flag prints the flags and sub-modes for the current layer along
// with any text given to AdditionalHelp().
package modalflag
