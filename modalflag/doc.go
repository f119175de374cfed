// This file is part of rv32dis.
//
// rv32dis is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// rv32dis is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with rv32dis.  If not, see <https://www.gnu.org/licenses/>.

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package, with
// some differences. Instead of a single FlagSet, a Modes struct is
// instantiated and initialised with the argument list:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//
// Sub-modes are added with AddSubModes(). The first sub-mode in the list is
// the default and is selected if the first argument is not a sub-mode:
//
//	md.AddSubModes("DISASM", "HEADER", "LABELS")
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		os.Exit(0)
//	case modalflag.ParseError:
//		fmt.Println(err)
//		os.Exit(10)
//	}
//
//	switch md.Mode() {
//	case "DISASM":
//		md.NewMode()
//		logging := md.AddBool("log", false, "echo log to stderr")
//		p, err = md.Parse()
//		...
//	}
//
// Flags for the selected mode are defined after the call to NewMode() and
// are parsed by a second call to Parse(). Arguments that remain after the
// flags have been parsed are available through RemainingArgs() and GetArg().
//
// Mode names are case insensitive on the command line and are always
// reported in upper case. The Path() function returns the series of modes
// selected so far, separated by a forward slash.
//
// Help is printed when the -help flag is given. It lists the flags for the
// current mode, any sub-modes and a description of the positional arguments
// if one has been given with Usage().
package modalflag
