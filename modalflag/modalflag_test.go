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

package modalflag_test

import (
	"testing"

	"github.com/jetsetilly/rv32dis/modalflag"
	"github.com/jetsetilly/rv32dis/test"
)

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{Output: &test.CompareWriter{}}
	md.NewArgs([]string{"-x", "input", "output"})
	x := md.AddBool("x", false, "test flag")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, *x, true)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")
	test.DemandEquality(t, len(md.RemainingArgs()), 2)
	test.ExpectEquality(t, md.GetArg(0), "input")
	test.ExpectEquality(t, md.GetArg(1), "output")
	test.ExpectEquality(t, md.GetArg(2), "")
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{Output: &test.CompareWriter{}}
	md.NewArgs([]string{"-y", "input"})
	md.AddBool("x", false, "test flag")

	p, err := md.Parse()
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, p, modalflag.ParseError)
}

func TestSelectedMode(t *testing.T) {
	md := modalflag.Modes{Output: &test.CompareWriter{}}
	md.NewArgs([]string{"header", "input.elf"})
	md.AddSubModes("DISASM", "HEADER", "LABELS")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "HEADER")

	md.NewMode()
	p, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.DemandEquality(t, len(md.RemainingArgs()), 1)
	test.ExpectEquality(t, md.GetArg(0), "input.elf")
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{Output: &test.CompareWriter{}}
	md.NewArgs([]string{"input.elf", "output.txt"})
	md.AddSubModes("DISASM", "HEADER")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "DISASM")

	md.NewMode()
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, len(md.RemainingArgs()), 2)
	test.ExpectEquality(t, md.GetArg(0), "input.elf")
	test.ExpectEquality(t, md.GetArg(1), "output.txt")
}

// a flag belonging to the default mode is given before any mode is named.
func TestDefaultModeFlag(t *testing.T) {
	md := modalflag.Modes{Output: &test.CompareWriter{}}
	md.NewArgs([]string{"-log", "input.elf", "output.txt"})
	md.AddSubModes("DISASM", "HEADER")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "DISASM")

	md.NewMode()
	log := md.AddBool("log", false, "echo log")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *log, true)
	test.DemandEquality(t, len(md.RemainingArgs()), 2)
	test.ExpectEquality(t, md.GetArg(0), "input.elf")

	var visited []string
	md.Visit(func(flag string) {
		visited = append(visited, flag)
	})
	test.DemandEquality(t, len(visited), 1)
	test.ExpectEquality(t, visited[0], "log")
}

func TestNestedModes(t *testing.T) {
	md := modalflag.Modes{Output: &test.CompareWriter{}}
	md.NewArgs([]string{"labels", "sorted", "input.elf"})
	md.AddSubModes("DISASM", "LABELS")

	_, err := md.Parse()
	test.ExpectSuccess(t, err)

	md.NewMode()
	md.AddSubModes("address", "sorted")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "SORTED")
	test.ExpectEquality(t, md.Path(), "LABELS/SORTED")
	test.ExpectEquality(t, md.String(), "LABELS/SORTED")

	// new argument list resets the path
	md.NewArgs([]string{})
	test.ExpectEquality(t, md.Path(), "")
}

func TestHelpTopLevel(t *testing.T) {
	tw := &test.CompareWriter{}
	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddSubModes("DISASM", "HEADER")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, tw.String(), "Usage:\n"+
		"  available sub-modes: DISASM, HEADER\n"+
		"    default: DISASM\n")
}

func TestHelpMode(t *testing.T) {
	tw := &test.CompareWriter{}
	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"disasm", "-help"})
	md.AddSubModes("DISASM", "HEADER")

	_, err := md.Parse()
	test.ExpectSuccess(t, err)

	md.NewMode()
	md.AddBool("log", false, "echo log")
	md.Usage("<input> <output>")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, tw.String(), "Usage for DISASM mode:\n"+
		"  -log\n"+
		"    \techo log\n"+
		"\n"+
		"  arguments: <input> <output>\n")
}

func TestHelpNoFlags(t *testing.T) {
	tw := &test.CompareWriter{}
	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"header", "-h"})
	md.AddSubModes("DISASM", "HEADER")

	_, err := md.Parse()
	test.ExpectSuccess(t, err)

	md.NewMode()
	md.Usage("<input>")
	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, tw.String(), "Usage for HEADER mode:\n"+
		"  arguments: <input>\n")
}

func TestAddString(t *testing.T) {
	md := modalflag.Modes{Output: &test.CompareWriter{}}
	md.NewArgs([]string{"-memviz", "graph.dot", "input.elf"})
	s := md.AddString("memviz", "", "write graph")

	_, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *s, "graph.dot")
	test.ExpectEquality(t, md.GetArg(0), "input.elf")
}
