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

package disassembly

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Labels maps code addresses to label names.
type Labels struct {
	// labels indexed by address
	byAddr map[uint32]string

	// sorted array of keys to the byAddr map
	sortedIdx []uint32

	// the longest label in the byAddr map
	maxWidth int
}

func newLabels() *Labels {
	return &Labels{
		byAddr:    make(map[uint32]string),
		sortedIdx: make([]uint32, 0),
	}
}

// set the label for the address, replacing any existing label.
func (l *Labels) set(addr uint32, name string) {
	if i, ok := slices.BinarySearch(l.sortedIdx, addr); !ok {
		l.sortedIdx = slices.Insert(l.sortedIdx, i, addr)
	}
	l.byAddr[addr] = name
	l.maxWidth = max(l.maxWidth, len(name))
}

// Label returns the label at the address.
func (l *Labels) Label(addr uint32) (string, bool) {
	s, ok := l.byAddr[addr]
	return s, ok
}

// Len returns the number of labels.
func (l *Labels) Len() int {
	return len(l.sortedIdx)
}

// Addresses returns the addresses that have a label, in ascending order.
func (l *Labels) Addresses() []uint32 {
	return slices.Clone(l.sortedIdx)
}

// MaxWidth returns the length of the longest label.
func (l *Labels) MaxWidth() int {
	return l.maxWidth
}

func (l *Labels) String() string {
	s := strings.Builder{}
	for _, a := range l.sortedIdx {
		s.WriteString(fmt.Sprintf("%08x -> %s\n", a, l.byAddr[a]))
	}
	return s.String()
}

// Jump is a single jump or branch instruction.
type Jump struct {
	Source uint32
	Target uint32
	Label  string
}

// Jumps maps the address of a jump or branch instruction to the label of
// its target. It satisfies the riscv.JumpTargets interface.
type Jumps struct {
	bySource map[uint32]Jump

	// jumps in the order they were found
	order []uint32
}

func newJumps() *Jumps {
	return &Jumps{
		bySource: make(map[uint32]Jump),
	}
}

func (j *Jumps) add(jmp Jump) {
	if _, ok := j.bySource[jmp.Source]; !ok {
		j.order = append(j.order, jmp.Source)
	}
	j.bySource[jmp.Source] = jmp
}

// JumpTarget implements the riscv.JumpTargets interface.
func (j *Jumps) JumpTarget(address uint32) (string, bool) {
	jmp, ok := j.bySource[address]
	return jmp.Label, ok
}

// Jump returns the jump at the source address.
func (j *Jumps) Jump(source uint32) (Jump, bool) {
	jmp, ok := j.bySource[source]
	return jmp, ok
}

// Len returns the number of jumps.
func (j *Jumps) Len() int {
	return len(j.order)
}

// Sources returns the address of every jump in the order they were found.
func (j *Jumps) Sources() []uint32 {
	return slices.Clone(j.order)
}

// To returns the source addresses of the jumps with the target address.
func (j *Jumps) To(target uint32) []uint32 {
	var s []uint32
	for _, a := range j.order {
		if j.bySource[a].Target == target {
			s = append(s, a)
		}
	}
	return s
}
