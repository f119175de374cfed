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

	"github.com/jetsetilly/rv32dis/curated"
	"github.com/jetsetilly/rv32dis/elf"
	"github.com/jetsetilly/rv32dis/logger"
	"github.com/jetsetilly/rv32dis/riscv"
)

// Disassembly of an ELF file. The labels and jumps are complete once the
// Disassembly has been created and do not change.
type Disassembly struct {
	ef *elf.File

	Labels *Labels
	Jumps  *Jumps

	// the number of jump and branch instructions seen. this is also the
	// number that the next synthetic label would use
	Counter int
}

// FromFile creates a disassembly of the ELF file. The file must remain open
// until the listing has been written.
func FromFile(ef *elf.File) (*Disassembly, error) {
	dsm := &Disassembly{
		ef:     ef,
		Labels: newLabels(),
		Jumps:  newJumps(),
	}

	err := dsm.resolve()
	if err != nil {
		return nil, curated.Errorf("disassembly: %v", err)
	}

	logger.Logf(logger.Allow, "disassembly", "%d labels", dsm.Labels.Len())
	logger.Logf(logger.Allow, "disassembly", "%d jumps", dsm.Jumps.Len())

	return dsm, nil
}

// walk visits every instruction word in the .text section in address
// order. each call to walk reads the section again.
func (dsm *Disassembly) walk(f func(address uint32, word uint32) error) error {
	text := dsm.ef.Text
	src := dsm.ef.Source()
	for i := uint32(0); i < text.Size; i += 4 {
		word, err := src.Uint32(int64(text.Offset) + int64(i))
		if err != nil {
			return curated.Errorf(".text: %v", err)
		}
		if err := f(text.Addr+i, word); err != nil {
			return err
		}
	}
	return nil
}

// resolve is the first pass over the .text section.
func (dsm *Disassembly) resolve() error {
	for _, sym := range dsm.ef.Symbols.Functions() {
		dsm.Labels.set(sym.Value, sym.Name)
	}

	return dsm.walk(func(address uint32, word uint32) error {
		if !riscv.IsJump(word) {
			return nil
		}

		target := riscv.JumpTarget(word, address)
		if _, ok := dsm.Labels.Label(target); !ok {
			dsm.Labels.set(target, fmt.Sprintf("LOC_%05x", dsm.Counter))
		}

		l, _ := dsm.Labels.Label(target)
		dsm.Jumps.add(Jump{
			Source: address,
			Target: target,
			Label:  l,
		})

		// the counter is advanced for every jump, even if the target already
		// had a label
		dsm.Counter++

		return nil
	})
}

// Decode is the second pass over the .text section. The function is called
// for every instruction along with the label at the address of the
// instruction, which may be empty.
func (dsm *Disassembly) Decode(f func(ins riscv.Instruction, label string) error) error {
	return dsm.walk(func(address uint32, word uint32) error {
		ins, err := riscv.Decode(word, address, dsm.Jumps)
		if err != nil {
			return curated.Errorf("disassembly: %v", err)
		}
		l, _ := dsm.Labels.Label(address)
		return f(ins, l)
	})
}

// File returns the ELF file being disassembled.
func (dsm *Disassembly) File() *elf.File {
	return dsm.ef
}
