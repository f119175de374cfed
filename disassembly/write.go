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
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/rv32dis/curated"
	"github.com/jetsetilly/rv32dis/riscv"
)

// Write the complete listing: the .text section followed by the symbol
// table. The listing is built in full before anything is written so that a
// decoding error leaves the io.Writer untouched.
func (dsm *Disassembly) Write(output io.Writer) error {
	var b bytes.Buffer

	b.WriteString(".text\n")
	if err := dsm.WriteText(&b); err != nil {
		return err
	}
	b.WriteString("\n")
	b.WriteString(".symtab\n")
	if err := dsm.WriteSymbols(&b); err != nil {
		return err
	}

	if _, err := output.Write(b.Bytes()); err != nil {
		return curated.Errorf("disassembly: %v", err)
	}
	return nil
}

// WriteText writes one line for every instruction in the .text section.
func (dsm *Disassembly) WriteText(output io.Writer) error {
	return dsm.Decode(func(ins riscv.Instruction, label string) error {
		_, err := fmt.Fprintf(output, "%08x %10s %s\n", ins.Address, label, ins)
		return err
	})
}

// WriteSymbols writes the symbol table.
func (dsm *Disassembly) WriteSymbols(output io.Writer) error {
	_, err := fmt.Fprintf(output, "%s %-15s %7s %-8s %-8s %-8s %6s %s\n",
		"Symbol", "Value", "Size", "Type", "Bind", "Vis", "Index", "Name")
	if err != nil {
		return err
	}

	tab := dsm.ef.Symbols
	for i := 0; i < tab.Len(); i++ {
		sym := tab.Entry(i)
		_, err = fmt.Fprintf(output, "[%4d] 0x%-15X %5d %-8s %-8s %-8s %6s %s\n",
			i, sym.Value, sym.Size, sym.Type(), sym.Bind(), sym.Visibility(), sym.Index(), sym.Name)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteLabels writes every label in address order along with the addresses
// of the jumps to that label.
func (dsm *Disassembly) WriteLabels(output io.Writer) error {
	w := dsm.Labels.MaxWidth()
	for _, a := range dsm.Labels.Addresses() {
		l, _ := dsm.Labels.Label(a)
		s := fmt.Sprintf("%08x %-*s", a, w, l)
		for _, j := range dsm.Jumps.To(a) {
			s = fmt.Sprintf("%s <- %08x", s, j)
		}
		if _, err := fmt.Fprintf(output, "%s\n", strings.TrimRight(s, " ")); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(output, "%d labels, %d jumps\n", dsm.Labels.Len(), dsm.Jumps.Len())
	return err
}

// WriteHeader writes the ELF header and the section header table.
func (dsm *Disassembly) WriteHeader(output io.Writer) error {
	ef := dsm.ef

	if _, err := io.WriteString(output, ef.Header.String()); err != nil {
		return err
	}

	sections, err := ef.Sections()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(output, "\nSection Headers:\n  [Nr] %-17s %-16s %-8s %-6s %-6s %2s %3s %2s %3s %2s\n",
		"Name", "Type", "Addr", "Off", "Size", "ES", "Flg", "Lk", "Inf", "Al")
	if err != nil {
		return err
	}

	for i, sh := range sections {
		n, err := ef.SectionName(sh)
		if err != nil {
			n = fmt.Sprintf("<%d>", sh.Name)
		}
		_, err = fmt.Fprintf(output, "  [%2d] %-17s %-16s %08x %06x %06x %02x %3s %2d %3d %2d\n",
			i, n, sh.Type, sh.Addr, sh.Offset, sh.Size, sh.Entsize, sh.FlagsString(), sh.Link, sh.Info, sh.Addralign)
		if err != nil {
			return err
		}
	}

	return nil
}
