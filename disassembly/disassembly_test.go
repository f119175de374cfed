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

package disassembly_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jetsetilly/rv32dis/disassembly"
	"github.com/jetsetilly/rv32dis/elf"
	"github.com/jetsetilly/rv32dis/riscv"
	"github.com/jetsetilly/rv32dis/test"
)

func fromImage(t *testing.T, img test.ELFImage) *disassembly.Disassembly {
	t.Helper()
	b := img.Bytes()
	ef, err := elf.NewFile(bytes.NewReader(b), int64(len(b)))
	test.DemandSuccess(t, err)
	dsm, err := disassembly.FromFile(ef)
	test.DemandSuccess(t, err)
	return dsm
}

func TestListing(t *testing.T) {
	dsm := fromImage(t, test.ELFImage{
		TextAddr: 0x10000,
		Text: []uint32{
			0x0080006f, // jal zero, +8
			0x003100b3, // add ra, sp, gp
			0x00000013, // addi zero, zero, 0
		},
		Symbols: []test.ImageSymbol{{}},
	})

	test.ExpectEquality(t, dsm.Counter, 1)

	var w test.CompareWriter
	test.DemandSuccess(t, dsm.Write(&w))

	expected := ".text\n" +
		"00010000            jal zero, 4, LOC_00000\n" +
		"00010004            add ra, sp, gp\n" +
		"00010008  LOC_00000 addi zero, zero, 0\n" +
		"\n" +
		".symtab\n" +
		"Symbol Value              Size Type     Bind     Vis       Index Name\n" +
		"[   0] 0x0                   0 NOTYPE   LOCAL    DEFAULT   UNDEF \n"

	test.ExpectEquality(t, w.String(), expected)
}

func TestFunctionLabel(t *testing.T) {
	dsm := fromImage(t, test.ELFImage{
		TextAddr: 0x10000,
		Text:     []uint32{0x0080006f, 0x003100b3, 0x00000013},
		Symbols: []test.ImageSymbol{
			{},
			test.FuncSymbol("foo", 0x10008),
			{Name: "odd", Value: 0x11000, Size: 4, Info: 0x26, Other: 2, Shndx: 0xfff1},
		},
	})

	// the jump still counts even though no synthetic label was created
	test.ExpectEquality(t, dsm.Counter, 1)
	test.ExpectEquality(t, dsm.Labels.Len(), 1)

	l, ok := dsm.Labels.Label(0x10008)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, l, "foo")

	var w test.CompareWriter
	test.DemandSuccess(t, dsm.WriteText(&w))
	lines := w.Lines()
	test.DemandEquality(t, len(lines), 3)
	test.ExpectEquality(t, lines[0], "00010000            jal zero, 4, foo")
	test.ExpectEquality(t, lines[2], "00010008        foo addi zero, zero, 0")

	w.Clear()
	test.DemandSuccess(t, dsm.WriteSymbols(&w))
	lines = w.Lines()
	test.DemandEquality(t, len(lines), 4)
	test.ExpectEquality(t, lines[2], "[   1] 0x10008               0 FUNC     GLOBAL   DEFAULT       1 foo")

	// unknown type values are shown as a number
	test.ExpectEquality(t, lines[3], "[   2] 0x11000               4 6        WEAK     HIDDEN      ABS odd")
}

func TestNoJumps(t *testing.T) {
	dsm := fromImage(t, test.ELFImage{
		TextAddr: 0x10000,
		Text:     []uint32{0x00000013, 0x003100b3, 0x00008067},
		Symbols:  []test.ImageSymbol{{}, test.FuncSymbol("main", 0x10000)},
	})

	test.ExpectEquality(t, dsm.Counter, 0)
	test.ExpectEquality(t, dsm.Jumps.Len(), 0)
	test.ExpectEquality(t, dsm.Labels.Len(), 1)
}

// jumps to a target that already has a label still advance the counter, so
// the numbers used by synthetic labels can have gaps.
var counterGaps = test.ELFImage{
	TextAddr: 0x10000,
	Text: []uint32{
		0x00c0006f, // jal zero, +12
		0x00000463, // beq zero, zero, +8
		0x0080006f, // jal zero, +8
		0x00000013, // addi zero, zero, 0
		0xfe051ce3, // bne a0, zero, -8
		0xff5ff0ef, // jal ra, -12
	},
	Symbols: []test.ImageSymbol{{}},
}

func TestCounterGaps(t *testing.T) {
	dsm := fromImage(t, counterGaps)

	test.ExpectEquality(t, dsm.Counter, 5)
	test.ExpectEquality(t, dsm.Jumps.Len(), 5)
	test.ExpectEquality(t, dsm.Labels.Len(), 3)

	var w test.CompareWriter
	test.DemandSuccess(t, dsm.WriteText(&w))

	expected := "00010000            jal zero, 6, LOC_00000\n" +
		"00010004            beq zero, zero, 4, LOC_00000\n" +
		"00010008  LOC_00003 jal zero, 4, LOC_00002\n" +
		"0001000c  LOC_00000 addi zero, zero, 0\n" +
		"00010010  LOC_00002 bne a0, zero, -4, LOC_00003\n" +
		"00010014            jal ra, -6, LOC_00003\n"
	test.ExpectEquality(t, w.String(), expected)

	// every jump has a label at its target
	for _, src := range dsm.Jumps.Sources() {
		jmp, ok := dsm.Jumps.Jump(src)
		test.DemandSuccess(t, ok)
		l, ok := dsm.Labels.Label(jmp.Target)
		test.ExpectSuccess(t, ok, src)
		test.ExpectEquality(t, l, jmp.Label, src)
	}

	test.ExpectEquality(t, len(dsm.Jumps.To(0x10008)), 2)
	test.ExpectEquality(t, len(dsm.Jumps.To(0x10004)), 0)
}

func TestLabelsOrder(t *testing.T) {
	dsm := fromImage(t, counterGaps)

	a := dsm.Labels.Addresses()
	test.DemandEquality(t, len(a), 3)
	test.ExpectEquality(t, a[0], 0x10008)
	test.ExpectEquality(t, a[1], 0x1000c)
	test.ExpectEquality(t, a[2], 0x10010)

	test.ExpectEquality(t, dsm.Labels.String(), "00010008 -> LOC_00003\n0001000c -> LOC_00000\n00010010 -> LOC_00002\n")
	test.ExpectEquality(t, dsm.Labels.MaxWidth(), 9)
}

func TestWriteLabels(t *testing.T) {
	dsm := fromImage(t, counterGaps)

	var w test.CompareWriter
	test.DemandSuccess(t, dsm.WriteLabels(&w))

	expected := "00010008 LOC_00003 <- 00010010 <- 00010014\n" +
		"0001000c LOC_00000 <- 00010000 <- 00010004\n" +
		"00010010 LOC_00002 <- 00010008\n" +
		"3 labels, 5 jumps\n"
	test.ExpectEquality(t, w.String(), expected)
}

func TestDecodeFailure(t *testing.T) {
	dsm := fromImage(t, test.ELFImage{
		TextAddr: 0x10000,
		Text:     []uint32{0x00000013, 0x0ff0000f},
	})

	var w test.CompareWriter
	err := dsm.Write(&w)
	test.DemandFailure(t, err)

	// nothing is written if the listing cannot be completed
	test.ExpectEquality(t, w.String(), "")

	var de riscv.DecodeError
	test.DemandSuccess(t, errors.As(err, &de))
	test.ExpectEquality(t, de.Kind, riscv.UnexpectedInstruction)
	test.ExpectEquality(t, de.Address, 0x10004)
	test.ExpectEquality(t, de.Word, 0x0ff0000f)
}

func TestWriteHeader(t *testing.T) {
	dsm := fromImage(t, test.ELFImage{
		TextAddr: 0x10000,
		Text:     []uint32{0x00000013},
	})

	var w test.CompareWriter
	test.DemandSuccess(t, dsm.WriteHeader(&w))

	s := w.String()
	test.ExpectSuccess(t, strings.HasPrefix(s, "ELF Header:\n  Magic:   7f 45 4c 46 01 01 01 00"))
	test.ExpectSuccess(t, strings.Contains(s, "  Machine:                           RISC-V\n"))
	test.ExpectSuccess(t, strings.Contains(s, "  Entry point address:               0x10000\n"))
	test.ExpectSuccess(t, strings.Contains(s, "\nSection Headers:\n"))
	test.ExpectSuccess(t, strings.Contains(s, "  [ 1] .text             PROGBITS         00010000 000034 000004 00  AX  0   0  4\n"))
	test.ExpectSuccess(t, strings.Contains(s, "  [ 3] .symtab           SYMTAB  "))
}
