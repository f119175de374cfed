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

package riscv_test

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/jetsetilly/rv32dis/riscv"
	"github.com/jetsetilly/rv32dis/test"
)

// the instruction formats as they appear in the operand text.
type format int

const (
	formatR format = iota
	formatI
	formatShift
	formatLoad
	formatStore
	formatBranch
	formatU
	formatJ
	formatCSR
	formatCSRI
	formatNone
)

type mnemonic struct {
	name   string
	opcode uint32
	funct3 uint32
	funct7 uint32
	format format
}

var mnemonics = []mnemonic{
	{"lui", riscv.OpLUI, 0, 0, formatU},
	{"auipc", riscv.OpAUIPC, 0, 0, formatU},
	{"jal", riscv.OpJAL, 0, 0, formatJ},
	{"jalr", riscv.OpJALR, 0, 0, formatI},
	{"beq", riscv.OpBranch, 0b000, 0, formatBranch},
	{"bne", riscv.OpBranch, 0b001, 0, formatBranch},
	{"blt", riscv.OpBranch, 0b100, 0, formatBranch},
	{"bge", riscv.OpBranch, 0b101, 0, formatBranch},
	{"bltu", riscv.OpBranch, 0b110, 0, formatBranch},
	{"bgeu", riscv.OpBranch, 0b111, 0, formatBranch},
	{"lb", riscv.OpLoad, 0b000, 0, formatLoad},
	{"lh", riscv.OpLoad, 0b001, 0, formatLoad},
	{"lw", riscv.OpLoad, 0b010, 0, formatLoad},
	{"lbu", riscv.OpLoad, 0b100, 0, formatLoad},
	{"lhu", riscv.OpLoad, 0b101, 0, formatLoad},
	{"sb", riscv.OpStore, 0b000, 0, formatStore},
	{"sh", riscv.OpStore, 0b001, 0, formatStore},
	{"sw", riscv.OpStore, 0b010, 0, formatStore},
	{"addi", riscv.OpImm, 0b000, 0, formatI},
	{"slti", riscv.OpImm, 0b010, 0, formatI},
	{"sltiu", riscv.OpImm, 0b011, 0, formatI},
	{"xori", riscv.OpImm, 0b100, 0, formatI},
	{"ori", riscv.OpImm, 0b110, 0, formatI},
	{"andi", riscv.OpImm, 0b111, 0, formatI},
	{"slli", riscv.OpImm, 0b001, 0b0000000, formatShift},
	{"srli", riscv.OpImm, 0b101, 0b0000000, formatShift},
	{"srai", riscv.OpImm, 0b101, 0b0100000, formatShift},
	{"add", riscv.OpReg, 0b000, 0b0000000, formatR},
	{"sub", riscv.OpReg, 0b000, 0b0100000, formatR},
	{"sll", riscv.OpReg, 0b001, 0b0000000, formatR},
	{"slt", riscv.OpReg, 0b010, 0b0000000, formatR},
	{"sltu", riscv.OpReg, 0b011, 0b0000000, formatR},
	{"xor", riscv.OpReg, 0b100, 0b0000000, formatR},
	{"srl", riscv.OpReg, 0b101, 0b0000000, formatR},
	{"sra", riscv.OpReg, 0b101, 0b0100000, formatR},
	{"or", riscv.OpReg, 0b110, 0b0000000, formatR},
	{"and", riscv.OpReg, 0b111, 0b0000000, formatR},
	{"mul", riscv.OpReg, 0b000, 0b0000001, formatR},
	{"mulh", riscv.OpReg, 0b001, 0b0000001, formatR},
	{"mulhsu", riscv.OpReg, 0b010, 0b0000001, formatR},
	{"mulhu", riscv.OpReg, 0b011, 0b0000001, formatR},
	{"div", riscv.OpReg, 0b100, 0b0000001, formatR},
	{"divu", riscv.OpReg, 0b101, 0b0000001, formatR},
	{"rem", riscv.OpReg, 0b110, 0b0000001, formatR},
	{"remu", riscv.OpReg, 0b111, 0b0000001, formatR},
	{"ecall", riscv.OpSystem, 0b000, 0, formatNone},
	{"ebreak", riscv.OpSystem, 0b000, 0, formatNone},
	{"csrrw", riscv.OpSystem, 0b001, 0, formatCSR},
	{"csrrs", riscv.OpSystem, 0b010, 0, formatCSR},
	{"csrrc", riscv.OpSystem, 0b011, 0, formatCSR},
	{"csrrwi", riscv.OpSystem, 0b101, 0, formatCSRI},
	{"csrrsi", riscv.OpSystem, 0b110, 0, formatCSRI},
	{"csrrci", riscv.OpSystem, 0b111, 0, formatCSRI},
}

func encodeR(opcode, funct3, funct7 uint32, rd, rs1, rs2 uint32) uint32 {
	return opcode | (rd << 7) | (funct3 << 12) | (rs1 << 15) | (rs2 << 20) | (funct7 << 25)
}

func encodeI(opcode, funct3 uint32, rd, rs1 uint32, imm int32) uint32 {
	return opcode | (rd << 7) | (funct3 << 12) | (rs1 << 15) | (uint32(imm&0xfff) << 20)
}

func encodeS(opcode, funct3 uint32, rs1, rs2 uint32, imm int32) uint32 {
	imm_4_0 := uint32(imm & 0x1f)
	imm_11_5 := uint32((imm >> 5) & 0x7f)
	return opcode | (imm_4_0 << 7) | (funct3 << 12) | (rs1 << 15) | (rs2 << 20) | (imm_11_5 << 25)
}

func encodeB(opcode, funct3 uint32, rs1, rs2 uint32, imm int32) uint32 {
	imm_11 := uint32((imm >> 11) & 0x1)
	imm_4_1 := uint32((imm >> 1) & 0xf)
	imm_10_5 := uint32((imm >> 5) & 0x3f)
	imm_12 := uint32((imm >> 12) & 0x1)
	return opcode | (imm_11 << 7) | (imm_4_1 << 8) | (funct3 << 12) | (rs1 << 15) | (rs2 << 20) | (imm_10_5 << 25) | (imm_12 << 31)
}

func encodeU(opcode uint32, rd uint32, imm uint32) uint32 {
	return opcode | (rd << 7) | (imm << 12)
}

func encodeJ(opcode uint32, rd uint32, imm int32) uint32 {
	imm_19_12 := uint32((imm >> 12) & 0xff)
	imm_11 := uint32((imm >> 11) & 0x1)
	imm_10_1 := uint32((imm >> 1) & 0x3ff)
	imm_20 := uint32((imm >> 20) & 0x1)
	return opcode | (rd << 7) | (imm_19_12 << 12) | (imm_11 << 20) | (imm_10_1 << 21) | (imm_20 << 31)
}

// random produces a valid instruction word for the mnemonic.
func random(rnd *rand.Rand, m mnemonic) uint32 {
	reg := func() uint32 { return rnd.Uint32N(32) }
	imm12 := func() int32 { return rnd.Int32N(4096) - 2048 }

	switch m.format {
	case formatR:
		return encodeR(m.opcode, m.funct3, m.funct7, reg(), reg(), reg())
	case formatI, formatLoad:
		return encodeI(m.opcode, m.funct3, reg(), reg(), imm12())
	case formatShift:
		return encodeI(m.opcode, m.funct3, reg(), reg(), int32(m.funct7<<5|rnd.Uint32N(32)))
	case formatStore:
		return encodeS(m.opcode, m.funct3, reg(), reg(), imm12())
	case formatBranch:
		return encodeB(m.opcode, m.funct3, reg(), reg(), (rnd.Int32N(4096)-2048)*2)
	case formatU:
		return encodeU(m.opcode, reg(), rnd.Uint32N(1<<20))
	case formatJ:
		return encodeJ(m.opcode, reg(), (rnd.Int32N(1<<20)-(1<<19))*2)
	case formatCSR, formatCSRI:
		return encodeI(m.opcode, m.funct3, reg(), reg(), int32(rnd.Uint32N(4096)))
	case formatNone:
		if m.name == "ebreak" {
			return 0x00100073
		}
		return 0x00000073
	}
	panic(fmt.Sprintf("unhandled format for %s", m.name))
}

// operands splits the operand text of an instruction. the memory form
// imm(reg) is split into the immediate and the register.
func operands(s string) []string {
	if s == "" {
		return nil
	}
	var o []string
	for _, p := range strings.Split(s, ", ") {
		if i := strings.Index(p, "("); i >= 0 && strings.HasSuffix(p, ")") {
			o = append(o, p[:i], p[i+1:len(p)-1])
		} else {
			o = append(o, p)
		}
	}
	return o
}

// reencode rebuilds an instruction word from the text of a decoded
// instruction.
func reencode(t *testing.T, m mnemonic, ins riscv.Instruction) uint32 {
	t.Helper()

	o := operands(ins.Operand)

	reg := func(s string) uint32 {
		t.Helper()
		i, ok := riscv.RegisterIndex(s)
		if !ok {
			t.Fatalf("%s: %q is not a register", ins, s)
		}
		return uint32(i)
	}
	num := func(s string) int32 {
		t.Helper()
		v, err := strconv.ParseInt(s, 10, 32)
		test.DemandSuccess(t, err, ins)
		return int32(v)
	}

	switch m.format {
	case formatR:
		return encodeR(m.opcode, m.funct3, m.funct7, reg(o[0]), reg(o[1]), reg(o[2]))
	case formatI:
		return encodeI(m.opcode, m.funct3, reg(o[0]), reg(o[1]), num(o[2]))
	case formatShift:
		return encodeI(m.opcode, m.funct3, reg(o[0]), reg(o[1]), int32(m.funct7<<5)|num(o[2]))
	case formatLoad:
		return encodeI(m.opcode, m.funct3, reg(o[0]), reg(o[2]), num(o[1]))
	case formatStore:
		return encodeS(m.opcode, m.funct3, reg(o[2]), reg(o[0]), num(o[1]))
	case formatBranch:
		off := num(o[2]) << 1
		test.ExpectEquality(t, o[3], fmt.Sprintf("0x%08x", ins.Address+uint32(off)), ins)
		return encodeB(m.opcode, m.funct3, reg(o[0]), reg(o[1]), off)
	case formatU:
		v, err := strconv.ParseUint(o[1], 10, 32)
		test.DemandSuccess(t, err, ins)
		return encodeU(m.opcode, reg(o[0]), uint32(v))
	case formatJ:
		off := num(o[1]) << 1
		test.ExpectEquality(t, o[2], fmt.Sprintf("0x%08x", ins.Address+uint32(off)), ins)
		return encodeJ(m.opcode, reg(o[0]), off)
	case formatCSR:
		return encodeI(m.opcode, m.funct3, reg(o[0]), reg(o[2]), num(o[1]))
	case formatCSRI:
		return encodeI(m.opcode, m.funct3, reg(o[0]), uint32(num(o[2])), num(o[1]))
	case formatNone:
		test.ExpectEquality(t, len(o), 0, ins)
		if m.name == "ebreak" {
			return 0x00100073
		}
		return 0x00000073
	}

	t.Fatalf("unhandled format for %s", m.name)
	return 0
}

func TestReencode(t *testing.T) {
	rnd := rand.New(rand.NewPCG(0x72763332, 0x646973))

	const address = 0x00400000

	for _, m := range mnemonics {
		for i := 0; i < 200; i++ {
			word := random(rnd, m)

			ins, err := riscv.Decode(word, address, nil)
			if !test.ExpectSuccess(t, err, m.name, fmt.Sprintf("%08x", word)) {
				break
			}
			test.ExpectEquality(t, ins.Operator, m.name)

			if !test.ExpectEquality(t, reencode(t, m, ins), word, ins) {
				break
			}
		}
	}
}
