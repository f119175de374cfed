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

package riscv

import (
	"fmt"
)

// JumpTargets provides names for the targets of jump and branch
// instructions. The address is that of the jump instruction, not of the
// target.
type JumpTargets interface {
	JumpTarget(address uint32) (string, bool)
}

// Instruction is a single decoded instruction word.
type Instruction struct {
	Address uint32
	Word    uint32

	Operator string
	Operand  string
}

// String returns the instruction as it would be written in assembly
// language.
func (ins Instruction) String() string {
	if ins.Operand == "" {
		return ins.Operator
	}
	return fmt.Sprintf("%s %s", ins.Operator, ins.Operand)
}

var branches = map[uint32]string{
	0b000: "beq",
	0b001: "bne",
	0b100: "blt",
	0b101: "bge",
	0b110: "bltu",
	0b111: "bgeu",
}

var loads = map[uint32]string{
	0b000: "lb",
	0b001: "lh",
	0b010: "lw",
	0b100: "lbu",
	0b101: "lhu",
}

var stores = map[uint32]string{
	0b000: "sb",
	0b001: "sh",
	0b010: "sw",
}

// register-immediate operations that are not shifts.
var immediates = map[uint32]string{
	0b000: "addi",
	0b010: "slti",
	0b011: "sltiu",
	0b100: "xori",
	0b110: "ori",
	0b111: "andi",
}

type functs struct {
	funct3 uint32
	funct7 uint32
}

var shifts = map[functs]string{
	{0b001, 0b0000000}: "slli",
	{0b101, 0b0000000}: "srli",
	{0b101, 0b0100000}: "srai",
}

// register-register operations, including the M extension.
var operations = map[functs]string{
	{0b000, 0b0000000}: "add",
	{0b000, 0b0100000}: "sub",
	{0b000, 0b0000001}: "mul",
	{0b001, 0b0000000}: "sll",
	{0b001, 0b0000001}: "mulh",
	{0b010, 0b0000000}: "slt",
	{0b010, 0b0000001}: "mulhsu",
	{0b011, 0b0000000}: "sltu",
	{0b011, 0b0000001}: "mulhu",
	{0b100, 0b0000000}: "xor",
	{0b100, 0b0000001}: "div",
	{0b101, 0b0000000}: "srl",
	{0b101, 0b0100000}: "sra",
	{0b101, 0b0000001}: "divu",
	{0b110, 0b0000000}: "or",
	{0b110, 0b0000001}: "rem",
	{0b111, 0b0000000}: "and",
	{0b111, 0b0000001}: "remu",
}

var csrs = map[uint32]string{
	0b001: "csrrw",
	0b010: "csrrs",
	0b011: "csrrc",
	0b101: "csrrwi",
	0b110: "csrrsi",
	0b111: "csrrci",
}

// decoder carries the state for a single call to Decode. the first register
// error is kept and returned by Decode.
type decoder struct {
	word    uint32
	address uint32
	targets JumpTargets
	err     error
}

func (d *decoder) reg(i uint32) string {
	r, err := Register(int(i))
	if err != nil && d.err == nil {
		d.err = err
	}
	return r
}

func (d *decoder) target() string {
	if d.targets != nil {
		if l, ok := d.targets.JumpTarget(d.address); ok {
			return l
		}
	}
	return fmt.Sprintf("0x%08x", JumpTarget(d.word, d.address))
}

func (d *decoder) unexpected() error {
	return DecodeError{Kind: UnexpectedInstruction, Word: d.word, Address: d.address}
}

// Decode the instruction word found at address. The targets argument can be
// nil, in which case jumps and branches show the target address.
func Decode(word uint32, address uint32, targets JumpTargets) (Instruction, error) {
	d := decoder{
		word:    word,
		address: address,
		targets: targets,
	}

	ins := Instruction{
		Address: address,
		Word:    word,
	}

	var ok bool

	switch opcode(word) {
	case OpLUI:
		ins.Operator = "lui"
		ins.Operand = fmt.Sprintf("%s, %d", d.reg(rd(word)), immU(word))

	case OpAUIPC:
		ins.Operator = "auipc"
		ins.Operand = fmt.Sprintf("%s, %d", d.reg(rd(word)), immU(word))

	case OpJAL:
		// the immediate is shown as it is encoded, in units of two bytes
		ins.Operator = "jal"
		ins.Operand = fmt.Sprintf("%s, %d, %s", d.reg(rd(word)), immJ(word)>>1, d.target())

	case OpJALR:
		if funct3(word) != 0b000 {
			return Instruction{}, d.unexpected()
		}
		ins.Operator = "jalr"
		ins.Operand = fmt.Sprintf("%s, %s, %d", d.reg(rd(word)), d.reg(rs1(word)), immI(word))

	case OpBranch:
		ins.Operator, ok = branches[funct3(word)]
		if !ok {
			return Instruction{}, d.unexpected()
		}
		ins.Operand = fmt.Sprintf("%s, %s, %d, %s", d.reg(rs1(word)), d.reg(rs2(word)), immB(word)>>1, d.target())

	case OpLoad:
		ins.Operator, ok = loads[funct3(word)]
		if !ok {
			return Instruction{}, d.unexpected()
		}
		ins.Operand = fmt.Sprintf("%s, %d(%s)", d.reg(rd(word)), immI(word), d.reg(rs1(word)))

	case OpStore:
		ins.Operator, ok = stores[funct3(word)]
		if !ok {
			return Instruction{}, d.unexpected()
		}
		ins.Operand = fmt.Sprintf("%s, %d(%s)", d.reg(rs2(word)), immS(word), d.reg(rs1(word)))

	case OpImm:
		f3 := funct3(word)
		if ins.Operator, ok = immediates[f3]; ok {
			ins.Operand = fmt.Sprintf("%s, %s, %d", d.reg(rd(word)), d.reg(rs1(word)), immI(word))
			break
		}
		ins.Operator, ok = shifts[functs{f3, funct7(word)}]
		if !ok {
			return Instruction{}, d.unexpected()
		}
		ins.Operand = fmt.Sprintf("%s, %s, %d", d.reg(rd(word)), d.reg(rs1(word)), rs2(word))

	case OpReg:
		ins.Operator, ok = operations[functs{funct3(word), funct7(word)}]
		if !ok {
			return Instruction{}, d.unexpected()
		}
		ins.Operand = fmt.Sprintf("%s, %s, %s", d.reg(rd(word)), d.reg(rs1(word)), d.reg(rs2(word)))

	case OpSystem:
		f3 := funct3(word)
		if f3 == 0b000 {
			if rd(word) != 0 || rs1(word) != 0 {
				return Instruction{}, d.unexpected()
			}
			switch funct12(word) {
			case 0:
				ins.Operator = "ecall"
			case 1:
				ins.Operator = "ebreak"
			default:
				return Instruction{}, d.unexpected()
			}
			break
		}

		ins.Operator, ok = csrs[f3]
		if !ok {
			return Instruction{}, d.unexpected()
		}

		// the rs1 field is a zero extended immediate for the csr*i variants
		if f3&0b100 == 0b100 {
			ins.Operand = fmt.Sprintf("%s, %d, %d", d.reg(rd(word)), funct12(word), rs1(word))
		} else {
			ins.Operand = fmt.Sprintf("%s, %d, %s", d.reg(rd(word)), funct12(word), d.reg(rs1(word)))
		}

	default:
		return Instruction{}, d.unexpected()
	}

	if d.err != nil {
		return Instruction{}, d.err
	}

	return ins, nil
}
