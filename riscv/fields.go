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

// Major opcodes. The opcode is the low seven bits of an instruction word.
const (
	OpLUI    = 0b0110111
	OpAUIPC  = 0b0010111
	OpJAL    = 0b1101111
	OpJALR   = 0b1100111
	OpBranch = 0b1100011
	OpLoad   = 0b0000011
	OpStore  = 0b0100011
	OpImm    = 0b0010011
	OpReg    = 0b0110011
	OpSystem = 0b1110011
)

func opcode(word uint32) uint32 {
	return word & 0x7f
}

func rd(word uint32) uint32 {
	return (word >> 7) & 0x1f
}

func funct3(word uint32) uint32 {
	return (word >> 12) & 0x07
}

func rs1(word uint32) uint32 {
	return (word >> 15) & 0x1f
}

func rs2(word uint32) uint32 {
	return (word >> 20) & 0x1f
}

func funct7(word uint32) uint32 {
	return word >> 25
}

// funct12 is also the CSR number of the SYSTEM instructions.
func funct12(word uint32) uint32 {
	return word >> 20
}

// signExtend treats the low n bits of v as a two's complement value.
func signExtend(v uint32, n uint) int32 {
	shift := 32 - n
	return int32(v<<shift) >> shift
}

// immI is the 12-bit immediate of the I-type format.
func immI(word uint32) int32 {
	return int32(word) >> 20
}

// immS is the 12-bit immediate of the S-type format.
func immS(word uint32) int32 {
	return signExtend((word>>25)<<5|(word>>7)&0x1f, 12)
}

// immB is the 13-bit byte offset of the B-type format.
//
//	bit 31 -> imm[12]
//	bit 7 -> imm[11]
//	bits 30:25 -> imm[10:5]
//	bits 11:8 -> imm[4:1]
func immB(word uint32) int32 {
	v := (word>>31)<<12 |
		((word>>7)&0x01)<<11 |
		((word>>25)&0x3f)<<5 |
		((word>>8)&0x0f)<<1
	return signExtend(v, 13)
}

// immU is the 20-bit immediate of the U-type format.
func immU(word uint32) uint32 {
	return word >> 12
}

// immJ is the 21-bit byte offset of the J-type format.
//
//	bit 31 -> imm[20]
//	bits 19:12 -> imm[19:12]
//	bit 20 -> imm[11]
//	bits 30:21 -> imm[10:1]
func immJ(word uint32) int32 {
	v := (word>>31)<<20 |
		((word>>12)&0xff)<<12 |
		((word>>20)&0x01)<<11 |
		((word>>21)&0x3ff)<<1
	return signExtend(v, 21)
}

// IsJump returns true if the instruction word is a JAL or a conditional
// branch. JALR is not a jump in this sense because its target is not known
// until the program runs.
func IsJump(word uint32) bool {
	op := opcode(word)
	return op == OpJAL || op == OpBranch
}

// JumpOffset returns the signed byte offset of a JAL or conditional branch
// instruction. The offset is relative to the address of the instruction. It
// returns zero for all other instructions.
func JumpOffset(word uint32) int32 {
	switch opcode(word) {
	case OpJAL:
		return immJ(word)
	case OpBranch:
		return immB(word)
	}
	return 0
}

// JumpTarget returns the address a JAL or conditional branch at address
// will jump to.
func JumpTarget(word uint32, address uint32) uint32 {
	return address + uint32(JumpOffset(word))
}
