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

// ABI names of the integer registers.
var registers = [...]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// NumRegisters is the number of integer registers.
const NumRegisters = len(registers)

// Register returns the ABI name of register i.
func Register(i int) (string, error) {
	if i < 0 || i >= NumRegisters {
		return "", DecodeError{Kind: UnexpectedRegister, Register: i}
	}
	return registers[i], nil
}

// RegisterIndex returns the index of the register with the ABI name. The
// second return value is false if the name is not recognised.
func RegisterIndex(name string) (int, bool) {
	for i, r := range registers {
		if r == name {
			return i, true
		}
	}
	return 0, false
}
