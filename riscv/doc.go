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

// Package riscv decodes 32-bit RV32I and RV32M instruction words into
// assembly mnemonics and operands.
//
// Decoding is stateless. Branch and jump instructions name their target
// through the JumpTargets interface, which is normally satisfied by the
// jump map built by the disassembly package before decoding starts. If no
// name is available the target address is shown instead.
//
// Compressed, floating point, atomic and fence instructions are not
// supported and are reported as an unexpected instruction.
package riscv
