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

// Package disassembly creates the listing of a RISC-V ELF file.
//
// Disassembly happens in two passes over the .text section. The first pass,
// performed by FromFile(), finds every jump and branch instruction and gives
// a label to its target. Targets that are the address of a function symbol
// use the name of the symbol. Other targets are given a name of the form
// LOC_00000, where the number counts every jump and branch instruction seen
// so far, whether or not a new label was needed.
//
// The second pass happens when the listing is written. Each instruction word
// is decoded with the riscv package, using the labels found in the first
// pass to name the targets of jumps and branches.
//
// The listing written by Write() is the .text section followed by the symbol
// table. WriteLabels() and WriteHeader() provide other views of the file.
package disassembly
