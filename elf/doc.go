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

// Package elf reads the parts of a 32-bit little-endian RISC-V ELF file that
// are needed for disassembly: the file header, the section header table, the
// .text section and the symbol table with its string table.
//
// The package does not use the debug/elf package of the standard library.
// Sections are located in the way the original toolchain tooling expected
// them: .text and .strtab are found by walking the string stream of
// .shstrtab and matching the position of the name against the name field of
// each section header. The .symtab section is the first section with a type
// of SYMTAB.
//
// Every scan is bounded by the size of the table being scanned. A file that
// is missing one of the required sections results in a ContainerError with
// a Kind of MissingSection rather than a read beyond the end of the table.
//
// Errors returned by the package can be inspected with errors.As():
//
//	var ce elf.ContainerError
//	if errors.As(err, &ce) && ce.Kind == elf.IllegalFile {
//		fmt.Println(ce.Criterion)
//	}
package elf
