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

package elf

import (
	"io"
	"os"

	"github.com/jetsetilly/rv32dis/curated"
	"github.com/jetsetilly/rv32dis/logger"
)

// File is an ELF file that has been validated and had its required sections
// located.
type File struct {
	Header Header

	Shstrtab SectionHeader
	Text     SectionHeader
	Strtab   SectionHeader
	Symtab   SectionHeader

	Symbols *SymbolTable

	src    *Source
	closer io.Closer
}

// Open the named file and prepare it for disassembly. The returned File
// should be closed when it is no longer required.
func Open(filename string) (*File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("elf: %v", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, curated.Errorf("elf: %v", err)
	}

	ef, err := NewFile(f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	ef.closer = f

	return ef, nil
}

// NewFile prepares the contents of the io.ReaderAt for disassembly. The size
// is the number of bytes available in the io.ReaderAt.
func NewFile(r io.ReaderAt, size int64) (*File, error) {
	ef := &File{
		src: NewSource(r, size),
	}

	var err error

	ef.Header, err = ReadHeader(ef.src)
	if err != nil {
		return nil, curated.Errorf("elf: %v", err)
	}

	if ef.Header.Shentsize < SectionHeaderSize {
		return nil, curated.Errorf("elf: %v", ContainerError{
			Kind:      Malformed,
			Section:   "header table",
			Criterion: "section header entry size too small",
		})
	}

	if ef.Header.Shstrndx == 0 || ef.Header.Shstrndx >= ef.Header.Shnum {
		return nil, curated.Errorf("elf: %v", ContainerError{Kind: MissingSection, Section: ".shstrtab"})
	}

	ef.Shstrtab, err = ReadSectionHeader(ef.src, int64(ef.Header.Shoff)+int64(ef.Header.Shentsize)*int64(ef.Header.Shstrndx))
	if err != nil {
		return nil, curated.Errorf("elf: .shstrtab: %v", err)
	}

	ef.Text, err = ef.findNamed(".text")
	if err != nil {
		return nil, curated.Errorf("elf: %v", err)
	}
	if ef.Text.Size%4 != 0 {
		return nil, curated.Errorf("elf: %v", ContainerError{
			Kind:      Malformed,
			Section:   ".text",
			Criterion: "size is not a multiple of four",
		})
	}

	ef.Strtab, err = ef.findNamed(".strtab")
	if err != nil {
		return nil, curated.Errorf("elf: %v", err)
	}

	ef.Symtab, err = ef.findType(SectionSymtab, ".symtab")
	if err != nil {
		return nil, curated.Errorf("elf: %v", err)
	}

	ef.Symbols, err = ReadSymbolTable(ef.src, ef.Symtab, ef.Strtab)
	if err != nil {
		return nil, curated.Errorf("elf: .symtab: %v", err)
	}

	logger.Logf(logger.Allow, "elf", ".text at %#08x (%d bytes) for address %#08x", ef.Text.Offset, ef.Text.Size, ef.Text.Addr)
	logger.Logf(logger.Allow, "elf", "%d symbols", ef.Symbols.Len())

	return ef, nil
}

// Close the underlying file if the File was created with Open().
func (ef *File) Close() error {
	if ef.closer == nil {
		return nil
	}
	err := ef.closer.Close()
	ef.closer = nil
	if err != nil {
		return curated.Errorf("elf: %v", err)
	}
	return nil
}

// Source returns the bytes of the file.
func (ef *File) Source() *Source {
	return ef.src
}

// sectionOffset returns the file offset of the section header with index i.
// Scans of the table use the fixed stride of an ELF32 section header.
func (ef *File) sectionOffset(i int) int64 {
	return int64(ef.Header.Shoff) + int64(i)*SectionHeaderSize
}

// findNamed locates a section by walking the .shstrtab string stream until
// the name is found. The position of the string in the stream is the value
// the name field of the section header will have.
func (ef *File) findNamed(name string) (SectionHeader, error) {
	st := NewStringTable(ef.src, int64(ef.Shstrtab.Offset))
	for st.Offset() < int64(ef.Shstrtab.Size) {
		s, err := st.Next()
		if err != nil {
			return SectionHeader{}, curated.Errorf("%s: %v", name, err)
		}
		if s != name {
			continue
		}

		field := uint32(st.Offset()) - uint32(len(name)+1)
		for i := 0; i < int(ef.Header.Shnum); i++ {
			sh, err := ReadSectionHeader(ef.src, ef.sectionOffset(i))
			if err != nil {
				return SectionHeader{}, curated.Errorf("%s: %v", name, err)
			}
			if sh.Name == field {
				return sh, nil
			}
		}
		break
	}

	// the string table might have been tail merged by the linker, in which
	// case the name is the suffix of another string (.text in .rela.text)
	// and will never be seen as a string on its own
	for i := 0; i < int(ef.Header.Shnum); i++ {
		sh, err := ReadSectionHeader(ef.src, ef.sectionOffset(i))
		if err != nil {
			return SectionHeader{}, curated.Errorf("%s: %v", name, err)
		}
		n, err := ef.SectionName(sh)
		if err != nil {
			continue
		}
		if n == name {
			logger.Logf(logger.Allow, "elf", "%s found by section name (section %d)", name, i)
			return sh, nil
		}
	}

	return SectionHeader{}, ContainerError{Kind: MissingSection, Section: name}
}

// findType locates the first section of the specified type.
func (ef *File) findType(typ SectionType, name string) (SectionHeader, error) {
	for i := 0; i < int(ef.Header.Shnum); i++ {
		sh, err := ReadSectionHeader(ef.src, ef.sectionOffset(i))
		if err != nil {
			return SectionHeader{}, curated.Errorf("%s: %v", name, err)
		}
		if sh.Type == typ {
			return sh, nil
		}
	}
	return SectionHeader{}, ContainerError{Kind: MissingSection, Section: name}
}

// Sections returns every entry in the section header table.
func (ef *File) Sections() ([]SectionHeader, error) {
	s := make([]SectionHeader, 0, ef.Header.Shnum)
	for i := 0; i < int(ef.Header.Shnum); i++ {
		sh, err := ReadSectionHeader(ef.src, ef.sectionOffset(i))
		if err != nil {
			return nil, curated.Errorf("elf: section %d: %v", i, err)
		}
		s = append(s, sh)
	}
	return s, nil
}

// SectionName returns the name of the section from .shstrtab.
func (ef *File) SectionName(sh SectionHeader) (string, error) {
	if sh.Name >= ef.Shstrtab.Size {
		return "", ContainerError{Kind: Truncated, Offset: int64(ef.Shstrtab.Offset) + int64(sh.Name), Size: 1}
	}
	return NewStringTable(ef.src, int64(ef.Shstrtab.Offset)+int64(sh.Name)).Next()
}

// Word returns the instruction word at the virtual address in the .text
// section.
func (ef *File) Word(addr uint32) (uint32, error) {
	if addr < ef.Text.Addr || addr-ef.Text.Addr >= ef.Text.Size {
		return 0, curated.Errorf("elf: address %#08x is not in .text", addr)
	}
	return ef.src.Uint32(int64(ef.Text.Offset) + int64(addr-ef.Text.Addr))
}
