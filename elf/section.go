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
	"encoding/binary"
	"fmt"
)

// SectionHeaderSize is the size of an ELF32 section header. Section headers
// are stored at this stride in the section header table.
const SectionHeaderSize = 40

// SectionType is the sh_type field of a section header.
type SectionType uint32

// List of section types that have names.
const (
	SectionNull     SectionType = 0
	SectionProgbits SectionType = 1
	SectionSymtab   SectionType = 2
	SectionStrtab   SectionType = 3
	SectionRela     SectionType = 4
	SectionHash     SectionType = 5
	SectionDynamic  SectionType = 6
	SectionNote     SectionType = 7
	SectionNobits   SectionType = 8
	SectionRel      SectionType = 9
	SectionShlib    SectionType = 10
	SectionDynsym   SectionType = 11

	SectionInitArray    SectionType = 14
	SectionFiniArray    SectionType = 15
	SectionPreinitArray SectionType = 16
	SectionGroup        SectionType = 17
	SectionSymtabShndx  SectionType = 18

	SectionRISCVAttributes SectionType = 0x70000003
)

var sectionTypeNames = map[SectionType]string{
	SectionNull:            "NULL",
	SectionProgbits:        "PROGBITS",
	SectionSymtab:          "SYMTAB",
	SectionStrtab:          "STRTAB",
	SectionRela:            "RELA",
	SectionHash:            "HASH",
	SectionDynamic:         "DYNAMIC",
	SectionNote:            "NOTE",
	SectionNobits:          "NOBITS",
	SectionRel:             "REL",
	SectionShlib:           "SHLIB",
	SectionDynsym:          "DYNSYM",
	SectionInitArray:       "INIT_ARRAY",
	SectionFiniArray:       "FINI_ARRAY",
	SectionPreinitArray:    "PREINIT_ARRAY",
	SectionGroup:           "GROUP",
	SectionSymtabShndx:     "SYMTAB_SHNDX",
	SectionRISCVAttributes: "RISCV_ATTRIBUTES",
}

func (t SectionType) String() string {
	if s, ok := sectionTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("%#x", uint32(t))
}

// SectionHeader is a single entry in the section header table.
type SectionHeader struct {
	// offset of the section name in .shstrtab
	Name uint32

	Type      SectionType
	Flags     uint32
	Addr      uint32
	Offset    uint32
	Size      uint32
	Link      uint32
	Info      uint32
	Addralign uint32
	Entsize   uint32
}

// ReadSectionHeader reads the section header at the absolute file offset.
func ReadSectionHeader(src *Source, offset int64) (SectionHeader, error) {
	b, err := src.Bytes(offset, SectionHeaderSize)
	if err != nil {
		return SectionHeader{}, err
	}

	le := binary.LittleEndian
	return SectionHeader{
		Name:      le.Uint32(b[0:]),
		Type:      SectionType(le.Uint32(b[4:])),
		Flags:     le.Uint32(b[8:]),
		Addr:      le.Uint32(b[12:]),
		Offset:    le.Uint32(b[16:]),
		Size:      le.Uint32(b[20:]),
		Link:      le.Uint32(b[24:]),
		Info:      le.Uint32(b[28:]),
		Addralign: le.Uint32(b[32:]),
		Entsize:   le.Uint32(b[36:]),
	}, nil
}

// flag letters in the manner of readelf.
var sectionFlags = []struct {
	mask   uint32
	letter byte
}{
	{0x1, 'W'},
	{0x2, 'A'},
	{0x4, 'X'},
	{0x10, 'M'},
	{0x20, 'S'},
	{0x40, 'I'},
	{0x80, 'L'},
	{0x200, 'G'},
	{0x400, 'T'},
}

// FlagsString returns the section flags as a string of single letters.
func (sh SectionHeader) FlagsString() string {
	var b []byte
	for _, f := range sectionFlags {
		if sh.Flags&f.mask == f.mask {
			b = append(b, f.letter)
		}
	}
	return string(b)
}
