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

	"github.com/jetsetilly/rv32dis/curated"
)

// SymbolSize is the size of an ELF32 symbol table entry.
const SymbolSize = 16

// SymbolType is the low nibble of a symbol's info field.
type SymbolType uint8

// List of valid SymbolType values.
const (
	SymbolNoType  SymbolType = 0
	SymbolObject  SymbolType = 1
	SymbolFunc    SymbolType = 2
	SymbolSection SymbolType = 3
	SymbolFile    SymbolType = 4
	SymbolLoProc  SymbolType = 13
	SymbolHiProc  SymbolType = 15
)

func (t SymbolType) String() string {
	switch t {
	case SymbolNoType:
		return "NOTYPE"
	case SymbolObject:
		return "OBJECT"
	case SymbolFunc:
		return "FUNC"
	case SymbolSection:
		return "SECTION"
	case SymbolFile:
		return "FILE"
	case SymbolLoProc:
		return "LOPROC"
	case SymbolHiProc:
		return "HIPROC"
	}
	return fmt.Sprintf("%d", uint8(t))
}

// SymbolBind is the high nibble of a symbol's info field.
type SymbolBind uint8

// List of valid SymbolBind values.
const (
	BindLocal  SymbolBind = 0
	BindGlobal SymbolBind = 1
	BindWeak   SymbolBind = 2
	BindLoProc SymbolBind = 13
	BindHiProc SymbolBind = 15
)

func (b SymbolBind) String() string {
	switch b {
	case BindLocal:
		return "LOCAL"
	case BindGlobal:
		return "GLOBAL"
	case BindWeak:
		return "WEAK"
	case BindLoProc:
		return "LOPROC"
	case BindHiProc:
		return "HIPROC"
	}
	return fmt.Sprintf("%d", uint8(b))
}

// SymbolVisibility is the low two bits of a symbol's other field.
type SymbolVisibility uint8

// List of valid SymbolVisibility values.
const (
	VisibilityDefault   SymbolVisibility = 0
	VisibilityInternal  SymbolVisibility = 1
	VisibilityHidden    SymbolVisibility = 2
	VisibilityProtected SymbolVisibility = 3
)

func (v SymbolVisibility) String() string {
	switch v {
	case VisibilityDefault:
		return "DEFAULT"
	case VisibilityInternal:
		return "INTERNAL"
	case VisibilityHidden:
		return "HIDDEN"
	case VisibilityProtected:
		return "PROTECTED"
	}
	return fmt.Sprintf("%d", uint8(v))
}

// SectionIndex is the section a symbol is defined in relation to. Some
// values are reserved and have a special meaning.
type SectionIndex uint16

// List of reserved SectionIndex values.
const (
	IndexUndef     SectionIndex = 0
	IndexLoReserve SectionIndex = 0xff00
	IndexHiProc    SectionIndex = 0xff1f
	IndexAbs       SectionIndex = 0xfff1
	IndexCommon    SectionIndex = 0xfff2
	IndexHiReserve SectionIndex = 0xffff
)

func (i SectionIndex) String() string {
	switch i {
	case IndexUndef:
		return "UNDEF"
	case IndexLoReserve:
		return "LORESERVE"
	case IndexHiProc:
		return "HIPROC"
	case IndexAbs:
		return "ABS"
	case IndexCommon:
		return "COMMON"
	case IndexHiReserve:
		return "HIRESERVE"
	}
	return fmt.Sprintf("%d", uint16(i))
}

// Symbol is a single entry in the symbol table.
type Symbol struct {
	// offset of the name in .strtab and the name found there
	NameOffset uint32
	Name       string

	Value uint32
	Size  uint32
	Info  uint8
	Other uint8
	Shndx uint16
}

// Type of the symbol.
func (sym Symbol) Type() SymbolType {
	return SymbolType(sym.Info & 0x0f)
}

// Bind of the symbol.
func (sym Symbol) Bind() SymbolBind {
	return SymbolBind(sym.Info >> 4)
}

// Visibility of the symbol.
func (sym Symbol) Visibility() SymbolVisibility {
	return SymbolVisibility(sym.Other & 0x03)
}

// Index of the section the symbol is defined in.
func (sym Symbol) Index() SectionIndex {
	return SectionIndex(sym.Shndx)
}

// SymbolTable is the list of symbols in the order they are stored in the
// file.
type SymbolTable struct {
	entries []Symbol
}

// ReadSymbolTable reads every entry in the symtab section. The name of each
// symbol is read from the strtab section.
func ReadSymbolTable(src *Source, symtab SectionHeader, strtab SectionHeader) (*SymbolTable, error) {
	if symtab.Entsize == 0 {
		return nil, ContainerError{Kind: Malformed, Section: ".symtab", Criterion: "entry size of zero"}
	}
	if symtab.Entsize < SymbolSize {
		return nil, ContainerError{Kind: Malformed, Section: ".symtab", Criterion: fmt.Sprintf("entry size of %d", symtab.Entsize)}
	}

	// the section must lie within the file before any space is allocated for
	// the entries
	if int64(symtab.Offset)+int64(symtab.Size) > src.Size() {
		return nil, ContainerError{Kind: Truncated, Offset: int64(symtab.Offset), Size: int(symtab.Size)}
	}

	count := symtab.Size / symtab.Entsize
	tab := &SymbolTable{
		entries: make([]Symbol, 0, count),
	}

	le := binary.LittleEndian
	for i := uint32(0); i < count; i++ {
		offset := int64(symtab.Offset) + int64(i)*int64(symtab.Entsize)
		b, err := src.Bytes(offset, SymbolSize)
		if err != nil {
			return nil, curated.Errorf("symbol %d: %v", i, err)
		}

		sym := Symbol{
			NameOffset: le.Uint32(b[0:]),
			Value:      le.Uint32(b[4:]),
			Size:       le.Uint32(b[8:]),
			Info:       b[12],
			Other:      b[13],
			Shndx:      le.Uint16(b[14:]),
		}

		sym.Name, err = NewStringTable(src, int64(strtab.Offset)+int64(sym.NameOffset)).Next()
		if err != nil {
			return nil, curated.Errorf("symbol %d: name: %v", i, err)
		}

		tab.entries = append(tab.entries, sym)
	}

	return tab, nil
}

// Len returns the number of entries in the table.
func (tab *SymbolTable) Len() int {
	return len(tab.entries)
}

// Entry returns the symbol at index i. The index must be less than Len().
func (tab *SymbolTable) Entry(i int) Symbol {
	return tab.entries[i]
}

// Functions returns the symbols of type FUNC in table order.
func (tab *SymbolTable) Functions() []Symbol {
	var f []Symbol
	for _, sym := range tab.entries {
		if sym.Type() == SymbolFunc {
			f = append(f, sym)
		}
	}
	return f
}
