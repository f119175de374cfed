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

package test

import (
	"bytes"
	"encoding/binary"
)

// ImageSymbol is a symbol to be placed in the .symtab section of an
// ELFImage. The fields are written to the file without adjustment.
type ImageSymbol struct {
	Name  string
	Value uint32
	Size  uint32
	Info  uint8
	Other uint8
	Shndx uint16
}

// FuncSymbol returns an ImageSymbol for a global function.
func FuncSymbol(name string, value uint32) ImageSymbol {
	return ImageSymbol{
		Name:  name,
		Value: value,
		Info:  0x12,
		Shndx: 1,
	}
}

// ELFImage describes a minimal 32-bit RISC-V executable. Zero values for the
// identification fields produce a valid file, so tests only need to set the
// field they want to break.
type ELFImage struct {
	Magic   [4]byte
	Class   uint8
	Data    uint8
	Machine uint16

	// virtual address of the first instruction in Text
	TextAddr uint32
	Text     []uint32

	// raw bytes appended to the end of the .text section
	TextTail []byte

	Symbols []ImageSymbol

	OmitText   bool
	OmitStrtab bool
	OmitSymtab bool

	// the .symtab section header has an entsize of zero
	ZeroSymtabEntSize bool

	// the .text section name shares its string with a .rela.text section
	TailMerged bool
}

// section header types.
const (
	shtNull     = 0
	shtProgbits = 1
	shtSymtab   = 2
	shtStrtab   = 3
	shtRela     = 4
)

const (
	headerSize        = 52
	sectionHeaderSize = 40
	symbolSize        = 16
)

type imageSection struct {
	name      uint32
	typ       uint32
	flags     uint32
	addr      uint32
	offset    uint32
	size      uint32
	link      uint32
	info      uint32
	addralign uint32
	entsize   uint32
}

func align(b *bytes.Buffer) {
	for b.Len()%4 != 0 {
		b.WriteByte(0)
	}
}

// Bytes returns the ELF image as it would appear on disk.
func (img ELFImage) Bytes() []byte {
	le := binary.LittleEndian

	// section name string table. the offsets into the table are recorded as
	// the strings are added
	var shstrtab bytes.Buffer
	shstrtab.WriteByte(0)
	nameOf := make(map[string]uint32)
	addName := func(s string) {
		nameOf[s] = uint32(shstrtab.Len())
		shstrtab.WriteString(s)
		shstrtab.WriteByte(0)
	}
	if img.TailMerged {
		addName(".rela.text")
		nameOf[".text"] = nameOf[".rela.text"] + uint32(len(".rela"))
	} else {
		addName(".text")
	}
	addName(".strtab")
	addName(".symtab")
	addName(".shstrtab")

	// symbol name string table
	var strtab bytes.Buffer
	strtab.WriteByte(0)
	var symtab bytes.Buffer
	for _, s := range img.Symbols {
		var name uint32
		if s.Name != "" {
			name = uint32(strtab.Len())
			strtab.WriteString(s.Name)
			strtab.WriteByte(0)
		}
		var rec [symbolSize]byte
		le.PutUint32(rec[0:], name)
		le.PutUint32(rec[4:], s.Value)
		le.PutUint32(rec[8:], s.Size)
		rec[12] = s.Info
		rec[13] = s.Other
		le.PutUint16(rec[14:], s.Shndx)
		symtab.Write(rec[:])
	}

	var body bytes.Buffer
	body.Write(make([]byte, headerSize))

	sections := []imageSection{{typ: shtNull}}

	textIdx := uint32(0)
	if !img.OmitText {
		textIdx = uint32(len(sections))
		off := uint32(body.Len())
		for _, w := range img.Text {
			var b [4]byte
			le.PutUint32(b[:], w)
			body.Write(b[:])
		}
		body.Write(img.TextTail)
		sections = append(sections, imageSection{
			name:      nameOf[".text"],
			typ:       shtProgbits,
			flags:     0x6,
			addr:      img.TextAddr,
			offset:    off,
			size:      uint32(body.Len()) - off,
			addralign: 4,
		})
		align(&body)
	}

	if img.TailMerged {
		sections = append(sections, imageSection{
			name:      nameOf[".rela.text"],
			typ:       shtRela,
			offset:    uint32(body.Len()),
			info:      textIdx,
			addralign: 4,
			entsize:   12,
		})
	}

	strtabIdx := uint32(0)
	if !img.OmitStrtab {
		strtabIdx = uint32(len(sections))
		sections = append(sections, imageSection{
			name:      nameOf[".strtab"],
			typ:       shtStrtab,
			offset:    uint32(body.Len()),
			size:      uint32(strtab.Len()),
			addralign: 1,
		})
		body.Write(strtab.Bytes())
		align(&body)
	}

	if !img.OmitSymtab {
		entsize := uint32(symbolSize)
		if img.ZeroSymtabEntSize {
			entsize = 0
		}
		sections = append(sections, imageSection{
			name:      nameOf[".symtab"],
			typ:       shtSymtab,
			offset:    uint32(body.Len()),
			size:      uint32(symtab.Len()),
			link:      strtabIdx,
			addralign: 4,
			entsize:   entsize,
		})
		body.Write(symtab.Bytes())
		align(&body)
	}

	shstrndx := uint32(len(sections))
	sections = append(sections, imageSection{
		name:      nameOf[".shstrtab"],
		typ:       shtStrtab,
		offset:    uint32(body.Len()),
		size:      uint32(shstrtab.Len()),
		addralign: 1,
	})
	body.Write(shstrtab.Bytes())
	align(&body)

	shoff := uint32(body.Len())
	for _, s := range sections {
		var rec [sectionHeaderSize]byte
		le.PutUint32(rec[0:], s.name)
		le.PutUint32(rec[4:], s.typ)
		le.PutUint32(rec[8:], s.flags)
		le.PutUint32(rec[12:], s.addr)
		le.PutUint32(rec[16:], s.offset)
		le.PutUint32(rec[20:], s.size)
		le.PutUint32(rec[24:], s.link)
		le.PutUint32(rec[28:], s.info)
		le.PutUint32(rec[32:], s.addralign)
		le.PutUint32(rec[36:], s.entsize)
		body.Write(rec[:])
	}

	data := body.Bytes()

	magic := img.Magic
	if magic == [4]byte{} {
		magic = [4]byte{0x7f, 'E', 'L', 'F'}
	}
	class := img.Class
	if class == 0 {
		class = 1
	}
	encoding := img.Data
	if encoding == 0 {
		encoding = 1
	}
	machine := img.Machine
	if machine == 0 {
		machine = 0xf3
	}

	copy(data[0:], magic[:])
	data[4] = class
	data[5] = encoding
	data[6] = 1
	le.PutUint16(data[16:], 2)
	le.PutUint16(data[18:], machine)
	le.PutUint32(data[20:], 1)
	le.PutUint32(data[24:], img.TextAddr)
	le.PutUint32(data[28:], 0)
	le.PutUint32(data[32:], shoff)
	le.PutUint32(data[36:], 0)
	le.PutUint16(data[40:], headerSize)
	le.PutUint16(data[42:], 0)
	le.PutUint16(data[44:], 0)
	le.PutUint16(data[46:], sectionHeaderSize)
	le.PutUint16(data[48:], uint16(len(sections)))
	le.PutUint16(data[50:], uint16(shstrndx))

	return data
}

// Reader returns the image as a bytes.Reader, which satisfies the
// io.ReaderAt interface.
func (img ELFImage) Reader() *bytes.Reader {
	return bytes.NewReader(img.Bytes())
}
