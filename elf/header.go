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
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// HeaderSize is the size of an ELF32 file header.
const HeaderSize = 52

// Values in the identification block and header that the disassembler
// requires.
const (
	ClassELF32       = 1
	DataLittleEndian = 1
	MachineRISCV     = 0xf3
)

var magic = []byte{0x7f, 'E', 'L', 'F'}

// Header is the ELF32 file header.
type Header struct {
	Ident     [16]byte
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint32
	Phoff     uint32
	Shoff     uint32
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

// ReadHeader reads and validates the header at the start of the source. The
// identification checks are made in order and the first to fail is
// reported: magic number, 32-bit class, little-endian data encoding and the
// RISC-V machine type.
func ReadHeader(src *Source) (Header, error) {
	var hdr Header

	// the identification checks are made on as much of the header as exists
	// so that a short non-ELF file is reported as illegal and not as
	// truncated
	b, err := src.Bytes(0, int(min(src.Size(), HeaderSize)))
	if err != nil {
		return hdr, err
	}

	if len(b) < len(magic) || !bytes.Equal(b[:len(magic)], magic) {
		return hdr, ContainerError{Kind: IllegalFile, Criterion: "ELF"}
	}
	if len(b) < 5 || b[4] != ClassELF32 {
		return hdr, ContainerError{Kind: IllegalFile, Criterion: "32-bit"}
	}
	if len(b) < 6 || b[5] != DataLittleEndian {
		return hdr, ContainerError{Kind: IllegalFile, Criterion: "little-endian"}
	}
	if len(b) < 20 || binary.LittleEndian.Uint16(b[18:]) != MachineRISCV {
		return hdr, ContainerError{Kind: IllegalFile, Criterion: "RISC-V"}
	}
	if len(b) < HeaderSize {
		return hdr, ContainerError{Kind: Truncated, Offset: 0, Size: HeaderSize}
	}

	le := binary.LittleEndian
	copy(hdr.Ident[:], b[:16])
	hdr.Type = le.Uint16(b[16:])
	hdr.Machine = le.Uint16(b[18:])
	hdr.Version = le.Uint32(b[20:])
	hdr.Entry = le.Uint32(b[24:])
	hdr.Phoff = le.Uint32(b[28:])
	hdr.Shoff = le.Uint32(b[32:])
	hdr.Flags = le.Uint32(b[36:])
	hdr.Ehsize = le.Uint16(b[40:])
	hdr.Phentsize = le.Uint16(b[42:])
	hdr.Phnum = le.Uint16(b[44:])
	hdr.Shentsize = le.Uint16(b[46:])
	hdr.Shnum = le.Uint16(b[48:])
	hdr.Shstrndx = le.Uint16(b[50:])

	return hdr, nil
}

func (hdr Header) typeString() string {
	switch hdr.Type {
	case 0:
		return "NONE"
	case 1:
		return "REL (Relocatable file)"
	case 2:
		return "EXEC (Executable file)"
	case 3:
		return "DYN (Shared object file)"
	case 4:
		return "CORE (Core file)"
	}
	return fmt.Sprintf("%#x", hdr.Type)
}

// String returns a multiline description of the header in the manner of the
// readelf tool.
func (hdr Header) String() string {
	s := strings.Builder{}
	s.WriteString("ELF Header:\n")
	s.WriteString("  Magic:  ")
	for _, b := range hdr.Ident {
		s.WriteString(fmt.Sprintf(" %02x", b))
	}
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("  %-34s %s\n", "Class:", "ELF32"))
	s.WriteString(fmt.Sprintf("  %-34s %s\n", "Data:", "2's complement, little endian"))
	s.WriteString(fmt.Sprintf("  %-34s %s\n", "Type:", hdr.typeString()))
	s.WriteString(fmt.Sprintf("  %-34s %s\n", "Machine:", "RISC-V"))
	s.WriteString(fmt.Sprintf("  %-34s %#x\n", "Version:", hdr.Version))
	s.WriteString(fmt.Sprintf("  %-34s %#x\n", "Entry point address:", hdr.Entry))
	s.WriteString(fmt.Sprintf("  %-34s %d (bytes into file)\n", "Start of program headers:", hdr.Phoff))
	s.WriteString(fmt.Sprintf("  %-34s %d (bytes into file)\n", "Start of section headers:", hdr.Shoff))
	s.WriteString(fmt.Sprintf("  %-34s %#x\n", "Flags:", hdr.Flags))
	s.WriteString(fmt.Sprintf("  %-34s %d (bytes)\n", "Size of this header:", hdr.Ehsize))
	s.WriteString(fmt.Sprintf("  %-34s %d (bytes)\n", "Size of program headers:", hdr.Phentsize))
	s.WriteString(fmt.Sprintf("  %-34s %d\n", "Number of program headers:", hdr.Phnum))
	s.WriteString(fmt.Sprintf("  %-34s %d (bytes)\n", "Size of section headers:", hdr.Shentsize))
	s.WriteString(fmt.Sprintf("  %-34s %d\n", "Number of section headers:", hdr.Shnum))
	s.WriteString(fmt.Sprintf("  %-34s %d\n", "Section header string table index:", hdr.Shstrndx))
	return s.String()
}
