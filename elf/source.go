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
	"io"
)

// Source is a random access view of the bytes of an ELF file. All values are
// little-endian.
type Source struct {
	r    io.ReaderAt
	size int64
}

// NewSource is the preferred method of initialisation for the Source type.
// The size is the number of bytes that can be read from the io.ReaderAt.
func NewSource(r io.ReaderAt, size int64) *Source {
	return &Source{
		r:    r,
		size: size,
	}
}

// Size returns the number of bytes in the source.
func (src *Source) Size() int64 {
	return src.size
}

// Bytes returns n bytes starting at offset. Reading outside of the source
// results in a ContainerError with a Kind of Truncated.
func (src *Source) Bytes(offset int64, n int) ([]byte, error) {
	if offset < 0 || n < 0 || offset+int64(n) > src.size {
		return nil, ContainerError{Kind: Truncated, Offset: offset, Size: n}
	}
	b := make([]byte, n)
	m, err := src.r.ReadAt(b, offset)
	if err != nil && err != io.EOF {
		return nil, err
	}

	// the size given to NewSource may be larger than the underlying reader
	if m < n {
		return nil, ContainerError{Kind: Truncated, Offset: offset, Size: n}
	}

	return b, nil
}

// Byte returns the byte at offset.
func (src *Source) Byte(offset int64) (uint8, error) {
	b, err := src.Bytes(offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 returns the 16-bit value at offset.
func (src *Source) Uint16(offset int64) (uint16, error) {
	b, err := src.Bytes(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 returns the 32-bit value at offset.
func (src *Source) Uint32(offset int64) (uint32, error) {
	b, err := src.Bytes(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
