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

import "fmt"

// ErrorKind distinguishes the different reasons a file could not be read.
type ErrorKind int

// List of valid ErrorKind values.
const (
	IllegalFile ErrorKind = iota
	MissingSection
	Malformed
	Truncated
)

func (k ErrorKind) String() string {
	switch k {
	case IllegalFile:
		return "illegal file"
	case MissingSection:
		return "missing section"
	case Malformed:
		return "malformed"
	case Truncated:
		return "truncated"
	}
	return fmt.Sprintf("%d", int(k))
}

// ContainerError is returned when the ELF file cannot be used. Only the
// fields relevant to the Kind are set.
type ContainerError struct {
	Kind ErrorKind

	// the identification check that failed for IllegalFile. one of "ELF",
	// "32-bit", "little-endian" or "RISC-V". for Malformed it describes the
	// problem with the section
	Criterion string

	// the name of the section for MissingSection and Malformed
	Section string

	// the position and length of the read that failed for Truncated
	Offset int64
	Size   int
}

func (e ContainerError) Error() string {
	switch e.Kind {
	case IllegalFile:
		return fmt.Sprintf("illegal file given, not %s", e.Criterion)
	case MissingSection:
		return fmt.Sprintf("missing section %s", e.Section)
	case Malformed:
		return fmt.Sprintf("malformed section %s: %s", e.Section, e.Criterion)
	case Truncated:
		return fmt.Sprintf("file truncated: read of %d bytes at offset %#x", e.Size, e.Offset)
	}
	return e.Kind.String()
}
