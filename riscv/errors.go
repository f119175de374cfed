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

package riscv

import "fmt"

// ErrorKind distinguishes the two decoding failures.
type ErrorKind int

// List of valid ErrorKind values.
const (
	UnexpectedInstruction ErrorKind = iota
	UnexpectedRegister
)

// DecodeError is returned when an instruction word or register cannot be
// decoded.
type DecodeError struct {
	Kind ErrorKind

	// the instruction word and its address for UnexpectedInstruction
	Word    uint32
	Address uint32

	// the register index for UnexpectedRegister
	Register int
}

func (e DecodeError) Error() string {
	switch e.Kind {
	case UnexpectedInstruction:
		return fmt.Sprintf("unexpected instruction found: %032b (at %08x)", e.Word, e.Address)
	case UnexpectedRegister:
		return fmt.Sprintf("unexpected register found: %d", e.Register)
	}
	return fmt.Sprintf("decode error %d", int(e.Kind))
}
