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

// Package curated is a helper package for the plain Go language error type.
//
// Curated errors are created with the Errorf() function. It takes a pattern
// and placeholder values in the same way as fmt.Errorf() but the formatting
// is deferred until the Error() function is called. The pattern is kept so
// that the Is() and Has() functions can identify an error, or an error
// somewhere in the chain, without string comparisons of the final message.
//
//	e := curated.Errorf("elf: %v", err)
//	if curated.Is(e, "elf: %v") {
//		...
//	}
//
// Chains are made of parts separated by ": ". Adjacent duplicate parts are
// removed from the final message so that functions can wrap errors without
// worrying about what the caller has already added:
//
//	a := curated.Errorf("disassembly: %v", curated.Errorf("disassembly: %v", err))
//
// prints as
//
//	disassembly: <err>
//
// Any value in the chain that is itself an error is returned by Unwrap(),
// which means that the standard errors.As() and errors.Is() functions will
// find typed errors (for example, elf.ContainerError or riscv.DecodeError)
// that have been wrapped by a curated error.
package curated
