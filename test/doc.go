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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a failed test but allow the test to
// continue. The Demand*() functions are fatal and should be used when a
// value is required to be correct for the rest of the test to make sense.
// For example, testing that the length of a slice is correct before
// indexing it.
//
// Success and failure are defined by the type of the value being tested:
//
//	bool -> true is success
//	error -> nil is success
//	nil -> success
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output for comparison against an expected string.
//
// The ELFImage type builds small 32-bit RISC-V ELF files in memory. It is
// used by the tests of the elf and disassembly packages, and by the tests of
// the main package, so that no binary test data needs to be committed.
package test
