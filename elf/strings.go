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

// StringTable is a cursor over a sequence of NUL terminated strings.
type StringTable struct {
	src    *Source
	base   int64
	cursor int64
}

// NewStringTable creates a cursor at the absolute file offset.
func NewStringTable(src *Source, base int64) *StringTable {
	return &StringTable{
		src:  src,
		base: base,
	}
}

// Next returns the string at the cursor and moves the cursor past the
// terminating NUL. A string that runs off the end of the file is an error.
func (st *StringTable) Next() (string, error) {
	var s []byte
	for {
		b, err := st.src.Byte(st.base + st.cursor)
		if err != nil {
			return "", err
		}
		st.cursor++
		if b == 0x00 {
			break
		}
		s = append(s, b)
	}
	return string(s), nil
}

// Offset returns the position of the cursor relative to the start of the
// table.
func (st *StringTable) Offset() int64 {
	return st.cursor
}
