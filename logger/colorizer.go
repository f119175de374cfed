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

package logger

import (
	"io"
	"strings"

	"github.com/jetsetilly/rv32dis/terminal/ansi"
)

// Colorizer applies basic coloring rules to logging output. The first line
// of a write is printed normally and any further lines are printed with a
// dim red pen.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method of initialisation for the Colorizer
// type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	s := strings.TrimSpace(string(p))
	if s == "" {
		return len(p), nil
	}
	l := strings.Split(s, "\n")

	if _, err = io.WriteString(c.out, l[0]+"\n"); err != nil {
		return 0, err
	}

	if len(l) > 1 {
		if _, err = io.WriteString(c.out, ansi.DimPens["red"]); err != nil {
			return 0, err
		}
		for _, s := range l[1:] {
			if _, err = io.WriteString(c.out, s+"\n"); err != nil {
				return 0, err
			}
		}
		if _, err = io.WriteString(c.out, ansi.NormalPen); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}
