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

// Package terminal decides whether output can be decorated with the ANSI
// sequences in the ansi package.
package terminal

import (
	"io"
	"os"

	"github.com/jetsetilly/rv32dis/terminal/ansi"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// IsTerminal returns true if the file is connected to a terminal. Any file
// for which the terminal attributes cannot be read is not a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	var attr unix.Termios
	return termios.Tcgetattr(f.Fd(), &attr) == nil
}

// Pen wraps an io.Writer and colours everything written to it. The pen is
// only applied if the io.Writer is a terminal.
type Pen struct {
	out io.Writer
	pen string
}

// NewPen is the preferred method of initialisation for the Pen type. The
// colour must be a key in ansi.Pens. An unknown colour or an io.Writer that
// is not a terminal results in a Pen that writes without decoration.
func NewPen(out io.Writer, colour string) Pen {
	p := Pen{out: out}
	if f, ok := out.(*os.File); ok && IsTerminal(f) {
		p.pen = ansi.Pens[colour]
	}
	return p
}

// Write implements the io.Writer interface.
func (p Pen) Write(b []byte) (int, error) {
	if p.pen == "" {
		return p.out.Write(b)
	}
	if _, err := io.WriteString(p.out, p.pen); err != nil {
		return 0, err
	}
	n, err := p.out.Write(b)
	if err != nil {
		return n, err
	}
	_, err = io.WriteString(p.out, ansi.NormalPen)
	return n, err
}
