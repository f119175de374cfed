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

package modalflag

import (
	"fmt"
	"io"
	"strings"
)

// helpWriter collects the output of the flag package so that it can be
// printed with additional information about sub-modes and arguments.
type helpWriter struct {
	buffer strings.Builder
}

func (hw *helpWriter) Write(p []byte) (n int, err error) {
	return hw.buffer.Write(p)
}

func (hw *helpWriter) help(output io.Writer, path string, subModes []string, usage string) {
	lines := strings.Split(hw.buffer.String(), "\n")

	// the first line is the banner from the flag package
	if path != "" {
		fmt.Fprintf(output, "%s for %s mode:\n", strings.TrimSuffix(lines[0], ":"), path)
	} else {
		fmt.Fprintf(output, "%s\n", lines[0])
	}

	flags := strings.Join(lines[1:], "\n")
	io.WriteString(output, flags)

	if usage != "" {
		if flags != "" {
			io.WriteString(output, "\n")
		}
		fmt.Fprintf(output, "  arguments: %s\n", usage)
	}

	if len(subModes) > 0 {
		if flags != "" || usage != "" {
			io.WriteString(output, "\n")
		}
		fmt.Fprintf(output, "  available sub-modes: %s\n", strings.Join(subModes, ", "))
		fmt.Fprintf(output, "    default: %s\n", subModes[0])
	}
}
