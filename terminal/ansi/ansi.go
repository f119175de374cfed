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

// Package ansi defines the ANSI pens used to colour the output of the
// program when it is connected to a terminal.
package ansi

import (
	"fmt"
	"strings"
)

var colours = map[string]int{
	"BLACK":   0,
	"RED":     1,
	"GREEN":   2,
	"YELLOW":  3,
	"BLUE":    4,
	"MAGENTA": 5,
	"CYAN":    6,
	"WHITE":   7,
	"NORMAL":  9,
}

const (
	targetPen       = 3
	targetBrightPen = 9
)

var attributes = map[string]int{
	"BOLD":      1,
	"UNDERLINE": 4,
}

// Pens is the list of bright pens, indexed by lower case colour name.
var Pens map[string]string

// DimPens is the list of normal intensity pens, indexed by lower case colour
// name.
var DimPens map[string]string

// PenStyles is the list of pen attributes.
var PenStyles map[string]string

// NormalPen resets the pen and any attributes.
var NormalPen string

func init() {
	Pens = make(map[string]string)
	DimPens = make(map[string]string)
	PenStyles = make(map[string]string)

	NormalPen, _ = ColorBuild("", "")

	for c := range colours {
		if c == "NORMAL" {
			continue
		}
		n := strings.ToLower(c)
		Pens[n], _ = ColorBuild(c, "", true)
		DimPens[n], _ = ColorBuild(c, "")
	}
	for a := range attributes {
		PenStyles[strings.ToLower(a)], _ = ColorBuild("", a)
	}
}

// ColorBuild creates the ANSI sequence for a pen colour and attribute. An
// empty pen and attribute returns the sequence for the normal pen. The
// optional bright argument selects the bright version of the pen.
func ColorBuild(pen string, attribute string, bright ...bool) (string, error) {
	var p []string

	if pen != "" {
		col, ok := colours[strings.ToUpper(pen)]
		if !ok {
			return "", fmt.Errorf("unknown ANSI pen (%s)", pen)
		}
		target := targetPen
		if len(bright) > 0 && bright[0] {
			target = targetBrightPen
		}
		p = append(p, fmt.Sprintf("%d%d", target, col))
	}

	if attribute != "" {
		attr, ok := attributes[strings.ToUpper(attribute)]
		if !ok {
			return "", fmt.Errorf("unknown ANSI attribute (%s)", attribute)
		}
		p = append(p, fmt.Sprintf("%d", attr))
	}

	return fmt.Sprintf("\033[%sm", strings.Join(p, ";")), nil
}
