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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/rv32dis/curated"
	"github.com/jetsetilly/rv32dis/disassembly"
	"github.com/jetsetilly/rv32dis/elf"
	"github.com/jetsetilly/rv32dis/logger"
	"github.com/jetsetilly/rv32dis/riscv"
)

// Check the performance of the disassembler using the supplied ELF file.
//
// The file will be disassembled repeatedly for the specified duration. A
// cpu profile, a memory profile, a trace (or a combination of those) will be
// created as defined by the Profile argument.
func Check(output io.Writer, profile Profile, ef *elf.File, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}
	if dur <= 0 {
		return curated.Errorf("performance: duration must be positive: %s", duration)
	}

	// single pass before timing begins. any error in the file is reported
	// now rather than repeatedly
	err = pass(ef, new(int))
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	var passes int
	var instructions int
	var elapsed time.Duration

	runner := func() error {
		start := time.Now()
		deadline := start.Add(dur)
		for time.Now().Before(deadline) {
			err := pass(ef, &instructions)
			if err != nil {
				return err
			}
			passes++
		}
		elapsed = time.Since(start)
		return nil
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	rate := float64(instructions) / elapsed.Seconds()
	logger.Logf(logger.Allow, "performance", "%d passes of %d instructions", passes, ef.Text.Size/4)
	fmt.Fprintf(output, "%.2f instructions per second (%d passes in %.2f seconds)\n", rate, passes, elapsed.Seconds())

	return nil
}

// pass performs both passes of the disassembly and counts the number of
// instructions decoded.
func pass(ef *elf.File, instructions *int) error {
	dsm, err := disassembly.FromFile(ef)
	if err != nil {
		return err
	}
	return dsm.Decode(func(_ riscv.Instruction, _ string) error {
		*instructions++
		return nil
	})
}
