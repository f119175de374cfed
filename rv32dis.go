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

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/rv32dis/curated"
	"github.com/jetsetilly/rv32dis/disassembly"
	"github.com/jetsetilly/rv32dis/elf"
	"github.com/jetsetilly/rv32dis/logger"
	"github.com/jetsetilly/rv32dis/modalflag"
	"github.com/jetsetilly/rv32dis/performance"
	"github.com/jetsetilly/rv32dis/riscv"
	"github.com/jetsetilly/rv32dis/statsview"
	"github.com/jetsetilly/rv32dis/terminal"
	"github.com/jetsetilly/rv32dis/version"
)

// exit values used by main().
const (
	exitOK        = 0
	exitArguments = 10
	exitRun       = 20
)

// argumentError is returned by a mode when the number of positional
// arguments is wrong. it is reported as an argument error and not as a
// run error.
type argumentError struct {
	mode string
	want string
}

func (e argumentError) Error() string {
	return fmt.Sprintf("%s required for %s mode", e.want, e.mode)
}

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout, os.Stderr))
}

// launch the program with the argument list, not including the program
// name. returns the exit value.
func launch(args []string, stdout io.Writer, stderr io.Writer) int {
	md := &modalflag.Modes{Output: stdout}
	md.NewArgs(args)
	md.AddSubModes("DISASM", "HEADER", "LABELS", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK

	case modalflag.ParseError:
		report(stderr, err)
		return exitArguments
	}

	switch md.Mode() {
	case "DISASM":
		err = disasm(md, stdout, stderr)

	case "HEADER":
		err = header(md, stdout)

	case "LABELS":
		err = labels(md, stdout)

	case "PERFORMANCE":
		err = perform(md, stdout)

	case "VERSION":
		err = showVersion(md, stdout)
	}

	if err != nil {
		report(stderr, err)

		var aerr argumentError
		if errors.As(err, &aerr) || curated.Is(err, "modalflag: %v") {
			return exitArguments
		}
		return exitRun
	}

	return exitOK
}

// report writes a categorised error message to stderr. the message is red
// if stderr is a terminal.
func report(stderr io.Writer, err error) {
	pen := terminal.NewPen(stderr, "red")

	var cerr elf.ContainerError
	var derr riscv.DecodeError

	switch {
	case errors.As(err, &cerr):
		fmt.Fprintf(pen, "* elf error: %v\n", cerr)
	case errors.As(err, &derr):
		fmt.Fprintf(pen, "* decoding error: %v\n", derr)
	default:
		fmt.Fprintf(pen, "* error: %v\n", err)
	}
}

// parse the flags of a mode. a help request is returned as done with no
// error.
func parse(md *modalflag.Modes) (done bool, err error) {
	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return true, nil
	case modalflag.ParseError:
		return true, curated.Errorf("modalflag: %v", err)
	}
	return false, nil
}

func disasm(md *modalflag.Modes, stdout io.Writer, stderr io.Writer) error {
	md.NewMode()
	md.Usage("<input> <output>")

	log := md.AddBool("log", false, "echo log to stderr")
	profile := md.AddString("profile", "none", "run through profiler: cpu, mem, trace, all")
	graph := md.AddString("memviz", "", "write labels and jumps to file as a graphviz graph")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	if done, err := parse(md); done {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return argumentError{mode: md.String(), want: "input and output files"}
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return curated.Errorf("modalflag: %v", err)
	}

	if *log {
		logger.SetEcho(logger.NewColorizer(stderr))
		defer logger.SetEcho(nil)
	}

	if stats != nil && *stats {
		statsview.Launch(stderr)
	}

	input := md.GetArg(0)
	output := md.GetArg(1)

	// the listing is rendered completely before the output file is created.
	// a failure part way through the disassembly writes nothing
	var listing bytes.Buffer

	err = performance.RunProfiler(prf, "disasm", func() error {
		ef, err := elf.Open(input)
		if err != nil {
			return err
		}
		defer ef.Close()

		dsm, err := disassembly.FromFile(ef)
		if err != nil {
			return err
		}

		if *graph != "" {
			err = writeGraph(*graph, dsm)
			if err != nil {
				return err
			}
		}

		return dsm.Write(&listing)
	})
	if err != nil {
		return err
	}

	logger.Logf(logger.Allow, "rv32dis", "writing %d bytes to %s", listing.Len(), output)

	if output == "-" {
		_, err = listing.WriteTo(stdout)
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return curated.Errorf("rv32dis: %v", err)
	}

	_, err = listing.WriteTo(f)
	if err != nil {
		f.Close()
		return curated.Errorf("rv32dis: %v", err)
	}

	err = f.Close()
	if err != nil {
		return curated.Errorf("rv32dis: %v", err)
	}

	return nil
}

// writeGraph writes the resolved labels and jumps to the named file as a
// graphviz graph.
func writeGraph(filename string, dsm *disassembly.Disassembly) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("memviz: %v", err)
	}
	memviz.Map(f, dsm.Labels, dsm.Jumps)
	err = f.Close()
	if err != nil {
		return curated.Errorf("memviz: %v", err)
	}
	return nil
}

// open the single input file of the HEADER, LABELS and PERFORMANCE modes.
func openInput(md *modalflag.Modes) (*elf.File, error) {
	if len(md.RemainingArgs()) != 1 {
		return nil, argumentError{mode: md.String(), want: "a single input file"}
	}
	return elf.Open(md.GetArg(0))
}

func header(md *modalflag.Modes, stdout io.Writer) error {
	md.NewMode()
	md.Usage("<input>")

	if done, err := parse(md); done {
		return err
	}

	ef, err := openInput(md)
	if err != nil {
		return err
	}
	defer ef.Close()

	dsm, err := disassembly.FromFile(ef)
	if err != nil {
		return err
	}

	return dsm.WriteHeader(stdout)
}

func labels(md *modalflag.Modes, stdout io.Writer) error {
	md.NewMode()
	md.Usage("<input>")

	if done, err := parse(md); done {
		return err
	}

	ef, err := openInput(md)
	if err != nil {
		return err
	}
	defer ef.Close()

	dsm, err := disassembly.FromFile(ef)
	if err != nil {
		return err
	}

	return dsm.WriteLabels(stdout)
}

func perform(md *modalflag.Modes, stdout io.Writer) error {
	md.NewMode()
	md.Usage("<input>")

	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddString("profile", "none", "produce profiling reports: cpu, mem, trace, all")

	if done, err := parse(md); done {
		return err
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return curated.Errorf("modalflag: %v", err)
	}

	ef, err := openInput(md)
	if err != nil {
		return err
	}
	defer ef.Close()

	return performance.Check(stdout, prf, ef, *duration)
}

func showVersion(md *modalflag.Modes, stdout io.Writer) error {
	md.NewMode()

	if done, err := parse(md); done {
		return err
	}

	_, err := fmt.Fprintln(stdout, version.String())
	return err
}
