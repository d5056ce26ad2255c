package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/sarchlab/wirelogic/core"
	"github.com/sarchlab/wirelogic/instr"
	"github.com/sarchlab/wirelogic/verify"
)

const (
	promptMain = "wire> "
	helpText   = `Enter one instruction per line, e.g. "x AND y -> d".
:values  evaluate the lines entered so far
:reset   forget them
:quit    leave`
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse instructions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			fmt.Fprintln(cmd.OutOrStdout(), helpText)

			s := &session{out: cmd.OutOrStdout()}
			for {
				line, err := ln.Prompt(promptMain)
				if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
					fmt.Fprintln(s.out)
					return nil
				}
				if err != nil {
					return err
				}

				if strings.TrimSpace(line) != "" {
					ln.AppendHistory(line)
				}

				if !s.handle(line) {
					return nil
				}
			}
		},
	}
}

// session holds the instructions accepted during one REPL run.
type session struct {
	out  io.Writer
	prog core.Program
}

// handle processes one input line and reports whether to keep reading.
func (s *session) handle(line string) bool {
	switch strings.TrimSpace(line) {
	case "":
		return true
	case ":quit":
		return false
	case ":reset":
		s.prog = core.Program{}
		return true
	case ":values":
		s.printValues()
		return true
	}

	inst, err := core.ParseInstruction(line)
	if err != nil {
		var perr *core.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintln(s.out, perr.Input)
			fmt.Fprintln(s.out, perr.Pointer())
		}
		fmt.Fprintf(s.out, "error: %v\n", err)
		return true
	}

	s.prog.Instructions = append(s.prog.Instructions, inst)
	s.prog.Lines = append(s.prog.Lines, len(s.prog.Lines)+1)
	fmt.Fprintln(s.out, inst.String())
	fmt.Fprintln(s.out, describe(inst))

	return true
}

func (s *session) printValues() {
	values, err := verify.NewFunctionalSimulator(s.prog).ResolveAll()
	if len(values) > 0 {
		fmt.Fprintln(s.out, core.RenderValues(values))
	}
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}

// describe renders a parsed line for interactive use.
func describe(inst instr.Instruction) string {
	return fmt.Sprintf("%s\t%s <- %v", instr.OpName(inst.Op), inst.Target, inst.Op.Inputs())
}
