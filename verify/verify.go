// Package verify checks and evaluates parsed circuits without the
// cycle-driven core.
//
// It has two complementary stages:
//
// 1. Static Lint (lint.go): structural checks over the wire graph
//   - UNDRIVEN: a wire is read but no instruction drives it
//   - MULTIDRIVE: a wire is the target of more than one instruction
//   - CYCLE: wires that depend on themselves through other wires
//
// 2. Functional Simulator (funcsim.go): memoized resolution of wire values
//   - resolves any wire on demand, following its dependencies
//   - honours per-wire overrides
//   - reports undriven wires and cycles as errors with the wire path
//
// # Usage Example
//
//	prog, err := core.LoadProgramFile("circuit.txt", core.StopOnError, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, issue := range verify.RunLint(prog) {
//	    log.Printf("[%s] line %d: %s", issue.Type, issue.Line, issue.Message)
//	}
//
//	fs := verify.NewFunctionalSimulator(prog)
//	a, err := fs.Resolve("a")
//
// When a wire is driven more than once, the last instruction wins, in both
// this package and core.Core.
package verify

import (
	"errors"

	"github.com/sarchlab/wirelogic/instr"
)

// IssueType categorizes lint issues
type IssueType string

const (
	IssueUndriven        IssueType = "UNDRIVEN"
	IssueMultipleDrivers IssueType = "MULTIDRIVE"
	IssueCycle           IssueType = "CYCLE"
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType
	Wire    instr.Wire   // wire the issue is about
	Line    int          // source line, 0 if not applicable
	Wires   []instr.Wire // wires involved, e.g. the members of a cycle
	Message string
}

var (
	// ErrUndrivenWire is returned when a wire has no driving instruction.
	ErrUndrivenWire = errors.New("undriven wire")

	// ErrCycle is returned when a wire depends on itself.
	ErrCycle = errors.New("combinational cycle")
)
