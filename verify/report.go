package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/wirelogic/core"
	"github.com/sarchlab/wirelogic/instr"
)

// ReportOptions selects what GenerateReport evaluates.
type ReportOptions struct {
	// Wires to report. Empty means every wire.
	Wires     []instr.Wire
	Overrides map[instr.Wire]instr.Value
}

// VerificationReport represents a complete verification report
type VerificationReport struct {
	InstructionCount int
	LintIssues       []Issue
	Values           map[instr.Wire]instr.Value
	SimulationErr    error
	SimulationOK     bool
	Program          core.Program
}

// GenerateReport runs both lint and functional simulation, returns a report
func GenerateReport(prog core.Program, opts ReportOptions) *VerificationReport {
	report := &VerificationReport{
		InstructionCount: len(prog.Instructions),
		Program:          prog,
		LintIssues:       RunLint(prog),
	}

	fs := NewFunctionalSimulator(prog)
	for w, v := range opts.Overrides {
		fs.Override(w, v)
	}

	if len(opts.Wires) == 0 {
		report.Values, report.SimulationErr = fs.ResolveAll()
	} else {
		report.Values = make(map[instr.Wire]instr.Value, len(opts.Wires))
		for _, w := range opts.Wires {
			v, err := fs.Resolve(w)
			if err != nil {
				report.SimulationErr = err
				break
			}
			report.Values[w] = v
		}
	}

	report.SimulationOK = report.SimulationErr == nil

	return report
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "CIRCUIT VERIFICATION REPORT")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "\nLoaded %d instructions\n", r.InstructionCount)

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 1: STATIC LINT CHECKS")
	fmt.Fprintln(w, separator)

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "No lint issues found")
	} else {
		fmt.Fprintln(w, RenderIssues(r.LintIssues))
	}

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 2: FUNCTIONAL SIMULATION")
	fmt.Fprintln(w, separator)

	if len(r.Values) > 0 {
		fmt.Fprintln(w, core.RenderValues(r.Values))
	}

	simStatus := "SUCCESS"
	if !r.SimulationOK {
		simStatus = "FAILED: " + r.SimulationErr.Error()
	}
	fmt.Fprintf(w, "Simulation Result: %s\n", simStatus)

	fmt.Fprintln(w)
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}

// RenderIssues formats lint issues as a table.
func RenderIssues(issues []Issue) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Lint Issues (%d)", len(issues)))
	t.AppendHeader(table.Row{"Type", "Wire", "Line", "Message"})

	for _, issue := range issues {
		line := "-"
		if issue.Line > 0 {
			line = fmt.Sprint(issue.Line)
		}
		t.AppendRow(table.Row{string(issue.Type), string(issue.Wire), line, issue.Message})
	}

	return t.Render()
}
