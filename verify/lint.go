package verify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sarchlab/wirelogic/core"
	"github.com/sarchlab/wirelogic/instr"
)

// RunLint performs static checks on a circuit.
// Undriven wires come first in the order they are read, then multiply-driven
// wires and cycles sorted by wire name.
// Returns a list of issues found, or empty list if no issues.
func RunLint(prog core.Program) []Issue {
	var issues []Issue

	drivers := prog.Drivers()

	issues = append(issues, lintUndriven(prog, drivers)...)
	issues = append(issues, lintMultipleDrivers(prog, drivers)...)
	issues = append(issues, lintCycles(prog)...)

	return issues
}

func lintUndriven(prog core.Program, drivers map[instr.Wire][]int) []Issue {
	var issues []Issue

	reported := make(map[instr.Wire]bool)
	for i, inst := range prog.Instructions {
		for _, w := range inst.Op.Inputs() {
			if _, driven := drivers[w]; driven || reported[w] {
				continue
			}
			reported[w] = true

			issues = append(issues, Issue{
				Type:    IssueUndriven,
				Wire:    w,
				Line:    prog.Line(i),
				Wires:   []instr.Wire{w},
				Message: fmt.Sprintf("wire %s is read by %q but never driven", w, inst.String()),
			})
		}
	}

	return issues
}

func lintMultipleDrivers(prog core.Program, drivers map[instr.Wire][]int) []Issue {
	var issues []Issue

	for w, idxs := range drivers {
		if len(idxs) < 2 {
			continue
		}

		lines := make([]string, 0, len(idxs))
		for _, idx := range idxs {
			lines = append(lines, fmt.Sprint(prog.Line(idx)))
		}

		issues = append(issues, Issue{
			Type:  IssueMultipleDrivers,
			Wire:  w,
			Line:  prog.Line(idxs[len(idxs)-1]),
			Wires: []instr.Wire{w},
			Message: fmt.Sprintf("wire %s is driven %d times (lines %s); the last one wins",
				w, len(idxs), strings.Join(lines, ", ")),
		})
	}

	sort.Slice(issues, func(i, j int) bool { return issues[i].Wire < issues[j].Wire })

	return issues
}

func lintCycles(prog core.Program) []Issue {
	var issues []Issue

	drivers := prog.EffectiveDrivers()

	for _, scc := range findCycles(prog, drivers) {
		w := scc[0]
		issues = append(issues, Issue{
			Type:    IssueCycle,
			Wire:    w,
			Line:    prog.Line(drivers[w]),
			Wires:   scc,
			Message: fmt.Sprintf("wires %s depend on themselves", joinWires(scc)),
		})
	}

	return issues
}

// findCycles returns the strongly connected components of the wire graph that
// contain a cycle, each sorted, ordered by their first wire.
func findCycles(prog core.Program, drivers map[instr.Wire]int) [][]instr.Wire {
	t := tarjan{
		prog:    prog,
		drivers: drivers,
		index:   make(map[instr.Wire]int),
		low:     make(map[instr.Wire]int),
		onStack: make(map[instr.Wire]bool),
	}

	wires := make([]instr.Wire, 0, len(drivers))
	for w := range drivers {
		wires = append(wires, w)
	}
	sort.Slice(wires, func(i, j int) bool { return wires[i] < wires[j] })

	for _, w := range wires {
		if _, seen := t.index[w]; !seen {
			t.visit(w)
		}
	}

	sort.Slice(t.cycles, func(i, j int) bool { return t.cycles[i][0] < t.cycles[j][0] })

	return t.cycles
}

type tarjan struct {
	prog    core.Program
	drivers map[instr.Wire]int

	next    int
	index   map[instr.Wire]int
	low     map[instr.Wire]int
	stack   []instr.Wire
	onStack map[instr.Wire]bool

	cycles [][]instr.Wire
}

func (t *tarjan) visit(w instr.Wire) {
	t.index[w] = t.next
	t.low[w] = t.next
	t.next++
	t.stack = append(t.stack, w)
	t.onStack[w] = true

	selfLoop := false
	for _, in := range t.inputs(w) {
		if in == w {
			selfLoop = true
		}

		if _, seen := t.index[in]; !seen {
			t.visit(in)
			t.low[w] = min(t.low[w], t.low[in])
		} else if t.onStack[in] {
			t.low[w] = min(t.low[w], t.index[in])
		}
	}

	if t.low[w] != t.index[w] {
		return
	}

	var scc []instr.Wire
	for {
		top := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[top] = false
		scc = append(scc, top)
		if top == w {
			break
		}
	}

	if len(scc) > 1 || selfLoop {
		sort.Slice(scc, func(i, j int) bool { return scc[i] < scc[j] })
		t.cycles = append(t.cycles, scc)
	}
}

// inputs returns the driven wires read by the driver of w.
func (t *tarjan) inputs(w instr.Wire) []instr.Wire {
	idx, ok := t.drivers[w]
	if !ok {
		return nil
	}

	var inputs []instr.Wire
	for _, in := range t.prog.Instructions[idx].Op.Inputs() {
		if _, driven := t.drivers[in]; driven {
			inputs = append(inputs, in)
		}
	}

	return inputs
}

func joinWires(wires []instr.Wire) string {
	names := make([]string, len(wires))
	for i, w := range wires {
		names[i] = string(w)
	}
	return strings.Join(names, ", ")
}
