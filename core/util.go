package core

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/wirelogic/instr"
)

const (
	LevelTrace slog.Level = slog.LevelDebug - 4
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// ParseLogLevel accepts trace, debug, info, warn and error.
func ParseLogLevel(s string) (slog.Level, error) {
	if strings.EqualFold(s, "trace") {
		return LevelTrace, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}

	return level, nil
}

// RenderProgram formats a program as a table, one row per instruction.
func RenderProgram(prog Program) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Circuit (%d instructions)", len(prog.Instructions)))
	t.AppendHeader(table.Row{"Line", "Op", "Inputs", "Target", "Text"})

	for i, inst := range prog.Instructions {
		inputs := make([]string, 0, 2)
		for _, w := range inst.Op.Inputs() {
			inputs = append(inputs, string(w))
		}

		t.AppendRow(table.Row{
			prog.Line(i),
			instr.OpName(inst.Op),
			strings.Join(inputs, ","),
			string(inst.Target),
			inst.String(),
		})
	}

	return t.Render()
}

// RenderValues formats resolved wire values sorted by wire name.
func RenderValues(values map[instr.Wire]instr.Value) string {
	wires := make([]instr.Wire, 0, len(values))
	for w := range values {
		wires = append(wires, w)
	}
	sort.Slice(wires, func(i, j int) bool { return wires[i] < wires[j] })

	t := table.NewWriter()
	t.SetTitle("Wire Values")
	t.AppendHeader(table.Row{"Wire", "Value", "Hex"})

	for _, w := range wires {
		v := values[w]
		t.AppendRow(table.Row{string(w), uint16(v), fmt.Sprintf("0x%04x", uint16(v))})
	}

	return t.Render()
}

// PrintProgram writes RenderProgram to stdout.
func PrintProgram(prog Program) {
	fmt.Println(RenderProgram(prog))
}
