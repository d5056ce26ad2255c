package core

import (
	"sort"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/wirelogic/instr"
)

// Core evaluates a circuit one dependency level per cycle. In each cycle,
// every instruction whose inputs were resolved in an earlier cycle drives its
// target. The engine stops ticking the core once a cycle resolves nothing.
type Core struct {
	*sim.TickingComponent

	state coreState
	emu   instEmulator
}

type coreState struct {
	Code    Program
	Pending []int
	Values  map[instr.Wire]instr.Value
	Cycles  int
}

type resolvedWire struct {
	wire  instr.Wire
	value instr.Value
}

// MapProgram loads a circuit. Wires in overrides keep the given value and
// their driving instructions are ignored. Mapping replaces any earlier
// program and its results.
func (c *Core) MapProgram(prog Program, overrides map[instr.Wire]instr.Value) {
	c.state = coreState{
		Code:   prog,
		Values: make(map[instr.Wire]instr.Value, len(prog.Instructions)),
	}

	for w, v := range overrides {
		c.state.Values[w] = v
	}

	drivers := prog.EffectiveDrivers()
	for i, inst := range prog.Instructions {
		if _, pinned := overrides[inst.Target]; pinned {
			continue
		}

		if drivers[inst.Target] != i {
			continue
		}

		c.state.Pending = append(c.state.Pending, i)
	}

	Trace("CoreMapProgram",
		"Core", c.Name(),
		"Instructions", len(prog.Instructions),
		"Pending", len(c.state.Pending),
		"Overrides", len(overrides))

	c.TickLater()
}

// Tick resolves every pending instruction whose inputs are known.
func (c *Core) Tick() (madeProgress bool) {
	if len(c.state.Pending) == 0 {
		return false
	}

	read := func(w instr.Wire) (instr.Value, bool) {
		v, ok := c.state.Values[w]
		return v, ok
	}

	var (
		resolved  []resolvedWire
		remaining []int
	)

	for _, idx := range c.state.Pending {
		inst := c.state.Code.Instructions[idx]

		v, ok := c.emu.RunInst(inst.Op, read)
		if !ok {
			remaining = append(remaining, idx)
			continue
		}

		resolved = append(resolved, resolvedWire{wire: inst.Target, value: v})
	}

	// Commit after the scan so a cycle only sees values from earlier cycles.
	for _, r := range resolved {
		c.state.Values[r.wire] = r.value
	}

	c.state.Pending = remaining

	if len(resolved) == 0 {
		return false
	}

	c.state.Cycles++

	Trace("CoreTick",
		"Core", c.Name(),
		"Time", float64(c.Engine.CurrentTime()*1e9),
		"Resolved", len(resolved),
		"Pending", len(remaining))

	return true
}

// Value returns the resolved value of a wire.
func (c *Core) Value(w instr.Wire) (instr.Value, bool) {
	v, ok := c.state.Values[w]
	return v, ok
}

// Values returns a copy of all resolved wires.
func (c *Core) Values() map[instr.Wire]instr.Value {
	values := make(map[instr.Wire]instr.Value, len(c.state.Values))
	for w, v := range c.state.Values {
		values[w] = v
	}
	return values
}

// Unresolved lists, sorted, the target wires that could not be resolved.
// After the engine drains these are wires depending on undriven wires or
// on a cycle.
func (c *Core) Unresolved() []instr.Wire {
	wires := make([]instr.Wire, 0, len(c.state.Pending))
	for _, idx := range c.state.Pending {
		wires = append(wires, c.state.Code.Instructions[idx].Target)
	}
	sort.Slice(wires, func(i, j int) bool { return wires[i] < wires[j] })
	return wires
}

// Cycles returns the number of cycles that resolved at least one wire.
func (c *Core) Cycles() int {
	return c.state.Cycles
}
