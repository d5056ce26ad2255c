package verify

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sarchlab/wirelogic/core"
	"github.com/sarchlab/wirelogic/instr"
)

// FunctionalSimulator resolves wire values on demand. Each wire is computed
// at most once; results are cached until an override changes.
type FunctionalSimulator struct {
	prog      core.Program
	drivers   map[instr.Wire]int
	overrides map[instr.Wire]instr.Value
	values    map[instr.Wire]instr.Value
	visiting  map[instr.Wire]bool
}

// NewFunctionalSimulator creates a simulator for a program.
func NewFunctionalSimulator(prog core.Program) *FunctionalSimulator {
	return &FunctionalSimulator{
		prog:      prog,
		drivers:   prog.EffectiveDrivers(),
		overrides: make(map[instr.Wire]instr.Value),
		values:    make(map[instr.Wire]instr.Value),
		visiting:  make(map[instr.Wire]bool),
	}
}

// Override pins a wire to a value, ignoring its driver. Cached results are
// dropped.
func (fs *FunctionalSimulator) Override(w instr.Wire, v instr.Value) {
	fs.overrides[w] = v
	fs.values = make(map[instr.Wire]instr.Value)
}

// Resolve returns the value of a wire.
func (fs *FunctionalSimulator) Resolve(w instr.Wire) (instr.Value, error) {
	return fs.resolve(w, nil)
}

// ResolveAll resolves every driven or overridden wire. Wires that cannot be
// resolved are left out of the result and reported in the joined error.
func (fs *FunctionalSimulator) ResolveAll() (map[instr.Wire]instr.Value, error) {
	wires := make([]instr.Wire, 0, len(fs.drivers)+len(fs.overrides))
	for w := range fs.drivers {
		wires = append(wires, w)
	}
	for w := range fs.overrides {
		if _, driven := fs.drivers[w]; !driven {
			wires = append(wires, w)
		}
	}
	sort.Slice(wires, func(i, j int) bool { return wires[i] < wires[j] })

	values := make(map[instr.Wire]instr.Value, len(wires))

	var errs []error
	for _, w := range wires {
		v, err := fs.Resolve(w)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values[w] = v
	}

	return values, errors.Join(errs...)
}

func (fs *FunctionalSimulator) resolve(w instr.Wire, path []instr.Wire) (instr.Value, error) {
	if v, ok := fs.overrides[w]; ok {
		return v, nil
	}

	if v, ok := fs.values[w]; ok {
		return v, nil
	}

	path = append(path, w)

	if fs.visiting[w] {
		return 0, fmt.Errorf("%w: %s", ErrCycle, joinPath(path))
	}

	idx, ok := fs.drivers[w]
	if !ok {
		return 0, fmt.Errorf("%w %s: %s", ErrUndrivenWire, w, joinPath(path))
	}

	fs.visiting[w] = true
	defer delete(fs.visiting, w)

	inst := fs.prog.Instructions[idx]

	inputs := make(map[instr.Wire]instr.Value, 2)
	for _, in := range inst.Op.Inputs() {
		v, err := fs.resolve(in, path)
		if err != nil {
			return 0, err
		}
		inputs[in] = v
	}

	v, ok := core.Eval(inst.Op, inputs)
	if !ok {
		panic(fmt.Sprintf("inputs of %q resolved but evaluation failed", inst.String()))
	}

	fs.values[w] = v

	core.Trace("FuncSimResolve", "Wire", string(w), "Value", uint16(v), "Line", fs.prog.Line(idx))

	return v, nil
}

func joinPath(path []instr.Wire) string {
	s := ""
	for i, w := range path {
		if i > 0 {
			s += " -> "
		}
		s += string(w)
	}
	return s
}
