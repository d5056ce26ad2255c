package config

import (
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/wirelogic/core"
	"github.com/sarchlab/wirelogic/instr"
	"github.com/sarchlab/wirelogic/verify"
)

// ErrUnresolved is returned when the cycle-driven core stops with wires
// still pending.
var ErrUnresolved = errors.New("unresolved wires")

// PlatformBuilder can build simulation platforms.
type PlatformBuilder struct {
	engine sim.Engine
	freq   sim.Freq
}

// WithEngine sets the engine that drives the simulation. A serial engine is
// created when none is given.
func (b PlatformBuilder) WithEngine(engine sim.Engine) PlatformBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the circuit core.
func (b PlatformBuilder) WithFreq(freq sim.Freq) PlatformBuilder {
	b.freq = freq
	return b
}

// Build creates a platform.
func (b PlatformBuilder) Build(name string) *Platform {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	freq := b.freq
	if freq == 0 {
		freq = 1 * sim.GHz
	}

	return &Platform{
		Engine: engine,
		Core: core.NewBuilder().
			WithEngine(engine).
			WithFreq(freq).
			Build(name + ".Core"),
	}
}

// Platform is an engine with one circuit core.
type Platform struct {
	Engine sim.Engine
	Core   *core.Core
}

// Run maps a program, runs the engine until the core settles and returns
// every resolved wire.
func (p *Platform) Run(
	prog core.Program,
	overrides map[instr.Wire]instr.Value,
) (map[instr.Wire]instr.Value, error) {
	p.Core.MapProgram(prog, overrides)

	if err := p.Engine.Run(); err != nil {
		return nil, fmt.Errorf("running engine: %w", err)
	}

	core.Trace("PlatformRun",
		"Cycles", p.Core.Cycles(),
		"Time", float64(p.Engine.CurrentTime()*1e9))

	values := p.Core.Values()
	if unresolved := p.Core.Unresolved(); len(unresolved) > 0 {
		return values, fmt.Errorf("%w: %v", ErrUnresolved, unresolved)
	}

	return values, nil
}

// Evaluate resolves a program with the engine the configuration names. With
// no wires requested every wire is returned; otherwise only the requested
// ones.
func Evaluate(cfg Config, prog core.Program) (map[instr.Wire]instr.Value, error) {
	overrides := cfg.OverrideMap()
	wires := cfg.WireList()

	if cfg.Engine == EngineCycle {
		values, err := PlatformBuilder{}.Build("Circuit").Run(prog, overrides)
		if len(wires) == 0 {
			return values, err
		}

		return pick(values, wires)
	}

	fs := verify.NewFunctionalSimulator(prog)
	for w, v := range overrides {
		fs.Override(w, v)
	}

	if len(wires) == 0 {
		return fs.ResolveAll()
	}

	values := make(map[instr.Wire]instr.Value, len(wires))
	for _, w := range wires {
		v, err := fs.Resolve(w)
		if err != nil {
			return values, err
		}
		values[w] = v
	}

	return values, nil
}

func pick(
	values map[instr.Wire]instr.Value,
	wires []instr.Wire,
) (map[instr.Wire]instr.Value, error) {
	picked := make(map[instr.Wire]instr.Value, len(wires))
	for _, w := range wires {
		v, ok := values[w]
		if !ok {
			return picked, fmt.Errorf("%w: %s", ErrUnresolved, w)
		}
		picked[w] = v
	}
	return picked, nil
}
