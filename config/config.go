// Package config loads run settings and builds the simulation platform.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/wirelogic/core"
	"github.com/sarchlab/wirelogic/instr"
)

// Engine names which evaluator runs a circuit.
const (
	EngineFunc  = "func"
	EngineCycle = "cycle"
)

// Config is the content of a run configuration file.
type Config struct {
	Input       string            `yaml:"input"`
	Wires       []string          `yaml:"wires"`
	Overrides   map[string]uint16 `yaml:"overrides"`
	ErrorPolicy string            `yaml:"errorPolicy"`
	Workers     int               `yaml:"workers"`
	Engine      string            `yaml:"engine"`
	LogLevel    string            `yaml:"logLevel"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		ErrorPolicy: "stop",
		Workers:     1,
		Engine:      EngineFunc,
		LogLevel:    "info",
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := core.ParseErrorPolicy(c.ErrorPolicy); err != nil {
		return err
	}

	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	if c.Engine != EngineFunc && c.Engine != EngineCycle {
		return fmt.Errorf("unknown engine %q", c.Engine)
	}

	for _, w := range c.Wires {
		if !instr.Wire(w).Valid() {
			return fmt.Errorf("invalid wire name %q", w)
		}
	}

	for w := range c.Overrides {
		if !instr.Wire(w).Valid() {
			return fmt.Errorf("invalid override wire name %q", w)
		}
	}

	return nil
}

// Policy returns the parsed error policy.
func (c Config) Policy() core.ErrorPolicy {
	p, _ := core.ParseErrorPolicy(c.ErrorPolicy)
	return p
}

// WireList returns the requested wires.
func (c Config) WireList() []instr.Wire {
	wires := make([]instr.Wire, len(c.Wires))
	for i, w := range c.Wires {
		wires[i] = instr.Wire(w)
	}
	return wires
}

// OverrideMap returns the overrides keyed by wire.
func (c Config) OverrideMap() map[instr.Wire]instr.Value {
	overrides := make(map[instr.Wire]instr.Value, len(c.Overrides))
	for w, v := range c.Overrides {
		overrides[instr.Wire(w)] = instr.Value(v)
	}
	return overrides
}

// SetOverride parses "wire=value" and records it.
func (c *Config) SetOverride(kv string) error {
	name, value, ok := strings.Cut(kv, "=")
	if !ok {
		return fmt.Errorf("override %q is not of the form wire=value", kv)
	}

	if !instr.Wire(name).Valid() {
		return fmt.Errorf("invalid override wire name %q", name)
	}

	v, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return fmt.Errorf("override %q: %w", kv, err)
	}

	if c.Overrides == nil {
		c.Overrides = make(map[string]uint16)
	}
	c.Overrides[name] = uint16(v)

	return nil
}

// String renders the configuration as YAML.
func (c Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}

	return string(out)
}
