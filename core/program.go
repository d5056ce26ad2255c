package core

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sarchlab/wirelogic/instr"
)

// Program is an ordered list of instructions loaded from a circuit file.
type Program struct {
	Instructions []instr.Instruction

	// Lines holds the 1-based source line of each instruction.
	Lines []int
}

// Drivers maps each target wire to the indices of the instructions that
// drive it.
func (p Program) Drivers() map[instr.Wire][]int {
	drivers := make(map[instr.Wire][]int, len(p.Instructions))
	for i, inst := range p.Instructions {
		drivers[inst.Target] = append(drivers[inst.Target], i)
	}
	return drivers
}

// EffectiveDrivers maps each target wire to the instruction that decides its
// value. When a wire is driven more than once the last instruction wins.
func (p Program) EffectiveDrivers() map[instr.Wire]int {
	drivers := make(map[instr.Wire]int, len(p.Instructions))
	for i, inst := range p.Instructions {
		drivers[inst.Target] = i
	}
	return drivers
}

// Line returns the source line of the i-th instruction, or 0 if unknown.
func (p Program) Line(i int) int {
	if i < 0 || i >= len(p.Lines) {
		return 0
	}
	return p.Lines[i]
}

// LineSource yields lines of text. *bufio.Scanner implements it.
type LineSource interface {
	Scan() bool
	Text() string
	Err() error
}

// ErrorPolicy decides what LoadProgram does with a line that does not parse.
type ErrorPolicy int

const (
	// StopOnError returns at the first line that fails to parse.
	StopOnError ErrorPolicy = iota

	// CollectErrors parses every line and returns all failures together.
	CollectErrors
)

// ParseErrorPolicy converts "stop" or "collect".
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(s) {
	case "", "stop":
		return StopOnError, nil
	case "collect":
		return CollectErrors, nil
	default:
		return StopOnError, fmt.Errorf("unknown error policy %q", s)
	}
}

func (p ErrorPolicy) String() string {
	if p == CollectErrors {
		return "collect"
	}
	return "stop"
}

// LineError attaches a source line number to a parse failure.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// LoadProgram reads every line of src. Blank lines and lines starting with
// '#' are skipped and a trailing carriage return is dropped. With
// CollectErrors the returned program holds every line that did parse.
func LoadProgram(src LineSource, policy ErrorPolicy) (Program, error) {
	var (
		prog Program
		errs []error
	)

	lineNo := 0
	for src.Scan() {
		lineNo++

		line := strings.TrimSuffix(src.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		inst, err := ParseInstruction(line)
		if err != nil {
			lineErr := &LineError{Line: lineNo, Err: err}
			if policy == StopOnError {
				return prog, lineErr
			}

			errs = append(errs, lineErr)

			continue
		}

		prog.Instructions = append(prog.Instructions, inst)
		prog.Lines = append(prog.Lines, lineNo)
	}

	if err := src.Err(); err != nil {
		return prog, fmt.Errorf("reading circuit: %w", err)
	}

	Trace("ProgramLoaded",
		"Instructions", len(prog.Instructions),
		"Errors", len(errs),
		"Policy", policy.String())

	return prog, errors.Join(errs...)
}

// LoadProgramFile loads a circuit from a file. More than one worker parses
// the lines concurrently.
func LoadProgramFile(path string, policy ErrorPolicy, workers int) (Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return Program{}, err
	}
	defer f.Close()

	var prog Program
	if workers > 1 {
		prog, err = LoadProgramConcurrent(bufio.NewScanner(f), policy, workers)
	} else {
		prog, err = LoadProgram(bufio.NewScanner(f), policy)
	}

	if err != nil {
		return prog, fmt.Errorf("%s: %w", path, err)
	}

	return prog, nil
}

// LoadProgramConcurrent reads all of src first and then parses the lines
// with ParseLines. The policy is applied in line order afterwards, so the
// result matches LoadProgram.
func LoadProgramConcurrent(
	src LineSource,
	policy ErrorPolicy,
	workers int,
) (Program, error) {
	var (
		lines   []string
		lineNos []int
	)

	lineNo := 0
	for src.Scan() {
		lineNo++

		line := strings.TrimSuffix(src.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		lines = append(lines, line)
		lineNos = append(lineNos, lineNo)
	}

	if err := src.Err(); err != nil {
		return Program{}, fmt.Errorf("reading circuit: %w", err)
	}

	insts, parseErrs := ParseLines(lines, workers)

	var (
		prog Program
		errs []error
	)

	for i, inst := range insts {
		if parseErrs[i] != nil {
			lineErr := &LineError{Line: lineNos[i], Err: parseErrs[i]}
			if policy == StopOnError {
				return prog, lineErr
			}

			errs = append(errs, lineErr)

			continue
		}

		prog.Instructions = append(prog.Instructions, inst)
		prog.Lines = append(prog.Lines, lineNos[i])
	}

	return prog, errors.Join(errs...)
}

// ParseLines parses lines concurrently with the given number of workers.
// Results keep the input order; errs[i] is non-nil when lines[i] failed.
func ParseLines(lines []string, workers int) ([]instr.Instruction, []error) {
	insts := make([]instr.Instruction, len(lines))
	errs := make([]error, len(lines))

	if workers < 1 {
		workers = 1
	}
	if workers > len(lines) {
		workers = len(lines)
	}

	jobs := make(chan int)
	wg := sync.WaitGroup{}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				insts[i], errs[i] = ParseInstruction(lines[i])
			}
		}()
	}

	for i := range lines {
		jobs <- i
	}
	close(jobs)

	wg.Wait()

	return insts, errs
}
