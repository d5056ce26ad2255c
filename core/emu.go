package core

import (
	"fmt"

	"github.com/sarchlab/wirelogic/instr"
)

// wireReader returns the resolved value of a wire, or false if the wire has
// no value yet.
type wireReader func(w instr.Wire) (instr.Value, bool)

type instEmulator struct{}

// RunInst computes the value an operation drives. It returns false when an
// input wire is not resolved.
func (i instEmulator) RunInst(op instr.Operation, read wireReader) (instr.Value, bool) {
	switch op := op.(type) {
	case instr.AssignSignal:
		return i.readSignal(op.Src, read)
	case instr.Not:
		return i.runNot(op, read)
	case instr.And:
		return i.runAnd(op, read)
	case instr.Or:
		return i.runOr(op, read)
	case instr.LShift:
		return i.runShift(op.Src, op.Amount, read, shl)
	case instr.RShift:
		return i.runShift(op.Src, op.Amount, read, shr)
	default:
		panic(fmt.Sprintf("unknown operation %T", op))
	}
}

func (i instEmulator) readSignal(s instr.Signal, read wireReader) (instr.Value, bool) {
	switch s := s.(type) {
	case instr.Value:
		return s, true
	case instr.Wire:
		return read(s)
	default:
		panic(fmt.Sprintf("unknown signal %T", s))
	}
}

func (i instEmulator) runNot(op instr.Not, read wireReader) (instr.Value, bool) {
	src, ok := read(op.Src)
	if !ok {
		return 0, false
	}

	return ^src, true
}

func (i instEmulator) runAnd(op instr.And, read wireReader) (instr.Value, bool) {
	lhs, ok := i.readSignal(op.Lhs, read)
	if !ok {
		return 0, false
	}

	rhs, ok := read(op.Rhs)
	if !ok {
		return 0, false
	}

	return lhs & rhs, true
}

func (i instEmulator) runOr(op instr.Or, read wireReader) (instr.Value, bool) {
	lhs, ok := read(op.Lhs)
	if !ok {
		return 0, false
	}

	rhs, ok := read(op.Rhs)
	if !ok {
		return 0, false
	}

	return lhs | rhs, true
}

func (i instEmulator) runShift(
	src instr.Wire,
	amount instr.Value,
	read wireReader,
	shift func(instr.Value, instr.Value) instr.Value,
) (instr.Value, bool) {
	v, ok := read(src)
	if !ok {
		return 0, false
	}

	return shift(v, amount), true
}

// Shifts by 16 or more clear the value, as Go shifts of a uint16 do.
func shl(v, n instr.Value) instr.Value { return v << n }
func shr(v, n instr.Value) instr.Value { return v >> n }

// Eval computes an operation against a fixed set of wire values.
func Eval(op instr.Operation, values map[instr.Wire]instr.Value) (instr.Value, bool) {
	return instEmulator{}.RunInst(op, func(w instr.Wire) (instr.Value, bool) {
		v, ok := values[w]
		return v, ok
	})
}
