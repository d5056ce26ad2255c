// Package instr defines the instructions of the wire circuit language.
//
// A circuit is a list of instructions, one per line:
//
//	123 -> x
//	NOT x -> h
//	x AND y -> d
//	1 AND y -> e
//	x OR y -> f
//	x LSHIFT 2 -> g
//	y RSHIFT 2 -> i
//
// Each Instruction pairs an Operation with the Wire its result drives.
package instr

import "fmt"

// Operation is the right-hand side of an instruction. The variants are
// AssignSignal, Not, And, Or, LShift and RShift.
type Operation interface {
	isOperation()

	// String renders the operation the way it is written in a circuit file.
	String() string

	// Inputs lists the wires the operation reads, in operand order.
	Inputs() []Wire
}

// AssignSignal drives the target with a literal or another wire.
type AssignSignal struct {
	Src Signal
}

// Not drives the target with the bitwise complement of a wire.
type Not struct {
	Src Wire
}

// And drives the target with Lhs & Rhs. Only the left operand may be a
// literal.
type And struct {
	Lhs Signal
	Rhs Wire
}

// Or drives the target with Lhs | Rhs.
type Or struct {
	Lhs Wire
	Rhs Wire
}

// LShift drives the target with Src << Amount.
type LShift struct {
	Src    Wire
	Amount Value
}

// RShift drives the target with Src >> Amount.
type RShift struct {
	Src    Wire
	Amount Value
}

func (AssignSignal) isOperation() {}
func (Not) isOperation()          {}
func (And) isOperation()          {}
func (Or) isOperation()           {}
func (LShift) isOperation()       {}
func (RShift) isOperation()       {}

func (o AssignSignal) String() string { return o.Src.String() }
func (o Not) String() string          { return "NOT " + string(o.Src) }
func (o And) String() string          { return o.Lhs.String() + " AND " + string(o.Rhs) }
func (o Or) String() string           { return string(o.Lhs) + " OR " + string(o.Rhs) }
func (o LShift) String() string       { return string(o.Src) + " LSHIFT " + o.Amount.String() }
func (o RShift) String() string       { return string(o.Src) + " RSHIFT " + o.Amount.String() }

func (o AssignSignal) Inputs() []Wire {
	if w, ok := SignalWire(o.Src); ok {
		return []Wire{w}
	}
	return nil
}

func (o Not) Inputs() []Wire { return []Wire{o.Src} }

func (o And) Inputs() []Wire {
	if w, ok := SignalWire(o.Lhs); ok {
		return []Wire{w, o.Rhs}
	}
	return []Wire{o.Rhs}
}

func (o Or) Inputs() []Wire     { return []Wire{o.Lhs, o.Rhs} }
func (o LShift) Inputs() []Wire { return []Wire{o.Src} }
func (o RShift) Inputs() []Wire { return []Wire{o.Src} }

// OpName returns the mnemonic of an operation kind.
func OpName(op Operation) string {
	switch op.(type) {
	case AssignSignal:
		return "ASSIGN"
	case Not:
		return "NOT"
	case And:
		return "AND"
	case Or:
		return "OR"
	case LShift:
		return "LSHIFT"
	case RShift:
		return "RSHIFT"
	default:
		panic(fmt.Sprintf("unknown operation %T", op))
	}
}

// Instruction feeds the result of Op into Target.
type Instruction struct {
	Op     Operation
	Target Wire
}

func (i Instruction) String() string {
	return i.Op.String() + " -> " + string(i.Target)
}
