package core

import (
	"strconv"
	"strings"

	"github.com/sarchlab/wirelogic/instr"
)

// ParseInstruction parses one line of the circuit language. The line must
// hold exactly one instruction with no surrounding whitespace. A non-nil
// error is always a *ParseError.
func ParseInstruction(line string) (instr.Instruction, error) {
	s := &scanner{src: line}

	inst, ok := s.instruction()
	if s.fatal != nil {
		return instr.Instruction{}, s.fatal
	}

	if !ok {
		return instr.Instruction{}, &ParseError{
			Kind:     UnexpectedToken,
			Position: s.failPos,
			Expected: s.expected,
			Input:    line,
		}
	}

	if s.pos < len(s.src) {
		return instr.Instruction{}, &ParseError{
			Kind:     TrailingInput,
			Position: s.pos,
			Expected: []string{"end of line"},
			Input:    line,
		}
	}

	return inst, nil
}

// MustParseInstruction is like ParseInstruction but panics on error.
func MustParseInstruction(line string) instr.Instruction {
	inst, err := ParseInstruction(line)
	if err != nil {
		panic(err)
	}
	return inst
}

type operationParser struct {
	name  string
	parse func(s *scanner) (instr.Operation, bool)
}

// operationParsers is tried in order. A bare signal is a prefix of every
// other form, so it must stay last.
var operationParsers = []operationParser{
	{"NOT", (*scanner).opNot},
	{"AND", (*scanner).opAnd},
	{"OR", (*scanner).opOr},
	{"LSHIFT", (*scanner).opLShift},
	{"RSHIFT", (*scanner).opRShift},
	{"ASSIGN", (*scanner).opSignal},
}

// scanner walks a single line. It remembers the furthest offset where any
// alternative failed and what was expected there, which becomes the
// reported error when every alternative fails.
type scanner struct {
	src string
	pos int

	failPos  int
	expected []string

	// fatal aborts the whole parse; set on numeric overflow.
	fatal *ParseError
}

func (s *scanner) instruction() (instr.Instruction, bool) {
	op, ok := s.operation()
	if !ok {
		return instr.Instruction{}, false
	}

	if !s.literal(" -> ") {
		return instr.Instruction{}, false
	}

	target, ok := s.wire()
	if !ok {
		return instr.Instruction{}, false
	}

	return instr.Instruction{Op: op, Target: target}, true
}

func (s *scanner) operation() (instr.Operation, bool) {
	start := s.pos

	for _, p := range operationParsers {
		op, ok := p.parse(s)
		if s.fatal != nil {
			return nil, false
		}

		if ok {
			return op, true
		}

		s.pos = start
	}

	return nil, false
}

func (s *scanner) opNot() (instr.Operation, bool) {
	if !s.literal("NOT ") {
		return nil, false
	}

	src, ok := s.wire()
	if !ok {
		return nil, false
	}

	return instr.Not{Src: src}, true
}

func (s *scanner) opAnd() (instr.Operation, bool) {
	lhs, ok := s.signal()
	if !ok || !s.literal(" AND ") {
		return nil, false
	}

	rhs, ok := s.wire()
	if !ok {
		return nil, false
	}

	return instr.And{Lhs: lhs, Rhs: rhs}, true
}

func (s *scanner) opOr() (instr.Operation, bool) {
	lhs, rhs, ok := s.wirePair(" OR ")
	if !ok {
		return nil, false
	}

	return instr.Or{Lhs: lhs, Rhs: rhs}, true
}

func (s *scanner) opLShift() (instr.Operation, bool) {
	src, amount, ok := s.shift(" LSHIFT ")
	if !ok {
		return nil, false
	}

	return instr.LShift{Src: src, Amount: amount}, true
}

func (s *scanner) opRShift() (instr.Operation, bool) {
	src, amount, ok := s.shift(" RSHIFT ")
	if !ok {
		return nil, false
	}

	return instr.RShift{Src: src, Amount: amount}, true
}

func (s *scanner) opSignal() (instr.Operation, bool) {
	src, ok := s.signal()
	if !ok {
		return nil, false
	}

	return instr.AssignSignal{Src: src}, true
}

func (s *scanner) wirePair(sep string) (instr.Wire, instr.Wire, bool) {
	lhs, ok := s.wire()
	if !ok || !s.literal(sep) {
		return "", "", false
	}

	rhs, ok := s.wire()
	if !ok {
		return "", "", false
	}

	return lhs, rhs, true
}

func (s *scanner) shift(sep string) (instr.Wire, instr.Value, bool) {
	src, ok := s.wire()
	if !ok || !s.literal(sep) {
		return "", 0, false
	}

	amount, ok := s.value()
	if !ok {
		return "", 0, false
	}

	return src, amount, true
}

// signal matches a value, then falls back to a wire.
func (s *scanner) signal() (instr.Signal, bool) {
	start := s.pos

	if v, ok := s.value(); ok {
		return v, true
	}

	if s.fatal != nil {
		return nil, false
	}

	s.pos = start

	if w, ok := s.wire(); ok {
		return w, true
	}

	return nil, false
}

func (s *scanner) wire() (instr.Wire, bool) {
	start := s.pos
	for s.pos < len(s.src) && isLower(s.src[s.pos]) {
		s.pos++
	}

	if s.pos == start {
		s.fail("wire")
		return "", false
	}

	return instr.Wire(s.src[start:s.pos]), true
}

func (s *scanner) value() (instr.Value, bool) {
	start := s.pos
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos++
	}

	if s.pos == start {
		s.fail("value")
		return 0, false
	}

	n, err := strconv.ParseUint(s.src[start:s.pos], 10, 16)
	if err != nil {
		s.fatal = &ParseError{
			Kind:     NumericOverflow,
			Position: start,
			Expected: []string{"value in 0..65535"},
			Input:    s.src,
		}
		return 0, false
	}

	return instr.Value(n), true
}

func (s *scanner) literal(tok string) bool {
	if strings.HasPrefix(s.src[s.pos:], tok) {
		s.pos += len(tok)
		return true
	}

	s.fail(strconv.Quote(tok))

	return false
}

func (s *scanner) fail(expected string) {
	switch {
	case s.pos > s.failPos:
		s.failPos = s.pos
		s.expected = []string{expected}
	case s.pos == s.failPos:
		for _, e := range s.expected {
			if e == expected {
				return
			}
		}
		s.expected = append(s.expected, expected)
	}
}

func isLower(c byte) bool {
	return 'a' <= c && c <= 'z'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
