package instr

import "strconv"

// Wire names a circuit endpoint. A valid wire is one or more lowercase ASCII
// letters.
type Wire string

// Value is a 16-bit signal literal.
type Value uint16

// Signal is either a literal Value or a reference to another Wire's output.
// The set of implementations is closed to this package.
type Signal interface {
	isSignal()
	String() string
}

func (Wire) isSignal()  {}
func (Value) isSignal() {}

// Valid reports whether w is a non-empty run of lowercase letters.
func (w Wire) Valid() bool {
	if len(w) == 0 {
		return false
	}

	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}

	return true
}

func (w Wire) String() string {
	return string(w)
}

func (v Value) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

// SignalWire returns the wire a signal refers to, if any.
func SignalWire(s Signal) (Wire, bool) {
	switch s := s.(type) {
	case Wire:
		return s, true
	case Value:
		return "", false
	default:
		panic("unknown signal kind")
	}
}
