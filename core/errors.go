package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind classifies why a line failed to parse.
type ErrorKind int

const (
	// UnexpectedToken means no grammar alternative matched.
	UnexpectedToken ErrorKind = iota

	// NumericOverflow means a digit run does not fit in 16 bits.
	NumericOverflow

	// TrailingInput means a complete instruction was followed by more text.
	TrailingInput
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case NumericOverflow:
		return "numeric overflow"
	case TrailingInput:
		return "trailing input"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against a *ParseError of the same kind.
var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrNumericOverflow = errors.New("numeric overflow")
	ErrTrailingInput   = errors.New("trailing input")
)

// ParseError reports where and why a line could not be parsed.
type ParseError struct {
	Kind ErrorKind

	// Position is the zero-based character offset of the failure.
	Position int

	// Expected lists what would have been accepted at Position.
	Expected []string

	// Input is the line being parsed.
	Input string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case NumericOverflow:
		return fmt.Sprintf("numeric overflow at offset %d: %s does not fit in 16 bits",
			e.Position, e.digits())
	case TrailingInput:
		return fmt.Sprintf("trailing input at offset %d: %s",
			e.Position, strconv.Quote(e.rest()))
	default:
		return fmt.Sprintf("unexpected %s at offset %d, expected %s",
			e.found(), e.Position, joinExpected(e.Expected))
	}
}

// Unwrap returns the sentinel for the error kind.
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case NumericOverflow:
		return ErrNumericOverflow
	case TrailingInput:
		return ErrTrailingInput
	default:
		return ErrUnexpectedToken
	}
}

// Pointer returns a line with a caret under the failing offset, suitable
// for printing beneath Input.
func (e *ParseError) Pointer() string {
	return strings.Repeat(" ", e.Position) + "^"
}

func (e *ParseError) rest() string {
	if e.Position >= len(e.Input) {
		return ""
	}
	return e.Input[e.Position:]
}

func (e *ParseError) found() string {
	rest := e.rest()
	if rest == "" {
		return "end of line"
	}

	r := []rune(rest)[0]

	return strconv.QuoteRune(r)
}

func (e *ParseError) digits() string {
	rest := e.rest()
	end := 0
	for end < len(rest) && isDigit(rest[end]) {
		end++
	}
	return rest[:end]
}

func joinExpected(expected []string) string {
	switch len(expected) {
	case 0:
		return "nothing"
	case 1:
		return expected[0]
	default:
		return strings.Join(expected[:len(expected)-1], ", ") +
			" or " + expected[len(expected)-1]
	}
}
