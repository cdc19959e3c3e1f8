// Package scanner turns Brainfuck source into a validated instruction
// stream. Scanning and bracket validation happen in a single pass: every
// byte that is not one of the eight instruction characters is skipped, and
// loop brackets must form a properly nested, balanced sequence.
package scanner

import (
	"fmt"

	"github.com/ametel/bfcc/internal/token"
)

// Structural error codes (E101-E109).
const (
	ErrUnmatchedLoopClose = "E101" // ']' with no open loop
	ErrUnmatchedLoopOpen  = "E102" // '[' never closed
)

// StructuralError reports a bracket-balance defect in the source program.
// It carries the position of the offending bracket: the stray ']' for
// ErrUnmatchedLoopClose, or the innermost still-open '[' for
// ErrUnmatchedLoopOpen.
type StructuralError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Pos     token.Position `json:"pos"`
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Pos, e.Message)
}

// Scan produces the instruction stream for src, validating bracket balance
// as it goes. On success the returned stream satisfies the balance
// invariant: every prefix has at least as many LoopOpen as LoopClose
// instructions, and the totals are equal. On failure nothing is returned;
// the error is always a *StructuralError. Scan is a pure function of src.
func Scan(src []byte) ([]token.Instruction, error) {
	var stream []token.Instruction
	var opens []token.Position
	line, col := 1, 1
	for off := 0; off < len(src); off++ {
		b := src[off]
		pos := token.Position{Offset: off, Line: line, Column: col}
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		typ := token.Lookup(b)
		if typ == token.Illegal {
			continue
		}
		switch typ {
		case token.LoopOpen:
			opens = append(opens, pos)
		case token.LoopClose:
			if len(opens) == 0 {
				return nil, &StructuralError{
					Code:    ErrUnmatchedLoopClose,
					Message: fmt.Sprintf("unmatched %q at offset %d", ']', pos.Offset),
					Pos:     pos,
				}
			}
			opens = opens[:len(opens)-1]
		}
		stream = append(stream, token.Instruction{Type: typ, Pos: pos})
	}
	if len(opens) > 0 {
		// Report the innermost outstanding bracket; it is the one the
		// author most likely forgot to close.
		pos := opens[len(opens)-1]
		return nil, &StructuralError{
			Code:    ErrUnmatchedLoopOpen,
			Message: fmt.Sprintf("unmatched %q at offset %d", '[', pos.Offset),
			Pos:     pos,
		}
	}
	return stream, nil
}

// CountLoops returns the number of LoopOpen instructions in a stream.
func CountLoops(stream []token.Instruction) int {
	n := 0
	for _, ins := range stream {
		if ins.Type == token.LoopOpen {
			n++
		}
	}
	return n
}
