// Package interp is a reference interpreter for validated instruction
// streams. It implements the same observable semantics as the emitted C:
// fixed-width cells with wraparound arithmetic, a single cursor into a
// zero-initialized tape, and byte input that leaves the cell unchanged at
// end of input. It backs the run command and the round-trip tests that
// pin the emitter's behavior.
package interp

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ametel/bfcc/internal/emitter"
	"github.com/ametel/bfcc/internal/token"
)

// Runtime error codes (E401-E409). The generated C deliberately has no
// bounds or step checks; the interpreter reports these conditions instead
// of letting a Go panic surface.
const (
	ErrCursorOutOfRange = "E401"
	ErrStepLimit        = "E402"
)

// RuntimeError reports a condition that stopped interpretation.
type RuntimeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Machine holds the tape, cursor and I/O streams for one execution. Cells
// are stored widened to uint64 and masked to the configured width on every
// write, which reproduces the C runtime's unsigned wraparound.
type Machine struct {
	tape   []uint64
	cursor int
	mask   uint64
	in     *bufio.Reader
	out    *bufio.Writer
}

// New builds a machine for the given config, reading input bytes from in
// and writing output bytes to out.
func New(cfg emitter.Config, in io.Reader, out io.Writer) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var mask uint64
	if cfg.CellWidth == 64 {
		mask = ^uint64(0)
	} else {
		mask = 1<<uint(cfg.CellWidth) - 1
	}
	return &Machine{
		tape:   make([]uint64, cfg.MemorySize),
		cursor: cfg.InitialCell,
		mask:   mask,
		in:     bufio.NewReader(in),
		out:    bufio.NewWriter(out),
	}, nil
}

// Cell returns the value at tape index i. Test hook.
func (m *Machine) Cell(i int) uint64 { return m.tape[i] }

// Cursor returns the current cell index. Test hook.
func (m *Machine) Cursor() int { return m.cursor }

// Run executes the stream to completion. maxSteps bounds the number of
// executed instructions; zero means unlimited.
//
// Precondition: stream has passed scanner.Scan. Loop jumps are resolved
// from the balanced brackets before execution starts.
func (m *Machine) Run(stream []token.Instruction, maxSteps int) error {
	jumps := matchLoops(stream)
	steps := 0
	for pc := 0; pc < len(stream); pc++ {
		if maxSteps > 0 && steps >= maxSteps {
			return &RuntimeError{
				Code:    ErrStepLimit,
				Message: fmt.Sprintf("step limit of %d reached", maxSteps),
			}
		}
		steps++
		ins := stream[pc]
		switch ins.Type {
		case token.MoveRight:
			m.cursor++
		case token.MoveLeft:
			m.cursor--
		case token.Increment:
			v, err := m.load(ins)
			if err != nil {
				return err
			}
			m.tape[m.cursor] = (v + 1) & m.mask
		case token.Decrement:
			v, err := m.load(ins)
			if err != nil {
				return err
			}
			m.tape[m.cursor] = (v - 1) & m.mask
		case token.Output:
			v, err := m.load(ins)
			if err != nil {
				return err
			}
			if err := m.out.WriteByte(byte(v)); err != nil {
				return err
			}
		case token.Input:
			if _, err := m.load(ins); err != nil {
				return err
			}
			b, err := m.in.ReadByte()
			if err == io.EOF {
				break // end of input leaves the cell unchanged
			}
			if err != nil {
				return err
			}
			m.tape[m.cursor] = uint64(b) & m.mask
		case token.LoopOpen:
			v, err := m.load(ins)
			if err != nil {
				return err
			}
			if v == 0 {
				pc = jumps[pc]
			}
		case token.LoopClose:
			v, err := m.load(ins)
			if err != nil {
				return err
			}
			if v != 0 {
				pc = jumps[pc]
			}
		}
	}
	return m.out.Flush()
}

// load reads the current cell, reporting a runtime error if the cursor has
// been moved off the tape.
func (m *Machine) load(ins token.Instruction) (uint64, error) {
	if m.cursor < 0 || m.cursor >= len(m.tape) {
		return 0, &RuntimeError{
			Code: ErrCursorOutOfRange,
			Message: fmt.Sprintf("cursor %d outside tape of %d cells at %s",
				m.cursor, len(m.tape), ins.Pos),
		}
	}
	return m.tape[m.cursor], nil
}

// matchLoops resolves each bracket's jump target: LoopOpen indexes map to
// their matching LoopClose and vice versa. The stream is balanced, so the
// stack never underflows.
func matchLoops(stream []token.Instruction) map[int]int {
	jumps := make(map[int]int)
	var stack []int
	for i, ins := range stream {
		switch ins.Type {
		case token.LoopOpen:
			stack = append(stack, i)
		case token.LoopClose:
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			jumps[open] = i
			jumps[i] = open
		}
	}
	return jumps
}
