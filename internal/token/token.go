// Package token defines the Brainfuck instruction set and source positions.
package token

import "fmt"

// Type identifies one of the eight Brainfuck instructions.
type Type uint8

// Instruction types.
const (
	Illegal   Type = iota
	MoveRight      // >
	MoveLeft       // <
	Increment      // +
	Decrement      // -
	Output         // .
	Input          // ,
	LoopOpen       // [
	LoopClose      // ]
)

func (t Type) String() string {
	switch t {
	case MoveRight:
		return "moveright"
	case MoveLeft:
		return "moveleft"
	case Increment:
		return "increment"
	case Decrement:
		return "decrement"
	case Output:
		return "output"
	case Input:
		return "input"
	case LoopOpen:
		return "loopopen"
	case LoopClose:
		return "loopclose"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Symbol returns the source character for the instruction type.
func (t Type) Symbol() byte {
	switch t {
	case MoveRight:
		return '>'
	case MoveLeft:
		return '<'
	case Increment:
		return '+'
	case Decrement:
		return '-'
	case Output:
		return '.'
	case Input:
		return ','
	case LoopOpen:
		return '['
	case LoopClose:
		return ']'
	}
	return 0
}

// Lookup maps a source byte to its instruction type. Every byte that is not
// one of the eight instruction characters maps to Illegal and is treated as
// a comment by the scanner.
func Lookup(b byte) Type {
	switch b {
	case '>':
		return MoveRight
	case '<':
		return MoveLeft
	case '+':
		return Increment
	case '-':
		return Decrement
	case '.':
		return Output
	case ',':
		return Input
	case '[':
		return LoopOpen
	case ']':
		return LoopClose
	}
	return Illegal
}

// Position is a location in Brainfuck source.
type Position struct {
	Offset int `json:"offset"` // byte offset, starting at 0
	Line   int `json:"line"`   // line number, starting at 1
	Column int `json:"column"` // byte column within the line, starting at 1
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Instruction is a single scanned instruction tagged with its source
// position. Instructions are immutable once produced.
type Instruction struct {
	Type Type
	Pos  Position
}
