// Package emitter translates a validated instruction stream into the body
// of a C program and renders it into the fixed runtime template.
package emitter

import (
	"strings"

	"github.com/ametel/bfcc/internal/token"
)

// Program is the result of one translation: the emitted statement text and
// the config it was produced with. The caller owns it; combining it with
// the runtime template happens through Render.
type Program struct {
	Body       string
	Config     Config
	Statements int
}

// statements maps each instruction type to its C statement. Loop brackets
// become the header and closing brace of a while block keyed off the
// current cell. The cursor moves are deliberately unchecked, matching the
// runtime template's trust-the-program contract.
var statements = [...]string{
	token.MoveRight: "++c;",
	token.MoveLeft:  "--c;",
	token.Increment: "++*c;",
	token.Decrement: "--*c;",
	token.Output:    "print(*c);",
	token.Input:     "read(c);",
	token.LoopOpen:  "while (*c) {",
	token.LoopClose: "}",
}

// Emit walks the instruction stream once, left to right, producing one C
// statement per instruction. Nesting depth is tracked for indentation
// only; the loop structure itself is carried by the emitted braces.
//
// Precondition: stream has passed scanner.Scan. Bracket balance is not
// re-checked here; an unvalidated stream produces unspecified output.
// Emit is deterministic: the same stream and config always yield
// byte-identical text.
func Emit(stream []token.Instruction, cfg Config) (*Program, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var b strings.Builder
	depth := 0
	for _, ins := range stream {
		if ins.Type == token.LoopClose {
			depth--
		}
		// The body sits one tab deep inside main.
		for i := 0; i <= depth; i++ {
			b.WriteByte('\t')
		}
		b.WriteString(statements[ins.Type])
		b.WriteByte('\n')
		if ins.Type == token.LoopOpen {
			depth++
		}
	}
	return &Program{
		Body:       b.String(),
		Config:     cfg,
		Statements: len(stream),
	}, nil
}
