package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ametel/bfcc/internal/token"
)

func types(stream []token.Instruction) []token.Type {
	out := make([]token.Type, len(stream))
	for i, ins := range stream {
		out[i] = ins.Type
	}
	return out
}

func TestScanAllInstructions(t *testing.T) {
	stream, err := Scan([]byte("><+-.,[]"))
	require.NoError(t, err)
	assert.Equal(t, []token.Type{
		token.MoveRight, token.MoveLeft, token.Increment, token.Decrement,
		token.Output, token.Input, token.LoopOpen, token.LoopClose,
	}, types(stream))
}

func TestScanSkipsComments(t *testing.T) {
	stream, err := Scan([]byte("add one: + move right: > done!"))
	require.NoError(t, err)
	require.Len(t, stream, 2)
	assert.Equal(t, token.Increment, stream[0].Type)
	assert.Equal(t, token.MoveRight, stream[1].Type)
}

func TestScanEmptySource(t *testing.T) {
	stream, err := Scan(nil)
	require.NoError(t, err)
	assert.Empty(t, stream)

	stream, err = Scan([]byte("no instructions here"))
	require.NoError(t, err)
	assert.Empty(t, stream)
}

func TestScanPositions(t *testing.T) {
	stream, err := Scan([]byte("ab+\n-c."))
	require.NoError(t, err)
	require.Len(t, stream, 3)

	assert.Equal(t, token.Position{Offset: 2, Line: 1, Column: 3}, stream[0].Pos)
	assert.Equal(t, token.Position{Offset: 4, Line: 2, Column: 1}, stream[1].Pos)
	assert.Equal(t, token.Position{Offset: 6, Line: 2, Column: 3}, stream[2].Pos)
}

func TestScanBalancedLoops(t *testing.T) {
	for _, src := range []string{"[]", "[[]]", "[][]", "[>+<-]", "+[-[-]+]."} {
		_, err := Scan([]byte(src))
		assert.NoError(t, err, "source %q", src)
	}
}

func TestScanUnmatchedLoopClose(t *testing.T) {
	_, err := Scan([]byte("]"))
	var structErr *StructuralError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, ErrUnmatchedLoopClose, structErr.Code)
	assert.Equal(t, 0, structErr.Pos.Offset)
}

func TestScanUnmatchedLoopCloseAfterBalanced(t *testing.T) {
	// The first [] pair is fine; the ] at offset 4 has no open loop.
	_, err := Scan([]byte("+[-]]"))
	var structErr *StructuralError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, ErrUnmatchedLoopClose, structErr.Code)
	assert.Equal(t, 4, structErr.Pos.Offset)
}

func TestScanUnmatchedLoopOpen(t *testing.T) {
	_, err := Scan([]byte("["))
	var structErr *StructuralError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, ErrUnmatchedLoopOpen, structErr.Code)
	assert.Equal(t, 0, structErr.Pos.Offset)
}

func TestScanUnmatchedLoopOpenReportsInnermost(t *testing.T) {
	// Both brackets are unmatched; the innermost one is reported.
	_, err := Scan([]byte("+[>[<"))
	var structErr *StructuralError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, ErrUnmatchedLoopOpen, structErr.Code)
	assert.Equal(t, 3, structErr.Pos.Offset)
}

func TestScanErrorMessage(t *testing.T) {
	_, err := Scan([]byte("\n\n  ]"))
	var structErr *StructuralError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, 3, structErr.Pos.Line)
	assert.Equal(t, 3, structErr.Pos.Column)
	assert.Contains(t, structErr.Error(), "E101")
	assert.Contains(t, structErr.Error(), "3:3")
}

func TestScanBalanceInvariant(t *testing.T) {
	stream, err := Scan([]byte("[[+][-.]]>[,]"))
	require.NoError(t, err)

	depth := 0
	for _, ins := range stream {
		switch ins.Type {
		case token.LoopOpen:
			depth++
		case token.LoopClose:
			depth--
		}
		assert.GreaterOrEqual(t, depth, 0)
	}
	assert.Equal(t, 0, depth)
}

func TestCountLoops(t *testing.T) {
	stream, err := Scan([]byte("[[]][]"))
	require.NoError(t, err)
	assert.Equal(t, 3, CountLoops(stream))
}
