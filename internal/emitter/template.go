package emitter

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
)

// runtimeTemplate is the fixed C wrapper the emitted body is substituted
// into. It provides the zero-initialized tape, the cursor, byte-level
// read/print primitives (read leaves the cell unchanged at end of input)
// and a main that returns 0 unconditionally.
//
//go:embed tpl/runtime.tpl.c
var runtimeTemplate string

// Render substitutes the emitted body and the configuration constants into
// the runtime template, producing a complete compilable C file.
func (p *Program) Render() string {
	defs := fmt.Sprintf("typedef uint%d_t cell_t;", p.Config.CellWidth)
	out := strings.NewReplacer(
		"DEFINITIONS", defs,
		"MEMSIZE", strconv.Itoa(p.Config.MemorySize),
		"INITIAL_CELL", strconv.Itoa(p.Config.InitialCell),
	).Replace(runtimeTemplate)
	return strings.Replace(out, "\tPROGRAM\n", p.Body, 1)
}
