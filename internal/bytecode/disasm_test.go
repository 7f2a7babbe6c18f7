package bytecode

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

func buildSampleFunction() *Function {
	f := newFunction("add")
	f.emitImmediate(8, 1, 1)
	f.emitImmediate(8, 2, 1)
	f.emitOp(OpAdd64, 1)
	jmp := f.emitJump(OpJump, 2)
	f.backpatch(jmp, f.here())
	f.emitOp(OpReturn, 2)
	return f
}

func TestDisassembleFunctionListsEveryInstruction(t *testing.T) {
	prog := &Program{Functions: []*Function{buildSampleFunction()}}
	var sb strings.Builder
	NewDisassembler(prog, &sb).Disassemble()
	out := sb.String()

	require.Contains(t, out, "== add ==")
	require.Contains(t, out, "LoadImmediate64")
	require.Contains(t, out, "Add64")
	require.Contains(t, out, "Jump")
	require.Contains(t, out, "Return")
}

func TestDisassembleListsStringPool(t *testing.T) {
	prog := &Program{Functions: []*Function{buildSampleFunction()}, Strings: []string{"hello"}}
	var sb strings.Builder
	NewDisassembler(prog, &sb).Disassemble()
	out := sb.String()

	require.Contains(t, out, "== strings ==")
	require.Contains(t, out, `[0000] "hello"`)
}

// TestDisassembleProgramSnapshot pins the full rendered text of a small
// multi-function program (named function plus string pool) against a
// stored snapshot, so a change to the disassembler's output format is
// caught even when it doesn't happen to touch one of the targeted
// substring assertions above.
func TestDisassembleProgramSnapshot(t *testing.T) {
	prog := &Program{
		Functions: []*Function{buildSampleFunction()},
		Strings:   []string{"hello", "world"},
	}
	var sb strings.Builder
	NewDisassembler(prog, &sb).Disassemble()

	snaps.MatchSnapshot(t, sb.String())
}

func TestDisassembleJumpShowsResolvedTarget(t *testing.T) {
	f := newFunction("loop")
	f.emitOp(OpNop, 1)
	jmp := f.emitJump(OpJump, 1)
	f.backpatch(jmp, 0)

	prog := &Program{Functions: []*Function{f}}
	var sb strings.Builder
	NewDisassembler(prog, &sb).Disassemble()
	out := sb.String()

	require.Contains(t, out, "-> 0000")
}
