package bytecode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmitOpAppendsOpcodeAndLine(t *testing.T) {
	f := newFunction("f")
	idx := f.emitOp(OpReturn, 7)
	require.Equal(t, 0, idx)
	require.Equal(t, []byte{byte(OpReturn)}, f.Code)
	require.Equal(t, []int{7}, f.Lines)
}

func TestEmitImmediateWidths(t *testing.T) {
	f := newFunction("f")
	f.emitImmediate(1, 0xAB, 1)
	require.Equal(t, []byte{byte(OpLoadImmediate8), 0xAB}, f.Code)

	f = newFunction("f")
	f.emitImmediate(8, 0x0102030405060708, 1)
	require.Equal(t, OpLoadImmediate64, OpCode(f.Code[0]))
	require.Len(t, f.Code, 9)
}

func TestEmitJumpReservesPlaceholder(t *testing.T) {
	f := newFunction("f")
	idx := f.emitJump(OpJump, 3)
	require.Equal(t, []byte{byte(OpJump), 0, 0}, f.Code)
	require.Equal(t, 0, idx)
	require.Equal(t, 3, f.here())
}

func TestBackpatchSetsRelativeOffset(t *testing.T) {
	f := newFunction("f")
	jmp := f.emitJump(OpJump, 1)
	f.emitOp(OpReturn, 2)
	target := f.here()

	f.backpatch(jmp, target)
	require.Equal(t, byte(1), f.Code[1]) // offset low byte: target(4) - (jmp+3=3) = 1
	require.Equal(t, byte(0), f.Code[2])
}

func TestBackpatchPanicsOnOverflow(t *testing.T) {
	f := newFunction("f")
	jmp := f.emitJump(OpJump, 1)
	require.Panics(t, func() {
		f.backpatch(jmp, 1<<20)
	})
}

func TestEmitStackOpEncodesPointerSizedCount(t *testing.T) {
	f := newFunction("f")
	f.emitStackOp(OpStackAlloc, 16, 1)
	require.Len(t, f.Code, 1+PointerWidth)
	require.Equal(t, byte(OpStackAlloc), f.Code[0])
}

func TestHereTracksCodeLength(t *testing.T) {
	f := newFunction("f")
	require.Equal(t, 0, f.here())
	f.emitOp(OpNop, 1)
	require.Equal(t, 1, f.here())
}
