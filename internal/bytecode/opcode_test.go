package bytecode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpCodeStringKnownMnemonic(t *testing.T) {
	require.Equal(t, "ModS64", OpModS64.String())
	require.Equal(t, "Return", OpReturn.String())
}

func TestOpCodeStringUnknownFallsBackToNumeric(t *testing.T) {
	unknown := OpCode(250)
	require.Equal(t, "Op(250)", unknown.String())
}

func TestOperandWidthByOpcode(t *testing.T) {
	require.Equal(t, 2, operandWidth(OpJump))
	require.Equal(t, 2, operandWidth(OpJumpIfFalse))
	require.Equal(t, PointerWidth, operandWidth(OpStackAlloc))
	require.Equal(t, 1, operandWidth(OpLoadImmediate8))
	require.Equal(t, 8, operandWidth(OpLoadImmediate64))
	require.Equal(t, 0, operandWidth(OpAdd64))
}

func TestLoadImmediatePointerMatchesPointerWidth(t *testing.T) {
	if PointerWidth == 4 {
		require.Equal(t, OpLoadImmediate32, LoadImmediatePointer)
	} else {
		require.Equal(t, OpLoadImmediate64, LoadImmediatePointer)
	}
}
