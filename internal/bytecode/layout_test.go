package bytecode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOpForSizePicksNarrowestFit(t *testing.T) {
	require.Equal(t, OpLoad8, loadOpForSize(1))
	require.Equal(t, OpLoad16, loadOpForSize(2))
	require.Equal(t, OpLoad32, loadOpForSize(3))
	require.Equal(t, OpLoad32, loadOpForSize(4))
	require.Equal(t, OpLoad64, loadOpForSize(8))
	require.Equal(t, OpLoad64, loadOpForSize(24))
}

func TestStoreOpForSizePicksNarrowestFit(t *testing.T) {
	require.Equal(t, OpStore8, storeOpForSize(1))
	require.Equal(t, OpStore16, storeOpForSize(2))
	require.Equal(t, OpStore32, storeOpForSize(4))
	require.Equal(t, OpStore64, storeOpForSize(8))
}

func TestDuplicateOpForSizePicksNarrowestFit(t *testing.T) {
	require.Equal(t, OpDuplicate8, duplicateOpForSize(1))
	require.Equal(t, OpDuplicate16, duplicateOpForSize(2))
	require.Equal(t, OpDuplicate32, duplicateOpForSize(4))
	require.Equal(t, OpDuplicate64, duplicateOpForSize(8))
}

func TestImmediateWidthForSize(t *testing.T) {
	require.Equal(t, 1, immediateWidthForSize(1))
	require.Equal(t, 2, immediateWidthForSize(2))
	require.Equal(t, 4, immediateWidthForSize(3))
	require.Equal(t, 4, immediateWidthForSize(4))
	require.Equal(t, 8, immediateWidthForSize(5))
	require.Equal(t, 8, immediateWidthForSize(8))
}
