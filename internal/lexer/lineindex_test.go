package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/meekc/token"
)

func TestLineIndexPositionFirstLine(t *testing.T) {
	li := NewLineIndex("abc\ndef\n")
	require.Equal(t, token.Position{Line: 1, Column: 1}, li.Position(0))
	require.Equal(t, token.Position{Line: 1, Column: 4}, li.Position(3))
}

func TestLineIndexPositionSubsequentLines(t *testing.T) {
	li := NewLineIndex("abc\ndef\nghi")
	require.Equal(t, token.Position{Line: 2, Column: 1}, li.Position(4))
	require.Equal(t, token.Position{Line: 3, Column: 2}, li.Position(9))
}

func TestLineIndexPositionCountsRunesNotBytes(t *testing.T) {
	li := NewLineIndex("ééx\n")
	require.Equal(t, token.Position{Line: 1, Column: 3}, li.Position(4))
}
