package diag

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/token"
)

func TestFromErrorNodeExpectedToken(t *testing.T) {
	a := ast.NewArena()
	got := token.Token{Kind: token.Ident, Span: token.Span{Start: 4, End: 7}}
	n := ast.NewExpectedTokenErr(a, got.Span, []token.Kind{token.Semicolon, token.RBrace}, got)

	d := FromErrorNode(n)
	require.Equal(t, got.Span, d.Span)
	require.Contains(t, d.Message, "expected")
	require.Contains(t, d.Message, "or")
}

func TestFromErrorNodeScanErr(t *testing.T) {
	a := ast.NewArena()
	n := ast.NewScanErr(a, token.Span{Start: 1, End: 2}, token.ScanErrUnterminatedString, `"abc`)

	require.Equal(t, "unterminated string literal", errorNodeMessage(n))
	d := FromErrorNode(n)
	require.Equal(t, "unterminated string literal", d.Message)
}

func TestFromErrorNodeBubbleUnwrapsInner(t *testing.T) {
	a := ast.NewArena()
	inner := ast.NewScanErr(a, token.Span{Start: 0, End: 1}, token.ScanErrInvalidCharacter, "@")
	outer := ast.NewBubbleErr(a, token.Span{Start: 0, End: 1}, inner)

	require.Equal(t, "invalid character", errorNodeMessage(outer))
}

func TestFromErrorNodeFixedMessageKinds(t *testing.T) {
	a := ast.NewArena()

	illegalDo := ast.NewIllegalDoStmtErr(a, token.Span{}, ast.NewIdentifier(a, token.Span{}, "x"))
	require.Equal(t, "statement not allowed as the body of a do clause", errorNodeMessage(illegalDo))

	chained := ast.NewChainedAssignErr(a, token.Span{}, nil)
	require.Equal(t, "chained assignment is not allowed", errorNodeMessage(chained))

	unnamed := ast.NewInitUnnamedVarErr(a, token.Span{})
	require.Equal(t, "variable declaration is missing a name", errorNodeMessage(unnamed))
}
