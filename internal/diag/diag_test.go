package diag

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/meekc/token"
)

func TestFormatCompactForm(t *testing.T) {
	d := Diagnostic{Pos: token.Position{Line: 3, Column: 7}, Message: "unresolved type \"Foo\""}
	require.Equal(t, `x.meek:3:7: unresolved type "Foo"`, Format(d, "x.meek"))
}

func TestFormatWithContextIncludesCaret(t *testing.T) {
	src := "int x;\nint y = z;\n"
	d := Diagnostic{Pos: token.Position{Line: 2, Column: 9}, Message: "undefined identifier z"}
	out := FormatWithContext(d, "x.meek", src)
	require.Contains(t, out, "x.meek:2:9: undefined identifier z")
	require.Contains(t, out, "int y = z;")
	require.Contains(t, out, "\n        ^")
}

func TestSortInSourceOrder(t *testing.T) {
	ds := []Diagnostic{
		{Span: token.Span{Start: 20}, Message: "b"},
		{Span: token.Span{Start: 5}, Message: "z"},
		{Span: token.Span{Start: 5}, Message: "a"},
	}
	SortInSourceOrder(ds)
	require.Equal(t, []Diagnostic{
		{Span: token.Span{Start: 5}, Message: "a"},
		{Span: token.Span{Start: 5}, Message: "z"},
		{Span: token.Span{Start: 20}, Message: "b"},
	}, ds)
}

func TestResolveFillsPosFromSpan(t *testing.T) {
	ds := []Diagnostic{AtSpan(token.Span{Start: 10, End: 12}, "boom")}
	Resolve(ds, func(offset int) token.Position {
		require.Equal(t, 10, offset)
		return token.Position{Line: 4, Column: 1}
	})
	require.Equal(t, token.Position{Line: 4, Column: 1}, ds[0].Pos)
}

func TestNewFormatsMessage(t *testing.T) {
	d := New(token.Position{Line: 1, Column: 1}, token.Span{Start: 0, End: 1}, "expected %s, got %s", "int", "bool")
	require.Equal(t, "expected int, got bool", d.Message)
}
