package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/meekc/token"
)

func consumeAll(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(src)
	var toks []token.Token
	for {
		tok := l.ConsumeToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexerStripsLeadingBOM(t *testing.T) {
	toks := consumeAll(t, "\xEF\xBB\xBFx")
	require.Equal(t, []token.Kind{token.Ident, token.EOF}, kinds(toks))
	require.Equal(t, 0, toks[0].Span.Start)
}

func TestLexerOperators(t *testing.T) {
	toks := consumeAll(t, "+ += - -= -> * *= / /= % %= == = ! != < <= > >= && ||")
	require.Equal(t, []token.Kind{
		token.Plus, token.PlusEq, token.Minus, token.MinusEq, token.Arrow,
		token.Star, token.StarEq, token.Slash, token.SlashEq,
		token.Percent, token.PercentEq,
		token.EqEq, token.Assign, token.Bang, token.BangEq,
		token.Less, token.LessEq, token.Greater, token.GreaterEq,
		token.AndAnd, token.OrOr, token.EOF,
	}, kinds(toks))
}

func TestLexerSingleAmpersandIsIllegal(t *testing.T) {
	toks := consumeAll(t, "&x")
	require.Equal(t, token.Illegal, toks[0].Kind)
	require.Equal(t, token.ScanErrInvalidCharacter, toks[0].ScanError)
}

func TestLexerSkipsLineAndBlockComments(t *testing.T) {
	toks := consumeAll(t, "x // trailing\n/* block */ y")
	require.Equal(t, []token.Kind{token.Ident, token.Ident, token.EOF}, kinds(toks))
}

func TestLexerUnterminatedBlockComment(t *testing.T) {
	toks := consumeAll(t, "x /* never closed")
	require.Equal(t, []token.Kind{token.Ident, token.Illegal, token.EOF}, kinds(toks))
	require.Equal(t, token.ScanErrUnterminatedBlockComment, toks[1].ScanError)
}

func TestLexerIntLiteral(t *testing.T) {
	toks := consumeAll(t, "42")
	require.Equal(t, token.IntLiteral, toks[0].Kind)
	require.Equal(t, int64(42), toks[0].IntValue)
}

func TestLexerFloatLiteral(t *testing.T) {
	toks := consumeAll(t, "3.14")
	require.Equal(t, token.FloatLiteral, toks[0].Kind)
	require.InDelta(t, 3.14, toks[0].FloatValue, 1e-9)
}

func TestLexerFloatWithMultipleDecimalsIsIllegal(t *testing.T) {
	toks := consumeAll(t, "1.2.3")
	require.Equal(t, token.Illegal, toks[0].Kind)
	require.Equal(t, token.ScanErrFloatMultipleDecimals, toks[0].ScanError)
}

func TestLexerStringLiteral(t *testing.T) {
	toks := consumeAll(t, `"hello\nworld"`)
	require.Equal(t, token.StringLiteral, toks[0].Kind)
	require.Equal(t, `hello\nworld`, toks[0].Literal)
}

func TestLexerUnterminatedStringIsIllegal(t *testing.T) {
	toks := consumeAll(t, `"oops`)
	require.Equal(t, token.Illegal, toks[0].Kind)
	require.Equal(t, token.ScanErrUnterminatedString, toks[0].ScanError)
}

func TestLexerHashWords(t *testing.T) {
	toks := consumeAll(t, "#and #or #xor #nope")
	require.Equal(t, token.HashAnd, toks[0].Kind)
	require.Equal(t, token.HashOr, toks[1].Kind)
	require.Equal(t, token.HashXor, toks[2].Kind)
	require.Equal(t, token.Illegal, toks[3].Kind)
}

func TestLexerBoolLiteralKeywords(t *testing.T) {
	toks := consumeAll(t, "true false")
	require.Equal(t, token.BoolLiteral, toks[0].Kind)
	require.True(t, toks[0].BoolValue)
	require.Equal(t, token.BoolLiteral, toks[1].Kind)
	require.False(t, toks[1].BoolValue)
}

func TestLexerPeekTokenDoesNotConsume(t *testing.T) {
	l := New("a b")
	first := l.PeekToken(0)
	second := l.PeekToken(1)
	require.Equal(t, token.Ident, first.Kind)
	require.Equal(t, token.Ident, second.Kind)
	require.False(t, l.IsFinished())
	require.Equal(t, first, l.ConsumeToken())
	require.Equal(t, second, l.ConsumeToken())
	require.True(t, l.IsFinished())
}

func TestLexerTryConsumeToken(t *testing.T) {
	l := New("; x")
	tok, ok := l.TryConsumeToken(token.Semicolon)
	require.True(t, ok)
	require.Equal(t, token.Semicolon, tok.Kind)

	_, ok = l.TryConsumeToken(token.Semicolon)
	require.False(t, ok)
}

func TestLexerPrevTokenStartEndTracksLastConsumed(t *testing.T) {
	l := New("ab cd")
	start, end := l.PrevTokenStartEnd()
	require.Equal(t, 0, start)
	require.Equal(t, 0, end)

	l.ConsumeToken()
	start, end = l.PrevTokenStartEnd()
	require.Equal(t, 0, start)
	require.Equal(t, 2, end)
}
