package parser

import "github.com/cwbudde/meekc/token"

// precedence implements the operator table, lowest to highest,
// all left-associative: ||, &&, #or, #xor, #and, ==/!=, </<=/>/>=, +/-,
// then */%.  Zero means "not a binary operator".
func precedence(k token.Kind) int {
	switch k {
	case token.OrOr:
		return 1
	case token.AndAnd:
		return 2
	case token.HashOr:
		return 3
	case token.HashXor:
		return 4
	case token.HashAnd:
		return 5
	case token.EqEq, token.BangEq:
		return 6
	case token.Less, token.LessEq, token.Greater, token.GreaterEq:
		return 7
	case token.Plus, token.Minus:
		return 8
	case token.Star, token.Slash, token.Percent:
		return 9
	default:
		return 0
	}
}

func isAssignOp(k token.Kind) bool {
	switch k {
	case token.Assign, token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq, token.PercentEq:
		return true
	default:
		return false
	}
}
