package parser

import "github.com/cwbudde/meekc/token"

// recoverTo implements bracket-aware panic-mode recovery: it consumes
// tokens until one of set is seen at bracket depth zero, returning
// that token (consumed) and true. A semicolon seen at depth zero that is
// not itself in set still ends recovery early (the caller, a list-shaped
// context, decides whether to retry), but the semicolon is consumed first
// since it terminates the statement it trails regardless of which
// synchronization token the caller was looking for. End-of-input also
// ends recovery with failure.
func (p *Parser) recoverTo(set ...token.Kind) (token.Kind, bool) {
	depth := 0
	for {
		tok := p.peek(0)
		if tok.Kind == token.EOF {
			return token.Illegal, false
		}
		if depth == 0 {
			for _, k := range set {
				if tok.Kind == k {
					p.consume()
					return k, true
				}
			}
			if tok.Kind == token.Semicolon {
				p.consume()
				return token.Illegal, false
			}
		}
		switch tok.Kind {
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			if depth > 0 {
				depth--
			}
		}
		p.consume()
	}
}
