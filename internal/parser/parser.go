// Package parser implements Meek's recursive-descent parser: it builds an
// arena-allocated AST while maintaining structured error nodes instead of
// exceptions, and a bracket-aware panic-mode recovery scheme.
//
// The parser seeds the builtin/global scope chain and the type table as it
// goes: each declaration it parses writes its own symbol-table entry, and
// each type it parses is either interned immediately or queued as a
// TypePendingResolution for the fixed-point pass in internal/semantic.
package parser

import (
	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/scope"
	"github.com/cwbudde/meekc/internal/types"
	"github.com/cwbudde/meekc/token"
)

// Mode constrains which statement forms are legal at a given parse site.
type Mode int

const (
	// ModeTopLevel allows only struct/fn definitions and variable
	// declarations.
	ModeTopLevel Mode = iota
	// ModeStmt allows any statement form, nested inside a block.
	ModeStmt
	// ModeDoStmt allows only a single non-block, non-declaration statement,
	// the body of a bare `do` clause.
	ModeDoStmt
)

// Parser holds all state threaded through a single parse of one source
// file: the token source, the arena every node is allocated from, the open
// scope chain, the type table, and the queue of type references that could
// not be interned immediately.
type Parser struct {
	scan  token.Scanner
	arena *ast.Arena

	Scopes *scope.Stack
	Types  *types.Table

	Pending []ast.TypePendingResolution
	Errors  []*ast.ErrorNode
}

// New returns a Parser reading from scan, with a fresh arena, a fresh type
// table (reserved ids already seeded), and the Builtin/Global scopes
// already pushed.
func New(scan token.Scanner) *Parser {
	return &Parser{
		scan:   scan,
		arena:  ast.NewArena(),
		Scopes: scope.NewStack(),
		Types:  types.NewTable(),
	}
}

// Arena exposes the node arena backing this parse, for callers (the
// resolver, the bytecode emitter) that need to walk every allocated node.
func (p *Parser) Arena() *ast.Arena { return p.arena }

func (p *Parser) peek(n int) token.Token { return p.scan.PeekToken(n) }

func (p *Parser) consume() token.Token { return p.scan.ConsumeToken() }

func (p *Parser) tryConsume(kind token.Kind) (token.Token, bool) {
	return p.scan.TryConsumeToken(kind)
}

// expect consumes the current token if it matches kind, otherwise records
// an ExpectedTokenErr and leaves the cursor where it is (the caller decides
// whether to invoke panic-mode recovery).
func (p *Parser) expect(kind token.Kind, children ...ast.Node) (token.Token, bool) {
	if tok, ok := p.tryConsume(kind); ok {
		return tok, true
	}
	got := p.peek(0)
	e := ast.NewExpectedTokenErr(p.arena, got.Span, []token.Kind{kind}, got, children...)
	p.Errors = append(p.Errors, e)
	return got, false
}

// span builds a Span covering [start, end).
func span(start, end token.Span) token.Span { return token.Span{Start: start.Start, End: end.End} }

// ParseProgram is parseProgram(parser): seeds the builtin/global scopes
// (already done by New), then repeatedly parses top-level statements until
// end-of-input. Success is reported iff no non-bubble error nodes were
// recorded during the parse.
func ParseProgram(scan token.Scanner) (*ast.Program, *Parser, bool) {
	p := New(scan)
	startSpan := p.peek(0).Span

	global := p.Scopes.Current()
	prog := ast.NewProgram(p.arena, startSpan, global.ID())

	var stmts []ast.Stmt
	for !p.scan.IsFinished() {
		stmts = append(stmts, p.parseStmt(ModeTopLevel))
	}
	prog.Stmts = stmts
	prog.SetSpan(span(startSpan, p.prevOrCurrentSpan()))

	return prog, p, len(p.Errors) == 0
}

func (p *Parser) prevOrCurrentSpan() token.Span {
	s, e := p.scan.PrevTokenStartEnd()
	if s == 0 && e == 0 {
		return p.peek(0).Span
	}
	return token.Span{Start: s, End: e}
}

// parseStmt parses one statement and, if mode forbids the kind that was
// actually parsed, wraps it in the appropriate illegal-context error node
// rather than rejecting it outright: the subtree is preserved for
// reporting.
func (p *Parser) parseStmt(mode Mode) ast.Stmt {
	stmt := p.parseStmtInner()

	switch mode {
	case ModeTopLevel:
		if !isTopLevelLegal(stmt) {
			e := ast.NewIllegalTopLevelStmtErr(p.arena, stmt.Span(), stmt, "")
			p.Errors = append(p.Errors, e)
			return e
		}
	case ModeDoStmt:
		if !isDoStmtLegal(stmt) {
			e := ast.NewIllegalDoStmtErr(p.arena, stmt.Span(), stmt)
			p.Errors = append(p.Errors, e)
			return e
		}
	}
	return stmt
}

func isTopLevelLegal(s ast.Stmt) bool {
	switch s.Kind() {
	case ast.KindStructDefnStmt, ast.KindFuncDefnStmt, ast.KindVarDeclStmt:
		return true
	default:
		return false
	}
}

func isDoStmtLegal(s ast.Stmt) bool {
	switch s.Kind() {
	case ast.KindBlockStmt, ast.KindVarDeclStmt, ast.KindStructDefnStmt, ast.KindFuncDefnStmt:
		return false
	default:
		return true
	}
}

// parseStmtInner dispatches on the leading token to the concrete statement
// form, independent of mode; mode legality is enforced by the caller.
func (p *Parser) parseStmtInner() ast.Stmt {
	switch p.peek(0).Kind {
	case token.LBrace:
		return p.parseBlockStmt(false)
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwBreak:
		return p.parseBreakStmt()
	case token.KwContinue:
		return p.parseContinueStmt()
	case token.KwStruct:
		return p.parseStructDefn()
	case token.KwFn:
		if p.peek(1).Kind == token.Ident {
			return p.parseFuncDefn()
		}
		return p.parseSimpleStmt()
	case token.Caret, token.LBracket:
		return p.parseVarDeclStmt()
	case token.Ident:
		if p.peek(1).Kind == token.Ident {
			return p.parseVarDeclStmt()
		}
		return p.parseSimpleStmt()
	default:
		return p.parseSimpleStmt()
	}
}
