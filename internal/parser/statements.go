package parser

import (
	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/types"
	"github.com/cwbudde/meekc/token"
)

// parseBlockStmt parses `{ stmt... }`. Unless inherit is set it pushes a
// new scope for the block body; inherit is used for function bodies, which
// share their header's scope rather than nesting inside it.
func (p *Parser) parseBlockStmt(inherit bool) *ast.BlockStmt {
	start := p.peek(0).Span
	p.expect(token.LBrace)

	var scopeId ast.ScopeId
	if inherit {
		scopeId = p.Scopes.Current().ID()
	} else {
		scopeId = p.Scopes.Push().ID()
	}

	var stmts []ast.Stmt
	for p.peek(0).Kind != token.RBrace && p.peek(0).Kind != token.EOF {
		stmt := p.parseStmt(ModeStmt)
		stmts = append(stmts, stmt)
		if stmt.Category() == ast.CatError {
			matched, ok := p.recoverTo(token.Semicolon, token.RBrace)
			if !ok {
				break
			}
			if matched == token.RBrace {
				if !inherit {
					p.Scopes.Pop()
				}
				return ast.NewBlockStmt(p.arena, span(start, p.prevOrCurrentSpan()), scopeId, inherit, stmts)
			}
		}
	}

	rb, _ := p.expect(token.RBrace)
	if !inherit {
		p.Scopes.Pop()
	}
	return ast.NewBlockStmt(p.arena, span(start, rb.Span), scopeId, inherit, stmts)
}

// parseThenOrBody parses the `(do stmt | block)` clause shared by `if` and
// `while`.
func (p *Parser) parseThenOrBody() ast.Stmt {
	switch p.peek(0).Kind {
	case token.KwDo:
		p.consume()
		return p.parseStmt(ModeDoStmt)
	case token.LBrace:
		return p.parseStmt(ModeStmt)
	default:
		got := p.peek(0)
		e := ast.NewExpectedTokenErr(p.arena, got.Span, []token.Kind{token.KwDo, token.LBrace}, got)
		p.Errors = append(p.Errors, e)
		return e
	}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.consume().Span
	cond := p.parseExpr()
	then := p.parseThenOrBody()
	var els ast.Stmt
	if _, ok := p.tryConsume(token.KwElse); ok {
		if p.peek(0).Kind == token.KwIf {
			els = p.parseIfStmt()
		} else {
			els = p.parseThenOrBody()
		}
	}
	end := then.Span()
	if els != nil {
		end = els.Span()
	}
	return ast.NewIfStmt(p.arena, span(start, end), cond, then, els)
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.consume().Span
	cond := p.parseExpr()
	body := p.parseThenOrBody()
	return ast.NewWhileStmt(p.arena, span(start, body.Span()), cond, body)
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.consume().Span
	var val ast.Expr
	if p.peek(0).Kind != token.Semicolon {
		val = p.parseExpr()
	}
	semi, _ := p.expect(token.Semicolon)
	return ast.NewReturnStmt(p.arena, span(start, semi.Span), val)
}

func (p *Parser) parseBreakStmt() ast.Stmt {
	start := p.consume().Span
	semi, _ := p.expect(token.Semicolon)
	return ast.NewBreakStmt(p.arena, span(start, semi.Span))
}

func (p *Parser) parseContinueStmt() ast.Stmt {
	start := p.consume().Span
	semi, _ := p.expect(token.Semicolon)
	return ast.NewContinueStmt(p.arena, span(start, semi.Span))
}

// parseVarDeclStmt parses `type name [= expr] ;`. A missing name (`^int =
// 5;`) is an InitUnnamedVarErr rather than a generic ExpectedTokenErr, its
// own dedicated diagnostic for that shape.
func (p *Parser) parseVarDeclStmt() ast.Stmt {
	start := p.peek(0).Span
	typ := p.parseType()

	nameTok, ok := p.tryConsume(token.Ident)
	if !ok {
		if _, ok := p.tryConsume(token.Assign); ok {
			p.parseExpr()
		}
		semi, _ := p.expect(token.Semicolon)
		e := ast.NewInitUnnamedVarErr(p.arena, span(start, semi.Span))
		p.Errors = append(p.Errors, e)
		return e
	}

	var init ast.Expr
	if _, ok := p.tryConsume(token.Assign); ok {
		init = p.parseExpr()
	}
	semi, _ := p.expect(token.Semicolon)

	cur := p.Scopes.Current()
	node := ast.NewVarDeclStmt(p.arena, span(start, semi.Span), cur.ID(), typ, nameTok.Literal, nameTok.Span, init)
	node.VarSeqId = cur.NextVarSeq()
	cur.DefineVar(node.Name, node)
	return node
}

// parseSimpleStmt parses an assignment or a bare expression statement,
// detecting chained assignment (`a = b = c`) by looking one token past the
// parsed right-hand side.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	start := p.peek(0).Span
	lhs := p.parseExpr()

	if !isAssignOp(p.peek(0).Kind) {
		semi, _ := p.expect(token.Semicolon)
		return ast.NewExprStmt(p.arena, span(start, semi.Span), lhs)
	}

	opTok := p.consume()
	rhs := p.parseExpr()

	if isAssignOp(p.peek(0).Kind) {
		first := ast.NewAssignStmt(p.arena, span(start, rhs.Span()), opTok.Kind, opTok.Span, lhs, rhs)
		p.consume() // the second assignment operator
		p.parseExpr()
		semi, _ := p.expect(token.Semicolon)
		e := ast.NewChainedAssignErr(p.arena, span(start, semi.Span), first)
		p.Errors = append(p.Errors, e)
		return e
	}

	semi, _ := p.expect(token.Semicolon)
	return ast.NewAssignStmt(p.arena, span(start, semi.Span), opTok.Kind, opTok.Span, lhs, rhs)
}

// parseStructDefn parses `struct Name { fields }`. The struct's own name is
// only inserted into the enclosing scope once the whole body has parsed,
// so a self-referential field (`^S next;` inside `struct S`) cannot be
// interned immediately and is queued as a TypePendingResolution instead,
// drained once the struct is registered.
func (p *Parser) parseStructDefn() ast.Stmt {
	start := p.consume().Span
	enclosing := p.Scopes.Current()

	nameTok, ok := p.expect(token.Ident)
	bodyScope := p.Scopes.Push()

	lb, _ := p.expect(token.LBrace)
	var fields []*ast.Field
	for p.peek(0).Kind != token.RBrace && p.peek(0).Kind != token.EOF {
		ftyp := p.parseType()
		fnameTok, fok := p.expect(token.Ident)
		_, semiOk := p.expect(token.Semicolon)
		if !fok || !semiOk {
			matched, recOk := p.recoverTo(token.Semicolon, token.RBrace)
			if !recOk {
				break
			}
			if matched == token.RBrace {
				break
			}
		}
		if fok {
			field := &ast.Field{Name: fnameTok.Literal, NameSpan: fnameTok.Span, Type: ftyp, FieldSeq: len(fields)}
			fields = append(fields, field)
			bodyScope.DefineVar(field.Name, field)
		}
	}
	rb, _ := p.expect(token.RBrace)
	p.Scopes.Pop()

	fg := ast.NewFieldGroup(p.arena, span(lb.Span, rb.Span), fields)
	node := ast.NewStructDefnStmt(p.arena, span(start, rb.Span), bodyScope.ID(), enclosing.ID(), nameTok.Literal, nameTok.Span, fg)
	node.DefinedType = p.Types.Intern(types.Type{Name: nameTok.Literal, DefiningScope: int(enclosing.ID())})
	if ok {
		enclosing.DefineStruct(node.Name, node)
	}
	return node
}

// parseFuncDefn parses `fn Name(params) [-> returns] body`. The scope is
// pushed before the header so parameter declarations and the body share
// one scope; the function's own signature type is resolved
// (or queued) only after the header has fully parsed, since it may depend
// on still-pending parameter/return types.
func (p *Parser) parseFuncDefn() ast.Stmt {
	start := p.consume().Span
	enclosing := p.Scopes.Current()

	nameTok, _ := p.expect(token.Ident)
	funcScope := p.Scopes.Push()

	params := p.parseParamGroup()
	var returns *ast.ReturnGroup
	if _, ok := p.tryConsume(token.Arrow); ok {
		returns = p.parseReturnGroup()
	} else {
		returns = ast.NewReturnGroup(p.arena, p.peek(0).Span, nil)
	}
	body := p.parseBlockStmt(true)
	p.Scopes.Pop()

	paramTypes := make([]*ast.TypeExpr, len(params.Params))
	for i, prm := range params.Params {
		paramTypes[i] = prm.Type
	}
	sig := &ast.TypeExpr{
		Span:     span(start, body.Span()),
		Func:     &ast.FuncSigTypeExpr{Params: paramTypes, Returns: returns.Types},
		Resolved: types.Unresolved,
	}
	p.tryInternFuncSig(sig, true)

	node := ast.NewFuncDefnStmt(p.arena, span(start, body.Span()), funcScope.ID(), enclosing.ID(), nameTok.Literal, nameTok.Span, params, returns, body)
	node.SigType = sig
	enclosing.DefineFunc(node.Name, node)
	return node
}
