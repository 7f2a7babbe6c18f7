package parser

import (
	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/token"
)

// parseExpr is the entry point for expression parsing: precedence-climbing
// over the left-associative binary operator table.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinary(1)
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		opTok := p.peek(0)
		prec := precedence(opTok.Kind)
		if prec == 0 || prec < minPrec {
			return left
		}
		p.consume()
		right := p.parseBinary(prec + 1)
		left = ast.NewBinaryExpr(p.arena, span(left.Span(), right.Span()), opTok.Kind, opTok.Span, left, right)
	}
}

// parseUnary handles the prefix operators: +, -, ! preserve the operand's
// type, and a leading ^ takes the address of its operand, building a
// pointer type, distinct from the postfix ^ finishParsePrimary recognizes
// for dereference.
func (p *Parser) parseUnary() ast.Expr {
	tok := p.peek(0)
	switch tok.Kind {
	case token.Plus, token.Minus, token.Bang, token.Caret:
		p.consume()
		operand := p.parseUnary()
		return ast.NewUnaryExpr(p.arena, span(tok.Span, operand.Span()), tok.Kind, tok.Span, operand)
	default:
		return p.finishParsePrimary(p.parsePrimary())
	}
}

// parsePrimary parses a single primary expression with no postfix chain
// attached yet; finishParsePrimary layers on member access, dereference,
// subscript, and call syntax uniformly regardless of what the primary was.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek(0)
	switch tok.Kind {
	case token.IntLiteral:
		p.consume()
		return ast.NewIntLiteral(p.arena, tok.Span, tok.IntValue)
	case token.FloatLiteral:
		p.consume()
		return ast.NewFloatLiteral(p.arena, tok.Span, tok.FloatValue)
	case token.BoolLiteral:
		p.consume()
		return ast.NewBoolLiteral(p.arena, tok.Span, tok.BoolValue)
	case token.StringLiteral:
		p.consume()
		return ast.NewStringLiteral(p.arena, tok.Span, tok.Literal)
	case token.Ident:
		p.consume()
		return ast.NewIdentifier(p.arena, tok.Span, tok.Literal)
	case token.LParen:
		p.consume()
		inner := p.parseExpr()
		p.expect(token.RParen)
		return inner
	case token.KwFn:
		return p.parseFuncLiteral()
	default:
		got := p.consume()
		e := ast.NewUnexpectedTokenErr(p.arena, got.Span, got)
		p.Errors = append(p.Errors, e)
		return e
	}
}

func (p *Parser) finishParsePrimary(base ast.Expr) ast.Expr {
	for {
		switch p.peek(0).Kind {
		case token.Dot:
			p.consume()
			memberTok, ok := p.expect(token.Ident)
			if !ok {
				return ast.NewBubbleErr(p.arena, span(base.Span(), p.peek(0).Span), base)
			}
			base = ast.NewMemberExpr(p.arena, span(base.Span(), memberTok.Span), base, memberTok.Literal, memberTok.Span)
		case token.Caret:
			tok := p.consume()
			base = ast.NewDerefExpr(p.arena, span(base.Span(), tok.Span), base)
		case token.LBracket:
			p.consume()
			idx := p.parseExpr()
			rb, _ := p.expect(token.RBracket)
			base = ast.NewIndexExpr(p.arena, span(base.Span(), rb.Span), base, idx)
		case token.LParen:
			args, argsEnd := p.parseCallArgs()
			if lit, ok := base.(*ast.FuncLiteralExpr); ok {
				e := ast.NewInvokeFuncLiteralErr(p.arena, span(base.Span(), argsEnd), lit, args)
				p.Errors = append(p.Errors, e)
				base = e
			} else {
				base = ast.NewCallExpr(p.arena, span(base.Span(), argsEnd), base, args)
			}
		default:
			return base
		}
	}
}

// parseCallArgs parses `(args...)`, recovering at argument boundaries
// (`,` or `)`). It returns the parsed arguments and the span of whatever
// closed the list, having already consumed it.
func (p *Parser) parseCallArgs() ([]ast.Expr, token.Span) {
	lparen, _ := p.expect(token.LParen)
	var args []ast.Expr
	for p.peek(0).Kind != token.RParen && p.peek(0).Kind != token.EOF {
		arg := p.parseExpr()
		args = append(args, arg)
		if arg.Category() == ast.CatError {
			matched, ok := p.recoverTo(token.Comma, token.RParen)
			if !ok {
				break
			}
			if matched == token.RParen {
				return args, p.prevOrCurrentSpan()
			}
			continue
		}
		if _, ok := p.tryConsume(token.Comma); !ok {
			break
		}
	}
	rparen, _ := p.expect(token.RParen)
	_ = lparen
	return args, rparen.Span
}

// parseFuncLiteral parses `fn(params) [-> returns] { body }` as an
// expression. A name appearing right after `fn` here is illegal, since
// only fn definitions have names; it is consumed and reported but does
// not otherwise block parsing the rest of the literal.
func (p *Parser) parseFuncLiteral() ast.Expr {
	fnTok := p.consume()
	if p.peek(0).Kind == token.Ident {
		nameTok := p.consume()
		e := ast.NewInitUnnamedVarErr(p.arena, span(fnTok.Span, nameTok.Span))
		p.Errors = append(p.Errors, e)
	}

	scopeId := p.Scopes.Push().ID()
	params := p.parseParamGroup()
	var returns *ast.ReturnGroup
	if _, ok := p.tryConsume(token.Arrow); ok {
		returns = p.parseReturnGroup()
	} else {
		returns = ast.NewReturnGroup(p.arena, p.peek(0).Span, nil)
	}
	body := p.parseBlockStmt(true)
	p.Scopes.Pop()

	return ast.NewFuncLiteralExpr(p.arena, span(fnTok.Span, body.Span()), params, returns, body, scopeId)
}

// parseParamGroup parses a named parameter list `(type name, type name)`,
// defining each parameter into the currently open scope (the caller is
// expected to have already pushed the function's scope).
func (p *Parser) parseParamGroup() *ast.ParamGroup {
	start := p.peek(0).Span
	p.expect(token.LParen)
	var params []*ast.Param
	for p.peek(0).Kind != token.RParen && p.peek(0).Kind != token.EOF {
		typ := p.parseType()
		nameTok, ok := p.expect(token.Ident)
		if !ok {
			if matched, recOk := p.recoverTo(token.Comma, token.RParen); !recOk || matched == token.RParen {
				break
			}
			continue
		}
		seq := p.Scopes.Current().NextVarSeq()
		param := &ast.Param{Name: nameTok.Literal, NameSpan: nameTok.Span, Type: typ, VarSeqId: seq}
		params = append(params, param)
		p.Scopes.Current().DefineVar(param.Name, param)
		if _, ok := p.tryConsume(token.Comma); !ok {
			break
		}
	}
	rparen, _ := p.expect(token.RParen)
	return ast.NewParamGroup(p.arena, span(start, rparen.Span), params)
}

// parseReturnGroup parses the `T, U` tail of a `->` clause: one type, then
// any further comma-separated types.
func (p *Parser) parseReturnGroup() *ast.ReturnGroup {
	start := p.peek(0).Span
	list := []*ast.TypeExpr{p.parseType()}
	for {
		if _, ok := p.tryConsume(token.Comma); !ok {
			break
		}
		list = append(list, p.parseType())
	}
	return ast.NewReturnGroup(p.arena, span(start, list[len(list)-1].Span), list)
}
