package parser

import (
	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/scope"
	"github.com/cwbudde/meekc/internal/types"
	"github.com/cwbudde/meekc/token"
)

// parseType implements the type grammar:
// `type := ([expr] | ^)* (Identifier | fn-signature)`. Whenever every
// component can be interned immediately it writes TypeExpr.Resolved on the
// spot; otherwise it queues a TypePendingResolution against the scope that
// was open at the point of appearance, for internal/semantic's fixed-point
// pass to drain later.
func (p *Parser) parseType() *ast.TypeExpr {
	start := p.peek(0).Span

	var mods []ast.TypeModifierExpr
	arraySizesKnown := true
	for {
		switch p.peek(0).Kind {
		case token.Caret:
			p.consume()
			mods = append(mods, ast.TypeModifierExpr{Kind: types.ModPointer})
			continue
		case token.LBracket:
			p.consume()
			sizeExpr := p.parseExpr()
			p.expect(token.RBracket)
			if _, ok := ast.ConstEvalInt(sizeExpr); !ok {
				arraySizesKnown = false
			}
			mods = append(mods, ast.TypeModifierExpr{Kind: types.ModArray, SizeExpr: sizeExpr})
			continue
		}
		break
	}

	if p.peek(0).Kind == token.KwFn {
		return p.parseFuncSigType(start, mods, arraySizesKnown)
	}

	nameTok, ok := p.expect(token.Ident)
	te := &ast.TypeExpr{
		Span:     span(start, nameTok.Span),
		Modifiers: mods,
		BaseName: nameTok.Literal,
		BaseSpan: nameTok.Span,
		Resolved: types.Unresolved,
	}
	if !ok {
		p.queuePending(te)
		return te
	}
	p.tryInternNamed(te, arraySizesKnown)
	return te
}

func (p *Parser) parseFuncSigType(start token.Span, mods []ast.TypeModifierExpr, arraySizesKnown bool) *ast.TypeExpr {
	p.consume() // 'fn'
	var params []*ast.TypeExpr
	if _, ok := p.tryConsume(token.LParen); ok {
		for p.peek(0).Kind != token.RParen && p.peek(0).Kind != token.EOF {
			params = append(params, p.parseType())
			if _, ok := p.tryConsume(token.Comma); !ok {
				break
			}
		}
		p.expect(token.RParen)
	}
	var returns []*ast.TypeExpr
	if _, ok := p.tryConsume(token.Arrow); ok {
		returns = append(returns, p.parseType())
		for {
			if _, ok := p.tryConsume(token.Comma); !ok {
				break
			}
			returns = append(returns, p.parseType())
		}
	}

	te := &ast.TypeExpr{
		Span:      span(start, p.prevOrCurrentSpan()),
		Modifiers: mods,
		Func:      &ast.FuncSigTypeExpr{Params: params, Returns: returns},
		Resolved:  types.Unresolved,
	}
	p.tryInternFuncSig(te, arraySizesKnown)
	return te
}

// tryInternNamed attempts to resolve and intern te's named base type
// immediately against whatever is currently visible in the scope chain
// (builtins, and any struct already defined earlier in this same parse).
// If the base cannot yet be found, or an array modifier's size is not a
// compile-time literal, te is queued instead.
func (p *Parser) tryInternNamed(te *ast.TypeExpr, arraySizesKnown bool) {
	if !arraySizesKnown {
		p.queuePending(te)
		return
	}
	if id, ok := builtinTypeID(te.BaseName); ok {
		if len(te.Modifiers) == 0 {
			te.Resolved = id
		} else {
			te.Resolved = p.internResolvedType(te.Modifiers, te.BaseName, scope.Builtin)
		}
		return
	}
	decl, ok := scope.LookupType(p.Scopes.Current(), te.BaseName, scope.WalkParents)
	if !ok {
		p.queuePending(te)
		return
	}
	te.Resolved = p.internResolvedType(te.Modifiers, te.BaseName, decl.EnclosingScope)
}

func (p *Parser) tryInternFuncSig(te *ast.TypeExpr, arraySizesKnown bool) {
	if !arraySizesKnown {
		p.queuePending(te)
		return
	}
	params := make([]types.TypeId, len(te.Func.Params))
	returns := make([]types.TypeId, len(te.Func.Returns))
	complete := true
	for i, pt := range te.Func.Params {
		params[i] = pt.Resolved
		if pt.Resolved == types.Unresolved {
			complete = false
		}
	}
	for i, rt := range te.Func.Returns {
		returns[i] = rt.Resolved
		if rt.Resolved == types.Unresolved {
			complete = false
		}
	}
	if !complete {
		p.queuePending(te)
		return
	}
	te.Resolved = p.Types.Intern(types.Type{
		Modifiers: toModifiers(te.Modifiers),
		IsFunc:    true,
		Func:      types.FunctionSignature{Params: params, Returns: returns},
	})
}

func (p *Parser) internResolvedType(mods []ast.TypeModifierExpr, name string, definingScope scope.ScopeId) types.TypeId {
	if len(mods) == 0 {
		return p.Types.Intern(types.Type{Name: name, DefiningScope: int(definingScope)})
	}
	return p.Types.Intern(types.Type{Modifiers: toModifiers(mods), Name: name, DefiningScope: int(definingScope)})
}

func toModifiers(mods []ast.TypeModifierExpr) []types.Modifier {
	if len(mods) == 0 {
		return nil
	}
	out := make([]types.Modifier, len(mods))
	for i, m := range mods {
		out[i].Kind = m.Kind
		if m.Kind == types.ModArray {
			n, _ := ast.ConstEvalInt(m.SizeExpr)
			out[i].ArraySize = int(n)
		}
	}
	return out
}

func (p *Parser) queuePending(te *ast.TypeExpr) {
	p.Pending = append(p.Pending, ast.TypePendingResolution{Target: te, ScopeID: p.Scopes.Current().ID()})
}

func builtinTypeID(name string) (types.TypeId, bool) {
	switch name {
	case "void":
		return types.Void, true
	case "int":
		return types.Int, true
	case "float":
		return types.Float, true
	case "bool":
		return types.Bool, true
	case "string":
		return types.String, true
	default:
		return types.Unresolved, false
	}
}

