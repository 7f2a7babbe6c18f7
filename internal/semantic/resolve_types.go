package semantic

import (
	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/diag"
	"github.com/cwbudde/meekc/internal/scope"
	"github.com/cwbudde/meekc/internal/types"
)

// ResolveTypes drains the parser's TypePendingResolution queue. By the
// time it runs, the whole program has been parsed, so every named base
// that was merely a forward reference at its point of appearance (a
// struct defined later in the file) is now registered.
//
// A pending entry for a function-signature type is resolved recursively:
// its own parameter/return TypeExprs are retried in place rather than
// requiring them to already be resolved.
func ResolveTypes(table *types.Table, scopes *scope.Stack, pending []ast.TypePendingResolution) []diag.Diagnostic {
	remaining := pending
	for {
		var stillPending []ast.TypePendingResolution
		progressed := false
		for _, p := range remaining {
			if resolveTypeExpr(table, scopes, p.Target, p.ScopeID) {
				progressed = true
			} else {
				stillPending = append(stillPending, p)
			}
		}
		if len(stillPending) == 0 {
			return nil
		}
		if !progressed {
			diags := make([]diag.Diagnostic, 0, len(stillPending))
			for _, p := range stillPending {
				p.Target.Resolved = types.TypeErr
				diags = append(diags, diag.AtSpan(p.Target.Span, "unresolved type %q", p.Target.String()))
			}
			return diags
		}
		remaining = stillPending
	}
}

// resolveTypeExpr attempts to resolve and intern te, returning true if it
// succeeded (te.Resolved is now valid). scopeID is the scope that was open
// at te's point of appearance during parsing.
func resolveTypeExpr(table *types.Table, scopes *scope.Stack, te *ast.TypeExpr, scopeID ast.ScopeId) bool {
	if te.Resolved != types.Unresolved {
		return true
	}

	if te.Func != nil {
		return resolveFuncSigTypeExpr(table, scopes, te, scopeID)
	}

	if !arrayModifiersKnown(te.Modifiers) {
		return false
	}

	s := scopes.ByID(scopeID)
	if id, ok := builtinTypeID(te.BaseName); ok && len(te.Modifiers) == 0 {
		te.Resolved = id
		return true
	}
	decl, ok := scope.LookupType(s, te.BaseName, scope.WalkParents)
	if !ok {
		return false
	}
	te.Resolved = table.Intern(types.Type{
		Modifiers:     toModifiers(te.Modifiers),
		Name:          te.BaseName,
		DefiningScope: int(decl.EnclosingScope),
	})
	return true
}

func resolveFuncSigTypeExpr(table *types.Table, scopes *scope.Stack, te *ast.TypeExpr, scopeID ast.ScopeId) bool {
	complete := true
	for _, pt := range te.Func.Params {
		if !resolveTypeExpr(table, scopes, pt, scopeID) {
			complete = false
		}
	}
	for _, rt := range te.Func.Returns {
		if !resolveTypeExpr(table, scopes, rt, scopeID) {
			complete = false
		}
	}
	if !complete {
		return false
	}
	params := make([]types.TypeId, len(te.Func.Params))
	for i, pt := range te.Func.Params {
		params[i] = pt.Resolved
	}
	returns := make([]types.TypeId, len(te.Func.Returns))
	for i, rt := range te.Func.Returns {
		returns[i] = rt.Resolved
	}
	te.Resolved = table.Intern(types.Type{
		Modifiers: toModifiers(te.Modifiers),
		IsFunc:    true,
		Func:      types.FunctionSignature{Params: params, Returns: returns},
	})
	return true
}

func arrayModifiersKnown(mods []ast.TypeModifierExpr) bool {
	for _, m := range mods {
		if m.Kind == types.ModArray {
			if _, ok := ast.ConstEvalInt(m.SizeExpr); !ok {
				return false
			}
		}
	}
	return true
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
