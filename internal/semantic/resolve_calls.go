package semantic

import (
	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/types"
)

// resolveIdentifier resolves a raw name reference. The candidate set is
// collected by walking the scope chain
// outward, with the closest-scope variable (if any) inserted at the point
// in the list its defining scope's distance puts it, so overloads closer
// than the variable precede it and overloads farther out follow it.
func (r *Resolver) resolveIdentifier(n *ast.Identifier) types.TypeId {
	candidates := r.collectCandidates(n.Name)
	switch len(candidates) {
	case 0:
		r.report(n.Span(), "undefined identifier %q", n.Name)
		n.RefKind = ast.RefUnresolved
		n.EvalType = types.TypeErr
		return n.EvalType
	case 1:
		r.bindCandidate(n, candidates[0])
		return n.EvalType
	default:
		n.RefKind = ast.RefCandidates
		n.Candidates = candidates
		n.EvalType = types.UnresolvedHasCandidates
		return n.EvalType
	}
}

// collectCandidates walks r.cur outward one scope at a time. At every level
// it appends that scope's function overloads (functions never shadow one
// another, so all of them accumulate), and the first variable binding
// encountered (the normal lexical-shadowing result), interleaved at the
// position its scope distance puts it.
func (r *Resolver) collectCandidates(name string) []ast.Candidate {
	var out []ast.Candidate
	varFound := false
	for cur := r.cur; cur != nil; cur = cur.Parent() {
		for _, fn := range cur.FuncsIn(name) {
			out = append(out, ast.Candidate{Kind: ast.RefFunc, Func: fn})
		}
		if !varFound {
			if bindings := cur.VarsIn(name); len(bindings) > 0 {
				out = append(out, ast.Candidate{Kind: ast.RefVar, Var: bindings[0]})
				varFound = true
			}
		}
	}
	return out
}

func (r *Resolver) bindCandidate(n *ast.Identifier, c ast.Candidate) {
	n.RefKind = c.Kind
	switch c.Kind {
	case ast.RefVar:
		n.Var = c.Var
		n.Func = nil
		n.EvalType = c.Var.TypeExprNode().Resolved
	case ast.RefFunc:
		n.Func = c.Func
		n.Var = nil
		n.EvalType = c.Func.DefinedType()
	}
}

func exprType(e ast.Expr) types.TypeId {
	if t, ok := e.(ast.Typed); ok {
		return t.EvalTypeOf()
	}
	return types.TypeErr
}

func candidateEvalType(c ast.Candidate) (types.TypeId, bool) {
	switch c.Kind {
	case ast.RefVar:
		return c.Var.TypeExprNode().Resolved, true
	case ast.RefFunc:
		return c.Func.DefinedType(), true
	default:
		return types.Unresolved, false
	}
}

// candidateSignature returns the function signature a candidate would be
// called through: its own signature for a RefFunc candidate, or a
// function-typed variable's signature for a RefVar candidate. ok is false
// for a variable that does not hold a function value (it cannot be called).
func (r *Resolver) candidateSignature(c ast.Candidate) (types.Type, bool) {
	id, ok := candidateEvalType(c)
	if !ok {
		return types.Type{}, false
	}
	sig := r.table.Lookup(id)
	if !sig.IsFunc {
		return types.Type{}, false
	}
	return sig, true
}

func returnTypeOf(sig types.Type) types.TypeId {
	if len(sig.Func.Returns) == 0 {
		return types.Void
	}
	return sig.Func.Returns[0]
}

// resolveCallExpr resolves a function call expression. When the
// callee is a bare identifier with more than one candidate, overload
// resolution (below) picks the member to call; otherwise the callee's
// already-resolved type must itself be a function signature.
func (r *Resolver) resolveCallExpr(c *ast.CallExpr) types.TypeId {
	r.resolveExpr(c.Callee)

	argTypes := make([]types.TypeId, len(c.Args))
	argCandidates := make([][]ast.Candidate, len(c.Args))
	argHasErr := false
	for i, a := range c.Args {
		t := r.resolveExpr(a)
		argTypes[i] = t
		if isErrorType(t) {
			argHasErr = true
		}
		if id, ok := a.(*ast.Identifier); ok && id.RefKind == ast.RefCandidates {
			argCandidates[i] = id.Candidates
		}
	}

	calleeID, calleeIsIdent := c.Callee.(*ast.Identifier)
	if calleeIsIdent && calleeID.RefKind == ast.RefCandidates {
		return r.resolveOverloadedCall(c, calleeID, argTypes, argCandidates, argHasErr)
	}

	calleeType := exprType(c.Callee)
	if isErrorType(calleeType) {
		c.EvalType = types.BubbleErr
		return c.EvalType
	}
	sig := r.table.Lookup(calleeType)
	if !sig.IsFunc {
		r.report(c.Span(), "cannot call non-function type %s", sig.String())
		c.EvalType = types.TypeErr
		return c.EvalType
	}
	if calleeIsIdent && calleeID.RefKind == ast.RefFunc {
		c.ResolvedFunc = calleeID.Func
	}
	if !argHasErr {
		r.checkCallArgs(c, sig, argTypes)
	}
	c.EvalType = returnTypeOf(sig)
	return c.EvalType
}

func (r *Resolver) checkCallArgs(c *ast.CallExpr, sig types.Type, argTypes []types.TypeId) {
	if len(sig.Func.Params) != len(argTypes) {
		r.report(c.Span(), "call has %d argument(s), function expects %d", len(argTypes), len(sig.Func.Params))
		return
	}
	for i, pt := range sig.Func.Params {
		if isErrorType(argTypes[i]) {
			continue
		}
		if argTypes[i] != pt {
			r.report(c.Args[i].Span(), "argument %d type mismatch: expected %s, got %s", i+1, r.typeName(pt), r.typeName(argTypes[i]))
		}
	}
}

// argExactMatches reports whether the argument at a parameter position is
// an exact match: either it is already exactly typed and equal to pt, or it
// is an unresolved candidate set with exactly one candidate whose type
// equals pt.
func (r *Resolver) argExactMatches(argType types.TypeId, cands []ast.Candidate, pt types.TypeId) bool {
	if cands == nil {
		return argType == pt
	}
	count := 0
	for _, c := range cands {
		if id, ok := candidateEvalType(c); ok && id == pt {
			count++
		}
	}
	return count == 1
}

func (r *Resolver) argCoercibleTo(argType types.TypeId, cands []ast.Candidate, pt types.TypeId) bool {
	if cands == nil {
		return canCoerce(argType, pt)
	}
	for _, c := range cands {
		if id, ok := candidateEvalType(c); ok && canCoerce(id, pt) {
			return true
		}
	}
	return false
}

// canCoerce is intentionally conservative and currently returns false for
// every pair; the exact/loose classification machinery below is in place
// for future numeric-widening rules.
func canCoerce(from, to types.TypeId) bool { return false }

type overloadMatch struct {
	cand ast.Candidate
	sig  types.Type
}

// resolveOverloadedCall implements the two-stage call-site disambiguation:
// collect the effective argument type list, then bucket candidates into
// exact/loose matches and apply the selection rule.
func (r *Resolver) resolveOverloadedCall(c *ast.CallExpr, calleeID *ast.Identifier, argTypes []types.TypeId, argCandidates [][]ast.Candidate, argHasErr bool) types.TypeId {
	if argHasErr {
		c.EvalType = types.BubbleErr
		calleeID.EvalType = types.BubbleErr
		return c.EvalType
	}

	var exact, loose []overloadMatch
	for _, cand := range calleeID.Candidates {
		sig, ok := r.candidateSignature(cand)
		if !ok || len(sig.Func.Params) != len(argTypes) {
			continue
		}
		allExact, allCoercible, anyCoerced := true, true, false
		for i, pt := range sig.Func.Params {
			if r.argExactMatches(argTypes[i], argCandidates[i], pt) {
				continue
			}
			allExact = false
			if r.argCoercibleTo(argTypes[i], argCandidates[i], pt) {
				anyCoerced = true
			} else {
				allCoercible = false
			}
		}
		switch {
		case allExact:
			exact = append(exact, overloadMatch{cand, sig})
		case allCoercible && anyCoerced:
			loose = append(loose, overloadMatch{cand, sig})
		}
	}

	var selected *overloadMatch
	switch {
	case len(exact) == 1:
		selected = &exact[0]
	case len(exact) == 0 && len(loose) == 1:
		selected = &loose[0]
	case len(exact) > 1 || len(loose) > 1:
		r.report(c.Span(), "ambiguous call to %q", calleeID.Name)
		c.EvalType = types.TypeErr
		calleeID.EvalType = types.TypeErr
		return c.EvalType
	default:
		r.report(c.Span(), "no matching overload for %q", calleeID.Name)
		c.EvalType = types.TypeErr
		calleeID.EvalType = types.TypeErr
		return c.EvalType
	}

	r.bindCandidate(calleeID, selected.cand)
	if selected.cand.Kind == ast.RefFunc {
		c.ResolvedFunc = selected.cand.Func
	}
	r.finalizeCandidateArgs(c.Args, argCandidates, selected.sig.Func.Params)
	c.EvalType = returnTypeOf(selected.sig)
	return c.EvalType
}

// finalizeCandidateArgs resolves every candidate-typed argument to the
// member that matched the selected overload's parameter type.
func (r *Resolver) finalizeCandidateArgs(args []ast.Expr, argCandidates [][]ast.Candidate, paramTypes []types.TypeId) {
	for i, cands := range argCandidates {
		if cands == nil {
			continue
		}
		id, ok := args[i].(*ast.Identifier)
		if !ok {
			continue
		}
		for _, cand := range cands {
			if ct, ok2 := candidateEvalType(cand); ok2 && ct == paramTypes[i] {
				r.bindCandidate(id, cand)
				break
			}
		}
	}
}
