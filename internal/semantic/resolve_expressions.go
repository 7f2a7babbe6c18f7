package semantic

import (
	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/scope"
	"github.com/cwbudde/meekc/internal/types"
	"github.com/cwbudde/meekc/token"
)

// resolveExpr resolves e post-order (children before parent) and returns
// its evaluated type, which is also written onto the node itself so later
// passes (the bytecode emitter) can read it back.
func (r *Resolver) resolveExpr(e ast.Expr) types.TypeId {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return r.setType(n, types.Int)
	case *ast.FloatLiteral:
		return r.setType(n, types.Float)
	case *ast.BoolLiteral:
		return r.setType(n, types.Bool)
	case *ast.StringLiteral:
		return r.setType(n, types.String)
	case *ast.Identifier:
		return r.resolveIdentifier(n)
	case *ast.BinaryExpr:
		return r.resolveBinaryExpr(n)
	case *ast.UnaryExpr:
		return r.resolveUnaryExpr(n)
	case *ast.DerefExpr:
		return r.resolveDerefExpr(n)
	case *ast.IndexExpr:
		return r.resolveIndexExpr(n)
	case *ast.MemberExpr:
		return r.resolveMemberExpr(n)
	case *ast.CallExpr:
		return r.resolveCallExpr(n)
	case *ast.FuncLiteralExpr:
		return r.resolveFuncLiteralExpr(n)
	case *ast.ErrorNode:
		return r.setType(n, types.BubbleErr)
	default:
		return types.TypeErr
	}
}

func (r *Resolver) setType(n evalTypeSetter, id types.TypeId) types.TypeId {
	n.SetEvalType(id)
	return id
}

// evalTypeSetter is implemented by every concrete expression node via its
// embedded ExprBase.
type evalTypeSetter interface {
	SetEvalType(types.TypeId)
}

// requireValue resolves expr and reports a diagnostic if it evaluates to
// Void: a call to a function with zero returns used in a value position is
// rejected, returning TypeErr so the caller doesn't also report a type
// mismatch.
func (r *Resolver) requireValue(expr ast.Expr) types.TypeId {
	t := r.resolveExpr(expr)
	if t == types.Void {
		r.report(expr.Span(), "function call has no return value")
		return types.TypeErr
	}
	return t
}

func (r *Resolver) resolveBinaryExpr(b *ast.BinaryExpr) types.TypeId {
	left := r.requireValue(b.Left)
	right := r.requireValue(b.Right)
	if isErrorType(left) || isErrorType(right) {
		b.EvalType = types.BubbleErr
		return b.EvalType
	}
	if left != right {
		r.report(b.Span(), "operand types do not match: %s vs %s", r.typeName(left), r.typeName(right))
		b.EvalType = types.TypeErr
		return b.EvalType
	}
	b.EvalType = left
	return b.EvalType
}

func (r *Resolver) resolveUnaryExpr(u *ast.UnaryExpr) types.TypeId {
	operand := r.requireValue(u.Operand)
	if isErrorType(operand) {
		u.EvalType = types.BubbleErr
		return u.EvalType
	}
	if u.Op == token.Caret {
		u.EvalType = r.table.Intern(prependModifier(r.table.Lookup(operand), types.Modifier{Kind: types.ModPointer}))
		return u.EvalType
	}
	u.EvalType = operand
	return u.EvalType
}

func prependModifier(t types.Type, m types.Modifier) types.Type {
	mods := make([]types.Modifier, 0, len(t.Modifiers)+1)
	mods = append(mods, m)
	mods = append(mods, t.Modifiers...)
	t.Modifiers = mods
	return t
}

func (r *Resolver) resolveDerefExpr(d *ast.DerefExpr) types.TypeId {
	operand := r.requireValue(d.Operand)
	if isErrorType(operand) {
		d.EvalType = types.BubbleErr
		return d.EvalType
	}
	t := r.table.Lookup(operand)
	if !types.IsPointer(t) {
		r.report(d.Span(), "cannot dereference non-pointer type %s", t.String())
		d.EvalType = types.TypeErr
		return d.EvalType
	}
	inner := t
	inner.Modifiers = t.Modifiers[1:]
	d.EvalType = r.table.Intern(inner)
	return d.EvalType
}

func (r *Resolver) resolveIndexExpr(x *ast.IndexExpr) types.TypeId {
	arr := r.requireValue(x.Array)
	idx := r.requireValue(x.Index)
	if isErrorType(arr) || isErrorType(idx) {
		x.EvalType = types.BubbleErr
		return x.EvalType
	}
	if idx != types.Int {
		r.report(x.Index.Span(), "array subscript must be int, got %s", r.typeName(idx))
	}
	t := r.table.Lookup(arr)
	if len(t.Modifiers) == 0 || t.Modifiers[0].Kind != types.ModArray {
		r.report(x.Span(), "cannot index non-array type %s", t.String())
		x.EvalType = types.TypeErr
		return x.EvalType
	}
	inner := t
	inner.Modifiers = t.Modifiers[1:]
	x.EvalType = r.table.Intern(inner)
	return x.EvalType
}

func (r *Resolver) resolveMemberExpr(m *ast.MemberExpr) types.TypeId {
	target := r.requireValue(m.Target)
	if isErrorType(target) {
		m.EvalType = types.BubbleErr
		return m.EvalType
	}
	t := r.table.Lookup(target)
	if t.IsFunc || len(t.Modifiers) > 0 {
		r.report(m.Span(), "%s is not a struct value", t.String())
		m.EvalType = types.TypeErr
		return m.EvalType
	}
	decl, ok := scope.LookupType(r.scopes.ByID(ast.ScopeId(t.DefiningScope)), t.Name, scope.OnlyThisScope)
	if !ok {
		r.report(m.Span(), "%s is not a struct type", t.String())
		m.EvalType = types.TypeErr
		return m.EvalType
	}
	field, ok := scope.LookupVar(r.scopes.ByID(decl.Scope), m.Member, scope.OnlyThisScope)
	if !ok {
		r.report(m.Span(), "struct %s has no member %q", t.Name, m.Member)
		m.EvalType = types.TypeErr
		return m.EvalType
	}
	m.EvalType = field.TypeExprNode().Resolved
	return m.EvalType
}

func (r *Resolver) resolveFuncLiteralExpr(f *ast.FuncLiteralExpr) types.TypeId {
	returns := make([]types.TypeId, len(f.Returns.Types))
	for i, t := range f.Returns.Types {
		returns[i] = t.Resolved
	}
	prev := r.pushScope(f.Scope)
	r.pushFrame()
	r.auditScope(r.cur)
	r.computeLayout(r.cur)
	r.pushFunc(returns)
	r.resolveStmt(f.Body)
	r.popFunc()
	r.popFrame()
	r.popScope(prev)

	params := make([]types.TypeId, len(f.Params.Params))
	for i, p := range f.Params.Params {
		params[i] = p.Type.Resolved
	}
	f.EvalType = r.table.Intern(types.Type{IsFunc: true, Func: types.FunctionSignature{Params: params, Returns: returns}})
	return f.EvalType
}
