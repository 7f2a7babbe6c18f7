package semantic

import (
	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/types"
)

// resolveStmt dispatches over every Stmt-category node plus the error nodes
// that can stand in for one.
func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		r.resolveBlockStmt(n)
	case *ast.IfStmt:
		r.resolveIfStmt(n)
	case *ast.WhileStmt:
		r.resolveWhileStmt(n)
	case *ast.ReturnStmt:
		r.resolveReturnStmt(n)
	case *ast.BreakStmt:
		r.resolveBreakStmt(n)
	case *ast.ContinueStmt:
		r.resolveContinueStmt(n)
	case *ast.VarDeclStmt:
		r.resolveVarDeclStmt(n)
	case *ast.AssignStmt:
		r.resolveAssignStmt(n)
	case *ast.ExprStmt:
		r.resolveExpr(n.X)
	case *ast.StructDefnStmt:
		r.resolveStructDefnStmt(n)
	case *ast.FuncDefnStmt:
		r.resolveFuncDefnStmt(n)
	case *ast.ErrorNode:
		r.resolveErrorNode(n)
	default:
		panic("semantic: unhandled statement kind")
	}
}

// resolveBlockStmt pushes and audits a new scope unless InheritScope is set,
// the exception a function/function-literal body block needs because its
// header already pushed and audited that very scope.
func (r *Resolver) resolveBlockStmt(b *ast.BlockStmt) {
	if b.InheritScope {
		for _, stmt := range b.Stmts {
			r.resolveStmt(stmt)
		}
		return
	}
	prev := r.pushScope(b.Scope)
	r.auditScope(r.cur)
	r.computeLayout(r.cur)
	for _, stmt := range b.Stmts {
		r.resolveStmt(stmt)
	}
	r.popScope(prev)
}

func (r *Resolver) requireBool(e ast.Expr, context string) {
	t := r.requireValue(e)
	if isErrorType(t) {
		return
	}
	if t != types.Bool {
		r.report(e.Span(), "%s condition must be bool, got %s", context, r.typeName(t))
	}
}

func (r *Resolver) resolveIfStmt(s *ast.IfStmt) {
	r.requireBool(s.Cond, "if")
	r.resolveStmt(s.Then)
	if s.Else != nil {
		r.resolveStmt(s.Else)
	}
}

func (r *Resolver) resolveWhileStmt(s *ast.WhileStmt) {
	r.requireBool(s.Cond, "while")
	r.breakable++
	r.resolveStmt(s.Body)
	r.breakable--
}

// resolveReturnStmt validates against the enclosing function's declared
// return list: zero values only when it is empty, one value matching its
// single element otherwise. Multiple return values remain reserved for
// future use.
func (r *Resolver) resolveReturnStmt(s *ast.ReturnStmt) {
	fn, ok := r.currentFunc()
	if !ok {
		r.report(s.Span(), "return outside of a function body")
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
		return
	}
	switch {
	case s.Value == nil && len(fn.returns) == 0:
		return
	case s.Value == nil:
		r.report(s.Span(), "missing return value")
	case len(fn.returns) == 0:
		r.resolveExpr(s.Value)
		r.report(s.Value.Span(), "function has no return value")
	default:
		t := r.resolveExpr(s.Value)
		if !isErrorType(t) && t != fn.returns[0] {
			r.report(s.Value.Span(), "return type mismatch: expected %s, got %s", r.typeName(fn.returns[0]), r.typeName(t))
		}
	}
}

func (r *Resolver) resolveBreakStmt(s *ast.BreakStmt) {
	if r.breakable == 0 {
		r.report(s.Span(), "break outside of a loop")
	}
}

func (r *Resolver) resolveContinueStmt(s *ast.ContinueStmt) {
	if r.breakable == 0 {
		r.report(s.Span(), "continue outside of a loop")
	}
}

func (r *Resolver) resolveVarDeclStmt(v *ast.VarDeclStmt) {
	if v.Init == nil {
		return
	}
	t := r.requireValue(v.Init)
	if isErrorType(t) {
		return
	}
	if decl := v.Type.Resolved; !isErrorType(decl) && t != decl {
		r.report(v.Init.Span(), "initializer type mismatch: expected %s, got %s", r.typeName(decl), r.typeName(t))
	}
}

// isLValue reports whether target is assignable: a variable identifier
// (not a bare function reference), or a deref/index/member expression.
func isLValue(target ast.Expr) bool {
	switch n := target.(type) {
	case *ast.Identifier:
		return n.RefKind == ast.RefVar
	case *ast.DerefExpr, *ast.IndexExpr, *ast.MemberExpr:
		return true
	default:
		return false
	}
}

func (r *Resolver) resolveAssignStmt(s *ast.AssignStmt) {
	targetType := r.resolveExpr(s.Target)
	valueType := r.requireValue(s.Value)
	if !isLValue(s.Target) {
		r.report(s.Target.Span(), "assignment target is not assignable")
		return
	}
	if isErrorType(targetType) || isErrorType(valueType) {
		return
	}
	if targetType != valueType {
		r.report(s.Span(), "assignment type mismatch: %s vs %s", r.typeName(targetType), r.typeName(valueType))
	}
}

func (r *Resolver) resolveStructDefnStmt(s *ast.StructDefnStmt) {
	prev := r.pushScope(s.Scope)
	r.pushFrame()
	r.auditScope(r.cur)
	r.computeLayout(r.cur)
	r.popFrame()
	r.popScope(prev)
}

func (r *Resolver) resolveFuncDefnStmt(f *ast.FuncDefnStmt) {
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
}

// resolveErrorNode walks whatever the parser managed to salvage around a
// parse failure so partial programs still get as much analysis as possible.
func (r *Resolver) resolveErrorNode(e *ast.ErrorNode) {
	e.EvalType = types.BubbleErr
	if e.Inner != nil {
		r.resolveNode(e.Inner)
	}
	for _, c := range e.Children {
		r.resolveNode(c)
	}
}

func (r *Resolver) resolveNode(n ast.Node) {
	switch n.Category() {
	case ast.CatExpr:
		r.resolveExpr(n.(ast.Expr))
	case ast.CatStmt:
		r.resolveStmt(n.(ast.Stmt))
	case ast.CatError:
		r.resolveErrorNode(n.(*ast.ErrorNode))
	}
}
