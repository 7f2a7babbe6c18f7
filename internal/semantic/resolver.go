// Package semantic implements Meek's two-phase semantic analysis: a
// fixed-point type-resolution pass that drains the parser's
// TypePendingResolution queue, followed by a pre/post/mid-order tree walk
// that resolves every expression's evaluated type, performs overload
// resolution, audits scopes for duplicate declarations, computes frame
// layout, and enforces break/continue and return-type constraints.
package semantic

import (
	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/diag"
	"github.com/cwbudde/meekc/internal/scope"
	"github.com/cwbudde/meekc/internal/types"
	"github.com/cwbudde/meekc/token"
)

// funcContext is one entry in the resolver's function-context stack: the
// return-type list a `return` statement inside the current function must
// match.
type funcContext struct {
	returns []types.TypeId
}

// Resolver carries the state threaded through the single traversal: the
// active scope chain, the function-context stack, and the
// breakable-construct counter guarding break/continue.
type Resolver struct {
	scopes *scope.Stack
	table  *types.Table

	cur       *scope.Scope
	funcs     []funcContext
	breakable int

	// frameBases is a stack of running frame-relative offset cursors, one
	// per open "frame" (the global scope, a function body, or a struct
	// body). computeLayout advances the top entry rather than resetting to
	// zero, so a nested block scope's locals stack on top of its enclosing
	// function's rather than colliding with them at the same offsets.
	frameBases []int

	diags []diag.Diagnostic
}

// Resolve runs the tree-walk resolve pass over root and returns every
// diagnostic raised: type mismatches, l-value violations, overload
// failures, duplicate declarations, and break/continue/return misuse.
func Resolve(root *ast.Program, scopes *scope.Stack, table *types.Table) []diag.Diagnostic {
	r := &Resolver{scopes: scopes, table: table, cur: scopes.ByID(root.Scope)}
	r.pushFrame()
	r.auditScope(r.cur)
	r.computeLayout(r.cur)
	for _, stmt := range root.Stmts {
		r.resolveStmt(stmt)
	}
	return r.diags
}

func (r *Resolver) report(span token.Span, format string, args ...any) {
	r.diags = append(r.diags, diag.AtSpan(span, format, args...))
}

// pushScope enters the scope identified by id, returning the previously
// current scope so the caller can restore it on exit.
func (r *Resolver) pushScope(id ast.ScopeId) *scope.Scope {
	prev := r.cur
	r.cur = r.scopes.ByID(id)
	return prev
}

func (r *Resolver) popScope(prev *scope.Scope) { r.cur = prev }

func (r *Resolver) pushFunc(returns []types.TypeId) { r.funcs = append(r.funcs, funcContext{returns: returns}) }

func (r *Resolver) popFunc() { r.funcs = r.funcs[:len(r.funcs)-1] }

// pushFrame opens a new frame-relative offset cursor, used for the global
// scope and for each function/struct body so their layouts don't share a
// cursor with whatever frame encloses them.
func (r *Resolver) pushFrame() { r.frameBases = append(r.frameBases, 0) }

func (r *Resolver) popFrame() { r.frameBases = r.frameBases[:len(r.frameBases)-1] }

func (r *Resolver) currentFunc() (funcContext, bool) {
	if len(r.funcs) == 0 {
		return funcContext{}, false
	}
	return r.funcs[len(r.funcs)-1], true
}

// isErrorType reports whether id marks an already-diagnosed (or bubbled)
// failure, so callers can suppress cascading diagnostics: downstream nodes
// typed in terms of it evaluate to BubbleError.
func isErrorType(id types.TypeId) bool {
	return id == types.TypeErr || id == types.BubbleErr
}

// typeName renders id for diagnostic messages.
func (r *Resolver) typeName(id types.TypeId) string {
	return r.table.Lookup(id).String()
}
