// Package scope implements Meek's lexically-nested scope/symbol table: a
// stack of scopes, each owning separate maps from identifier lexeme to its
// variable bindings, its struct definitions, and its function overload list.
package scope

import (
	"github.com/dolthub/swiss"

	"github.com/cwbudde/meekc/internal/ast"
)

// ScopeId re-exports ast.ScopeId. It is defined in internal/ast (the lower
// layer) because ast's declaration nodes carry a ScopeId field and ast must
// not import scope (which itself holds *ast.FuncDefnStmt/etc. pointers).
type ScopeId = ast.ScopeId

// Two reserved scope ids.
const (
	Builtin ScopeId = 0
	Global  ScopeId = 1
)

// Scope is one lexically nested scope. Variables and structs are unique
// per (scope, name) once audited; duplicates are kept (as additional slice
// entries) so the semantic audit pass can report them, rather than being
// rejected at insertion time.
type Scope struct {
	id     ScopeId
	parent *Scope

	vars    *swiss.Map[string, []ast.VarBinding]
	structs *swiss.Map[string, []*ast.StructDefnStmt]
	funcs   *swiss.Map[string, []*ast.FuncDefnStmt]

	nextVarSeq int
}

// ID returns the scope's identity.
func (s *Scope) ID() ScopeId { return s.id }

// Parent returns the lexically enclosing scope, or nil for Builtin.
func (s *Scope) Parent() *Scope { return s.parent }

func newScope(id ScopeId, parent *Scope) *Scope {
	return &Scope{
		id:      id,
		parent:  parent,
		vars:    swiss.NewMap[string, []ast.VarBinding](8),
		structs: swiss.NewMap[string, []*ast.StructDefnStmt](4),
		funcs:   swiss.NewMap[string, []*ast.FuncDefnStmt](4),
	}
}

// NextVarSeq returns the next monotonic variable-sequence id for this
// scope, used by the parser to stamp VarDeclStmt.VarSeqId / Param.VarSeqId
// in declaration order.
func (s *Scope) NextVarSeq() int {
	id := s.nextVarSeq
	s.nextVarSeq++
	return id
}

// DefineVar records a variable (or parameter) binding in this scope.
func (s *Scope) DefineVar(name string, v ast.VarBinding) {
	existing, _ := s.vars.Get(name)
	s.vars.Put(name, append(existing, v))
}

// DefineStruct records a struct definition in this scope.
func (s *Scope) DefineStruct(name string, decl *ast.StructDefnStmt) {
	existing, _ := s.structs.Get(name)
	s.structs.Put(name, append(existing, decl))
}

// DefineFunc adds decl to this scope's overload list for name. Functions of
// the same name always coexist here; duplicate-signature detection is an
// audit-phase concern, not an insertion-time rejection.
func (s *Scope) DefineFunc(name string, decl *ast.FuncDefnStmt) {
	existing, _ := s.funcs.Get(name)
	s.funcs.Put(name, append(existing, decl))
}

// VarsIn returns all (possibly duplicate) bindings of name made directly in
// this scope.
func (s *Scope) VarsIn(name string) []ast.VarBinding {
	v, _ := s.vars.Get(name)
	return v
}

// StructsIn returns this scope's own struct-definition entries for name.
func (s *Scope) StructsIn(name string) []*ast.StructDefnStmt {
	v, _ := s.structs.Get(name)
	return v
}

// FuncsIn returns this scope's own overload list for name.
func (s *Scope) FuncsIn(name string) []*ast.FuncDefnStmt {
	v, _ := s.funcs.Get(name)
	return v
}

// EachVarName calls fn for every (name, bindings) pair directly owned by this
// scope's variable map, for the duplicate-declaration audit.
func (s *Scope) EachVarName(fn func(name string, bindings []ast.VarBinding)) {
	s.vars.Iter(func(k string, v []ast.VarBinding) bool {
		fn(k, v)
		return false
	})
}

// EachStructName mirrors EachVarName for struct definitions.
func (s *Scope) EachStructName(fn func(name string, decls []*ast.StructDefnStmt)) {
	s.structs.Iter(func(k string, v []*ast.StructDefnStmt) bool {
		fn(k, v)
		return false
	})
}

// EachFuncName mirrors EachVarName for function overload sets.
func (s *Scope) EachFuncName(fn func(name string, decls []*ast.FuncDefnStmt)) {
	s.funcs.Iter(func(k string, v []*ast.FuncDefnStmt) bool {
		fn(k, v)
		return false
	})
}
