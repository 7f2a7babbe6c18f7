package scope

import "github.com/cwbudde/meekc/internal/ast"

// SymbolKind discriminates SymbolInfo's tagged-variant cases.
type SymbolKind int

const (
	SymNil SymbolKind = iota
	SymVar
	SymFunc
	SymStruct
)

// SymbolInfo is a `Var{declNode} | Func{defnNode} | Struct{defnNode} | Nil`
// tagged variant. A Nil-kind zero value is never returned by lookups
// (lookups report ok=false instead); SymNil only exists so the zero value
// of SymbolInfo is well-defined.
type SymbolInfo struct {
	Kind   SymbolKind
	Var    ast.VarBinding
	Func   *ast.FuncDefnStmt
	Struct *ast.StructDefnStmt
}

// IgnoreParent restricts a lookup to a single scope, used for struct member
// access.
type IgnoreParent bool

const (
	WalkParents  IgnoreParent = false
	OnlyThisScope IgnoreParent = true
)

// LookupVar walks s and its enclosing scopes (unless ignoreParent) looking
// for the first-defined variable bound to name.
func LookupVar(s *Scope, name string, ignoreParent IgnoreParent) (ast.VarBinding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if bindings := cur.VarsIn(name); len(bindings) > 0 {
			return bindings[0], true
		}
		if ignoreParent {
			break
		}
	}
	return nil, false
}

// LookupType walks s and its enclosing scopes looking for a struct
// definition bound to name.
func LookupType(s *Scope, name string, ignoreParent IgnoreParent) (*ast.StructDefnStmt, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if decls := cur.StructsIn(name); len(decls) > 0 {
			return decls[0], true
		}
		if ignoreParent {
			break
		}
	}
	return nil, false
}

// LookupFunc walks outward from s, accumulating every overload bound to
// name at every enclosing scope. Closer scopes appear earlier in the
// returned slice; order matters for resolution.
func LookupFunc(s *Scope, name string) []*ast.FuncDefnStmt {
	var out []*ast.FuncDefnStmt
	for cur := s; cur != nil; cur = cur.parent {
		out = append(out, cur.FuncsIn(name)...)
	}
	return out
}

// Stack is the parser's (and, during resolution, a scope lookup's) current
// chain of open scopes. Scope ids are monotonically allocated in creation
// order: an enclosing scope's id is always smaller than any scope it
// encloses.
type Stack struct {
	open   []*Scope // currently-open scopes, outermost first
	byID   []*Scope // every scope ever created, indexed by ScopeId
	nextID ScopeId
}

// NewStack returns a Stack with the Builtin and Global scopes already
// pushed, matching parseProgram's requirement to seed both before parsing
// begins.
func NewStack() *Stack {
	s := &Stack{}
	s.Push() // Builtin, id 0
	s.Push() // Global, id 1
	return s
}

// Push opens a new scope nested inside the current top of stack (or with
// no parent, for the very first call) and returns it.
func (s *Stack) Push() *Scope {
	var parent *Scope
	if len(s.open) > 0 {
		parent = s.open[len(s.open)-1]
	}
	id := s.nextID
	s.nextID++
	sc := newScope(id, parent)
	s.open = append(s.open, sc)
	s.byID = append(s.byID, sc)
	return sc
}

// Pop closes the innermost open scope.
func (s *Stack) Pop() {
	s.open = s.open[:len(s.open)-1]
}

// Current returns the innermost open scope.
func (s *Stack) Current() *Scope {
	return s.open[len(s.open)-1]
}

// ByID returns the scope allocated with the given id, used by the resolver
// to reconstruct lookups from a TypePendingResolution's captured ScopeId.
func (s *Stack) ByID(id ScopeId) *Scope {
	return s.byID[id]
}

// GlobalScope returns the reserved Global scope.
func (s *Stack) GlobalScope() *Scope { return s.byID[Global] }

// BuiltinScope returns the reserved Builtin scope.
func (s *Stack) BuiltinScope() *Scope { return s.byID[Builtin] }

// All returns every scope ever created, in allocation (and therefore
// topological enclosure) order.
func (s *Stack) All() []*Scope { return s.byID }
