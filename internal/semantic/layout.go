package semantic

import (
	"sort"

	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/scope"
	"github.com/cwbudde/meekc/internal/types"
)

// PointerWidth is the byte width of a pointer-sized slot. The target is
// 64-bit, so layout (computed once, ahead of codegen) assumes it.
const PointerWidth = 8

// auditScope reports duplicate variable/struct declarations and duplicate
// function overloads sharing an identical parameter type list within s.
// The first binding of each name is never reported; only the
// redeclarations are.
func (r *Resolver) auditScope(s *scope.Scope) {
	s.EachVarName(func(name string, bindings []ast.VarBinding) {
		for _, b := range bindings[1:] {
			r.report(b.BindingSpan(), "%q redeclared in this scope", name)
		}
	})
	s.EachStructName(func(name string, decls []*ast.StructDefnStmt) {
		for _, d := range decls[1:] {
			r.report(d.NameSpan, "struct %q redeclared in this scope", name)
		}
	})
	s.EachFuncName(func(name string, decls []*ast.FuncDefnStmt) {
		for i, a := range decls {
			for _, b := range decls[i+1:] {
				if sameParamTypes(a, b) {
					r.report(b.NameSpan, "function %q redeclared with an identical parameter list", name)
				}
			}
		}
	})
}

func sameParamTypes(a, b *ast.FuncDefnStmt) bool {
	if len(a.Params.Params) != len(b.Params.Params) {
		return false
	}
	for i := range a.Params.Params {
		if a.Params.Params[i].Type.Resolved != b.Params.Params[i].Type.Resolved {
			return false
		}
	}
	return true
}

// computeLayout assigns frame-relative byte offsets to every variable and
// parameter bound directly in s, in declaration order (VarSeqId), and
// member byte offsets to every struct field, consumed later by
// internal/bytecode to compute scoped variable layout offsets. Offsets
// continue from the enclosing frame's running cursor
// (see Resolver.frameBases) rather than restarting at zero, so a nested
// block scope's locals never alias a variable already laid out in the
// frame that encloses it.
func (r *Resolver) computeLayout(s *scope.Scope) {
	var bindings []ast.VarBinding
	s.EachVarName(func(_ string, bs []ast.VarBinding) {
		if len(bs) > 0 {
			bindings = append(bindings, bs[0])
		}
	})
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].SeqID() < bindings[j].SeqID() })

	top := len(r.frameBases) - 1
	offset := r.frameBases[top]
	for _, b := range bindings {
		size := r.sizeOf(b.TypeExprNode().Resolved)
		switch v := b.(type) {
		case *ast.VarDeclStmt:
			v.FrameOffset = offset
		case *ast.Param:
			v.FrameOffset = offset
		case *ast.Field:
			v.ByteOffset = offset
		}
		offset += size
	}
	r.frameBases[top] = offset
}

// sizeOf returns the byte size of id's runtime representation.
func (r *Resolver) sizeOf(id types.TypeId) int {
	return r.sizeOfType(r.table.Lookup(id))
}

func (r *Resolver) sizeOfType(t types.Type) int {
	if len(t.Modifiers) > 0 {
		switch t.Modifiers[0].Kind {
		case types.ModPointer:
			return PointerWidth
		case types.ModArray:
			inner := t
			inner.Modifiers = t.Modifiers[1:]
			return t.Modifiers[0].ArraySize * r.sizeOfType(inner)
		}
	}
	if t.IsFunc {
		return PointerWidth
	}
	switch t.Name {
	case "int", "float":
		return 8
	case "bool":
		return 1
	case "string":
		return PointerWidth
	default:
		return r.structSize(t)
	}
}

// structSize sums a struct type's field sizes by locating its definition
// through its (name, defining scope) identity.
func (r *Resolver) structSize(t types.Type) int {
	owner := r.scopes.ByID(ast.ScopeId(t.DefiningScope))
	decl, ok := scope.LookupType(owner, t.Name, scope.OnlyThisScope)
	if !ok {
		return 0
	}
	body := r.scopes.ByID(decl.Scope)
	total := 0
	body.EachVarName(func(_ string, bs []ast.VarBinding) {
		if len(bs) > 0 {
			total += r.sizeOf(bs[0].TypeExprNode().Resolved)
		}
	})
	return total
}
