package bytecode

import (
	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/scope"
	"github.com/cwbudde/meekc/internal/types"
)

// sizeOf mirrors internal/semantic's layout computation (duplicated by
// design, the same cross-package pattern internal/parser and
// internal/semantic already use for type helpers): the emitter needs a
// type's runtime width to pick the correctly sized Load/Store/Duplicate
// opcode, independent of the resolver's own (unexported) copy.
func (e *Emitter) sizeOf(id types.TypeId) int {
	return e.sizeOfType(e.table.Lookup(id))
}

func (e *Emitter) sizeOfType(t types.Type) int {
	if len(t.Modifiers) > 0 {
		switch t.Modifiers[0].Kind {
		case types.ModPointer:
			return PointerWidth
		case types.ModArray:
			inner := t
			inner.Modifiers = t.Modifiers[1:]
			return t.Modifiers[0].ArraySize * e.sizeOfType(inner)
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
		return e.structSize(t)
	}
}

func (e *Emitter) structSize(t types.Type) int {
	owner := e.scopes.ByID(ast.ScopeId(t.DefiningScope))
	decl, ok := scope.LookupType(owner, t.Name, scope.OnlyThisScope)
	if !ok {
		return 0
	}
	body := e.scopes.ByID(decl.Scope)
	total := 0
	body.EachVarName(func(_ string, bs []ast.VarBinding) {
		if len(bs) > 0 {
			total += e.sizeOf(bs[0].TypeExprNode().Resolved)
		}
	})
	return total
}

// loadOpForSize / storeOpForSize / duplicateOpForSize pick the narrowest
// typed opcode that fits size, rounding any non-power-of-two struct width up
// to the next one (a struct larger than 8 bytes is addressed member-wise by
// the caller rather than moved in one instruction; see emitStructCopy).
func loadOpForSize(size int) OpCode {
	switch {
	case size <= 1:
		return OpLoad8
	case size <= 2:
		return OpLoad16
	case size <= 4:
		return OpLoad32
	default:
		return OpLoad64
	}
}

func storeOpForSize(size int) OpCode {
	switch {
	case size <= 1:
		return OpStore8
	case size <= 2:
		return OpStore16
	case size <= 4:
		return OpStore32
	default:
		return OpStore64
	}
}

func duplicateOpForSize(size int) OpCode {
	switch {
	case size <= 1:
		return OpDuplicate8
	case size <= 2:
		return OpDuplicate16
	case size <= 4:
		return OpDuplicate32
	default:
		return OpDuplicate64
	}
}

// immediateWidthForSize reports how many bytes of immediate payload a
// LoadImmediate instruction needs to hold a value of the given runtime
// size, for emitting default-valued locals and literal constants.
func immediateWidthForSize(size int) int {
	switch {
	case size <= 1:
		return 1
	case size <= 2:
		return 2
	case size <= 4:
		return 4
	default:
		return 8
	}
}
