package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/meekc/internal/types"
	"github.com/cwbudde/meekc/token"
)

// TypeModifierExpr is one parsed type modifier: a bare pointer sigil, or an
// array dimension whose size is itself a (constant) expression.
type TypeModifierExpr struct {
	Kind     types.ModifierKind
	SizeExpr Expr // non-nil only when Kind == types.ModArray
}

// FuncSigTypeExpr is the parsed shape of a "fn(...) -> ..." type.
type FuncSigTypeExpr struct {
	Params  []*TypeExpr
	Returns []*TypeExpr
}

// TypeExpr is the AST's decoration slot for a parsed type: it is not itself
// a Node (it has no independent category in the Expr/Stmt/Grp taxonomy),
// but it is the "pointer into the AST" TypePendingResolution writes
// through once a named base is resolved.
//
// When every component can be interned immediately during parsing,
// Resolved is set right away; otherwise it starts as types.Unresolved and a
// TypePendingResolution entry targeting this value is queued.
type TypeExpr struct {
	Span      token.Span
	Modifiers []TypeModifierExpr // outermost first

	BaseName string // empty when Func != nil
	BaseSpan token.Span
	Func     *FuncSigTypeExpr // non-nil for a function-signature type

	Resolved types.TypeId
}

func (t *TypeExpr) String() string {
	var b strings.Builder
	for _, m := range t.Modifiers {
		switch m.Kind {
		case types.ModPointer:
			b.WriteString("^")
		case types.ModArray:
			fmt.Fprintf(&b, "[%s]", m.SizeExpr)
		}
	}
	if t.Func != nil {
		b.WriteString("fn(...)")
		return b.String()
	}
	b.WriteString(t.BaseName)
	return b.String()
}

// ConstEvalInt evaluates the restricted constant-expression grammar allowed
// for an array size: an integer literal, or a negated integer literal.
// Shared by the parser (checking whether a size is known at parse
// time) and the type resolver (computing the Modifier once every component
// is available).
func ConstEvalInt(e Expr) (int64, bool) {
	switch v := e.(type) {
	case *IntLiteral:
		return v.Value, true
	case *UnaryExpr:
		if v.Op == token.Minus {
			if n, ok := ConstEvalInt(v.Operand); ok {
				return -n, true
			}
		}
	}
	return 0, false
}

// TypePendingResolution is the queue entry the parser appends whenever a
// TypeExpr's named base cannot be interned immediately: the scope in effect
// at the point of appearance, and the AST slot to fill in once the base
// identifier is found.
type TypePendingResolution struct {
	Target  *TypeExpr
	ScopeID ScopeId
}
