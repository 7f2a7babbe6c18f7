package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/meekc/token"
)

// IdentRefKind classifies what a resolved Identifier expression turned out
// to name, or that it is still an overload-dependent candidate set
// awaiting overload resolution.
type IdentRefKind int

const (
	RefUnresolved IdentRefKind = iota
	RefVar
	RefFunc
	RefCandidates
)

// Candidate is one entry in an Identifier's candidate set: either a
// variable binding or one function overload, ordered by scope distance.
type Candidate struct {
	Kind IdentRefKind // RefVar or RefFunc
	Var  VarBinding
	Func *FuncDefnStmt
}

// Identifier is a raw name appearing in expression position: a variable
// reference, a bare function reference, or (before disambiguation) a
// candidate set of both. Declarations carry their own Name string field
// instead of an Identifier node.
type Identifier struct {
	ExprBase
	Name string

	RefKind    IdentRefKind
	Var        VarBinding
	Func       *FuncDefnStmt
	Candidates []Candidate
}

func (*Identifier) isExpr() {}
func (i *Identifier) String() string { return i.Name }

func NewIdentifier(a *Arena, span token.Span, name string) *Identifier {
	n := &Identifier{
		ExprBase: ExprBase{Base: Base{id: a.nextNodeID(), kind: KindIdentifier, span: span}},
	}
	n.Name = name
	a.register(n)
	return n
}

// IntLiteral is a signed integer literal.
type IntLiteral struct {
	ExprBase
	Value int64
}

func (*IntLiteral) isExpr()         {}
func (l *IntLiteral) String() string { return fmt.Sprintf("%d", l.Value) }

func NewIntLiteral(a *Arena, span token.Span, v int64) *IntLiteral {
	n := &IntLiteral{ExprBase: ExprBase{Base: Base{id: a.nextNodeID(), kind: KindIntLiteral, span: span}}, Value: v}
	a.register(n)
	return n
}

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	ExprBase
	Value float64
}

func (*FloatLiteral) isExpr()         {}
func (l *FloatLiteral) String() string { return fmt.Sprintf("%g", l.Value) }

func NewFloatLiteral(a *Arena, span token.Span, v float64) *FloatLiteral {
	n := &FloatLiteral{ExprBase: ExprBase{Base: Base{id: a.nextNodeID(), kind: KindFloatLiteral, span: span}}, Value: v}
	a.register(n)
	return n
}

// BoolLiteral is a boolean literal.
type BoolLiteral struct {
	ExprBase
	Value bool
}

func (*BoolLiteral) isExpr()         {}
func (l *BoolLiteral) String() string { return fmt.Sprintf("%t", l.Value) }

func NewBoolLiteral(a *Arena, span token.Span, v bool) *BoolLiteral {
	n := &BoolLiteral{ExprBase: ExprBase{Base: Base{id: a.nextNodeID(), kind: KindBoolLiteral, span: span}}, Value: v}
	a.register(n)
	return n
}

// StringLiteral is a string literal. Value is the raw source text between
// the quotes; escape sequences are not processed.
type StringLiteral struct {
	ExprBase
	Value string
}

func (*StringLiteral) isExpr()         {}
func (l *StringLiteral) String() string { return fmt.Sprintf("%q", l.Value) }

func NewStringLiteral(a *Arena, span token.Span, v string) *StringLiteral {
	n := &StringLiteral{ExprBase: ExprBase{Base: Base{id: a.nextNodeID(), kind: KindStringLiteral, span: span}}, Value: v}
	a.register(n)
	return n
}

// BinaryExpr is a left-associative binary operator application, from one of
// the precedence classes (||, &&, #or, #xor, #and, equality, comparison,
// additive, multiplicative).
type BinaryExpr struct {
	ExprBase
	Op       token.Kind
	OpSpan   token.Span
	Left     Expr
	Right    Expr
}

func (*BinaryExpr) isExpr() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

func NewBinaryExpr(a *Arena, span token.Span, op token.Kind, opSpan token.Span, left, right Expr) *BinaryExpr {
	n := &BinaryExpr{
		ExprBase: ExprBase{Base: Base{id: a.nextNodeID(), kind: KindBinaryExpr, span: span}},
		Op:       op, OpSpan: opSpan, Left: left, Right: right,
	}
	a.register(n)
	return n
}

// UnaryExpr is a prefix unary operator application (+, -, !).
type UnaryExpr struct {
	ExprBase
	Op      token.Kind
	OpSpan  token.Span
	Operand Expr
}

func (*UnaryExpr) isExpr()         {}
func (u *UnaryExpr) String() string { return fmt.Sprintf("(%s%s)", u.Op, u.Operand) }

func NewUnaryExpr(a *Arena, span token.Span, op token.Kind, opSpan token.Span, operand Expr) *UnaryExpr {
	n := &UnaryExpr{ExprBase: ExprBase{Base: Base{id: a.nextNodeID(), kind: KindUnaryExpr, span: span}}, Op: op, OpSpan: opSpan, Operand: operand}
	a.register(n)
	return n
}

// DerefExpr is a postfix pointer dereference: expr^.
type DerefExpr struct {
	ExprBase
	Operand Expr
}

func (*DerefExpr) isExpr()         {}
func (d *DerefExpr) String() string { return fmt.Sprintf("(%s^)", d.Operand) }

func NewDerefExpr(a *Arena, span token.Span, operand Expr) *DerefExpr {
	n := &DerefExpr{ExprBase: ExprBase{Base: Base{id: a.nextNodeID(), kind: KindDerefExpr, span: span}}, Operand: operand}
	a.register(n)
	return n
}

// IndexExpr is a postfix array subscript: array[index].
type IndexExpr struct {
	ExprBase
	Array Expr
	Index Expr
}

func (*IndexExpr) isExpr()         {}
func (x *IndexExpr) String() string { return fmt.Sprintf("%s[%s]", x.Array, x.Index) }

func NewIndexExpr(a *Arena, span token.Span, arr, idx Expr) *IndexExpr {
	n := &IndexExpr{ExprBase: ExprBase{Base: Base{id: a.nextNodeID(), kind: KindIndexExpr, span: span}}, Array: arr, Index: idx}
	a.register(n)
	return n
}

// MemberExpr is a postfix field access: target.member.
type MemberExpr struct {
	ExprBase
	Target     Expr
	Member     string
	MemberSpan token.Span
}

func (*MemberExpr) isExpr()         {}
func (m *MemberExpr) String() string { return fmt.Sprintf("%s.%s", m.Target, m.Member) }

func NewMemberExpr(a *Arena, span token.Span, target Expr, member string, memberSpan token.Span) *MemberExpr {
	n := &MemberExpr{ExprBase: ExprBase{Base: Base{id: a.nextNodeID(), kind: KindMemberExpr, span: span}}, Target: target, Member: member, MemberSpan: memberSpan}
	a.register(n)
	return n
}

// CallExpr is a postfix function call: callee(args...).
type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr

	// ResolvedFunc is filled by the resolver once overload resolution picks
	// a single candidate for Callee (when Callee is an Identifier with
	// multiple candidates).
	ResolvedFunc *FuncDefnStmt
}

func (*CallExpr) isExpr() {}
func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}

func NewCallExpr(a *Arena, span token.Span, callee Expr, args []Expr) *CallExpr {
	n := &CallExpr{ExprBase: ExprBase{Base: Base{id: a.nextNodeID(), kind: KindCallExpr, span: span}}, Callee: callee, Args: args}
	a.register(n)
	return n
}

// FuncLiteralExpr is an anonymous function value: fn(params) [-> returns] {
// body }. Unlike FuncDefnStmt it has no name and cannot be directly
// invoked at its definition site (InvokeFuncLiteralErr).
type FuncLiteralExpr struct {
	ExprBase
	Params *ParamGroup
	Returns *ReturnGroup
	Body    *BlockStmt
	Scope   ScopeId
}

func (*FuncLiteralExpr) isExpr() {}
func (f *FuncLiteralExpr) String() string { return "fn(...)" }

func NewFuncLiteralExpr(a *Arena, span token.Span, params *ParamGroup, returns *ReturnGroup, body *BlockStmt, scope ScopeId) *FuncLiteralExpr {
	n := &FuncLiteralExpr{
		ExprBase: ExprBase{Base: Base{id: a.nextNodeID(), kind: KindFuncLiteralExpr, span: span}},
		Params:   params, Returns: returns, Body: body, Scope: scope,
	}
	a.register(n)
	return n
}
