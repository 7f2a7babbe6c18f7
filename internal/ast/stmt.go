package ast

import (
	"strings"

	"github.com/cwbudde/meekc/internal/types"
	"github.com/cwbudde/meekc/token"
)

// BlockStmt is a `{ ... }` statement sequence. It introduces a new scope
// unless InheritScope is set, the exception a function body block needs
// so it shares its header's scope instead of nesting inside it.
type BlockStmt struct {
	Base
	Scope        ScopeId
	InheritScope bool
	Stmts        []Stmt
}

func (*BlockStmt) isStmt() {}
func (b *BlockStmt) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, s := range b.Stmts {
		sb.WriteString(s.String())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

func NewBlockStmt(a *Arena, span token.Span, scope ScopeId, inherit bool, stmts []Stmt) *BlockStmt {
	n := &BlockStmt{Base: Base{id: a.nextNodeID(), kind: KindBlockStmt, span: span}, Scope: scope, InheritScope: inherit, Stmts: stmts}
	a.register(n)
	return n
}

// IfStmt is `if cond (do stmt | block) [else ...]`. Else is nil when absent.
type IfStmt struct {
	Base
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*IfStmt) isStmt() {}
func (s *IfStmt) String() string {
	if s.Else != nil {
		return "if " + s.Cond.String() + " " + s.Then.String() + " else " + s.Else.String()
	}
	return "if " + s.Cond.String() + " " + s.Then.String()
}

func NewIfStmt(a *Arena, span token.Span, cond Expr, then, els Stmt) *IfStmt {
	n := &IfStmt{Base: Base{id: a.nextNodeID(), kind: KindIfStmt, span: span}, Cond: cond, Then: then, Else: els}
	a.register(n)
	return n
}

// WhileStmt is `while cond (do stmt | block)`.
type WhileStmt struct {
	Base
	Cond Expr
	Body Stmt
}

func (*WhileStmt) isStmt() {}
func (s *WhileStmt) String() string { return "while " + s.Cond.String() + " " + s.Body.String() }

func NewWhileStmt(a *Arena, span token.Span, cond Expr, body Stmt) *WhileStmt {
	n := &WhileStmt{Base: Base{id: a.nextNodeID(), kind: KindWhileStmt, span: span}, Cond: cond, Body: body}
	a.register(n)
	return n
}

// ReturnStmt is `return [expr] ;`. Value is nil for a bare return.
type ReturnStmt struct {
	Base
	Value Expr
}

func (*ReturnStmt) isStmt() {}
func (s *ReturnStmt) String() string {
	if s.Value != nil {
		return "return " + s.Value.String() + ";"
	}
	return "return;"
}

func NewReturnStmt(a *Arena, span token.Span, value Expr) *ReturnStmt {
	n := &ReturnStmt{Base: Base{id: a.nextNodeID(), kind: KindReturnStmt, span: span}, Value: value}
	a.register(n)
	return n
}

// BreakStmt is `break ;`.
type BreakStmt struct{ Base }

func (*BreakStmt) isStmt()         {}
func (*BreakStmt) String() string { return "break;" }

func NewBreakStmt(a *Arena, span token.Span) *BreakStmt {
	n := &BreakStmt{Base: Base{id: a.nextNodeID(), kind: KindBreakStmt, span: span}}
	a.register(n)
	return n
}

// ContinueStmt is `continue ;`.
type ContinueStmt struct{ Base }

func (*ContinueStmt) isStmt()         {}
func (*ContinueStmt) String() string { return "continue;" }

func NewContinueStmt(a *Arena, span token.Span) *ContinueStmt {
	n := &ContinueStmt{Base: Base{id: a.nextNodeID(), kind: KindContinueStmt, span: span}}
	a.register(n)
	return n
}

// VarDeclStmt is `type name [= expr] ;`. VarSeqId records declaration order
// within its enclosing scope, assigned by the parser, used by codegen for
// frame-offset assignment.
type VarDeclStmt struct {
	DeclBase
	Name     string
	NameSpan token.Span
	Type     *TypeExpr
	Init     Expr
	VarSeqId int

	// FrameOffset is computed during the resolve pass's scope-layout audit
	// and consumed by the bytecode emitter.
	FrameOffset int
}

func (*VarDeclStmt) isStmt() {}
func (v *VarDeclStmt) String() string {
	if v.Init != nil {
		return v.Type.String() + " " + v.Name + " = " + v.Init.String() + ";"
	}
	return v.Type.String() + " " + v.Name + ";"
}

func (v *VarDeclStmt) BindingName() string     { return v.Name }
func (v *VarDeclStmt) SeqID() int              { return v.VarSeqId }
func (v *VarDeclStmt) TypeExprNode() *TypeExpr { return v.Type }
func (v *VarDeclStmt) BindingSpan() token.Span { return v.NameSpan }

func NewVarDeclStmt(a *Arena, span token.Span, scope ScopeId, typ *TypeExpr, name string, nameSpan token.Span, init Expr) *VarDeclStmt {
	n := &VarDeclStmt{
		DeclBase: DeclBase{Base: Base{id: a.nextNodeID(), kind: KindVarDeclStmt, span: span}, Scope: scope},
		Name:     name, NameSpan: nameSpan, Type: typ, Init: init,
	}
	a.register(n)
	return n
}

// AssignStmt is `lhs (= | += | -= | *= | /= | %=) rhs ;`.
type AssignStmt struct {
	Base
	Op     token.Kind
	OpSpan token.Span
	Target Expr
	Value  Expr
}

func (*AssignStmt) isStmt() {}
func (s *AssignStmt) String() string {
	return s.Target.String() + " " + s.Op.String() + " " + s.Value.String() + ";"
}

func NewAssignStmt(a *Arena, span token.Span, op token.Kind, opSpan token.Span, target, value Expr) *AssignStmt {
	n := &AssignStmt{Base: Base{id: a.nextNodeID(), kind: KindAssignStmt, span: span}, Op: op, OpSpan: opSpan, Target: target, Value: value}
	a.register(n)
	return n
}

// ExprStmt is a bare expression used as a statement (e.g. a call for its
// side effects).
type ExprStmt struct {
	Base
	X Expr
}

func (*ExprStmt) isStmt()         {}
func (s *ExprStmt) String() string { return s.X.String() + ";" }

func NewExprStmt(a *Arena, span token.Span, x Expr) *ExprStmt {
	n := &ExprStmt{Base: Base{id: a.nextNodeID(), kind: KindExprStmt, span: span}, X: x}
	a.register(n)
	return n
}

// StructDefnStmt is `struct Name { fields }`. Scope is the scope the struct
// body's fields inhabit (used for member-access lookup); EnclosingScope is
// the scope the struct's own name is visible in, which is what gives the
// struct's interned Type its structural identity. DefinedType is the TypeId
// interned for the struct once its header has fully parsed.
type StructDefnStmt struct {
	DeclBase
	Name           string
	NameSpan       token.Span
	EnclosingScope ScopeId
	Fields         *FieldGroup
	DefinedType    types.TypeId
}

func (*StructDefnStmt) isStmt() {}
func (s *StructDefnStmt) String() string { return "struct " + s.Name + " " + s.Fields.String() }

func NewStructDefnStmt(a *Arena, span token.Span, bodyScope, enclosingScope ScopeId, name string, nameSpan token.Span, fields *FieldGroup) *StructDefnStmt {
	n := &StructDefnStmt{
		DeclBase:       DeclBase{Base: Base{id: a.nextNodeID(), kind: KindStructDefnStmt, span: span}, Scope: bodyScope},
		Name:           name,
		NameSpan:       nameSpan,
		EnclosingScope: enclosingScope,
		Fields:         fields,
	}
	a.register(n)
	return n
}

// FuncDefnStmt is `fn Name(params) [-> returns] body`. Its type is a
// function signature that may depend on still-pending parameter/return
// types, so (unlike a struct's type) it is carried as a TypeExpr rather
// than a bare TypeId: SigType.Resolved is filled in either immediately or
// by the fixed-point type-resolution pass, exactly like any other TypeExpr.
type FuncDefnStmt struct {
	DeclBase
	Name           string
	NameSpan       token.Span
	EnclosingScope ScopeId
	Params         *ParamGroup
	Returns        *ReturnGroup
	Body           *BlockStmt
	SigType        *TypeExpr
}

func (*FuncDefnStmt) isStmt() {}
func (f *FuncDefnStmt) String() string {
	return "fn " + f.Name + f.Params.String() + " " + f.Returns.String() + " " + f.Body.String()
}

// DefinedType returns the function's interned signature TypeId, or
// types.Unresolved before the type-resolution pass completes.
func (f *FuncDefnStmt) DefinedType() types.TypeId { return f.SigType.Resolved }

func NewFuncDefnStmt(a *Arena, span token.Span, bodyScope, enclosingScope ScopeId, name string, nameSpan token.Span, params *ParamGroup, returns *ReturnGroup, body *BlockStmt) *FuncDefnStmt {
	n := &FuncDefnStmt{
		DeclBase:       DeclBase{Base: Base{id: a.nextNodeID(), kind: KindFuncDefnStmt, span: span}, Scope: bodyScope},
		Name:           name,
		NameSpan:       nameSpan,
		EnclosingScope: enclosingScope,
		Params:         params, Returns: returns, Body: body,
	}
	a.register(n)
	return n
}

// Program is the tree root: the top-level statement sequence plus the
// global scope it was parsed in.
type Program struct {
	Base
	Scope ScopeId
	Stmts []Stmt
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Stmts {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func NewProgram(a *Arena, span token.Span, scope ScopeId) *Program {
	n := &Program{Base: Base{id: a.nextNodeID(), kind: KindProgram, span: span}, Scope: scope}
	a.register(n)
	return n
}
