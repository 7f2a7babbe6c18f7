package ast

import (
	"strings"

	"github.com/cwbudde/meekc/token"
)

// VarBinding is implemented by anything that introduces a variable name a
// symbol table entry can point at: a VarDeclStmt or a function Param. Kept
// separate from ast.Node because Param is a lightweight struct, not itself
// an arena-allocated node (it has no independent identity; its identity is
// its containing ParamGroup).
type VarBinding interface {
	BindingName() string
	SeqID() int
	TypeExprNode() *TypeExpr
	BindingSpan() token.Span
}

// Param is one entry in a function header's parameter list. FrameOffset is
// computed during the resolve pass's scope-layout audit and consumed by
// the bytecode emitter.
type Param struct {
	Name        string
	NameSpan    token.Span
	Type        *TypeExpr
	VarSeqId    int
	FrameOffset int
}

func (p *Param) BindingName() string     { return p.Name }
func (p *Param) SeqID() int              { return p.VarSeqId }
func (p *Param) TypeExprNode() *TypeExpr { return p.Type }
func (p *Param) BindingSpan() token.Span { return p.NameSpan }

// ParamGroup is the structural Grp node wrapping a function header's
// parameter list as a structural group.
type ParamGroup struct {
	Base
	Params []*Param
}

func (*ParamGroup) isGrp() {}
func (g *ParamGroup) String() string {
	parts := make([]string, len(g.Params))
	for i, p := range g.Params {
		parts[i] = p.Name
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func NewParamGroup(a *Arena, span token.Span, params []*Param) *ParamGroup {
	n := &ParamGroup{Base: Base{id: a.nextNodeID(), kind: KindParamGroup, span: span}, Params: params}
	a.register(n)
	return n
}

// ReturnGroup is the structural Grp node wrapping a function header's
// "-> T, U" return-type list. The parser accepts any number of entries;
// the resolver only uses the first.
type ReturnGroup struct {
	Base
	Types []*TypeExpr
}

func (*ReturnGroup) isGrp() {}
func (g *ReturnGroup) String() string {
	if len(g.Types) == 0 {
		return ""
	}
	parts := make([]string, len(g.Types))
	for i, t := range g.Types {
		parts[i] = t.String()
	}
	return "-> " + strings.Join(parts, ", ")
}

func NewReturnGroup(a *Arena, span token.Span, types []*TypeExpr) *ReturnGroup {
	n := &ReturnGroup{Base: Base{id: a.nextNodeID(), kind: KindReturnGroup, span: span}, Types: types}
	a.register(n)
	return n
}

// Field is one member declaration in a struct body. It implements
// VarBinding so a struct's body scope can use the same lookupVar machinery
// as ordinary variables for member-access resolution.
// ByteOffset is the field's byte offset within its struct, computed
// alongside FrameOffset during the resolve pass's layout audit.
type Field struct {
	Name       string
	NameSpan   token.Span
	Type       *TypeExpr
	FieldSeq   int
	ByteOffset int
}

func (f *Field) BindingName() string     { return f.Name }
func (f *Field) SeqID() int              { return f.FieldSeq }
func (f *Field) TypeExprNode() *TypeExpr { return f.Type }
func (f *Field) BindingSpan() token.Span { return f.NameSpan }

// FieldGroup is the structural Grp node wrapping a struct definition's
// member-declaration list.
type FieldGroup struct {
	Base
	Fields []*Field
}

func (*FieldGroup) isGrp() {}
func (g *FieldGroup) String() string {
	parts := make([]string, len(g.Fields))
	for i, f := range g.Fields {
		parts[i] = f.Name
	}
	return "{" + strings.Join(parts, "; ") + "}"
}

func NewFieldGroup(a *Arena, span token.Span, fields []*Field) *FieldGroup {
	n := &FieldGroup{Base: Base{id: a.nextNodeID(), kind: KindFieldGroup, span: span}, Fields: fields}
	a.register(n)
	return n
}
