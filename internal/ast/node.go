// Package ast defines Meek's abstract syntax tree: an arena-allocated,
// tagged-variant node set with stable identities, source spans, and
// category-dependent decorations. Parse errors are first-class nodes of
// category Error rather than a side channel.
package ast

import (
	"fmt"

	"github.com/cwbudde/meekc/internal/types"
	"github.com/cwbudde/meekc/token"
)

// NodeID is a monotonic, arena-stable node identity.
type NodeID int

// ScopeId identifies a lexical scope. Defined here, rather than in
// internal/scope, so that ast's declaration decorations can carry a ScopeId
// field without ast depending on internal/scope (which itself depends on
// ast for declaration-node pointers). internal/scope re-exports this type
// as scope.ScopeId.
type ScopeId int

// Category groups NodeKind values into four families (Expr, Stmt, Grp,
// Program), plus Error. Every exhaustive switch over NodeKind should
// branch on Category first or handle every kind explicitly; an unhandled
// kind is a programming error, not a user error.
type Category int

const (
	CatExpr Category = iota
	CatStmt
	CatGrp
	CatProgram
	CatError
)

func (c Category) String() string {
	switch c {
	case CatExpr:
		return "Expr"
	case CatStmt:
		return "Stmt"
	case CatGrp:
		return "Grp"
	case CatProgram:
		return "Program"
	case CatError:
		return "Error"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// NodeKind tags every concrete node type. Grouped by category using a
// grouped-iota-block convention for token/opcode enums.
type NodeKind int

const (
	// Expr

	KindIdentifier NodeKind = iota
	KindIntLiteral
	KindFloatLiteral
	KindBoolLiteral
	KindStringLiteral
	KindBinaryExpr
	KindUnaryExpr
	KindDerefExpr
	KindIndexExpr
	KindMemberExpr
	KindCallExpr
	KindFuncLiteralExpr

	// Stmt

	KindBlockStmt
	KindIfStmt
	KindWhileStmt
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindVarDeclStmt
	KindAssignStmt
	KindExprStmt
	KindStructDefnStmt
	KindFuncDefnStmt

	// Grp

	KindParamGroup
	KindReturnGroup
	KindFieldGroup

	// Program

	KindProgram

	// Error

	KindExpectedTokenErr
	KindUnexpectedTokenErr
	KindScanErr
	KindBubbleErr
	KindIllegalDoStmtErr
	KindIllegalTopLevelStmtErr
	KindChainedAssignErr
	KindInitUnnamedVarErr
	KindInvokeFuncLiteralErr

	kindCount
)

var kindNames = [kindCount]string{
	KindIdentifier:             "Identifier",
	KindIntLiteral:             "IntLiteral",
	KindFloatLiteral:           "FloatLiteral",
	KindBoolLiteral:            "BoolLiteral",
	KindStringLiteral:          "StringLiteral",
	KindBinaryExpr:             "BinaryExpr",
	KindUnaryExpr:              "UnaryExpr",
	KindDerefExpr:              "DerefExpr",
	KindIndexExpr:              "IndexExpr",
	KindMemberExpr:             "MemberExpr",
	KindCallExpr:               "CallExpr",
	KindFuncLiteralExpr:        "FuncLiteralExpr",
	KindBlockStmt:              "BlockStmt",
	KindIfStmt:                 "IfStmt",
	KindWhileStmt:              "WhileStmt",
	KindReturnStmt:             "ReturnStmt",
	KindBreakStmt:              "BreakStmt",
	KindContinueStmt:           "ContinueStmt",
	KindVarDeclStmt:            "VarDeclStmt",
	KindAssignStmt:             "AssignStmt",
	KindExprStmt:               "ExprStmt",
	KindStructDefnStmt:         "StructDefnStmt",
	KindFuncDefnStmt:           "FuncDefnStmt",
	KindParamGroup:             "ParamGroup",
	KindReturnGroup:            "ReturnGroup",
	KindFieldGroup:             "FieldGroup",
	KindProgram:                "Program",
	KindExpectedTokenErr:       "ExpectedTokenErr",
	KindUnexpectedTokenErr:     "UnexpectedTokenErr",
	KindScanErr:                "ScanErr",
	KindBubbleErr:              "BubbleErr",
	KindIllegalDoStmtErr:       "IllegalDoStmtErr",
	KindIllegalTopLevelStmtErr: "IllegalTopLevelStmtErr",
	KindChainedAssignErr:       "ChainedAssignErr",
	KindInitUnnamedVarErr:      "InitUnnamedVarErr",
	KindInvokeFuncLiteralErr:   "InvokeFuncLiteralErr",
}

func (k NodeKind) String() string {
	if k >= 0 && k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

var kindCategory = [kindCount]Category{}

func init() {
	for k := KindIdentifier; k <= KindFuncLiteralExpr; k++ {
		kindCategory[k] = CatExpr
	}
	for k := KindBlockStmt; k <= KindFuncDefnStmt; k++ {
		kindCategory[k] = CatStmt
	}
	for k := KindParamGroup; k <= KindFieldGroup; k++ {
		kindCategory[k] = CatGrp
	}
	kindCategory[KindProgram] = CatProgram
	for k := KindExpectedTokenErr; k <= KindInvokeFuncLiteralErr; k++ {
		kindCategory[k] = CatError
	}
}

// Category reports the NodeCategory a NodeKind belongs to.
func (k NodeKind) Category() Category { return kindCategory[k] }

// Node is the common interface every AST node implements: a stable identity,
// its originating source span, its tagged kind/category, and a debug
// rendering.
type Node interface {
	NodeID() NodeID
	Kind() NodeKind
	Category() Category
	Span() token.Span
	String() string
}

// Base is embedded by every node. It implements the identity/span/kind
// portion of Node; concrete types still implement String() themselves.
type Base struct {
	id   NodeID
	kind NodeKind
	span token.Span
}

func (b *Base) NodeID() NodeID        { return b.id }
func (b *Base) Kind() NodeKind        { return b.kind }
func (b *Base) Category() Category    { return b.kind.Category() }
func (b *Base) Span() token.Span      { return b.span }
func (b *Base) SetSpan(s token.Span)  { b.span = s }

// ExprBase is embedded by every Expr-category node and carries the
// post-resolve evaluated type. The constructors do not set it to
// types.Unresolved: it holds its zero value, types.Void, until the resolve
// pass writes it.
type ExprBase struct {
	Base
	EvalType types.TypeId
}

func (e *ExprBase) SetEvalType(id types.TypeId) { e.EvalType = id }

// Typed returns the evaluated TypeId; implemented via embedding by every
// expression node (through ExprBase) and by ErrorNode (which doubles as an
// Expr in error-recovery positions). It lets callers read an already-
// resolved expression's type without a full type switch over every kind.
type Typed interface {
	EvalTypeOf() types.TypeId
}

func (e *ExprBase) EvalTypeOf() types.TypeId { return e.EvalType }

// DeclBase is embedded by nodes that introduce or inhabit a scope;
// declaration nodes carry a scopeId.
type DeclBase struct {
	Base
	Scope ScopeId
}

// Expr is the marker interface for expression nodes.
type Expr interface {
	Node
	isExpr()
}

// Stmt is the marker interface for statement nodes.
type Stmt interface {
	Node
	isStmt()
}

// Grp is the marker interface for structural group nodes (parameter lists,
// return-type lists, struct field lists).
type Grp interface {
	Node
	isGrp()
}
