package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/meekc/internal/types"
	"github.com/cwbudde/meekc/token"
)

// ErrorNode is the single struct backing every Error-category NodeKind,
// standing in as a tree member in place of exception-based error
// handling. Which fields are meaningful is determined by Kind(); callers
// pattern-match on Kind() the way they would on a tagged variant.
//
// An ErrorNode satisfies both Expr and Stmt so it can stand in wherever a
// production failed, preserving whatever children were successfully
// parsed around the failure.
type ErrorNode struct {
	Base
	Children []Node

	// EvalType lets an ErrorNode stand in for a failed expression:
	// downstream nodes typed in terms of an error evaluate to BubbleError
	// rather than cascading a fresh diagnostic.
	EvalType types.TypeId

	// ExpectedTokenErr / UnexpectedTokenErr
	Expected []token.Kind
	Got      token.Token

	// ScanErr
	ScanError token.ScanErrorKind

	// BubbleErr: the inner (already-recorded or itself-bubbled) error being
	// carried upward without a new user-visible diagnostic.
	Inner Node

	// Message is a human-readable summary used by kinds that don't need a
	// token/scan payload (IllegalDoStmtErr, IllegalTopLevelStmtErr,
	// ChainedAssignErr, InitUnnamedVarErr, InvokeFuncLiteralErr).
	Message string
}

func (*ErrorNode) isExpr() {}
func (*ErrorNode) isStmt() {}

func (e *ErrorNode) SetEvalType(id types.TypeId)  { e.EvalType = id }
func (e *ErrorNode) EvalTypeOf() types.TypeId     { return e.EvalType }

func (e *ErrorNode) String() string {
	if e.Message != "" {
		return fmt.Sprintf("<%s: %s>", e.Kind(), e.Message)
	}
	return fmt.Sprintf("<%s>", e.Kind())
}

func newErrorBase(a *Arena, kind NodeKind, span token.Span) Base {
	return Base{id: a.nextNodeID(), kind: kind, span: span}
}

// NewExpectedTokenErr records that one of `expected` was required but `got`
// was seen instead.
func NewExpectedTokenErr(a *Arena, span token.Span, expected []token.Kind, got token.Token, children ...Node) *ErrorNode {
	n := &ErrorNode{Base: newErrorBase(a, KindExpectedTokenErr, span), Expected: expected, Got: got, Children: children}
	n.Message = expectedMessage(expected, got)
	a.register(n)
	return n
}

func expectedMessage(expected []token.Kind, got token.Token) string {
	parts := make([]string, len(expected))
	for i, k := range expected {
		parts[i] = k.String()
	}
	return fmt.Sprintf("expected %s, got %s", strings.Join(parts, " or "), got.Kind)
}

// NewUnexpectedTokenErr records a token that could not start any valid
// production in the current context.
func NewUnexpectedTokenErr(a *Arena, span token.Span, got token.Token, children ...Node) *ErrorNode {
	n := &ErrorNode{Base: newErrorBase(a, KindUnexpectedTokenErr, span), Got: got, Children: children}
	n.Message = fmt.Sprintf("unexpected token %s", got.Kind)
	a.register(n)
	return n
}

// NewScanErr surfaces a scan-error token (produced by the external
// scanner) as a parser-visible error node.
func NewScanErr(a *Arena, span token.Span, kind token.ScanErrorKind, lexeme string) *ErrorNode {
	n := &ErrorNode{Base: newErrorBase(a, KindScanErr, span), ScanError: kind}
	n.Message = fmt.Sprintf("scan error %v near %q", kind, lexeme)
	a.register(n)
	return n
}

// NewBubbleErr wraps inner, an already-diagnosed (or itself bubbling)
// error, so a parent production can return upward without emitting a
// second, duplicate diagnostic.
func NewBubbleErr(a *Arena, span token.Span, inner Node, children ...Node) *ErrorNode {
	n := &ErrorNode{Base: newErrorBase(a, KindBubbleErr, span), Inner: inner, Children: children}
	a.register(n)
	return n
}

// NewIllegalDoStmtErr wraps a statement that is not legal as the single
// statement following a bare `do`.
func NewIllegalDoStmtErr(a *Arena, span token.Span, wrapped Node) *ErrorNode {
	n := &ErrorNode{Base: newErrorBase(a, KindIllegalDoStmtErr, span), Children: []Node{wrapped}}
	n.Message = fmt.Sprintf("%s is not a legal `do` statement", wrapped.Kind())
	a.register(n)
	return n
}

// NewIllegalTopLevelStmtErr wraps a statement that is not legal at top
// level (only struct/fn definitions and variable declarations are).
// wrappedDescr distinguishes the wrapped kind in the message text without
// introducing a new AST error kind.
func NewIllegalTopLevelStmtErr(a *Arena, span token.Span, wrapped Node, wrappedDescr string) *ErrorNode {
	n := &ErrorNode{Base: newErrorBase(a, KindIllegalTopLevelStmtErr, span), Children: []Node{wrapped}}
	if wrappedDescr != "" {
		n.Message = wrappedDescr + " is not legal at top level"
	} else {
		n.Message = fmt.Sprintf("%s is not legal at top level", wrapped.Kind())
	}
	a.register(n)
	return n
}

// NewChainedAssignErr records `a = b = c` style chained assignment, a
// deliberately specific diagnostic rather than a generic unexpected-token.
func NewChainedAssignErr(a *Arena, span token.Span, first *AssignStmt) *ErrorNode {
	n := &ErrorNode{Base: newErrorBase(a, KindChainedAssignErr, span), Children: []Node{first}}
	n.Message = "assignment cannot be chained"
	a.register(n)
	return n
}

// NewInitUnnamedVarErr records a declaration whose naming is illegal: the
// parser builds it both for a variable declaration that has no name and for
// a name written right after `fn` in a function literal.
func NewInitUnnamedVarErr(a *Arena, span token.Span, children ...Node) *ErrorNode {
	n := &ErrorNode{Base: newErrorBase(a, KindInitUnnamedVarErr, span), Children: children}
	n.Message = "only `fn` definitions may declare a name here"
	a.register(n)
	return n
}

// NewInvokeFuncLiteralErr records a direct invocation of a function
// literal at its definition site: fn(...){...}(args).
func NewInvokeFuncLiteralErr(a *Arena, span token.Span, literal *FuncLiteralExpr, args []Expr) *ErrorNode {
	children := make([]Node, 0, len(args)+1)
	children = append(children, literal)
	for _, arg := range args {
		children = append(children, arg)
	}
	n := &ErrorNode{Base: newErrorBase(a, KindInvokeFuncLiteralErr, span), Children: children}
	n.Message = "function literals cannot be invoked directly at their definition site"
	a.register(n)
	return n
}
