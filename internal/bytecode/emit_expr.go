package bytecode

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/scope"
	"github.com/cwbudde/meekc/internal/types"
	"github.com/cwbudde/meekc/token"
)

// lineOf reports n's source byte offset, the same unit
// internal/lexer.LineIndex maps back to line/column for diagnostics; the
// emitter stays independent of the line index itself.
func lineOf(n ast.Node) int { return n.Span().Start }

// emitValue pushes e's runtime value onto the stack.
func (e *Emitter) emitValue(fn *Function, expr ast.Expr) {
	line := lineOf(expr)
	switch n := expr.(type) {
	case *ast.IntLiteral:
		fn.emitImmediate(8, uint64(n.Value), line)
	case *ast.FloatLiteral:
		fn.emitImmediate(8, math.Float64bits(n.Value), line)
	case *ast.BoolLiteral:
		v := uint64(0)
		if n.Value {
			v = 1
		}
		fn.emitImmediate(1, v, line)
	case *ast.StringLiteral:
		idx := e.internString(n.Value)
		fn.emitImmediate(immediateWidthForSize(PointerWidth), uint64(idx), line)
	case *ast.Identifier:
		e.emitIdentifierValue(fn, n, line)
	case *ast.BinaryExpr:
		e.emitBinaryValue(fn, n, line)
	case *ast.UnaryExpr:
		e.emitUnaryValue(fn, n, line)
	case *ast.DerefExpr, *ast.IndexExpr, *ast.MemberExpr:
		e.emitAddress(fn, expr)
		fn.emitOp(loadOpForSize(e.sizeOf(exprType(expr))), line)
	case *ast.CallExpr:
		e.emitCallExpr(fn, n, line)
	case *ast.FuncLiteralExpr:
		idx := e.emitLiteralFunc(n)
		fn.emitImmediate(immediateWidthForSize(PointerWidth), uint64(idx), line)
	default:
		panic("bytecode: unhandled expression kind in value position")
	}
}

func exprType(e ast.Expr) types.TypeId {
	if t, ok := e.(ast.Typed); ok {
		return t.EvalTypeOf()
	}
	return types.TypeErr
}

func (e *Emitter) emitIdentifierValue(fn *Function, id *ast.Identifier, line int) {
	switch id.RefKind {
	case ast.RefFunc:
		idx := e.reserveFunction(id.Func.Name)
		fn.emitImmediate(immediateWidthForSize(PointerWidth), uint64(idx), line)
	default:
		e.emitAddress(fn, id)
		fn.emitOp(loadOpForSize(e.sizeOf(id.EvalType)), line)
	}
}

// emitAddress pushes the frame-relative (or computed) address of an
// lvalue-capable expression.
func (e *Emitter) emitAddress(fn *Function, expr ast.Expr) {
	line := lineOf(expr)
	switch n := expr.(type) {
	case *ast.Identifier:
		offset := varOffset(n.Var)
		fn.emitImmediate(immediateWidthForSize(PointerWidth), uint64(int64(offset)), line)
	case *ast.DerefExpr:
		// The address a pointer dereference addresses *is* the pointer's own
		// runtime value, so this is the one address computation that reads a
		// value rather than recursing into another emitAddress.
		e.emitValue(fn, n.Operand)
	case *ast.MemberExpr:
		e.emitAddress(fn, n.Target)
		fieldOffset := memberOffset(e, n)
		fn.emitImmediate(immediateWidthForSize(PointerWidth), uint64(int64(fieldOffset)), line)
		fn.emitOp(OpAdd64, line)
	case *ast.IndexExpr:
		e.emitAddress(fn, n.Array)
		e.emitValue(fn, n.Index)
		elemSize := e.sizeOf(n.EvalType)
		fn.emitImmediate(8, uint64(int64(elemSize)), line)
		fn.emitOp(OpMul64, line)
		fn.emitOp(OpAdd64, line)
	default:
		panic("bytecode: expression is not addressable")
	}
}

func varOffset(v ast.VarBinding) int {
	switch b := v.(type) {
	case *ast.VarDeclStmt:
		return b.FrameOffset
	case *ast.Param:
		return b.FrameOffset
	case *ast.Field:
		return b.ByteOffset
	default:
		return 0
	}
}

// memberOffset resolves m.Member's byte offset within its target struct
// type by re-running the same (scope, name) lookup the resolver used to
// type the member expression (mirrors internal/semantic/layout.go's
// structSize traversal).
func memberOffset(e *Emitter, m *ast.MemberExpr) int {
	t := e.table.Lookup(exprType(m.Target))
	owner := e.scopes.ByID(ast.ScopeId(t.DefiningScope))
	decl, ok := scope.LookupType(owner, t.Name, scope.OnlyThisScope)
	if !ok {
		return 0
	}
	body := e.scopes.ByID(decl.Scope)
	binding, ok := scope.LookupVar(body, m.Member, scope.OnlyThisScope)
	if !ok {
		return 0
	}
	field, ok := binding.(*ast.Field)
	if !ok {
		return 0
	}
	return field.ByteOffset
}

func (e *Emitter) emitBinaryValue(fn *Function, b *ast.BinaryExpr, line int) {
	switch b.Op {
	case token.AndAnd, token.OrOr:
		jl := e.emitBoolJumps(fn, b, line)
		e.materializeBool(fn, jl, line)
		return
	}

	operandType := exprType(b.Left)
	isFloat := operandType == types.Float

	e.emitValue(fn, b.Left)
	e.emitValue(fn, b.Right)

	switch b.Op {
	case token.Plus:
		if isFloat {
			fn.emitOp(OpAddFloat64, line)
		} else {
			fn.emitOp(OpAdd64, line)
		}
	case token.Minus:
		if isFloat {
			fn.emitOp(OpSubFloat64, line)
		} else {
			fn.emitOp(OpSub64, line)
		}
	case token.Star:
		if isFloat {
			fn.emitOp(OpMulFloat64, line)
		} else {
			fn.emitOp(OpMul64, line)
		}
	case token.Slash:
		if isFloat {
			fn.emitOp(OpDivFloat64, line)
		} else {
			fn.emitOp(OpDivS64, line)
		}
	case token.Percent:
		fn.emitOp(OpModS64, line)
	case token.EqEq:
		fn.emitOp(OpEqual, line)
	case token.BangEq:
		fn.emitOp(OpNotEqual, line)
	case token.Less:
		fn.emitOp(OpLess, line)
	case token.LessEq:
		fn.emitOp(OpLessEqual, line)
	case token.Greater:
		fn.emitOp(OpGreater, line)
	case token.GreaterEq:
		fn.emitOp(OpGreaterEqual, line)
	case token.HashAnd:
		fn.emitOp(OpAnd, line)
	case token.HashOr:
		fn.emitOp(OpOr, line)
	case token.HashXor:
		fn.emitOp(OpXor, line)
	default:
		panic("bytecode: unhandled binary operator")
	}
}

func (e *Emitter) emitUnaryValue(fn *Function, u *ast.UnaryExpr, line int) {
	switch u.Op {
	case token.Caret:
		// Address-of: the operand must itself be addressable.
		e.emitAddress(fn, u.Operand)
	case token.Minus:
		e.emitValue(fn, u.Operand)
		if exprType(u.Operand) == types.Float {
			fn.emitOp(OpNegateFloat64, line)
		} else {
			fn.emitOp(OpNegate64, line)
		}
	case token.Plus:
		e.emitValue(fn, u.Operand)
	case token.Bang:
		e.emitValue(fn, u.Operand)
		fn.emitOp(OpNot, line)
	default:
		panic("bytecode: unhandled unary operator")
	}
}

func (e *Emitter) emitCallExpr(fn *Function, c *ast.CallExpr, line int) {
	for _, a := range c.Args {
		e.emitValue(fn, a)
	}
	if id, ok := c.Callee.(*ast.Identifier); ok && id.RefKind == ast.RefFunc {
		idx := e.reserveFunction(id.Func.Name)
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], idx)
		fn.emit(OpCall, b[:], line)
		return
	}
	e.emitValue(fn, c.Callee)
	fn.emitOp(OpCallIndirect, line)
}

// emitLiteralFunc compiles a function literal into its own Function, under
// a synthetic name, and returns its func-table index.
func (e *Emitter) emitLiteralFunc(f *ast.FuncLiteralExpr) uint16 {
	name := e.anonymousFuncName()
	idx := e.reserveFunction(name)
	fn := newFunction(name)
	e.funcs[name] = fn

	size := e.frameSize(f.Params, f.Body)
	e.enterFrame(fn, size, lineOf(f.Body))
	e.emitStmt(fn, f.Body)
	if len(fn.Code) == 0 || OpCode(fn.Code[len(fn.Code)-1]) != OpReturn {
		e.leaveFrame(fn, lastLine(fn))
	} else {
		e.popFrameSize()
	}
	return idx
}

// jumpLists is the classic true/false back-patch-list pair used to lower
// short-circuit && / || without materializing an intermediate boolean in a
// jump context.
type jumpLists struct {
	trueJumps  []int
	falseJumps []int
}

func (e *Emitter) backpatchHere(fn *Function, idxs []int) {
	target := fn.here()
	for _, idx := range idxs {
		fn.backpatch(idx, target)
	}
}

// emitBoolJumps emits cond so that control either falls through to the
// "true" continuation (whose byte index the caller fills in via
// trueJumps) or jumps away (falseJumps), never pushing an intermediate
// boolean for && / || subexpressions.
func (e *Emitter) emitBoolJumps(fn *Function, cond ast.Expr, line int) jumpLists {
	if b, ok := cond.(*ast.BinaryExpr); ok {
		switch b.Op {
		case token.AndAnd:
			left := e.emitBoolJumps(fn, b.Left, line)
			e.backpatchHere(fn, left.trueJumps)
			right := e.emitBoolJumps(fn, b.Right, line)
			return jumpLists{trueJumps: right.trueJumps, falseJumps: append(left.falseJumps, right.falseJumps...)}
		case token.OrOr:
			left := e.emitBoolJumps(fn, b.Left, line)
			e.backpatchHere(fn, left.falseJumps)
			right := e.emitBoolJumps(fn, b.Right, line)
			return jumpLists{trueJumps: append(left.trueJumps, right.trueJumps...), falseJumps: right.falseJumps}
		}
	}
	e.emitValue(fn, cond)
	falseIdx := fn.emitJump(OpJumpIfFalse, line)
	trueIdx := fn.emitJump(OpJump, line)
	return jumpLists{trueJumps: []int{trueIdx}, falseJumps: []int{falseIdx}}
}

// materializeBool turns a jump-list pair back into a pushed 0/1 value, for
// && / || used outside a direct jump context (e.g. assigned to a variable).
func (e *Emitter) materializeBool(fn *Function, jl jumpLists, line int) {
	e.backpatchHere(fn, jl.trueJumps)
	fn.emitImmediate(1, 1, line)
	endJump := fn.emitJump(OpJump, line)
	e.backpatchHere(fn, jl.falseJumps)
	fn.emitImmediate(1, 0, line)
	e.backpatchHere(fn, []int{endJump})
}
