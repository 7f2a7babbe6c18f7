package bytecode

import (
	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/types"
	"github.com/cwbudde/meekc/token"
)

// emitStmt lowers one statement into fn's byte stream via a post-order
// tree walk over statements. Struct/function definitions carry
// no code of their own at the point they're encountered inline: a nested
// FuncDefnStmt was already compiled into its own Function by Emit's
// collectFuncDefns pass, and a StructDefnStmt is purely a compile-time type
// declaration.
func (e *Emitter) emitStmt(fn *Function, s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		for _, stmt := range n.Stmts {
			e.emitStmt(fn, stmt)
		}
	case *ast.IfStmt:
		e.emitIfStmt(fn, n)
	case *ast.WhileStmt:
		e.emitWhileStmt(fn, n)
	case *ast.ReturnStmt:
		e.emitReturnStmt(fn, n)
	case *ast.BreakStmt:
		e.emitBreakStmt(fn, n)
	case *ast.ContinueStmt:
		e.emitContinueStmt(fn, n)
	case *ast.VarDeclStmt:
		e.emitVarDeclStmt(fn, n)
	case *ast.AssignStmt:
		e.emitAssignStmt(fn, n)
	case *ast.ExprStmt:
		e.emitExprStmt(fn, n)
	case *ast.StructDefnStmt, *ast.FuncDefnStmt:
		// Already handled elsewhere; see Emit/collectFuncDefns.
	case *ast.ErrorNode:
		// Emit is only ever run over a program that passed semantic.Resolve
		// with no diagnostics, so a surviving error node should not reach
		// codegen; tolerate it as a no-op rather than panicking mid-build.
	default:
		panic("bytecode: unhandled statement kind")
	}
}

// emitIfStmt lowers `if cond then else?`: emit the condition, a
// placeholder JumpIfFalse, the then-branch, and, when an else branch is
// present, an unconditional jump over it, back-patching the JumpIfFalse
// to land just before the else branch and the unconditional jump to land
// just after it.
func (e *Emitter) emitIfStmt(fn *Function, s *ast.IfStmt) {
	line := lineOf(s)
	falseJumps := e.emitCondFalseJumps(fn, s.Cond, line)
	e.emitStmt(fn, s.Then)
	if s.Else == nil {
		e.backpatchHere(fn, falseJumps)
		return
	}
	endJump := fn.emitJump(OpJump, lastLine(fn))
	e.backpatchHere(fn, falseJumps)
	e.emitStmt(fn, s.Else)
	fn.backpatch(endJump, fn.here())
}

// isShortCircuitCond reports whether cond is headed by && or ||, the only
// shape emitCondFalseJumps lowers through emitBoolJumps to avoid
// materializing an intermediate boolean; any other condition still
// evaluates to a single pushed bool tested by one JumpIfFalse.
func isShortCircuitCond(cond ast.Expr) bool {
	b, ok := cond.(*ast.BinaryExpr)
	return ok && (b.Op == token.AndAnd || b.Op == token.OrOr)
}

// emitCondFalseJumps lowers a branch condition (if/while) to the list of
// not-yet-patched jumps the caller must land on its "false" continuation.
// A &&/|| condition is lowered directly through emitBoolJumps so its
// short-circuit branches never materialize an intermediate 0/1 value; any
// other condition falls back to pushing its bool value and testing it with
// a single JumpIfFalse.
func (e *Emitter) emitCondFalseJumps(fn *Function, cond ast.Expr, line int) []int {
	if isShortCircuitCond(cond) {
		jl := e.emitBoolJumps(fn, cond, line)
		e.backpatchHere(fn, jl.trueJumps)
		return jl.falseJumps
	}
	e.emitValue(fn, cond)
	idx := fn.emitJump(OpJumpIfFalse, line)
	return []int{idx}
}

// emitWhileStmt lowers `while cond body`: the loop's top IP is captured
// before the condition so both the end-of-body backward jump and any
// `continue` can target it directly, while `break` jumps are collected
// and back-patched once the loop's end IP is known.
func (e *Emitter) emitWhileStmt(fn *Function, s *ast.WhileStmt) {
	topIP := fn.here()
	line := lineOf(s)
	falseJumps := e.emitCondFalseJumps(fn, s.Cond, line)

	loop := e.pushLoop(topIP)
	e.emitStmt(fn, s.Body)
	backJump := fn.emitJump(OpJump, lastLine(fn))
	fn.backpatch(backJump, topIP)
	e.popLoop()

	endIP := fn.here()
	for _, idx := range falseJumps {
		fn.backpatch(idx, endIP)
	}
	for _, idx := range loop.breakJumps {
		fn.backpatch(idx, endIP)
	}
}

// emitReturnStmt pushes the return value (if any), closes the current
// function's frame with a matching StackFree, and emits Return.
func (e *Emitter) emitReturnStmt(fn *Function, s *ast.ReturnStmt) {
	line := lineOf(s)
	if s.Value != nil {
		e.emitValue(fn, s.Value)
	}
	if size := e.currentFrameSize(); size > 0 {
		fn.emitStackOp(OpStackFree, size, line)
	}
	fn.emitOp(OpReturn, line)
}

// emitBreakStmt and emitContinueStmt lower to a Jump targeting,
// respectively, a placeholder patched once the enclosing loop's end IP is
// known (break) or the loop's already-known top IP (continue). The
// resolver's breakable-counter check guarantees currentLoop is non-nil for
// any program that reached codegen.
func (e *Emitter) emitBreakStmt(fn *Function, s *ast.BreakStmt) {
	idx := fn.emitJump(OpJump, lineOf(s))
	if loop := e.currentLoop(); loop != nil {
		loop.breakJumps = append(loop.breakJumps, idx)
	}
}

func (e *Emitter) emitContinueStmt(fn *Function, s *ast.ContinueStmt) {
	idx := fn.emitJump(OpJump, lineOf(s))
	if loop := e.currentLoop(); loop != nil {
		fn.backpatch(idx, loop.topIP)
	}
}

func (e *Emitter) emitVarDeclStmt(fn *Function, v *ast.VarDeclStmt) {
	if v.Init == nil {
		return
	}
	line := lineOf(v)
	offset := v.FrameOffset
	e.emitStore(fn, func(extra int) {
		fn.emitImmediate(immediateWidthForSize(PointerWidth), uint64(int64(offset+extra)), line)
	}, v.Type.Resolved, v.Init, line)
}

func (e *Emitter) emitAssignStmt(fn *Function, s *ast.AssignStmt) {
	line := lineOf(s)
	targetType := exprType(s.Target)

	if s.Op == token.Assign {
		e.emitStore(fn, func(extra int) {
			e.pushAddrPlus(fn, s.Target, extra, line)
		}, targetType, s.Value, line)
		return
	}

	size := e.sizeOf(targetType)
	isFloat := targetType == types.Float

	e.pushAddrPlus(fn, s.Target, 0, line) // address kept on the stack for the final Store
	e.pushAddrPlus(fn, s.Target, 0, line) // address consumed by the Load below
	fn.emitOp(loadOpForSize(size), line)
	e.emitValue(fn, s.Value)
	fn.emitOp(compoundBinOp(s.Op, isFloat), line)
	fn.emitOp(storeOpForSize(size), line)
}

func compoundBinOp(op token.Kind, isFloat bool) OpCode {
	switch op {
	case token.PlusEq:
		if isFloat {
			return OpAddFloat64
		}
		return OpAdd64
	case token.MinusEq:
		if isFloat {
			return OpSubFloat64
		}
		return OpSub64
	case token.StarEq:
		if isFloat {
			return OpMulFloat64
		}
		return OpMul64
	case token.SlashEq:
		if isFloat {
			return OpDivFloat64
		}
		return OpDivS64
	case token.PercentEq:
		return OpModS64
	default:
		panic("bytecode: unhandled compound assignment operator")
	}
}

func (e *Emitter) emitExprStmt(fn *Function, s *ast.ExprStmt) {
	line := lineOf(s)
	e.emitValue(fn, s.X)
	if t, ok := s.X.(ast.Typed); !ok || t.EvalTypeOf() != types.Void {
		fn.emitOp(OpPop, line)
	}
}

// pushAddrPlus pushes expr's lvalue address plus a compile-time-known
// extra byte offset, used by emitStore's struct-copy path to walk a
// multi-word value one chunk at a time without re-deriving the base
// address computation logic.
func (e *Emitter) pushAddrPlus(fn *Function, expr ast.Expr, extra int, line int) {
	e.emitAddress(fn, expr)
	if extra != 0 {
		fn.emitImmediate(8, uint64(int64(extra)), line)
		fn.emitOp(OpAdd64, line)
	}
}

// emitStore writes value to the destination pushDst produces, following
// the addressing model "writes are LoadImmediate(address) ; <compute rhs>
// ; Store". A value whose runtime representation is wider than one stack
// slot (a struct or fixed-size array) is copied field-wise through
// emitStructCopy instead of a single Store, provided its source is itself
// addressable; a call result wider than one slot falls back to a single
// truncating Store, a known limitation of multi-slot call returns.
func (e *Emitter) emitStore(fn *Function, pushDst func(extra int), typeID types.TypeId, value ast.Expr, line int) {
	size := e.sizeOf(typeID)
	if size > PointerWidth && isAddressable(value) {
		e.emitStructCopy(fn, pushDst, value, size, line)
		return
	}
	pushDst(0)
	e.emitValue(fn, value)
	fn.emitOp(storeOpForSize(size), line)
}

func isAddressable(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.DerefExpr, *ast.IndexExpr, *ast.MemberExpr:
		return true
	default:
		return false
	}
}

// emitStructCopy copies size bytes from src's address to the address
// pushDst produces, greedily in 8/4/2/1-byte chunks, entirely unrolled at
// compile time since size is always known statically.
func (e *Emitter) emitStructCopy(fn *Function, pushDst func(extra int), src ast.Expr, size int, line int) {
	off := 0
	for _, chunk := range [...]int{8, 4, 2, 1} {
		for size-off >= chunk {
			pushDst(off)
			e.pushAddrPlus(fn, src, off, line)
			fn.emitOp(loadOpForSize(chunk), line)
			fn.emitOp(storeOpForSize(chunk), line)
			off += chunk
		}
	}
}

// frameSize sums a function's parameter and local-variable byte widths —
// params plus every VarDeclStmt reachable through block/if/while nesting,
// stopping at a nested function or struct definition's own boundary — for
// the StackAlloc/StackFree pair bracketing a function body. It mirrors
// internal/semantic's cumulative frame-offset
// bookkeeping (internal/semantic/layout.go) without needing the resolver's
// own (unexported) running cursor.
func (e *Emitter) frameSize(params *ast.ParamGroup, body *ast.BlockStmt) int {
	total := 0
	for _, p := range params.Params {
		total += e.sizeOf(p.Type.Resolved)
	}
	return total + e.stmtsFrameSize(body.Stmts)
}

func (e *Emitter) stmtsFrameSize(stmts []ast.Stmt) int {
	total := 0
	for _, s := range stmts {
		total += e.stmtFrameSize(s)
	}
	return total
}

func (e *Emitter) stmtFrameSize(s ast.Stmt) int {
	switch n := s.(type) {
	case *ast.VarDeclStmt:
		return e.sizeOf(n.Type.Resolved)
	case *ast.BlockStmt:
		return e.stmtsFrameSize(n.Stmts)
	case *ast.IfStmt:
		total := e.stmtFrameSize(n.Then)
		if n.Else != nil {
			total += e.stmtFrameSize(n.Else)
		}
		return total
	case *ast.WhileStmt:
		return e.stmtFrameSize(n.Body)
	default:
		return 0
	}
}
