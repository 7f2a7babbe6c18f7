package bytecode

import (
	"strconv"

	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/scope"
	"github.com/cwbudde/meekc/internal/types"
)

// loopCtx is the loop-specific context kept on the emitter's loop stack:
// the IP a `continue` jumps back to, plus the list of not-yet-patched
// `break` jumps waiting for the loop's end IP.
type loopCtx struct {
	topIP      int
	breakJumps []int
}

// Emitter walks a fully resolved Program and lowers it to one
// bytecode.Function per named or literal function, maintaining a
// loop-context stack for break/continue back-patching.
type Emitter struct {
	table  *types.Table
	scopes *scope.Stack

	funcs     map[string]*Function
	funcIndex map[string]uint16
	order     []string

	strings    []string
	stringPool map[string]int

	loops      []*loopCtx
	litCount   int
	frameSizes []int
}

// Program is the emitter's output: every compiled function plus the
// interned string constant pool referenced by LoadImmediatePointer
// instructions that load a string value. Concrete VM execution is out of
// scope, so meekc resolves string representation to a simple append-only
// pool rather than leaving string literals unencodable.
type Program struct {
	Functions []*Function
	// FuncIndex maps a function's emitted name to its position in
	// Functions, the 2-byte operand OpCall reads.
	FuncIndex map[string]uint16
	Strings   []string
}

// Emit lowers root into a Program. root must already have passed
// semantic.ResolveTypes and semantic.Resolve with no errors; Emit does not
// re-validate types, it trusts the decorations the resolver left behind.
func Emit(root *ast.Program, table *types.Table, scopes *scope.Stack) *Program {
	e := &Emitter{
		table:      table,
		scopes:     scopes,
		funcs:      make(map[string]*Function),
		funcIndex:  make(map[string]uint16),
		stringPool: make(map[string]int),
	}

	funcDefns := collectFuncDefns(root.Stmts)
	for _, fn := range funcDefns {
		e.reserveFunction(fn.Name)
	}

	var initStmts []ast.Stmt
	for _, s := range root.Stmts {
		if v, ok := s.(*ast.VarDeclStmt); ok && v.Init != nil {
			initStmts = append(initStmts, v)
		}
	}
	if len(initStmts) > 0 {
		e.emitNamedFunction("$init", initStmts)
	}

	for _, fn := range funcDefns {
		e.emitFuncDefn(fn)
	}

	out := &Program{FuncIndex: e.funcIndex, Strings: e.strings}
	for _, name := range e.order {
		out.Functions = append(out.Functions, e.funcs[name])
	}
	return out
}

// collectFuncDefns walks stmts in source order, recursing into block/if/
// while bodies and (since Meek's grammar permits nested function
// definitions, ModeStmt imposing no declaration restriction) into a
// function's own body, so a function nested anywhere still gets its own
// Function/func-table slot. Struct bodies hold no statements, so there is
// nothing to recurse into there.
func collectFuncDefns(stmts []ast.Stmt) []*ast.FuncDefnStmt {
	var out []*ast.FuncDefnStmt
	var walk func(s ast.Stmt)
	walk = func(s ast.Stmt) {
		switch n := s.(type) {
		case *ast.FuncDefnStmt:
			out = append(out, n)
			walk(n.Body)
		case *ast.BlockStmt:
			for _, c := range n.Stmts {
				walk(c)
			}
		case *ast.IfStmt:
			walk(n.Then)
			if n.Else != nil {
				walk(n.Else)
			}
		case *ast.WhileStmt:
			walk(n.Body)
		}
	}
	for _, s := range stmts {
		walk(s)
	}
	return out
}

func (e *Emitter) reserveFunction(name string) uint16 {
	if idx, ok := e.funcIndex[name]; ok {
		return idx
	}
	idx := uint16(len(e.order))
	e.funcIndex[name] = idx
	e.order = append(e.order, name)
	return idx
}

func (e *Emitter) internString(s string) int {
	if idx, ok := e.stringPool[s]; ok {
		return idx
	}
	idx := len(e.strings)
	e.strings = append(e.strings, s)
	e.stringPool[s] = idx
	return idx
}

func (e *Emitter) emitNamedFunction(name string, stmts []ast.Stmt) *Function {
	e.reserveFunction(name)
	fn := newFunction(name)
	e.funcs[name] = fn

	size := e.stmtsFrameSize(stmts)
	e.enterFrame(fn, size, 0)
	for _, s := range stmts {
		e.emitStmt(fn, s)
	}
	e.leaveFrame(fn, lastLine(fn))
	return fn
}

// emitFuncDefn lowers a named function definition into its own Function,
// bracketing its body with StackAlloc/StackFree (stack frames are
// opened/closed with StackAlloc n/StackFree n) and backstopping a
// trailing implicit return for a body that falls off the end without one.
func (e *Emitter) emitFuncDefn(f *ast.FuncDefnStmt) *Function {
	e.reserveFunction(f.Name)
	fn := newFunction(f.Name)
	e.funcs[f.Name] = fn

	size := e.frameSize(f.Params, f.Body)
	e.enterFrame(fn, size, lineOf(f.Body))
	e.emitStmt(fn, f.Body)
	if len(fn.Code) == 0 || OpCode(fn.Code[len(fn.Code)-1]) != OpReturn {
		e.leaveFrame(fn, lastLine(fn))
	} else {
		e.popFrameSize()
	}
	return fn
}

// enterFrame pushes size as the current function's running frame size and
// emits the opening StackAlloc, matching the resolver's offset-0 start for
// every function body.
func (e *Emitter) enterFrame(fn *Function, size, line int) {
	e.frameSizes = append(e.frameSizes, size)
	if size > 0 {
		fn.emitStackOp(OpStackAlloc, size, line)
	}
}

// leaveFrame emits the closing StackFree for the current function (mirrors
// a function body falling off its end without an explicit return) and pops
// the frame-size stack; emitReturnStmt does the StackFree+pop for an
// explicit `return` itself.
func (e *Emitter) leaveFrame(fn *Function, line int) {
	if size := e.currentFrameSize(); size > 0 {
		fn.emitStackOp(OpStackFree, size, line)
	}
	e.popFrameSize()
	fn.emitOp(OpReturn, line)
}

func (e *Emitter) popFrameSize() { e.frameSizes = e.frameSizes[:len(e.frameSizes)-1] }

func (e *Emitter) currentFrameSize() int {
	if len(e.frameSizes) == 0 {
		return 0
	}
	return e.frameSizes[len(e.frameSizes)-1]
}

// anonymousFuncName assigns a stable, never-reused synthetic name to a
// function literal so it can occupy its own Function/func-table slot
// alongside named definitions.
func (e *Emitter) anonymousFuncName() string {
	e.litCount++
	return "$lit" + strconv.Itoa(e.litCount)
}

func lastLine(fn *Function) int {
	if len(fn.Lines) == 0 {
		return 0
	}
	return fn.Lines[len(fn.Lines)-1]
}

func (e *Emitter) pushLoop(topIP int) *loopCtx {
	l := &loopCtx{topIP: topIP}
	e.loops = append(e.loops, l)
	return l
}

func (e *Emitter) popLoop() { e.loops = e.loops[:len(e.loops)-1] }

func (e *Emitter) currentLoop() *loopCtx {
	if len(e.loops) == 0 {
		return nil
	}
	return e.loops[len(e.loops)-1]
}
