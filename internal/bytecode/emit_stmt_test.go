package bytecode

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/scope"
	"github.com/cwbudde/meekc/internal/types"
	"github.com/cwbudde/meekc/token"
)

func newTestEmitter() *Emitter {
	return &Emitter{
		table:      types.NewTable(),
		scopes:     scope.NewStack(),
		funcs:      make(map[string]*Function),
		funcIndex:  make(map[string]uint16),
		stringPool: make(map[string]int),
	}
}

func intLit(v int64) *ast.IntLiteral {
	n := &ast.IntLiteral{Value: v}
	n.EvalType = types.Int
	return n
}

func TestEmitReturnStmtWithValueFreesFrame(t *testing.T) {
	e := newTestEmitter()
	fn := newFunction("f")
	e.frameSizes = []int{16}

	e.emitReturnStmt(fn, &ast.ReturnStmt{Value: intLit(1)})

	require.Equal(t, OpReturn, OpCode(fn.Code[len(fn.Code)-1]))
	require.Contains(t, fn.Code, byte(OpStackFree))
}

func TestEmitReturnStmtWithoutFrameSkipsStackFree(t *testing.T) {
	e := newTestEmitter()
	fn := newFunction("f")
	e.frameSizes = []int{0}

	e.emitReturnStmt(fn, &ast.ReturnStmt{})

	require.Equal(t, []byte{byte(OpReturn)}, fn.Code)
}

func TestEmitIfStmtWithoutElseBackpatchesFalseJumpPastBody(t *testing.T) {
	e := newTestEmitter()
	fn := newFunction("f")

	ifStmt := &ast.IfStmt{
		Cond: boolLit(true),
		Then: &ast.ExprStmt{X: intLit(1)},
	}
	e.emitIfStmt(fn, ifStmt)

	// Layout: LoadImmediate8(bool, 2 bytes) + JumpIfFalse(3) + body.
	require.Equal(t, OpJumpIfFalse, OpCode(fn.Code[2]))
	require.Equal(t, jumpTarget(fn, 2), len(fn.Code))
}

func TestEmitIfStmtWithElseJumpsPastElseBranch(t *testing.T) {
	e := newTestEmitter()
	fn := newFunction("f")

	ifStmt := &ast.IfStmt{
		Cond: boolLit(true),
		Then: &ast.ExprStmt{X: intLit(1)},
		Else: &ast.ExprStmt{X: intLit(2)},
	}
	e.emitIfStmt(fn, ifStmt)

	// falseJump (emitted right after the condition, at byte 2) must land on
	// the Else branch's first instruction, and the unconditional jump at the
	// end of Then must land past the whole statement.
	falseJumpIdx := 2
	thenEnd := jumpTarget(fn, falseJumpIdx)
	endJumpIdx := thenEnd - 3
	require.Equal(t, OpJump, OpCode(fn.Code[endJumpIdx]))
	require.Equal(t, len(fn.Code), jumpTarget(fn, endJumpIdx))
}

func TestEmitIfStmtShortCircuitAndDoesNotMaterializeBool(t *testing.T) {
	e := newTestEmitter()
	fn := newFunction("f")

	ifStmt := &ast.IfStmt{
		Cond: &ast.BinaryExpr{Op: token.AndAnd, Left: boolLit(true), Right: boolLit(false)},
		Then: &ast.ExprStmt{X: intLit(1)},
	}
	e.emitIfStmt(fn, ifStmt)

	// A short-circuit && condition lowers straight to conditional jumps on
	// its operands; jumps (JumpIfFalse and Jump, 3 bytes each, counted
	// together) must appear at least twice, and LoadImmediate8 (2 bytes)
	// exactly twice (the two bool literals), never a third time for a
	// materialized intermediate value.
	loadCount, jifCount := 0, 0
	for i := 0; i < len(fn.Code); {
		op := OpCode(fn.Code[i])
		switch op {
		case OpLoadImmediate8:
			loadCount++
			i += 2
		case OpJumpIfFalse, OpJump:
			jifCount++
			i += 3
		default:
			i++
		}
	}
	require.Equal(t, 2, loadCount)
	require.GreaterOrEqual(t, jifCount, 2)
}

func TestEmitWhileStmtBackpatchesBreakToLoopEnd(t *testing.T) {
	e := newTestEmitter()
	fn := newFunction("f")

	whileStmt := &ast.WhileStmt{
		Cond: boolLit(true),
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{&ast.BreakStmt{}}},
	}
	e.emitWhileStmt(fn, whileStmt)

	// break's Jump is the instruction right after the condition's
	// JumpIfFalse (2-byte LoadImmediate8 + 3-byte JumpIfFalse = 5 bytes in).
	breakJumpIdx := 5
	require.Equal(t, OpJump, OpCode(fn.Code[breakJumpIdx]))
	require.Equal(t, len(fn.Code), jumpTarget(fn, breakJumpIdx))
}

func TestEmitWhileStmtContinueJumpsToTop(t *testing.T) {
	e := newTestEmitter()
	fn := newFunction("f")

	whileStmt := &ast.WhileStmt{
		Cond: boolLit(true),
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{&ast.ContinueStmt{}}},
	}
	e.emitWhileStmt(fn, whileStmt)

	continueJumpIdx := 5
	require.Equal(t, OpJump, OpCode(fn.Code[continueJumpIdx]))
	require.Equal(t, 0, jumpTarget(fn, continueJumpIdx))
}

// jumpTarget decodes the signed 16-bit relative offset of the jump
// instruction at byteIndex and resolves it to an absolute code offset.
func jumpTarget(fn *Function, byteIndex int) int {
	rel := int16(binary.LittleEndian.Uint16(fn.Code[byteIndex+1 : byteIndex+3]))
	return byteIndex + 3 + int(rel)
}

func TestEmitVarDeclStmtSkipsUninitialized(t *testing.T) {
	e := newTestEmitter()
	fn := newFunction("f")
	v := &ast.VarDeclStmt{Type: &ast.TypeExpr{Resolved: types.Int}}
	e.emitVarDeclStmt(fn, v)
	require.Empty(t, fn.Code)
}

func TestEmitVarDeclStmtStoresInitValue(t *testing.T) {
	e := newTestEmitter()
	fn := newFunction("f")
	v := &ast.VarDeclStmt{Type: &ast.TypeExpr{Resolved: types.Int}, Init: intLit(5), FrameOffset: 8}
	e.emitVarDeclStmt(fn, v)

	require.Equal(t, byte(OpLoadImmediate64), fn.Code[0]) // address immediate
	require.Contains(t, fn.Code, byte(OpStore64))
}

func identVar(offset int) *ast.Identifier {
	param := &ast.Param{Name: "x", FrameOffset: offset}
	id := &ast.Identifier{Name: "x", RefKind: ast.RefVar, Var: param}
	id.EvalType = types.Int
	return id
}

func TestEmitAssignStmtSimpleStoresValue(t *testing.T) {
	e := newTestEmitter()
	fn := newFunction("f")

	e.emitAssignStmt(fn, &ast.AssignStmt{Op: token.Assign, Target: identVar(4), Value: intLit(9)})

	require.Equal(t, byte(OpLoadImmediate64), fn.Code[0]) // address of x
	require.Contains(t, fn.Code, byte(OpStore64))
}

func TestEmitAssignStmtCompoundLoadsModifiesStores(t *testing.T) {
	e := newTestEmitter()
	fn := newFunction("f")

	e.emitAssignStmt(fn, &ast.AssignStmt{Op: token.PlusEq, Target: identVar(4), Value: intLit(1)})

	require.Contains(t, fn.Code, byte(OpLoad64))
	require.Contains(t, fn.Code, byte(OpAdd64))
	require.Equal(t, OpStore64, OpCode(fn.Code[len(fn.Code)-1]))
}

func TestCompoundBinOpSelectsIntegerAndFloatVariants(t *testing.T) {
	require.Equal(t, OpAdd64, compoundBinOp(token.PlusEq, false))
	require.Equal(t, OpAddFloat64, compoundBinOp(token.PlusEq, true))
	require.Equal(t, OpModS64, compoundBinOp(token.PercentEq, false))
	require.Equal(t, OpDivFloat64, compoundBinOp(token.SlashEq, true))
}

func TestIsAddressableRecognizesLvalueKinds(t *testing.T) {
	require.True(t, isAddressable(&ast.Identifier{}))
	require.True(t, isAddressable(&ast.MemberExpr{}))
	require.False(t, isAddressable(&ast.IntLiteral{}))
}

func TestStmtFrameSizeSumsBothIfBranches(t *testing.T) {
	e := newTestEmitter()
	ifStmt := &ast.IfStmt{
		Then: &ast.VarDeclStmt{Type: &ast.TypeExpr{Resolved: types.Int}},
		Else: &ast.VarDeclStmt{Type: &ast.TypeExpr{Resolved: types.Float}},
	}
	require.Equal(t, 16, e.stmtFrameSize(ifStmt))
}

func TestStmtsFrameSizeRecursesIntoNestedBlocks(t *testing.T) {
	e := newTestEmitter()
	block := &ast.BlockStmt{Stmts: []ast.Stmt{
		&ast.VarDeclStmt{Type: &ast.TypeExpr{Resolved: types.Bool}},
		&ast.WhileStmt{Body: &ast.VarDeclStmt{Type: &ast.TypeExpr{Resolved: types.Int}}},
	}}
	require.Equal(t, 9, e.stmtsFrameSize(block.Stmts))
}

func boolLit(v bool) *ast.BoolLiteral {
	n := &ast.BoolLiteral{Value: v}
	n.EvalType = types.Bool
	return n
}
