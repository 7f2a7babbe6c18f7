package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/lexer"
	"github.com/cwbudde/meekc/token"
)

func parse(t *testing.T, src string) (*ast.Program, *Parser, bool) {
	t.Helper()
	return ParseProgram(lexer.New(src))
}

func TestParseProgramVarDeclWithInit(t *testing.T) {
	prog, p, ok := parse(t, "int x = 5;")
	require.True(t, ok)
	require.Empty(t, p.Errors)
	require.Len(t, prog.Stmts, 1)

	v, ok := prog.Stmts[0].(*ast.VarDeclStmt)
	require.True(t, ok)
	require.Equal(t, "x", v.Name)
	require.NotNil(t, v.Init)
}

func TestParseProgramVarDeclWithoutInit(t *testing.T) {
	prog, _, ok := parse(t, "bool flag;")
	require.True(t, ok)
	v := prog.Stmts[0].(*ast.VarDeclStmt)
	require.Nil(t, v.Init)
}

func TestParseProgramFuncDefn(t *testing.T) {
	prog, _, ok := parse(t, "fn add(int a, int b) -> int { return a + b; }")
	require.True(t, ok)
	require.Len(t, prog.Stmts, 1)

	fn, ok := prog.Stmts[0].(*ast.FuncDefnStmt)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params.Params, 2)
	require.Len(t, fn.Returns.Types, 1)

	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, token.Plus, bin.Op)
}

func TestParseProgramStructDefn(t *testing.T) {
	prog, _, ok := parse(t, "struct Point { int x; int y; }")
	require.True(t, ok)
	s, ok := prog.Stmts[0].(*ast.StructDefnStmt)
	require.True(t, ok)
	require.Equal(t, "Point", s.Name)
	require.Len(t, s.Fields.Fields, 2)
}

func TestParseProgramIfElse(t *testing.T) {
	prog, _, ok := parse(t, "fn f() { if true { return; } else { return; } }")
	require.True(t, ok)
	fn := prog.Stmts[0].(*ast.FuncDefnStmt)
	ifStmt, ok := fn.Body.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Then)
	require.NotNil(t, ifStmt.Else)
}

func TestParseProgramWhileWithDoBody(t *testing.T) {
	prog, _, ok := parse(t, "fn f() { while true do break; }")
	require.True(t, ok)
	fn := prog.Stmts[0].(*ast.FuncDefnStmt)
	w, ok := fn.Body.Stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	_, isBreak := w.Body.(*ast.BreakStmt)
	require.True(t, isBreak)
}

func TestParseProgramBinaryPrecedence(t *testing.T) {
	prog, _, ok := parse(t, "fn f() { return 1 + 2 * 3; }")
	require.True(t, ok)
	fn := prog.Stmts[0].(*ast.FuncDefnStmt)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	top := ret.Value.(*ast.BinaryExpr)
	require.Equal(t, token.Plus, top.Op)

	_, leftIsLiteral := top.Left.(*ast.IntLiteral)
	require.True(t, leftIsLiteral)

	right, ok := top.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, token.Star, right.Op)
}

func TestParseProgramMissingSemicolonProducesErrorNode(t *testing.T) {
	_, p, ok := parse(t, "int x = 5")
	require.False(t, ok)
	require.NotEmpty(t, p.Errors)
	require.Equal(t, ast.KindExpectedTokenErr, p.Errors[0].Kind())
}

func TestParseProgramIllegalTopLevelStatement(t *testing.T) {
	_, p, ok := parse(t, "1 + 1;")
	require.False(t, ok)
	require.NotEmpty(t, p.Errors)
	require.Equal(t, ast.KindIllegalTopLevelStmtErr, p.Errors[0].Kind())
}

func TestParseProgramChainedAssignmentIsRejected(t *testing.T) {
	_, p, ok := parse(t, "fn f() { int a; int b; a = b = 1; }")
	require.False(t, ok)
	require.NotEmpty(t, p.Errors)

	found := false
	for _, e := range p.Errors {
		if e.Kind() == ast.KindChainedAssignErr {
			found = true
		}
	}
	require.True(t, found)
}

func TestParseProgramDefinesGlobalScopeVar(t *testing.T) {
	_, p, ok := parse(t, "int x = 1;")
	require.True(t, ok)
	_, found := p.Scopes.GlobalScope().VarsIn("x")[0], true
	require.True(t, found)
	require.Len(t, p.Scopes.GlobalScope().VarsIn("x"), 1)
}
