package scope

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/meekc/internal/ast"
)

func TestNewStackSeedsBuiltinAndGlobal(t *testing.T) {
	s := NewStack()
	require.Equal(t, Builtin, s.BuiltinScope().ID())
	require.Equal(t, Global, s.GlobalScope().ID())
	require.Equal(t, s.GlobalScope(), s.Current())
}

func TestStackPushNestsUnderCurrent(t *testing.T) {
	s := NewStack()
	global := s.Current()
	inner := s.Push()
	require.Equal(t, global, inner.Parent())
	require.Equal(t, inner, s.Current())

	s.Pop()
	require.Equal(t, global, s.Current())
}

func TestStackByIDRoundTrips(t *testing.T) {
	s := NewStack()
	inner := s.Push()
	require.Equal(t, inner, s.ByID(inner.ID()))
}

func TestDefineVarAndLookupVarWalksParents(t *testing.T) {
	s := NewStack()
	param := &ast.Param{Name: "x", VarSeqId: 0}
	s.GlobalScope().DefineVar("x", param)

	inner := s.Push()
	got, ok := LookupVar(inner, "x", WalkParents)
	require.True(t, ok)
	require.Equal(t, ast.VarBinding(param), got)

	_, ok = LookupVar(inner, "x", OnlyThisScope)
	require.False(t, ok)
}

func TestLookupVarMissingReportsNotFound(t *testing.T) {
	s := NewStack()
	_, ok := LookupVar(s.Current(), "missing", WalkParents)
	require.False(t, ok)
}

func TestLookupFuncAccumulatesOverloadsOutermostLast(t *testing.T) {
	s := NewStack()
	outer := &ast.FuncDefnStmt{Name: "f"}
	s.GlobalScope().DefineFunc("f", outer)

	inner := s.Push()
	innerFn := &ast.FuncDefnStmt{Name: "f"}
	inner.DefineFunc("f", innerFn)

	overloads := LookupFunc(inner, "f")
	require.Equal(t, []*ast.FuncDefnStmt{innerFn, outer}, overloads)
}

func TestDefineStructAndLookupType(t *testing.T) {
	s := NewStack()
	decl := &ast.StructDefnStmt{Name: "Point"}
	s.GlobalScope().DefineStruct("Point", decl)

	inner := s.Push()
	got, ok := LookupType(inner, "Point", WalkParents)
	require.True(t, ok)
	require.Equal(t, decl, got)
}

func TestEachVarNameVisitsOwnBindingsOnly(t *testing.T) {
	s := NewStack()
	s.GlobalScope().DefineVar("a", &ast.Param{Name: "a"})
	s.GlobalScope().DefineVar("a", &ast.Param{Name: "a"})

	count := 0
	s.GlobalScope().EachVarName(func(name string, bindings []ast.VarBinding) {
		count++
		require.Equal(t, "a", name)
		require.Len(t, bindings, 2)
	})
	require.Equal(t, 1, count)
}
