package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTableSeedsReservedIds(t *testing.T) {
	tb := NewTable()
	require.Equal(t, "int", tb.Lookup(Int).Name)
	require.Equal(t, "void", tb.Lookup(Void).Name)
	require.Equal(t, "<bubble-error>", tb.Lookup(BubbleErr).Name)
}

func TestInternReturnsSameIdForStructurallyEqualTypes(t *testing.T) {
	tb := NewTable()
	a := tb.Intern(Type{Name: "Point", DefiningScope: 1})
	b := tb.Intern(Type{Name: "Point", DefiningScope: 1})
	require.Equal(t, a, b)
}

func TestInternDistinguishesDefiningScope(t *testing.T) {
	tb := NewTable()
	a := tb.Intern(Type{Name: "Point", DefiningScope: 1})
	b := tb.Intern(Type{Name: "Point", DefiningScope: 2})
	require.NotEqual(t, a, b)
}

func TestInternDistinguishesModifiers(t *testing.T) {
	tb := NewTable()
	base := tb.Intern(Type{Name: "int", DefiningScope: 0})
	ptr := tb.Intern(Type{Name: "int", DefiningScope: 0, Modifiers: []Modifier{{Kind: ModPointer}}})
	arr := tb.Intern(Type{Name: "int", DefiningScope: 0, Modifiers: []Modifier{{Kind: ModArray, ArraySize: 4}}})
	require.NotEqual(t, base, ptr)
	require.NotEqual(t, ptr, arr)
}

func TestInternFunctionSignature(t *testing.T) {
	tb := NewTable()
	sig := Type{IsFunc: true, Func: FunctionSignature{Params: []TypeId{Int, Bool}, Returns: []TypeId{Float}}}
	a := tb.Intern(sig)
	b := tb.Intern(sig)
	require.Equal(t, a, b)

	other := tb.Intern(Type{IsFunc: true, Func: FunctionSignature{Params: []TypeId{Int}, Returns: []TypeId{Float}}})
	require.NotEqual(t, a, other)
}

func TestLookupPanicsOnInvalidId(t *testing.T) {
	tb := NewTable()
	require.Panics(t, func() { tb.Lookup(TypeId(9999)) })
}

func TestTypeEqualsMatchesInternRule(t *testing.T) {
	a := Type{Name: "int"}
	b := Type{Name: "int"}
	require.True(t, a.Equals(b))

	c := Type{Name: "int", Modifiers: []Modifier{{Kind: ModPointer}}}
	require.False(t, a.Equals(c))
}

func TestIsPointerAndIsUnmodified(t *testing.T) {
	ptr := Type{Modifiers: []Modifier{{Kind: ModPointer}}}
	plain := Type{Name: "int"}
	require.True(t, IsPointer(ptr))
	require.False(t, IsPointer(plain))
	require.True(t, IsUnmodified(plain))
	require.False(t, IsUnmodified(ptr))
}

func TestTypeStringRendersModifiersOutermostFirst(t *testing.T) {
	ty := Type{Name: "int", Modifiers: []Modifier{{Kind: ModPointer}, {Kind: ModArray, ArraySize: 3}}}
	require.Equal(t, "^[3]int", ty.String())
}

func TestTypeKindClassification(t *testing.T) {
	require.Equal(t, "named", Type{Name: "int"}.TypeKind())
	require.Equal(t, "pointer", Type{Modifiers: []Modifier{{Kind: ModPointer}}}.TypeKind())
	require.Equal(t, "array", Type{Modifiers: []Modifier{{Kind: ModArray, ArraySize: 2}}}.TypeKind())
	require.Equal(t, "function", Type{IsFunc: true}.TypeKind())
}
