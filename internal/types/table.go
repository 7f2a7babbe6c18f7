package types

import (
	"fmt"
	"strings"

	"github.com/dolthub/swiss"
)

// Table is the append-only, structurally-interned store of Type values.
// Two structurally equal Type values are always assigned the same TypeId
// (the "interning rule"), so TypeId equality stands in for Type.Equals
// everywhere downstream.
type Table struct {
	entries []Type
	byKey   *swiss.Map[string, TypeId]
}

// NewTable returns a Table pre-seeded with the reserved ids (Void through
// BubbleErr) so callers can use the package constants immediately.
func NewTable() *Table {
	t := &Table{
		entries: make([]Type, firstInternedID),
		byKey:   swiss.NewMap[string, TypeId](64),
	}
	t.entries[Void] = Type{Name: "void"}
	t.entries[Int] = Type{Name: "int"}
	t.entries[Float] = Type{Name: "float"}
	t.entries[Bool] = Type{Name: "bool"}
	t.entries[String] = Type{Name: "string"}
	t.entries[Unresolved] = Type{Name: "<unresolved>"}
	t.entries[UnresolvedHasCandidates] = Type{Name: "<unresolved-candidates>"}
	t.entries[TypeErr] = Type{Name: "<type-error>"}
	t.entries[BubbleErr] = Type{Name: "<bubble-error>"}
	for id := TypeId(0); id < firstInternedID; id++ {
		t.byKey.Put(canonicalKey(t.entries[id]), id)
	}
	return t
}

// Intern returns the TypeId for typ, allocating a new entry only if no
// structurally-equal Type has been interned before.
func (t *Table) Intern(typ Type) TypeId {
	key := canonicalKey(typ)
	if id, ok := t.byKey.Get(key); ok {
		return id
	}
	id := TypeId(len(t.entries))
	t.entries = append(t.entries, typ)
	t.byKey.Put(key, id)
	return id
}

// Lookup returns the Type registered under id. It panics on an out-of-range
// id, which indicates an internal compiler error (a TypeId manufactured
// without going through Intern).
func (t *Table) Lookup(id TypeId) Type {
	if int(id) < 0 || int(id) >= len(t.entries) {
		panic(fmt.Sprintf("internal error: invalid TypeId %d", id))
	}
	return t.entries[id]
}

// canonicalKey produces a stable string encoding of a Type's structure so
// it can be used as a hash-map key; two Types with the same canonicalKey
// are Equals.
func canonicalKey(t Type) string {
	var b strings.Builder
	for _, m := range t.Modifiers {
		switch m.Kind {
		case ModPointer:
			b.WriteString("^")
		case ModArray:
			fmt.Fprintf(&b, "[%d]", m.ArraySize)
		}
	}
	if t.IsFunc {
		b.WriteString("fn(")
		for i, p := range t.Func.Params {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, "%d", p)
		}
		b.WriteString(")->")
		for i, r := range t.Func.Returns {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, "%d", r)
		}
		return b.String()
	}
	fmt.Fprintf(&b, "name:%s@%d", t.Name, t.DefiningScope)
	return b.String()
}
