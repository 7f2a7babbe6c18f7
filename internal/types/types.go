// Package types implements Meek's type table: a structurally-interned,
// append-only store of Type values keyed by TypeId. The pending-resolution
// queue lives in internal/ast (TypePendingResolution).
package types

import "fmt"

// TypeId identifies an interned Type. Reserved ids are stable across every
// Table instance so callers can compare against them without a lookup.
type TypeId int

const (
	Void TypeId = iota
	Int
	Float
	Bool
	String

	// Unresolved marks a named type reference that has not yet been looked
	// up against the symbol table.
	Unresolved

	// UnresolvedHasCandidates marks an identifier that matched more than one
	// candidate (overloads, possibly a variable), left for the surrounding
	// call to disambiguate.
	UnresolvedHasCandidates

	// TypeErr marks an expression whose type could not be determined
	// because of an earlier, already-reported error.
	TypeErr

	// BubbleErr marks a type that exists only to swallow a cascading error
	// without re-reporting it at every use site.
	BubbleErr

	firstInternedID
)

// ModifierKind distinguishes the two type modifiers Meek supports, applied
// outermost-first.
type ModifierKind int

const (
	ModPointer ModifierKind = iota
	ModArray
)

// Modifier is one entry in a Type's modifier list: either a bare pointer
// sigil or a fixed-size array dimension.
type Modifier struct {
	Kind      ModifierKind
	ArraySize int // only meaningful when Kind == ModArray
}

// FunctionSignature is the shape of a function-typed Type: parameter types
// and (per spec's data model) a slice of return types. The parser accepts
// a comma-separated return list of any length; the resolver checks return
// statements and call results against the first entry only.
type FunctionSignature struct {
	Params  []TypeId
	Returns []TypeId
}

// Type is either a named base type (possibly decorated with pointer/array
// modifiers) or a function signature.
type Type struct {
	Modifiers []Modifier

	IsFunc bool
	Func   FunctionSignature

	// Name is the base type's identifier lexeme for a non-function type.
	// Empty until resolved.
	Name string
	// DefiningScope is the scope in which Name was declared, set
	// unconditionally at construction.
	DefiningScope int
}

// String renders the type using Meek's own surface syntax: modifiers
// outermost-first, then the base name or a function signature.
func (t Type) String() string {
	s := ""
	for _, m := range t.Modifiers {
		switch m.Kind {
		case ModPointer:
			s += "^"
		case ModArray:
			s += fmt.Sprintf("[%d]", m.ArraySize)
		}
	}
	if t.IsFunc {
		s += "fn("
		for i, p := range t.Func.Params {
			if i > 0 {
				s += ", "
			}
			s += fmt.Sprintf("%d", p)
		}
		s += ")"
		if len(t.Func.Returns) > 0 {
			s += " ->"
			for _, r := range t.Func.Returns {
				s += fmt.Sprintf(" %d", r)
			}
		}
		return s
	}
	return s + t.Name
}

// TypeKind names the coarse category of the type, for diagnostics.
func (t Type) TypeKind() string {
	if t.IsFunc {
		return "function"
	}
	if len(t.Modifiers) == 0 {
		return "named"
	}
	switch t.Modifiers[0].Kind {
	case ModPointer:
		return "pointer"
	case ModArray:
		return "array"
	default:
		return "named"
	}
}

// Equals reports structural equality: same modifier list, then same
// function signature or same base name.
func (t Type) Equals(o Type) bool {
	if t.IsFunc != o.IsFunc {
		return false
	}
	if len(t.Modifiers) != len(o.Modifiers) {
		return false
	}
	for i := range t.Modifiers {
		if t.Modifiers[i] != o.Modifiers[i] {
			return false
		}
	}
	if t.IsFunc {
		return signaturesEqual(t.Func, o.Func)
	}
	return t.Name == o.Name && t.DefiningScope == o.DefiningScope
}

func signaturesEqual(a, b FunctionSignature) bool {
	if len(a.Params) != len(b.Params) || len(a.Returns) != len(b.Returns) {
		return false
	}
	for i := range a.Params {
		if a.Params[i] != b.Params[i] {
			return false
		}
	}
	for i := range a.Returns {
		if a.Returns[i] != b.Returns[i] {
			return false
		}
	}
	return true
}

// IsPointer reports whether the type's outermost modifier is a pointer.
func IsPointer(t Type) bool {
	return len(t.Modifiers) > 0 && t.Modifiers[0].Kind == ModPointer
}

// IsUnmodified reports whether the type carries no pointer/array modifiers.
func IsUnmodified(t Type) bool { return len(t.Modifiers) == 0 }
