package scope

import (
	"hash/fnv"

	"golang.org/x/text/unicode/norm"
)

// ScopedIdentifier is a (lexeme view, defining ScopeId, precomputed hash)
// triple. The type table does not use it (it keys named types by their
// canonical string, name plus defining scope id). Equality is
// lexeme + scope id; the lexeme is NFC-normalized before hashing so
// visually identical identifiers entered with different Unicode
// compositions hash (and compare) the same way.
type ScopedIdentifier struct {
	Lexeme string
	Scope  ScopeId
	Hash   uint64
}

// NewScopedIdentifier builds a ScopedIdentifier, normalizing lexeme to NFC
// before computing its hash.
func NewScopedIdentifier(lexeme string, scope ScopeId) ScopedIdentifier {
	normalized := norm.NFC.String(lexeme)
	h := fnv.New64a()
	_, _ = h.Write([]byte(normalized))
	var scopeBytes [8]byte
	for i := range scopeBytes {
		scopeBytes[i] = byte(scope >> (8 * i))
	}
	_, _ = h.Write(scopeBytes[:])
	return ScopedIdentifier{Lexeme: normalized, Scope: scope, Hash: h.Sum64()}
}

// Equal reports whether two ScopedIdentifiers name the same (lexeme, scope)
// pair.
func (si ScopedIdentifier) Equal(o ScopedIdentifier) bool {
	return si.Scope == o.Scope && si.Lexeme == o.Lexeme
}
