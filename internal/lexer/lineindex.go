package lexer

import (
	"unicode/utf8"

	"github.com/cwbudde/meekc/token"
)

// LineIndex translates byte offsets into the source into 1-based
// line/column positions, counted in runes (column is a rune count, not a
// byte offset or display width).
type LineIndex struct {
	src        string
	lineStarts []int // byte offset of the first byte of each line
}

// NewLineIndex scans src once and records the byte offset of every line
// start, so Position lookups afterward are O(log n).
func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i, b := range []byte(src) {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, lineStarts: starts}
}

// Position converts a byte offset into a 1-based line/column pair.
func (li *LineIndex) Position(offset int) token.Position {
	line := 0
	lo, hi := 0, len(li.lineStarts)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		if li.lineStarts[mid] <= offset {
			line = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	lineStart := li.lineStarts[line]
	col := 1
	for i := lineStart; i < offset && i < len(li.src); {
		col++
		_, size := utf8.DecodeRuneInString(li.src[i:])
		if size == 0 {
			size = 1
		}
		i += size
	}
	return token.Position{Line: line + 1, Column: col}
}
