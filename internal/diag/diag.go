// Package diag implements Meek's diagnostic formatting: the compact
// "<file>:<line>:<col>: <message>" form used for the CLI report, plus a
// source+caret renderer (FormatWithContext) that the CLI does not call.
package diag

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/cwbudde/meekc/token"
)

// Severity distinguishes a hard error (the non-zero CLI exit code cases:
// scan/parse/unresolved-type/resolve errors) from advisory output. Meek's
// front end currently only ever emits errors.
type Severity int

const (
	SeverityError Severity = iota
)

// Diagnostic is one reported problem: a position and a message. Position is
// computed once, lazily, by the reporting phase via a line index rather
// than carried on every token.
type Diagnostic struct {
	Pos      token.Position
	Span     token.Span
	Message  string
	Severity Severity
}

// Format renders d in the single-line form:
// "<file>:<line>:<col>: <message>".
func Format(d Diagnostic, file string) string {
	return fmt.Sprintf("%s:%d:%d: %s", file, d.Pos.Line, d.Pos.Column, d.Message)
}

// FormatWithContext renders d with a source line and caret indicator
// beneath the offending column. The CLI report uses Format only; this
// renderer is exercised by the package's own tests.
func FormatWithContext(d Diagnostic, file, source string) string {
	var sb strings.Builder
	sb.WriteString(Format(d, file))
	sb.WriteString("\n")

	lines := strings.Split(source, "\n")
	if d.Pos.Line >= 1 && d.Pos.Line <= len(lines) {
		line := lines[d.Pos.Line-1]
		sb.WriteString(line)
		sb.WriteString("\n")
		col := d.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", col-1))
		sb.WriteString("^")
	}
	return sb.String()
}

// SortInSourceOrder sorts diagnostics by byte offset, then message, so a
// report is reproducible and reads top-to-bottom through the source
// file.
func SortInSourceOrder(ds []Diagnostic) {
	slices.SortStableFunc(ds, func(a, b Diagnostic) int {
		if a.Span.Start != b.Span.Start {
			return a.Span.Start - b.Span.Start
		}
		return strings.Compare(a.Message, b.Message)
	})
}

// New is a small constructor convenience used wherever a diagnostic's
// position is already known.
func New(pos token.Position, span token.Span, format string, args ...any) Diagnostic {
	return Diagnostic{Pos: pos, Span: span, Message: fmt.Sprintf(format, args...)}
}

// AtSpan builds a Diagnostic from a span alone, leaving Pos at its zero
// value. internal/semantic has no line index to convert byte offsets with,
// so it reports in terms of spans; the CLI driver fills in Pos via Resolve
// once it has the source file's line index.
func AtSpan(span token.Span, format string, args ...any) Diagnostic {
	return Diagnostic{Span: span, Message: fmt.Sprintf(format, args...)}
}

// Resolve fills in every diagnostic's Pos field from its Span's start
// offset, using pos (typically a lexer.LineIndex's Position method).
func Resolve(ds []Diagnostic, pos func(offset int) token.Position) {
	for i := range ds {
		ds[i].Pos = pos(ds[i].Span.Start)
	}
}
