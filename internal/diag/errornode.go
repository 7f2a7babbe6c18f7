package diag

import (
	"fmt"
	"strings"

	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/token"
)

var scanErrorMessages = map[token.ScanErrorKind]string{
	token.ScanErrInvalidCharacter:        "invalid character",
	token.ScanErrFloatMultipleDecimals:   "float literal has multiple decimal points",
	token.ScanErrIntLiteralOutOfRange:    "integer literal out of range",
	token.ScanErrFloatLiteralOutOfRange:  "float literal out of range",
	token.ScanErrUnterminatedString:      "unterminated string literal",
	token.ScanErrUnterminatedBlockComment: "unterminated block comment",
}

// FromErrorNode renders e as a single-line diagnostic message, the CLI's
// bridge between the parser's structured error nodes and the plain
// Diagnostic stream semantic.ResolveTypes/Resolve already produce.
func FromErrorNode(e *ast.ErrorNode) Diagnostic {
	return AtSpan(e.Span(), errorNodeMessage(e))
}

func errorNodeMessage(e *ast.ErrorNode) string {
	switch e.Kind() {
	case ast.KindExpectedTokenErr:
		want := make([]string, len(e.Expected))
		for i, k := range e.Expected {
			want[i] = k.String()
		}
		return fmt.Sprintf("expected %s, got %s", strings.Join(want, " or "), e.Got.Kind)
	case ast.KindUnexpectedTokenErr:
		return fmt.Sprintf("unexpected token %s", e.Got.Kind)
	case ast.KindScanErr:
		if msg, ok := scanErrorMessages[e.ScanError]; ok {
			return msg
		}
		return "invalid token"
	case ast.KindBubbleErr:
		if inner, ok := e.Inner.(*ast.ErrorNode); ok {
			return errorNodeMessage(inner)
		}
		return "error in nested expression"
	case ast.KindIllegalDoStmtErr:
		return "statement not allowed as the body of a do clause"
	case ast.KindIllegalTopLevelStmtErr:
		if e.Message != "" {
			return e.Message
		}
		return "statement not allowed at top level"
	case ast.KindChainedAssignErr:
		return "chained assignment is not allowed"
	case ast.KindInitUnnamedVarErr:
		return "variable declaration is missing a name"
	case ast.KindInvokeFuncLiteralErr:
		return "cannot call a function literal directly at its definition"
	default:
		if e.Message != "" {
			return e.Message
		}
		return "syntax error"
	}
}
