// Package cmd implements meekc's single-verb CLI: compile one Meek source
// file through the full scan -> parse -> resolve-types -> resolve -> emit
// pipeline and report success or failure.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/meekc/internal/ast"
	"github.com/cwbudde/meekc/internal/bytecode"
	"github.com/cwbudde/meekc/internal/diag"
	"github.com/cwbudde/meekc/internal/lexer"
	"github.com/cwbudde/meekc/internal/parser"
	"github.com/cwbudde/meekc/internal/semantic"
)

var (
	// Version is set by build flags.
	Version = "0.1.0-dev"

	dumpBytecode bool
)

var rootCmd = &cobra.Command{
	Use:           "meekc <path>",
	Short:         "Compile a Meek source file to bytecode",
	Args:          cobra.ExactArgs(1),
	Version:       Version,
	SilenceUsage:  true,
	RunE:          compileFile,
}

func init() {
	rootCmd.Flags().BoolVar(&dumpBytecode, "dump-bytecode", false, "print disassembled bytecode to stderr after a successful compile")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func compileFile(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)
	lines := lexer.NewLineIndex(source)

	l := lexer.New(source)
	program, p, ok := parser.ParseProgram(l)
	if !ok {
		reportParseErrors(p.Errors, filename, lines)
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors))
	}

	typeDiags := semantic.ResolveTypes(p.Types, p.Scopes, p.Pending)
	if len(typeDiags) > 0 {
		reportDiagnostics(typeDiags, filename, lines)
		return fmt.Errorf("type resolution failed with %d error(s)", len(typeDiags))
	}

	resolveDiags := semantic.Resolve(program, p.Scopes, p.Types)
	if len(resolveDiags) > 0 {
		reportDiagnostics(resolveDiags, filename, lines)
		return fmt.Errorf("semantic analysis failed with %d error(s)", len(resolveDiags))
	}

	prog := bytecode.Emit(program, p.Types, p.Scopes)

	if dumpBytecode {
		fmt.Fprintf(os.Stderr, "== %s ==\n", filename)
		bytecode.NewDisassembler(prog, os.Stderr).Disassemble()
	}

	return nil
}

func reportParseErrors(errs []*ast.ErrorNode, filename string, lines *lexer.LineIndex) {
	ds := make([]diag.Diagnostic, len(errs))
	for i, e := range errs {
		ds[i] = diag.FromErrorNode(e)
	}
	reportDiagnostics(ds, filename, lines)
}

func reportDiagnostics(ds []diag.Diagnostic, filename string, lines *lexer.LineIndex) {
	diag.Resolve(ds, lines.Position)
	diag.SortInSourceOrder(ds)
	for _, d := range ds {
		fmt.Fprintln(os.Stderr, diag.Format(d, filename))
	}
}
