package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aegis/internal/ast"
	"aegis/internal/diagfmt"
	"aegis/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.py|-",
		Short: "Check that a Python file parses",
		Long: `Parse runs the native parser over a Python file and reports syntax
diagnostics. Exit code is 1 when the file does not parse.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(filePath, g.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		opts := diagfmt.JSONOpts{IncludePositions: true, PathMode: diagfmt.PathModeRelative, Max: g.maxDiagnostics, IncludeNotes: true, IncludeFixes: true}
		if err := diagfmt.JSON(out, result.Bag, result.FileSet, opts); err != nil {
			return err
		}
	} else {
		diagfmt.Pretty(out, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color: g.useColor(cmd), Context: 2, PathMode: diagfmt.PathModeRelative, ShowNotes: true, ShowFixes: true,
		})
		if !g.quiet {
			stmts, defs := countStatements(result.Builder, result.Module)
			fmt.Fprintf(out, "%s: %d statements, %d functions, %d errors\n",
				result.File.Path, stmts, defs, result.Bag.ErrorCount())
		}
	}
	if result.Bag.HasErrors() {
		return silent(fmt.Errorf("%s: %d syntax errors", result.File.Path, result.Bag.ErrorCount()))
	}
	return nil
}

// countStatements counts top-level statements and the functions among them.
func countStatements(b *ast.Builder, mod *ast.Module) (stmts, defs int) {
	if b == nil || mod == nil {
		return 0, 0
	}
	for _, id := range mod.Body {
		stmts++
		if st := b.Stmts.Get(id); st != nil && st.Kind == ast.StmtFunctionDef {
			defs++
		}
	}
	return stmts, defs
}
