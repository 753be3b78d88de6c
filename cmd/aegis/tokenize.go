package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aegis/internal/diag"
	"aegis/internal/diagfmt"
	"aegis/internal/driver"
	"aegis/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.py",
		Short: "Tokenize a Python source file",
		Long:  `Tokenize breaks a Python source file into tokens, including synthesized NEWLINE/INDENT/DEDENT`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
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

	result, err := driver.Tokenize(filePath, g.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Print diagnostics to stderr, if any
	printDiagnostics(cmd, g, result.Bag, result.FileSet)

	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	default:
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	}
}

// printDiagnostics prints a non-empty bag to stderr.
func printDiagnostics(cmd *cobra.Command, g globalOptions, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	if g.quiet && !bag.HasErrors() {
		return
	}
	opts := diagfmt.PrettyOpts{
		Color:     g.useColorErr(cmd),
		Context:   2,
		ShowNotes: true,
		ShowFixes: true,
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, opts)
}
