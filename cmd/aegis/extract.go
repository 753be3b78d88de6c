package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aegis/internal/casefmt"
	"aegis/internal/driver"
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [flags] file.py|-",
		Short: "Extract the signature of the first function in a Python file",
		Long: `Extract parses a Python file (or stdin with "-") and prints the name and
typed parameter list of its first function definition.`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	addExtractFlags(cmd)
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
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
	st, err := resolveSettings(cmd, manifestStart(filePath))
	if err != nil {
		return err
	}

	res, err := driver.Extract(cmd.Context(), filePath, extractOptions(cmd, st, g))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if g.timings {
		driver.AppendTimingDiagnostic(res.Bag, "extract", filePath, res.Timing)
	}
	printDiagnostics(cmd, g, res.Bag, res.FileSet)
	if res.Signature == nil {
		return silent(res.Err)
	}

	switch format {
	case "json":
		return casefmt.SignatureJSON(cmd.OutOrStdout(), res.Signature)
	default:
		return casefmt.SignaturePretty(cmd.OutOrStdout(), res.Signature, casefmt.PrettyOpts{Color: g.useColor(cmd)})
	}
}

// silent marks err as already shown through diagnostics;
// errors.Is still sees the original cause.
func silent(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", errSilent, err)
}
