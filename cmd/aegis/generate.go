package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aegis/internal/casefmt"
	"aegis/internal/driver"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [flags] file.py|-",
		Short: "Generate random test inputs for the first function in a Python file",
		Long: `Generate extracts the first function signature and synthesizes random
inputs for every parameter according to its annotated type. Settings come from
the nearest aegis.toml, explicit flags override them.`,
		Args: cobra.RangeArgs(0, 1),
		RunE: runGenerate,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().String("params", "", "JSON file with a parameter list, skips extraction")
	addExtractFlags(cmd)
	addGenerateFlags(cmd)
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	paramsPath, err := cmd.Flags().GetString("params")
	if err != nil {
		return fmt.Errorf("failed to get params flag: %w", err)
	}
	if len(args) == 0 && paramsPath == "" {
		return fmt.Errorf("expected a source file (or --params)")
	}
	filePath := ""
	if len(args) == 1 {
		filePath = args[0]
	}
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}

	start := manifestStart(filePath)
	if filePath == "" {
		start = manifestStart(paramsPath)
	}
	st, err := resolveSettings(cmd, start)
	if err != nil {
		return err
	}

	opts := driver.GenerateOptions{Seed: st.Seed}
	if paramsPath != "" {
		if opts.Params, err = driver.LoadParams(paramsPath); err != nil {
			return err
		}
		opts.Logger = loggerFrom(cmd)
	} else {
		opts.ExtractOptions = extractOptions(cmd, st, g)
	}

	res, err := driver.Generate(cmd.Context(), filePath, st.Gen, opts)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	if g.timings && res.Bag != nil {
		driver.AppendTimingDiagnostic(res.Bag, "generate", filePath, res.Timing)
	}
	printDiagnostics(cmd, g, res.Bag, res.FileSet)
	if res.Signature == nil {
		return silent(res.Err)
	}

	doc := casefmt.NewDocument(res.Signature, res.Seed, res.Cases)
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return casefmt.CasesJSON(out, doc)
	case "msgpack":
		return casefmt.CasesMsgpack(out, doc)
	default:
		popts := casefmt.PrettyOpts{Color: g.useColor(cmd), MaxValueWidth: 60}
		if !g.quiet && res.Signature.Name != "" {
			if err := casefmt.SignaturePretty(out, res.Signature, popts); err != nil {
				return err
			}
		}
		return casefmt.CasesPretty(out, doc, popts)
	}
}
