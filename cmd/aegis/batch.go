package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"aegis/internal/casefmt"
	"aegis/internal/pipeline"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [flags] [dir]",
		Short: "Generate test inputs for every Python file in a directory",
		Long: `Batch walks a directory for *.py files and runs extraction and generation
for each of them in parallel. Every file gets its own seed derived from the base
seed, so the output is reproducible with --seed regardless of scheduling.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBatch,
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().String("out", "", "write one JSON document per file into this directory")
	cmd.Flags().String("format", "pretty", "stdout format when --out is not set (pretty|json)")
	addExtractFlags(cmd)
	addGenerateFlags(cmd)
	return cmd
}

// batchEntry is one element of batch JSON output.
type batchEntry struct {
	File  string `json:"file"`
	Error string `json:"error,omitempty"`
	*casefmt.Document
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 && args[0] != "" {
		dir = args[0]
	}
	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	} else if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}

	flags := cmd.Flags()
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	outDir, err := flags.GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	format, err := flags.GetString("format")
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
	st, err := resolveSettings(cmd, dir)
	if err != nil {
		return err
	}

	req := &pipeline.Request{
		Dir:     dir,
		Jobs:    jobs,
		Config:  st.Gen,
		Seed:    st.Seed,
		Extract: extractOptions(cmd, st, g),
		Logger:  loggerFrom(cmd),
	}

	var res *pipeline.Result
	if shouldUseTUI(mode, cmd.OutOrStdout()) {
		files, lerr := pipeline.ListPyFiles(dir)
		if lerr != nil {
			return fmt.Errorf("list %s: %w", dir, lerr)
		}
		display := make([]string, len(files))
		for i, f := range files {
			display[i] = pipeline.DisplayPath(f, dir)
		}
		res, err = runBatchWithUI(cmd.Context(), cmd.OutOrStdout(), "aegis batch", display, req)
	} else {
		res, err = pipeline.Run(cmd.Context(), req)
	}
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	if outDir != "" {
		written, werr := writeBatchDocuments(outDir, res)
		if werr != nil {
			return werr
		}
		if !g.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d files to %s\n", written, outDir)
		}
	} else if err := printBatch(cmd, g, format, res); err != nil {
		return err
	}

	ok, noDef, failed := res.Counts()
	if !g.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "batch: %d ok, %d without definition, %d failed (seed %d)\n", ok, noDef, failed, res.Seed)
	}
	if g.timings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(res.Files))
	}
	return nil
}

func printBatch(cmd *cobra.Command, g globalOptions, format string, res *pipeline.Result) error {
	out := cmd.OutOrStdout()
	if format == "json" {
		entries := make([]batchEntry, 0, len(res.Files))
		for i := range res.Files {
			entries = append(entries, newBatchEntry(&res.Files[i]))
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	popts := casefmt.PrettyOpts{Color: g.useColor(cmd), MaxValueWidth: 60}
	for i := range res.Files {
		fr := &res.Files[i]
		fmt.Fprintf(out, "== %s\n", fr.Display)
		switch {
		case fr.Err != nil:
			fmt.Fprintf(out, "  error: %v\n", fr.Err)
		case fr.Result.Signature == nil:
			printDiagnostics(cmd, g, fr.Result.Bag, fr.Result.FileSet)
			fmt.Fprintf(out, "  %v\n", fr.Result.Err)
		default:
			doc := casefmt.NewDocument(fr.Result.Signature, fr.Result.Seed, fr.Result.Cases)
			if err := casefmt.CasesPretty(out, doc, popts); err != nil {
				return err
			}
		}
	}
	return nil
}

func newBatchEntry(fr *pipeline.FileResult) batchEntry {
	entry := batchEntry{File: fr.Display}
	switch {
	case fr.Err != nil:
		entry.Error = fr.Err.Error()
	case fr.Result.Signature == nil:
		entry.Error = fr.Result.Err.Error()
	default:
		doc := casefmt.NewDocument(fr.Result.Signature, fr.Result.Seed, fr.Result.Cases)
		entry.Document = &doc
	}
	return entry
}

// writeBatchDocuments writes <out>/<file>.json for each file with a signature.
func writeBatchDocuments(outDir string, res *pipeline.Result) (int, error) {
	written := 0
	for i := range res.Files {
		fr := &res.Files[i]
		if fr.Err != nil || fr.Result == nil || fr.Result.Signature == nil {
			continue
		}
		target := filepath.Join(outDir, filepath.FromSlash(strings.TrimSuffix(fr.Display, ".py")+".json"))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, fmt.Errorf("failed to create %q: %w", filepath.Dir(target), err)
		}
		doc := casefmt.NewDocument(fr.Result.Signature, fr.Result.Seed, fr.Result.Cases)
		if err := writeDocument(target, doc); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func writeDocument(path string, doc casefmt.Document) (err error) {
	f, err := os.Create(path) // #nosec G304 -- path is built from --out
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := casefmt.CasesJSON(f, doc); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}
