package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"aegis/internal/driver"
	"aegis/internal/extract"
	"aegis/internal/gen"
)

// runSettings are the effective run settings: aegis.toml with flags on top.
type runSettings struct {
	Gen          gen.Config
	Seed         uint64
	Engine       string
	IncludeAsync bool
	NoCache      bool
	// Manifest is the aegis.toml that was used, empty if none was found.
	Manifest string
}

func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().String("engine", extract.EngineNative, "extraction engine (native|treesitter)")
	cmd.Flags().Bool("include-async", false, "accept async def as the first function")
	cmd.Flags().Bool("no-cache", false, "bypass the signature cache")
}

func addGenerateFlags(cmd *cobra.Command) {
	def := gen.DefaultConfig()
	cmd.Flags().IntP("count", "n", def.Count, "number of test cases per function")
	cmd.Flags().Int64("int-min", def.IntMin, "lower bound for generated ints")
	cmd.Flags().Int64("int-max", def.IntMax, "upper bound for generated ints")
	cmd.Flags().Float64("float-min", def.FloatMin, "lower bound for generated floats")
	cmd.Flags().Float64("float-max", def.FloatMax, "upper bound for generated floats")
	cmd.Flags().Int("str-len", def.StringLength, "length of generated strings")
	cmd.Flags().Uint64("seed", 0, "random seed (0 = random)")
}

// manifestStart is the directory where the aegis.toml lookup begins.
func manifestStart(input string) string {
	if input == "" || input == driver.StdinPath {
		return "."
	}
	return filepath.Dir(input)
}

// resolveSettings loads aegis.toml when present and applies explicitly set flags.
func resolveSettings(cmd *cobra.Command, startDir string) (runSettings, error) {
	cfg := defaultProjectConfig()
	st := runSettings{}
	manifest, ok, err := loadProjectManifest(startDir)
	if err != nil {
		return st, err
	}
	if ok {
		cfg = manifest.Config
		st.Manifest = manifest.Path
	}
	st.Gen = cfg.Generate.Config
	st.Seed = cfg.Generate.Seed
	st.Engine = cfg.Extract.Engine
	st.IncludeAsync = cfg.Extract.IncludeAsync

	if err := applyFlagOverrides(cmd, &st); err != nil {
		return st, err
	}
	if _, err := extract.EngineFor(st.Engine); err != nil {
		return st, err
	}
	return st, nil
}

// applyFlagOverrides copies only flags the user set explicitly.
func applyFlagOverrides(cmd *cobra.Command, st *runSettings) error {
	flags := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err != nil || flags.Lookup(name) == nil || !flags.Changed(name) {
			return
		}
		if aerr := apply(); aerr != nil {
			err = fmt.Errorf("failed to get %s flag: %w", name, aerr)
		}
	}

	set("engine", func() (e error) { st.Engine, e = flags.GetString("engine"); return })
	set("include-async", func() (e error) { st.IncludeAsync, e = flags.GetBool("include-async"); return })
	set("count", func() (e error) { st.Gen.Count, e = flags.GetInt("count"); return })
	set("int-min", func() (e error) { st.Gen.IntMin, e = flags.GetInt64("int-min"); return })
	set("int-max", func() (e error) { st.Gen.IntMax, e = flags.GetInt64("int-max"); return })
	set("float-min", func() (e error) { st.Gen.FloatMin, e = flags.GetFloat64("float-min"); return })
	set("float-max", func() (e error) { st.Gen.FloatMax, e = flags.GetFloat64("float-max"); return })
	set("str-len", func() (e error) { st.Gen.StringLength, e = flags.GetInt("str-len"); return })
	set("seed", func() (e error) { st.Seed, e = flags.GetUint64("seed"); return })
	if err != nil {
		return err
	}
	if flags.Lookup("no-cache") != nil {
		if st.NoCache, err = flags.GetBool("no-cache"); err != nil {
			return fmt.Errorf("failed to get no-cache flag: %w", err)
		}
	}
	return nil
}

// extractOptions builds driver.ExtractOptions. The cache is opened here
// and is disabled if that fails.
func extractOptions(cmd *cobra.Command, st runSettings, g globalOptions) driver.ExtractOptions {
	lg := loggerFrom(cmd)
	opts := driver.ExtractOptions{
		Extract: extract.Options{
			Engine:       st.Engine,
			IncludeAsync: st.IncludeAsync,
		},
		MaxDiagnostics: g.maxDiagnostics,
		Logger:         lg,
	}
	if !st.NoCache {
		cache, err := driver.OpenSignatureCache("aegis")
		if err != nil {
			lg.Warn("signature cache disabled", "err", err)
		} else {
			opts.Cache = cache
		}
	}
	lg.Debug("extraction settings", "engine", st.Engine, "include_async", st.IncludeAsync, "cache", opts.Cache != nil, "manifest", st.Manifest)
	return opts
}
