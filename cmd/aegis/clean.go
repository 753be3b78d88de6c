package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aegis/internal/driver"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the signature cache",
		Long:  "Remove cached signatures stored under $XDG_CACHE_HOME/aegis.",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}
}

func runClean(cmd *cobra.Command, _ []string) error {
	dir, err := driver.CacheDir("aegis")
	if err != nil {
		return fmt.Errorf("failed to resolve cache directory: %w", err)
	}
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if !g.quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "cache directory not found")
			}
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}
	cache, err := driver.NewSignatureCache(dir)
	if err != nil {
		return err
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove cache: %w", err)
	}
	loggerFrom(cmd).Debug("signature cache removed", "dir", cache.Dir())
	if !g.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", dir)
	}
	return nil
}
