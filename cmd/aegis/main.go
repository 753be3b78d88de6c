package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"aegis/internal/extract"
	"aegis/internal/prof"
	"aegis/internal/version"
)

// Process exit codes.
const (
	exitOK    = 0
	exitError = 1
	// exitNoDefinition: the input has no function (or does not parse).
	exitNoDefinition = 2
)

// cliState is per-invocation state that outlives a single command.
type cliState struct {
	profiling *prof.Session
}

// newRootCmd builds the command tree. Each call gets fresh flags,
// so tests can run commands independently.
func newRootCmd(state *cliState) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aegis",
		Short: "Python signature extractor and test input generator",
		Long: `Aegis reads Python source, extracts the signature of the first function
definition and synthesizes random test inputs that respect its parameter types.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: state.setup,
	}

	// Global flags
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "emit logs as JSON")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write runtime trace to file")

	rootCmd.AddCommand(
		newTokenizeCmd(),
		newParseCmd(),
		newExtractCmd(),
		newGenerateCmd(),
		newBatchCmd(),
		newInitCmd(),
		newCleanCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// run executes the CLI and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	state := &cliState{}
	rootCmd := newRootCmd(state)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if perr := state.profiling.Stop(); perr != nil {
		fmt.Fprintf(stderr, "failed to finish profiling: %v\n", perr)
	}
	if err == nil {
		return exitOK
	}
	code := exitCode(err)
	if !errors.Is(err, errSilent) {
		red := color.New(color.FgRed, color.Bold)
		fmt.Fprintf(stderr, "%s %v\n", red.Sprint("error:"), err)
	}
	return code
}

// errSilent marks an error the command has already reported.
var errSilent = errors.New("reported")

// exitCode maps a missing definition to 2 and other errors to 1.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, extract.ErrNoDefinition):
		return exitNoDefinition
	default:
		return exitError
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// isTerminal reports whether w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptor
}
