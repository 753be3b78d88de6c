package main

import (
	"context"
	"fmt"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aegis/internal/logger"
	"aegis/internal/prof"
)

// globalOptions are the parsed persistent root flags.
type globalOptions struct {
	colorMode      string
	quiet          bool
	timings        bool
	maxDiagnostics int
	logLevel       string
	logJSON        bool
}

func readGlobals(cmd *cobra.Command) (globalOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var (
		opts globalOptions
		err  error
	)
	if opts.colorMode, err = flags.GetString("color"); err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	if opts.quiet, err = flags.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.logLevel, err = flags.GetString("log-level"); err != nil {
		return opts, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	if opts.logJSON, err = flags.GetBool("log-json"); err != nil {
		return opts, fmt.Errorf("failed to get log-json flag: %w", err)
	}
	opts.colorMode = strings.ToLower(strings.TrimSpace(opts.colorMode))
	switch opts.colorMode {
	case "auto", "on", "off":
	default:
		return opts, fmt.Errorf("invalid --color value %q (expected auto|on|off)", opts.colorMode)
	}
	if opts.maxDiagnostics < 1 {
		return opts, fmt.Errorf("--max-diagnostics must be positive, got %d", opts.maxDiagnostics)
	}
	return opts, nil
}

// setup validates flags and configures the logger, the global fatih/color
// switch and the profilers.
func (s *cliState) setup(cmd *cobra.Command, _ []string) error {
	opts, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	cfg := logger.DefaultConfig()
	cfg.Level = opts.logLevel
	cfg.JSON = opts.logJSON
	cfg.Output = cmd.ErrOrStderr()
	lg, err := logger.Setup(cfg)
	if err != nil {
		return err
	}
	color.NoColor = !opts.useColor(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.ContextWithLogger(ctx, lg))

	popts, err := readProfileFlags(cmd)
	if err != nil {
		return err
	}
	if s.profiling, err = prof.Start(popts); err != nil {
		return err
	}
	return nil
}

func readProfileFlags(cmd *cobra.Command) (prof.Options, error) {
	flags := cmd.Root().PersistentFlags()
	var (
		opts prof.Options
		err  error
	)
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return opts, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return opts, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return opts, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return opts, nil
}

// useColor decides for stdout; auto checks for a TTY.
func (o globalOptions) useColor(cmd *cobra.Command) bool {
	switch o.colorMode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(cmd.OutOrStdout())
	}
}

// useColorErr decides the same for stderr, where diagnostics go.
func (o globalOptions) useColorErr(cmd *cobra.Command) bool {
	switch o.colorMode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(cmd.ErrOrStderr())
	}
}

func loggerFrom(cmd *cobra.Command) *charmlog.Logger {
	return logger.FromContext(cmd.Context())
}
