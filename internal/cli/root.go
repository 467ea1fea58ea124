// Package cli implements the asymptote command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/alexshd/asymptote/internal/report"
)

var version = "0.1.0"

// options holds the persistent flags shared by every subcommand.
type options struct {
	logLevel string
	verbose  bool
	noColor  bool

	logger *slog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:     "asymptote",
		Short:   "Estimate the asymptotic complexity of code by measurement",
		Version: version,
		Long: `asymptote times an operation at geometrically growing input sizes and fits
the per-operation cost against n, n², log n and n log n by least squares,
reporting the coefficients and R² as the fit improves.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), opts)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Shorthand for --log-level=debug")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newAnalyzeCmd(opts))
	root.AddCommand(newListCmd(opts))

	return root
}

// Execute runs the root command with ctx. Cobra has already printed the
// error when one is returned.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func newLogger(w io.Writer, opts *options) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(opts.logLevel))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", opts.logLevel, err)
	}
	if opts.verbose {
		level = slog.LevelDebug
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    opts.noColor || !report.IsTerminal(w),
	})), nil
}
