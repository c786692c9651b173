package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"i18nguard/internal/core/config"
	"i18nguard/internal/shared/version"

	"github.com/spf13/cobra"
)

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

type cliOptions struct {
	configPath string
	format     string
	output     string
	verbose    bool
	since      string
}

// runEnv carries the process streams so commands can be driven from tests.
type runEnv struct {
	stdout io.Writer
	stderr io.Writer
	opts   cliOptions
}

// exitError carries a non-zero exit code out of a command without printing
// an error message. Failed checks already reported their findings.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// usageError marks argument and flag mistakes.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func Run(args []string) int {
	return run(context.Background(), args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	env := &runEnv{stdout: stdout, stderr: stderr}
	root := newRootCommand(env)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	var usage usageError
	if errors.As(err, &usage) || isCobraUsageError(err) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, "Run 'i18nguard --help' for usage.")
		return ExitUsage
	}
	slog.Error("command failed", "error", err)
	return ExitFailure
}

// isCobraUsageError recognizes the argument and flag errors cobra produces
// itself, which carry no type.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "accepts ", "requires at least", "invalid argument", "flag needs an argument"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

func newRootCommand(env *runEnv) *cobra.Command {
	root := &cobra.Command{
		Use:   "i18nguard",
		Short: "Check locale dictionaries and UI sources for translation gaps",
		Long: `i18nguard verifies that every locale dictionary has the same keys as the
source locale and flags user-visible text written literally in UI sources.
Each check exits 0 when clean and 1 when it reports problems.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(env.stderr, env.opts.verbose)
			if env.opts.format != "" && !config.IsSupportedFormat(strings.ToLower(env.opts.format)) {
				return usageError{fmt.Errorf("unsupported --format %q (want text, json, sarif or markdown)", env.opts.format)}
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&env.opts.configPath, "config", "c", "", "Path to config file (default: ./"+config.DefaultConfigFile+" if present)")
	flags.StringVarP(&env.opts.format, "format", "f", "", "Report format: text, json, sarif or markdown")
	flags.StringVarP(&env.opts.output, "output", "o", "", "Write the report to this file instead of stdout")
	flags.BoolVarP(&env.opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newKeysCommand(env),
		newTextCommand(env),
		newCheckCommand(env),
		newWatchCommand(env),
		newHistoryCommand(env),
		newVersionCommand(env),
	)
	return root
}

func newVersionCommand(env *runEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(env.stdout, "i18nguard %s\n", version.String())
			return nil
		},
	}
}

func configureLogging(w io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}
