package cli

import (
	"fmt"
	"io"
	"time"

	"i18nguard/internal/core/ports"
	"i18nguard/internal/ui/report"
	"i18nguard/internal/ui/report/formats"

	"github.com/spf13/cobra"
)

func newKeysCommand(env *runEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "keys [source-file target-file...]",
		Short: "Check that every locale dictionary has the source locale's keys",
		Long: `Compares the flattened key paths of the source dictionary against each
target dictionary and lists keys missing from or extra in each target.
Without arguments the configured locales directory is used.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return usageError{fmt.Errorf("keys needs a source file and at least one target file")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, env)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			req := ports.KeyParityRequest{}
			if len(args) > 0 {
				req.SourcePath, req.TargetPaths = args[0], args[1:]
			}
			result, err := s.app.RunKeyParity(ctx, req)
			if err != nil {
				return err
			}
			return s.render(formats.Document{Keys: &result})
		},
	}
}

func newTextCommand(env *runEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "text [root]",
		Short: "Scan UI sources for hardcoded user-visible text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, env)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			req := ports.TextScanRequest{}
			if len(args) == 1 {
				req.Root = args[0]
			}
			result, err := s.app.RunTextScan(ctx, req)
			if err != nil {
				return err
			}
			return s.render(formats.Document{Text: &result})
		},
	}
}

func newCheckCommand(env *runEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the key parity check and the hardcoded text scan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, env)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			keys, err := s.app.RunKeyParity(ctx, ports.KeyParityRequest{})
			if err != nil {
				return err
			}
			text, err := s.app.RunTextScan(ctx, ports.TextScanRequest{})
			if err != nil {
				return err
			}
			return s.render(formats.Document{Keys: &keys, Text: &text})
		},
	}
}

func newHistoryCommand(env *runEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded check runs and their trend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			since, err := parseSince(env.opts.since, time.Now())
			if err != nil {
				return usageError{err}
			}

			ctx := cmd.Context()
			s, err := openSession(ctx, env)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			trend, err := s.app.History(ctx, since)
			if err != nil {
				return err
			}
			data, err := report.RenderTrend(s.cfg.Output.Format, trend)
			if err != nil {
				return usageError{err}
			}
			return s.write(func(w io.Writer, _ bool) error {
				_, err := w.Write(data)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&env.opts.since, "since", "", "Only show runs at or after this time (RFC3339, YYYY-MM-DD or a duration such as 168h)")
	return cmd
}
