package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	coreapp "i18nguard/internal/core/app"
	"i18nguard/internal/core/ports"
	"i18nguard/internal/shared/util"
	"i18nguard/internal/ui/report/formats"

	"github.com/spf13/cobra"
)

func newWatchCommand(env *runEnv) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run both checks whenever locale or UI source files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := openSession(ctx, env)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			addr := s.cfg.Observability.MetricsAddress
			if metricsAddr != "" {
				addr = metricsAddr
			}
			if addr != "" {
				server := NewObservabilityServer(addr, coreapp.NewHealthService(s.app))
				if err := server.Start(ctx); err != nil {
					return err
				}
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
					defer cancel()
					if err := server.Stop(shutdownCtx); err != nil {
						slog.Warn("failed to stop observability server", "error", err)
					}
				}()
			}

			return s.app.Watch(ctx, func(update ports.WatchUpdate) {
				s.printUpdate(update)
			})
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve /metrics and /health on this address (overrides observability.metrics_address)")
	return cmd
}

// printUpdate renders one watch-mode re-run. Failures are reported and the
// watch continues.
func (s *session) printUpdate(update ports.WatchUpdate) {
	if update.Err != nil {
		slog.Error("check run failed", "changed", len(update.Changed), "error", update.Err)
		return
	}
	if len(update.Changed) > 0 {
		fmt.Fprintf(s.env.stdout, "\n== %s: %s changed\n", time.Now().Format(time.TimeOnly), describeChanges(s.app.Paths.ProjectRoot, update.Changed))
	}
	err := s.render(formats.Document{Keys: update.Keys, Text: update.Text})
	if err != nil {
		if _, failed := err.(exitError); !failed {
			slog.Error("failed to render report", "error", err)
		}
	}
}

func describeChanges(root string, changed []string) string {
	if len(changed) == 1 {
		return util.RelSlash(root, changed[0])
	}
	names := make([]string, 0, 3)
	for _, path := range changed[:min(3, len(changed))] {
		names = append(names, util.RelSlash(root, path))
	}
	if len(changed) > 3 {
		return fmt.Sprintf("%s and %d more", strings.Join(names, ", "), len(changed)-3)
	}
	return strings.Join(names, ", ")
}
