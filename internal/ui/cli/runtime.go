package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	coreapp "i18nguard/internal/core/app"
	"i18nguard/internal/core/config"
	"i18nguard/internal/shared/observability"
	"i18nguard/internal/shared/util"
	"i18nguard/internal/ui/report/formats"
)

// session is the per-command runtime: resolved config, app and tracing.
type session struct {
	env      *runEnv
	cfg      *config.Config
	app      *coreapp.App
	shutdown func(context.Context) error
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	config.ApplyEnvOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if cfg.SourcePath != "" {
		slog.Debug("config loaded", "path", cfg.SourcePath)
	} else {
		slog.Debug("no config file found; using defaults")
	}
	return cfg, nil
}

func openSession(ctx context.Context, env *runEnv) (*session, error) {
	cfg, err := loadConfig(env.opts.configPath)
	if err != nil {
		return nil, err
	}
	if env.opts.format != "" {
		cfg.Output.Format = strings.ToLower(env.opts.format)
	}
	if env.opts.output != "" {
		cfg.Output.Path = env.opts.output
	}

	shutdown, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	app, err := coreapp.New(cfg)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	return &session{env: env, cfg: cfg, app: app, shutdown: shutdown}, nil
}

func (s *session) Close(ctx context.Context) {
	if err := s.app.Close(ctx); err != nil {
		slog.Warn("failed to close app", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.shutdown(shutdownCtx); err != nil {
		slog.Warn("failed to flush traces", "error", err)
	}
}

// render writes doc to the configured output and turns a failing document
// into exit code 1.
func (s *session) render(doc formats.Document) error {
	doc.ProjectRoot = s.app.Paths.ProjectRoot
	err := s.write(func(w io.Writer, terminal bool) error {
		return formats.Render(w, s.cfg.Output.Format, doc, formats.Options{
			Color:       terminal,
			ProjectName: filepath.Base(s.app.Paths.ProjectRoot),
		})
	})
	if err != nil {
		return err
	}
	if !doc.OK() {
		return exitError{code: ExitFailure}
	}
	return nil
}

// write hands fn the configured output file, or stdout when none is set.
func (s *session) write(fn func(w io.Writer, terminal bool) error) error {
	path := s.app.Paths.OutputPath
	if path == "" {
		return fn(s.env.stdout, isTerminal(s.env.stdout))
	}
	out, err := util.OpenOutput(path)
	if err != nil {
		return fmt.Errorf("open output %s: %w", path, err)
	}
	if err := fn(out, false); err != nil {
		_ = out.Close()
		return err
	}
	slog.Debug("report written", "path", path)
	return out.Close()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// parseSince accepts RFC3339, YYYY-MM-DD, or a duration meaning "that long
// ago".
func parseSince(value string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return time.Time{}, nil
	}

	rfc3339, err := time.Parse(time.RFC3339, raw)
	if err == nil {
		return rfc3339.UTC(), nil
	}

	dateOnly, err := time.Parse("2006-01-02", raw)
	if err == nil {
		return dateOnly.UTC(), nil
	}

	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return now.Add(-d).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("--since must be RFC3339, YYYY-MM-DD or a duration, got %q", value)
}
