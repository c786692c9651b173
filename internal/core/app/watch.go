package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"i18nguard/internal/core/config"
	"i18nguard/internal/core/ports"
	"i18nguard/internal/core/watcher"
	"i18nguard/internal/engine/locale"
	"i18nguard/internal/shared/observability"
	"i18nguard/internal/shared/util"
)

// Watch runs both checks once, then re-runs the affected checks whenever
// watched files change. It blocks until ctx is cancelled.
func (a *App) Watch(ctx context.Context, onUpdate func(ports.WatchUpdate)) error {
	if onUpdate == nil {
		return os.ErrInvalid
	}
	cfg := a.currentConfig()
	limiter := util.NewLimiter(cfg.Watch.MaxRunsPerSecond)

	run := func(changed []string, keys, text bool) {
		waited, err := limiter.Wait(ctx)
		if err != nil {
			return
		}
		if waited {
			observability.WatchRunsThrottledTotal.Inc()
		}
		onUpdate(a.runChecks(ctx, changed, keys, text))
	}

	w, err := watcher.NewWatcher(cfg.Watch.Debounce, cfg.Scanner.ExcludeDirs, func(changed []string) {
		if ctx.Err() != nil {
			return
		}
		keys, text, reload := a.classifyChanges(changed)
		if reload {
			if err := a.reloadConfig(); err != nil {
				onUpdate(ports.WatchUpdate{Changed: changed, Err: err})
				return
			}
			keys, text = true, true
		}
		if !keys && !text {
			return
		}
		run(changed, keys, text)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	filenames := []string{}
	if cfg.SourcePath != "" {
		filenames = append(filenames, filepath.Base(cfg.SourcePath))
	}
	w.SetFilters(append(append([]string{}, cfg.Scanner.Extensions...), locale.SearchExtensions...), filenames)

	roots := a.watchRoots()
	slog.Info("watching for changes", "roots", roots, "debounce", cfg.Watch.Debounce)
	if err := w.Watch(roots); err != nil {
		return err
	}

	run(nil, true, true)
	<-ctx.Done()
	return nil
}

func (a *App) runChecks(ctx context.Context, changed []string, keys, text bool) ports.WatchUpdate {
	update := ports.WatchUpdate{Changed: changed}
	if keys {
		res, err := a.RunKeyParity(ctx, ports.KeyParityRequest{})
		if err != nil {
			update.Err = err
			return update
		}
		update.Keys = &res
	}
	if text {
		res, err := a.RunTextScan(ctx, ports.TextScanRequest{})
		if err != nil {
			update.Err = err
			return update
		}
		update.Text = &res
	}
	return update
}

// classifyChanges decides which checks a batch of changed files affects.
func (a *App) classifyChanges(changed []string) (keys, text, reload bool) {
	cfg := a.currentConfig()
	scanExt := make(map[string]bool, len(cfg.Scanner.Extensions))
	for _, ext := range cfg.Scanner.Extensions {
		scanExt[ext] = true
	}

	for _, path := range changed {
		if cfg.SourcePath != "" && sameFile(path, cfg.SourcePath) {
			reload = true
			continue
		}
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := locale.FormatForPath(path); ok && isWithin(a.Paths.LocalesDir, path) {
			keys = true
		}
		if scanExt[ext] && isWithin(a.Paths.ScanRoot, path) {
			text = true
		}
	}
	return keys, text, reload
}

func (a *App) reloadConfig() error {
	path := a.currentConfig().SourcePath
	cfg, err := config.Load(path)
	if err != nil {
		slog.Warn("config reload failed; keeping previous config", "path", path, "error", err)
		return err
	}
	config.ApplyEnvOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		slog.Warn("config reload failed; keeping previous config", "path", path, "error", err)
		return err
	}
	if err := a.reload(cfg); err != nil {
		return err
	}
	slog.Info("config reloaded", "path", path)
	return nil
}

// watchRoots returns the directories to watch with nested entries removed.
func (a *App) watchRoots() []string {
	candidates := []string{a.Paths.ScanRoot, a.Paths.LocalesDir}
	if src := a.currentConfig().SourcePath; src != "" {
		if abs, err := filepath.Abs(filepath.Dir(src)); err == nil {
			candidates = append(candidates, abs)
		}
	}

	existing := candidates[:0]
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			existing = append(existing, filepath.Clean(c))
		}
	}
	sort.Slice(existing, func(i, j int) bool { return len(existing[i]) < len(existing[j]) })

	var roots []string
	for _, c := range existing {
		nested := false
		for _, r := range roots {
			if isWithin(r, c) {
				nested = true
				break
			}
		}
		if !nested {
			roots = append(roots, c)
		}
	}
	sort.Strings(roots)
	return roots
}

func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
