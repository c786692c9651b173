package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"i18nguard/internal/core/config"
	"i18nguard/internal/core/errors"
	"i18nguard/internal/core/ports"
	"i18nguard/internal/data/history"
	"i18nguard/internal/engine/hardcoded"
)

type App struct {
	Config *config.Config
	Paths  config.ResolvedPaths

	mu      sync.RWMutex
	scanner *hardcoded.Scanner
	history ports.HistoryStore

	lastMu  sync.RWMutex
	lastRun map[string]history.Snapshot
}

var _ ports.CheckService = (*App)(nil)

// Option customizes an App during construction.
type Option func(*App)

// WithHistoryStore replaces the store opened from config.
func WithHistoryStore(store ports.HistoryStore) Option {
	return func(a *App) {
		a.history = store
	}
}

func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New(errors.CodeValidationError, "config is required")
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeIO, "resolve working directory")
	}
	paths, err := config.ResolvePaths(cfg, cwd)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "resolve paths")
	}

	scanner, err := hardcoded.NewScanner(cfg.ScannerConfig())
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:  cfg,
		Paths:   paths,
		scanner: scanner,
		lastRun: make(map[string]history.Snapshot),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.history == nil && cfg.History.Enabled {
		store, err := history.Open(paths.HistoryPath, cfg.History.BusyTimeout)
		if err != nil {
			if history.IsCorruptError(err) {
				slog.Error("history database is corrupt; delete it to start a new history", "path", paths.HistoryPath)
			}
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeIO, "open history store"), errors.CtxPath, paths.HistoryPath)
		}
		a.history = store
	}

	slog.Debug("app initialized",
		"scan_root", paths.ScanRoot,
		"locales_dir", paths.LocalesDir,
		"history", a.history != nil,
	)
	return a, nil
}

func (a *App) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.history == nil {
		return nil
	}
	err := a.history.Close()
	a.history = nil
	if err != nil {
		return fmt.Errorf("close history store: %w", err)
	}
	return nil
}

func (a *App) currentScanner() *hardcoded.Scanner {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.scanner
}

func (a *App) historyStore() ports.HistoryStore {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.history
}

// reload swaps in a new config and the scanner built from it. Paths stay
// fixed for the lifetime of the App.
func (a *App) reload(cfg *config.Config) error {
	scanner, err := hardcoded.NewScanner(cfg.ScannerConfig())
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Config = cfg
	a.scanner = scanner
	return nil
}

func (a *App) currentConfig() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.Config
}
