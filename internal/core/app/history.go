package app

import (
	"context"
	"log/slog"
	"time"

	"i18nguard/internal/core/errors"
	"i18nguard/internal/data/history"
)

// record stores a run snapshot when history is enabled and returns its run
// id. Persistence failures are logged and never fail the check.
func (a *App) record(ctx context.Context, snapshot history.Snapshot) string {
	snapshot.Timestamp = time.Now().UTC()
	snapshot.ProjectKey = a.currentConfig().History.ProjectKey

	store := a.historyStore()
	if store == nil {
		a.setLastRun(snapshot)
		return ""
	}

	snapshot.CommitHash, snapshot.CommitTimestamp = history.ResolveGitMetadata(ctx, a.Paths.ProjectRoot)
	saved, err := store.SaveSnapshot(ctx, snapshot)
	if err != nil {
		slog.Warn("failed to record run history", "check", snapshot.Check, "error", err)
		a.setLastRun(snapshot)
		return ""
	}
	a.setLastRun(saved)
	return saved.RunID
}

// History returns the trend over stored runs at or after since.
func (a *App) History(ctx context.Context, since time.Time) (history.TrendReport, error) {
	store := a.historyStore()
	if store == nil {
		return history.TrendReport{}, errors.New(errors.CodeValidationError, "history is disabled; set history.enabled = true")
	}
	snapshots, err := store.LoadSnapshots(ctx, a.currentConfig().History.ProjectKey, since)
	if err != nil {
		return history.TrendReport{}, errors.Wrap(err, errors.CodeIO, "load run history")
	}
	return history.BuildTrendReport(snapshots), nil
}

func (a *App) setLastRun(snapshot history.Snapshot) {
	a.lastMu.Lock()
	defer a.lastMu.Unlock()
	a.lastRun[snapshot.Check] = snapshot
}

// LastRun returns the most recent snapshot of check in this process.
func (a *App) LastRun(check string) (history.Snapshot, bool) {
	a.lastMu.RLock()
	defer a.lastMu.RUnlock()
	s, ok := a.lastRun[check]
	return s, ok
}
