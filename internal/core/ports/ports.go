package ports

import (
	"context"
	"time"

	"i18nguard/internal/data/history"
	"i18nguard/internal/engine/hardcoded"
	"i18nguard/internal/engine/parity"
)

// HistoryStore abstracts run snapshot persistence.
type HistoryStore interface {
	SaveSnapshot(ctx context.Context, snapshot history.Snapshot) (history.Snapshot, error)
	LoadSnapshots(ctx context.Context, projectKey string, since time.Time) ([]history.Snapshot, error)
	Close() error
}

// KeyParityRequest selects the dictionaries to compare. With no explicit
// source file the configured locales directory is used.
type KeyParityRequest struct {
	SourcePath  string
	TargetPaths []string
}

// KeyParityResult holds one report per target locale.
type KeyParityResult struct {
	RunID    string                `json:"run_id,omitempty"`
	Source   string                `json:"source"`
	Reports  []parity.LocaleReport `json:"reports"`
	Duration time.Duration         `json:"duration"`
}

func (r KeyParityResult) OK() bool {
	for _, report := range r.Reports {
		if !report.OK() {
			return false
		}
	}
	return true
}

// Verified is the number of distinct source keys checked.
func (r KeyParityResult) Verified() int {
	if len(r.Reports) == 0 {
		return 0
	}
	return r.Reports[0].Verified
}

// TextScanRequest overrides the configured scan root when Root is set.
type TextScanRequest struct {
	Root string
}

type TextScanResult struct {
	RunID    string        `json:"run_id,omitempty"`
	Root     string        `json:"root"`
	Duration time.Duration `json:"duration"`
	hardcoded.Result
}

// WatchUpdate is emitted after each watch-mode re-run.
type WatchUpdate struct {
	Changed []string
	Keys    *KeyParityResult
	Text    *TextScanResult
	Err     error
}

func (u WatchUpdate) OK() bool {
	if u.Err != nil {
		return false
	}
	if u.Keys != nil && !u.Keys.OK() {
		return false
	}
	return u.Text == nil || u.Text.OK()
}

// CheckService is the driving port over the two checks.
type CheckService interface {
	RunKeyParity(ctx context.Context, req KeyParityRequest) (KeyParityResult, error)
	RunTextScan(ctx context.Context, req TextScanRequest) (TextScanResult, error)
	Watch(ctx context.Context, onUpdate func(WatchUpdate)) error
	History(ctx context.Context, since time.Time) (history.TrendReport, error)
}
