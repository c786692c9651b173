package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"i18nguard/internal/data/history"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}
	cfg := s.app.currentConfig()

	if s.app.currentScanner() == nil {
		status.Status = "degraded"
		status.Components["scanner"] = "missing"
	} else {
		status.Components["scanner"] = "ok"
	}

	if info, err := os.Stat(s.app.Paths.LocalesDir); err != nil || !info.IsDir() {
		status.Status = "degraded"
		status.Components["locales_dir"] = "missing: " + s.app.Paths.LocalesDir
	} else {
		status.Components["locales_dir"] = "ok"
	}

	if s.app.historyStore() != nil {
		status.Components["history"] = "ok"
	} else if cfg.History.Enabled {
		status.Status = "degraded"
		status.Components["history"] = "missing but enabled in config"
	}

	for _, check := range []string{history.CheckKeys, history.CheckText} {
		last, ok := s.app.LastRun(check)
		if !ok {
			continue
		}
		result := "pass"
		if !last.Passed {
			result = fmt.Sprintf("fail (%d problems)", last.Problems())
		}
		status.Components["last_"+check+"_run"] = fmt.Sprintf("%s at %s", result, last.Timestamp.Format(time.RFC3339))
	}

	return status
}
