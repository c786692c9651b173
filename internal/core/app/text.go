package app

import (
	"context"
	"log/slog"
	"time"

	"i18nguard/internal/core/config"
	"i18nguard/internal/core/errors"
	"i18nguard/internal/core/ports"
	"i18nguard/internal/data/history"
	"i18nguard/internal/engine/hardcoded"
	"i18nguard/internal/shared/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// RunTextScan discovers UI source files under the scan root and flags
// literal text. Any I/O failure aborts the run without a partial result.
func (a *App) RunTextScan(ctx context.Context, req ports.TextScanRequest) (ports.TextScanResult, error) {
	ctx, span := observability.StartCheckSpan(ctx, "app.RunTextScan", history.CheckText)
	defer span.End()
	start := time.Now()

	cfg := a.currentConfig()
	root := a.Paths.ScanRoot
	if req.Root != "" {
		root = config.ResolveRelative(a.Paths.ProjectRoot, req.Root)
	}
	span.SetAttributes(attribute.String("i18n.root", root))

	fail := func(err error, op string) (ports.TextScanResult, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, op)
		observability.CheckRunsTotal.WithLabelValues(history.CheckText, "error").Inc()
		return ports.TextScanResult{}, errors.AddContext(err, errors.CtxOperation, op)
	}

	files, err := hardcoded.DiscoverFiles(root, cfg.Scanner.ExcludeDirs, cfg.Scanner.Extensions)
	if err != nil {
		return fail(err, "discover_files")
	}
	scanned, err := a.currentScanner().ScanAll(ctx, root, files)
	if err != nil {
		return fail(err, "scan_files")
	}

	result := ports.TextScanResult{
		Root:     root,
		Duration: time.Since(start),
		Result:   scanned,
	}

	byKind := map[hardcoded.Kind]int{
		hardcoded.KindKnownPhrase: 0,
		hardcoded.KindGenericText: 0,
		hardcoded.KindJSXText:     0,
	}
	for _, f := range result.Findings {
		byKind[f.Kind]++
	}
	for kind, n := range byKind {
		observability.HardcodedFindings.WithLabelValues(string(kind)).Set(float64(n))
	}
	observability.FilesScanned.Set(float64(result.FilesScanned))
	observability.CheckDuration.WithLabelValues(history.CheckText).Observe(result.Duration.Seconds())
	observability.CheckRunsTotal.WithLabelValues(history.CheckText, outcome(result.OK())).Inc()

	span.SetAttributes(
		attribute.Int("i18n.files_discovered", result.FilesDiscovered),
		attribute.Int("i18n.files_scanned", result.FilesScanned),
		attribute.Int("i18n.findings", len(result.Findings)),
	)

	result.RunID = a.record(ctx, history.Snapshot{
		Check:        history.CheckText,
		FilesScanned: result.FilesScanned,
		FindingCount: len(result.Findings),
		Passed:       result.OK(),
		Duration:     result.Duration,
	})

	slog.Info("hardcoded text scan finished",
		"root", root,
		"discovered", result.FilesDiscovered,
		"scanned", result.FilesScanned,
		"findings", len(result.Findings),
		"duration", result.Duration,
	)
	return result, nil
}
