package app

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"i18nguard/internal/core/errors"
	"i18nguard/internal/core/ports"
	"i18nguard/internal/data/history"
	"i18nguard/internal/engine/locale"
	"i18nguard/internal/engine/parity"
	"i18nguard/internal/shared/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// RunKeyParity compares the source dictionary against every target. Load
// failures abort the run; key differences are reported, not returned as
// errors.
func (a *App) RunKeyParity(ctx context.Context, req ports.KeyParityRequest) (ports.KeyParityResult, error) {
	ctx, span := observability.StartCheckSpan(ctx, "app.RunKeyParity", history.CheckKeys)
	defer span.End()
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return ports.KeyParityResult{}, err
	}

	source, trees, paths, err := a.loadDictionaries(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load dictionaries")
		observability.CheckRunsTotal.WithLabelValues(history.CheckKeys, "error").Inc()
		return ports.KeyParityResult{}, errors.AddContext(err, errors.CtxOperation, "key_parity")
	}

	result := ports.KeyParityResult{
		Source:   source,
		Reports:  parity.CompareAll(source, trees, paths),
		Duration: time.Since(start),
	}

	missing, extra := 0, 0
	for _, r := range result.Reports {
		missing += len(r.MissingInTarget)
		extra += len(r.ExtraInTarget)
		observability.KeysVerified.WithLabelValues(r.Target).Set(float64(r.Verified))
		observability.KeyMismatches.WithLabelValues(r.Target, "missing").Set(float64(len(r.MissingInTarget)))
		observability.KeyMismatches.WithLabelValues(r.Target, "extra").Set(float64(len(r.ExtraInTarget)))
	}
	observability.CheckDuration.WithLabelValues(history.CheckKeys).Observe(result.Duration.Seconds())
	observability.CheckRunsTotal.WithLabelValues(history.CheckKeys, outcome(result.OK())).Inc()

	span.SetAttributes(
		attribute.String("i18n.source", source),
		attribute.Int("i18n.targets", len(result.Reports)),
		attribute.Int("i18n.keys_verified", result.Verified()),
		attribute.Int("i18n.missing", missing),
		attribute.Int("i18n.extra", extra),
	)

	result.RunID = a.record(ctx, history.Snapshot{
		Check:        history.CheckKeys,
		KeysVerified: result.Verified(),
		MissingCount: missing,
		ExtraCount:   extra,
		Passed:       result.OK(),
		Duration:     result.Duration,
	})

	slog.Info("key parity check finished",
		"source", source,
		"targets", len(result.Reports),
		"verified", result.Verified(),
		"missing", missing,
		"extra", extra,
		"duration", result.Duration,
	)
	return result, nil
}

func (a *App) loadDictionaries(req ports.KeyParityRequest) (string, map[string]*locale.Tree, map[string]string, error) {
	if req.SourcePath == "" {
		if len(req.TargetPaths) > 0 {
			return "", nil, nil, errors.New(errors.CodeValidationError, "target dictionaries require a source dictionary")
		}
		cfg := a.currentConfig()
		locales := append([]string{cfg.Locales.Source}, cfg.Locales.Targets...)
		trees, paths, err := locale.LoadDir(a.Paths.LocalesDir, locales)
		if err != nil {
			return "", nil, nil, err
		}
		return cfg.Locales.Source, trees, paths, nil
	}

	if len(req.TargetPaths) == 0 {
		return "", nil, nil, errors.AddContext(
			errors.New(errors.CodeValidationError, "at least one target dictionary is required"),
			errors.CtxPath, req.SourcePath,
		)
	}

	trees := make(map[string]*locale.Tree, 1+len(req.TargetPaths))
	paths := make(map[string]string, 1+len(req.TargetPaths))
	var source string
	for i, path := range append([]string{req.SourcePath}, req.TargetPaths...) {
		tree, err := locale.LoadFile(path)
		if err != nil {
			return "", nil, nil, err
		}
		name := uniqueLocaleName(locale.LocaleFromPath(path), trees)
		if i == 0 {
			source = name
		}
		trees[name] = tree
		paths[name] = path
	}
	return source, trees, paths, nil
}

// uniqueLocaleName disambiguates dictionaries that share a base name, such
// as en.json and en.yaml.
func uniqueLocaleName(name string, taken map[string]*locale.Tree) string {
	if _, ok := taken[name]; !ok {
		return name
	}
	for i := 2; ; i++ {
		candidate := name + "#" + strconv.Itoa(i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

func outcome(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}
