package config

import (
	"os"
	"strings"

	"i18nguard/internal/core/errors"

	"github.com/BurntSushi/toml"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeIO, "read config"), errors.CtxPath, path)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeParse, "decode config"), errors.CtxPath, path)
	}
	cfg.SourcePath = path

	applyDefaults(&cfg)
	normalize(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeValidationError, "invalid config"), errors.CtxPath, path)
	}
	return &cfg, nil
}

// Validate checks a defaulted and normalized config.
func Validate(cfg *Config) error {
	if err := validateVersion(cfg); err != nil {
		return err
	}
	if err := validateScanner(cfg); err != nil {
		return err
	}
	if err := validateLocales(cfg); err != nil {
		return err
	}
	if err := validateOutput(cfg); err != nil {
		return err
	}
	if err := validateHistory(cfg); err != nil {
		return err
	}
	if err := validateWatch(cfg); err != nil {
		return err
	}
	return validateObservability(cfg)
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	s := &cfg.Scanner
	if strings.TrimSpace(s.Root) == "" {
		s.Root = defaultRoot
	}
	s.ExcludeDirs = mergeTable(s.ExcludeDirs, defaultExcludeDirs, s.ExtendDefaults)
	s.Extensions = mergeTable(s.Extensions, defaultExtensions, s.ExtendDefaults)
	s.KnownPhrases = mergeTable(s.KnownPhrases, defaultKnownPhrases, s.ExtendDefaults)
	s.AllowList = mergeTable(s.AllowList, defaultAllowList, s.ExtendDefaults)
	s.SkipPatterns = mergeTable(s.SkipPatterns, defaultSkipPatterns, s.ExtendDefaults)
	s.TranslationMarkers = mergeTable(s.TranslationMarkers, defaultTranslationMarkers, s.ExtendDefaults)
	s.ComponentDirs = mergeTable(s.ComponentDirs, defaultComponentDirs, s.ExtendDefaults)
	if s.MinFlagLength == 0 {
		s.MinFlagLength = defaultMinFlagLength
	}
	if s.MinFlagWordCount == 0 {
		s.MinFlagWordCount = defaultMinFlagWordCount
	}
	if s.ContextWidth == 0 {
		s.ContextWidth = defaultContextWidth
	}

	if strings.TrimSpace(cfg.Locales.Dir) == "" {
		cfg.Locales.Dir = defaultLocalesDir
	}
	if strings.TrimSpace(cfg.Locales.Source) == "" {
		cfg.Locales.Source = defaultSourceLocale
	}
	if len(cfg.Locales.Targets) == 0 {
		cfg.Locales.Targets = append([]string(nil), defaultTargetLocales...)
	}

	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = defaultOutputFormat
	}

	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = defaultHistoryPath
	}
	if cfg.History.BusyTimeout <= 0 {
		cfg.History.BusyTimeout = defaultBusyTimeout
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = defaultDebounce
	}
	if cfg.Watch.MaxRunsPerSecond == 0 {
		cfg.Watch.MaxRunsPerSecond = defaultMaxRunsPerSecond
	}
}

// mergeTable fills an unset table from defaults. With extend set, configured
// entries are appended to the defaults instead of replacing them.
func mergeTable(configured, defaults []string, extend bool) []string {
	if len(configured) == 0 {
		return append([]string(nil), defaults...)
	}
	if !extend {
		return configured
	}
	merged := make([]string, 0, len(defaults)+len(configured))
	merged = append(merged, defaults...)
	return append(merged, configured...)
}

func normalize(cfg *Config) {
	s := &cfg.Scanner
	s.Root = strings.TrimSpace(s.Root)
	s.ExcludeDirs = normalizeList(s.ExcludeDirs, false)
	s.Extensions = normalizeExtensions(s.Extensions)
	s.KnownPhrases = normalizeList(s.KnownPhrases, false)
	s.AllowList = normalizeList(s.AllowList, false)
	s.SkipPatterns = normalizeList(s.SkipPatterns, false)
	s.TranslationMarkers = normalizeList(s.TranslationMarkers, false)
	s.ComponentDirs = normalizeList(s.ComponentDirs, false)

	cfg.Locales.Dir = strings.TrimSpace(cfg.Locales.Dir)
	cfg.Locales.Source = strings.ToLower(strings.TrimSpace(cfg.Locales.Source))
	cfg.Locales.Targets = normalizeList(cfg.Locales.Targets, true)

	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	cfg.Output.Path = strings.TrimSpace(cfg.Output.Path)

	cfg.History.Path = strings.TrimSpace(cfg.History.Path)
	cfg.History.ProjectKey = strings.TrimSpace(cfg.History.ProjectKey)

	cfg.Observability.MetricsAddress = strings.TrimSpace(cfg.Observability.MetricsAddress)
	cfg.Observability.OTLPEndpoint = strings.TrimSpace(cfg.Observability.OTLPEndpoint)
}

// normalizeList trims entries, drops empty ones and duplicates, keeping the
// first occurrence.
func normalizeList(values []string, lower bool) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if lower {
			v = strings.ToLower(v)
		}
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func normalizeExtensions(values []string) []string {
	exts := normalizeList(values, true)
	for i, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			exts[i] = "." + ext
		}
	}
	return normalizeList(exts, false)
}
