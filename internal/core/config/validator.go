package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

var supportedFormats = map[string]bool{
	"text":     true,
	"json":     true,
	"sarif":    true,
	"markdown": true,
}

// IsSupportedFormat reports whether name is a known report format.
func IsSupportedFormat(name string) bool {
	return supportedFormats[strings.ToLower(strings.TrimSpace(name))]
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateScanner(cfg *Config) error {
	s := cfg.Scanner
	if s.Root == "" {
		return fmt.Errorf("scanner.root must not be empty")
	}
	if len(s.Extensions) == 0 {
		return fmt.Errorf("scanner.extensions must not be empty")
	}
	for _, p := range s.ExcludeDirs {
		if _, err := glob.Compile(p, '/'); err != nil {
			return fmt.Errorf("scanner.exclude_dirs: invalid glob %q: %w", p, err)
		}
	}
	if err := validatePatterns("scanner.skip_patterns", s.SkipPatterns); err != nil {
		return err
	}
	if err := validatePatterns("scanner.translation_markers", s.TranslationMarkers); err != nil {
		return err
	}
	if s.MinFlagLength < 1 {
		return fmt.Errorf("scanner.min_flag_length must be >= 1, got %d", s.MinFlagLength)
	}
	if s.MinFlagWordCount < 1 {
		return fmt.Errorf("scanner.min_flag_word_count must be >= 1, got %d", s.MinFlagWordCount)
	}
	if s.ContextWidth < 10 {
		return fmt.Errorf("scanner.context_width must be >= 10, got %d", s.ContextWidth)
	}
	return nil
}

func validatePatterns(key string, patterns []string) error {
	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("%s: invalid regexp %q: %w", key, p, err)
		}
	}
	return nil
}

func validateLocales(cfg *Config) error {
	l := cfg.Locales
	if l.Source == "" {
		return fmt.Errorf("locales.source must not be empty")
	}
	if len(l.Targets) == 0 {
		return fmt.Errorf("locales.targets must not be empty")
	}
	for _, target := range l.Targets {
		if target == l.Source {
			return fmt.Errorf("locales.targets must not contain the source locale %q", l.Source)
		}
		if strings.ContainsAny(target, `/\`) {
			return fmt.Errorf("locales.targets: invalid locale %q", target)
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	if !IsSupportedFormat(cfg.Output.Format) {
		return fmt.Errorf("output.format must be one of: text, json, sarif, markdown; got %q", cfg.Output.Format)
	}
	return nil
}

func validateHistory(cfg *Config) error {
	if cfg.History.Enabled && cfg.History.Path == "" {
		return fmt.Errorf("history.path must not be empty when history.enabled=true")
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if cfg.Watch.MaxRunsPerSecond < 0 {
		return fmt.Errorf("watch.max_runs_per_second must not be negative")
	}
	return nil
}

func validateObservability(cfg *Config) error {
	addr := cfg.Observability.MetricsAddress
	if addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("observability.metrics_address: %w", err)
	}
	return nil
}
