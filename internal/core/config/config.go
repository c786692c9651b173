package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"i18nguard/internal/engine/hardcoded"
)

const (
	DefaultConfigFile = "i18nguard.toml"
	ExampleConfigFile = "i18nguard.example.toml"
)

type Config struct {
	Version       int           `toml:"version"`
	Scanner       Scanner       `toml:"scanner"`
	Locales       Locales       `toml:"locales"`
	Output        Output        `toml:"output"`
	History       History       `toml:"history"`
	Watch         Watch         `toml:"watch"`
	Observability Observability `toml:"observability"`

	// Path of the file the config was loaded from; empty for DefaultConfig.
	SourcePath string `toml:"-"`
}

type Scanner struct {
	Root               string   `toml:"root"`
	ExcludeDirs        []string `toml:"exclude_dirs"`
	Extensions         []string `toml:"extensions"`
	KnownPhrases       []string `toml:"known_phrases"`
	AllowList          []string `toml:"allow_list"`
	SkipPatterns       []string `toml:"skip_patterns"`
	TranslationMarkers []string `toml:"translation_markers"`
	ComponentDirs      []string `toml:"component_dirs"`
	MinFlagLength      int      `toml:"min_flag_length"`
	MinFlagWordCount   int      `toml:"min_flag_word_count"`
	ContextWidth       int      `toml:"context_width"`
	Structural         bool     `toml:"structural"`
	// Append configured tables to the compiled defaults instead of replacing them.
	ExtendDefaults bool `toml:"extend_defaults"`
}

type Locales struct {
	Dir     string   `toml:"dir"`
	Source  string   `toml:"source"`
	Targets []string `toml:"targets"`
}

type Output struct {
	Format string `toml:"format"`
	Path   string `toml:"path"`
}

type History struct {
	Enabled     bool          `toml:"enabled"`
	Path        string        `toml:"path"`
	ProjectKey  string        `toml:"project_key"`
	BusyTimeout time.Duration `toml:"busy_timeout"`
}

type Watch struct {
	Debounce         time.Duration `toml:"debounce"`
	MaxRunsPerSecond float64       `toml:"max_runs_per_second"`
}

type Observability struct {
	MetricsAddress string `toml:"metrics_address"`
	OTLPEndpoint   string `toml:"otlp_endpoint"`
}

// ScannerConfig converts the scanner section into the rule set consumed by
// hardcoded.NewScanner.
func (c *Config) ScannerConfig() hardcoded.Config {
	s := c.Scanner
	return hardcoded.Config{
		KnownPhrases:       append([]string(nil), s.KnownPhrases...),
		AllowList:          append([]string(nil), s.AllowList...),
		SkipPatterns:       append([]string(nil), s.SkipPatterns...),
		TranslationMarkers: append([]string(nil), s.TranslationMarkers...),
		ComponentDirs:      append([]string(nil), s.ComponentDirs...),
		MinFlagLength:      s.MinFlagLength,
		MinFlagWordCount:   s.MinFlagWordCount,
		ContextWidth:       s.ContextWidth,
		Structural:         s.Structural,
	}
}

// DefaultConfig returns the compiled-in configuration used when no config
// file exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	normalize(cfg)
	return cfg
}

// FindConfigFile returns the first existing config file in dir: the active
// file, then the example file. It returns "" when neither exists.
func FindConfigFile(dir string) string {
	for _, name := range []string{DefaultConfigFile, ExampleConfigFile} {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadOrDefault loads path when given, otherwise the config discovered in
// the working directory, otherwise the defaults.
func LoadOrDefault(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		cwd, err := os.Getwd()
		if err == nil {
			path = FindConfigFile(cwd)
		}
	}
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}
