package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: I18NGUARD_[SECTION]_[KEY] (e.g., I18NGUARD_SCANNER_ROOT).
func ApplyEnvOverrides(cfg *Config) {
	// Scanner
	setEnvString(&cfg.Scanner.Root, "I18NGUARD_SCANNER_ROOT")
	setEnvInt(&cfg.Scanner.MinFlagLength, "I18NGUARD_SCANNER_MIN_FLAG_LENGTH")
	setEnvInt(&cfg.Scanner.MinFlagWordCount, "I18NGUARD_SCANNER_MIN_FLAG_WORD_COUNT")
	setEnvBool(&cfg.Scanner.Structural, "I18NGUARD_SCANNER_STRUCTURAL")

	// Locales
	setEnvString(&cfg.Locales.Dir, "I18NGUARD_LOCALES_DIR")
	setEnvString(&cfg.Locales.Source, "I18NGUARD_LOCALES_SOURCE")
	setEnvList(&cfg.Locales.Targets, "I18NGUARD_LOCALES_TARGETS")

	// Output
	setEnvString(&cfg.Output.Format, "I18NGUARD_OUTPUT_FORMAT")
	setEnvString(&cfg.Output.Path, "I18NGUARD_OUTPUT_PATH")

	// History
	setEnvBool(&cfg.History.Enabled, "I18NGUARD_HISTORY_ENABLED")
	setEnvString(&cfg.History.Path, "I18NGUARD_HISTORY_PATH")
	setEnvString(&cfg.History.ProjectKey, "I18NGUARD_HISTORY_PROJECT_KEY")

	// Watch
	setEnvDuration(&cfg.Watch.Debounce, "I18NGUARD_WATCH_DEBOUNCE")

	// Observability
	setEnvString(&cfg.Observability.MetricsAddress, "I18NGUARD_OBSERVABILITY_METRICS_ADDRESS")
	setEnvString(&cfg.Observability.OTLPEndpoint, "I18NGUARD_OBSERVABILITY_OTLP_ENDPOINT")

	normalize(cfg)
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvList(target *[]string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = strings.Split(val, ",")
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
