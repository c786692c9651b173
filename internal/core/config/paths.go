package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvedPaths holds absolute paths derived from a config. Relative entries
// resolve against the project root.
type ResolvedPaths struct {
	ProjectRoot string
	ScanRoot    string
	LocalesDir  string
	HistoryPath string
	OutputPath  string
}

func ResolvePaths(cfg *Config, cwd string) (ResolvedPaths, error) {
	if strings.TrimSpace(cwd) == "" {
		return ResolvedPaths{}, fmt.Errorf("cwd must not be empty")
	}

	candidates := []string{cwd}
	if cfg.SourcePath != "" {
		candidates = append([]string{ResolveRelative(cwd, filepath.Dir(cfg.SourcePath))}, candidates...)
	}
	projectRoot, err := DetectProjectRoot(candidates)
	if err != nil {
		return ResolvedPaths{}, err
	}

	resolved := ResolvedPaths{
		ProjectRoot: projectRoot,
		ScanRoot:    ResolveRelative(projectRoot, cfg.Scanner.Root),
		LocalesDir:  ResolveRelative(projectRoot, cfg.Locales.Dir),
		HistoryPath: ResolveRelative(projectRoot, cfg.History.Path),
	}
	if cfg.Output.Path != "" && cfg.Output.Path != "-" {
		resolved.OutputPath = ResolveRelative(cwd, cfg.Output.Path)
	}
	return resolved, nil
}

func ResolveRelative(base, value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(base, raw))
}

// DetectProjectRoot walks up from each candidate until a directory holding a
// project marker is found. It falls back to the first candidate.
func DetectProjectRoot(candidates []string) (string, error) {
	markers := []string{
		DefaultConfigFile,
		ExampleConfigFile,
		"package.json",
		"go.mod",
		".git",
	}

	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}

		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		root := abs
		if info, err := os.Stat(abs); err == nil && !info.IsDir() {
			root = filepath.Dir(abs)
		}

		for {
			for _, marker := range markers {
				if _, err := os.Stat(filepath.Join(root, marker)); err == nil {
					return filepath.Clean(root), nil
				}
			}
			parent := filepath.Dir(root)
			if parent == root {
				break
			}
			root = parent
		}
	}

	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return "", err
		}
		return filepath.Clean(abs), nil
	}
	return "", fmt.Errorf("no project root candidates")
}
