package formats

import (
	"path/filepath"
	"strings"

	"i18nguard/internal/engine/hardcoded"
)

// relPath renders path relative to root with forward slashes. Paths outside
// root are returned unchanged.
func relPath(root, path string) string {
	root = strings.TrimSpace(root)
	path = strings.TrimSpace(path)
	if root == "" || path == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func relFindings(root string, findings []hardcoded.Finding) []hardcoded.Finding {
	out := make([]hardcoded.Finding, 0, len(findings))
	for _, f := range findings {
		f.File = relPath(root, f.File)
		out = append(out, f)
	}
	return out
}

// escapeCell makes text safe inside a Markdown table cell.
func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "|", "\\|")
	text = strings.ReplaceAll(text, "`", "'")
	return strings.ReplaceAll(text, "\n", " ")
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
