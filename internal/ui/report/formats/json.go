package formats

import (
	"encoding/json"
	"time"

	"i18nguard/internal/core/ports"
	"i18nguard/internal/engine/hardcoded"
	"i18nguard/internal/shared/version"
)

type jsonReport struct {
	Tool        string                 `json:"tool"`
	Version     string                 `json:"version"`
	GeneratedAt time.Time              `json:"generated_at"`
	OK          bool                   `json:"ok"`
	Keys        *ports.KeyParityResult `json:"keys,omitempty"`
	Text        *jsonTextScan          `json:"text,omitempty"`
}

type jsonTextScan struct {
	ports.TextScanResult
	OK bool `json:"ok"`
}

// GenerateJSON renders doc as an indented JSON document. File paths are
// made relative to the project root.
func GenerateJSON(doc Document, generatedAt time.Time) ([]byte, error) {
	report := jsonReport{
		Tool:        "i18nguard",
		Version:     version.Version,
		GeneratedAt: generatedAt.UTC(),
		OK:          doc.OK(),
	}
	if doc.Keys != nil {
		keys := *doc.Keys
		keys.Reports = append(keys.Reports[:0:0], keys.Reports...)
		for i := range keys.Reports {
			keys.Reports[i].SourcePath = relPath(doc.ProjectRoot, keys.Reports[i].SourcePath)
			keys.Reports[i].TargetPath = relPath(doc.ProjectRoot, keys.Reports[i].TargetPath)
		}
		report.Keys = &keys
	}
	if doc.Text != nil {
		text := *doc.Text
		text.Root = relPath(doc.ProjectRoot, text.Root)
		text.Findings = relFindings(doc.ProjectRoot, text.Findings)
		text.Groups = hardcoded.Group(text.Findings)
		report.Text = &jsonTextScan{TextScanResult: text, OK: doc.Text.OK()}
	}
	return json.MarshalIndent(report, "", "  ")
}
