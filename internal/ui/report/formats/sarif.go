package formats

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"i18nguard/internal/core/ports"
	"i18nguard/internal/shared/version"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"

	ruleIDKeyMismatch   = "I18N001"
	ruleIDHardcodedText = "I18N002"
)

// sarifReport is the top-level SARIF document.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
}

// GenerateSARIF builds a SARIF v2.1.0 document from check results.
// All file URIs are made relative to projectRoot; absolute paths are never
// included so that reports are safe to share.
func GenerateSARIF(projectRoot string, keys *ports.KeyParityResult, text *ports.TextScanResult) ([]byte, error) {
	rules := buildSARIFRules(keys, text)
	results := make([]sarifResult, 0)

	// Key mismatches are attributed to the target dictionary, which is the
	// file a fix has to touch.
	if keys != nil {
		for _, r := range keys.Reports {
			for _, key := range r.MissingInTarget {
				results = append(results, sarifResult{
					RuleID:    ruleIDKeyMismatch,
					Level:     "error",
					Message:   sarifMessage{Text: fmt.Sprintf("Key %q is present in %s but missing in %s", key, r.Source, r.Target)},
					Locations: fileLocations(projectRoot, r.TargetPath, 0, 0),
				})
			}
			for _, key := range r.ExtraInTarget {
				results = append(results, sarifResult{
					RuleID:    ruleIDKeyMismatch,
					Level:     "error",
					Message:   sarifMessage{Text: fmt.Sprintf("Key %q is present in %s but not in %s", key, r.Target, r.Source)},
					Locations: fileLocations(projectRoot, r.TargetPath, 0, 0),
				})
			}
		}
	}

	if text != nil {
		for _, f := range text.Findings {
			results = append(results, sarifResult{
				RuleID:    ruleIDHardcodedText,
				Level:     "warning",
				Message:   sarifMessage{Text: fmt.Sprintf("Hardcoded UI text %q should come from the translation dictionary (%s)", f.Content, f.Kind)},
				Locations: fileLocations(projectRoot, f.File, f.Line, f.Column),
			})
		}
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    "i18nguard",
						Version: version.Version,
						Rules:   rules,
					},
				},
				Results: results,
			},
		},
	}

	return json.MarshalIndent(report, "", "  ")
}

// buildSARIFRules returns only the rules that are relevant for the given results.
func buildSARIFRules(keys *ports.KeyParityResult, text *ports.TextScanResult) []sarifRule {
	rules := make([]sarifRule, 0, 2)
	if keys != nil && !keys.OK() {
		rules = append(rules, sarifRule{
			ID:               ruleIDKeyMismatch,
			Name:             "LocaleKeyMismatch",
			ShortDescription: sarifMessage{Text: "A translation key exists in one locale dictionary but not the other."},
			DefaultConfig:    sarifRuleDefaultConfig{Level: "error"},
		})
	}
	if text != nil && !text.OK() {
		rules = append(rules, sarifRule{
			ID:               ruleIDHardcodedText,
			Name:             "HardcodedText",
			ShortDescription: sarifMessage{Text: "User-visible text is written literally instead of read from a translation dictionary."},
			DefaultConfig:    sarifRuleDefaultConfig{Level: "warning"},
		})
	}
	return rules
}

func fileLocations(projectRoot, path string, line, column int) []sarifLocation {
	if path == "" {
		return nil
	}
	loc := sarifLocation{
		PhysicalLocation: sarifPhysicalLocation{
			ArtifactLocation: sarifArtifactLocation{
				URI:       relativeURI(projectRoot, path),
				URIBaseID: "%SRCROOT%",
			},
		},
	}
	if line > 0 {
		loc.PhysicalLocation.Region = &sarifRegion{
			StartLine:   line,
			StartColumn: column,
		}
	}
	return []sarifLocation{loc}
}

// relativeURI converts an absolute file path to a forward-slash relative URI
// anchored at projectRoot. If the path is already relative or projectRoot is
// empty, the original path (with forward slashes) is returned.
func relativeURI(projectRoot, filePath string) string {
	if projectRoot != "" && filepath.IsAbs(filePath) {
		rel, err := filepath.Rel(projectRoot, filePath)
		if err == nil {
			filePath = rel
		}
	}
	// SARIF URIs use forward slashes.
	return filepath.ToSlash(filePath)
}
