package formats

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteText_KeyMismatches(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Document{ProjectRoot: "/project", Keys: failingKeys()}, Styles{}))

	out := buf.String()
	assert.Contains(t, out, "en -> de  src/locales/de.json\n")
	assert.Contains(t, out, "    Missing in de (2):\n      - nav.about\n      - nav.contact\n")
	assert.Contains(t, out, "    Extra in de (1):\n      - legacy\n")
	assert.Contains(t, out, "Key parity failed: 2 missing, 1 extra.")
	assert.NotContains(t, out, "\x1b[", "plain styles must not emit escape codes")
}

func TestWriteText_KeySuccess(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Document{Keys: passingKeys()}, Styles{}))
	assert.Contains(t, buf.String(), "All 2 keys verified across 1 target locale(s).")
}

func TestWriteText_Findings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Document{ProjectRoot: "/project", Text: failingText()}, Styles{}))

	out := buf.String()
	about := strings.Index(out, "src/app/about/page.tsx\n")
	page := strings.Index(out, "src/app/page.tsx\n")
	require.True(t, about >= 0 && page >= 0, out)
	assert.Less(t, about, page, "groups are sorted by file")
	assert.Contains(t, out, `  4: "Click to see"  <h1>Click to see how it works</h1>`)
	assert.Contains(t, out, "Found 2 hardcoded text finding(s) in 2 file(s) (2 scanned).")
}

func TestWriteText_BothChecks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Document{Keys: passingKeys(), Text: failingText()}, Styles{}))
	out := buf.String()
	assert.Less(t, strings.Index(out, "Key parity"), strings.Index(out, "Hardcoded text"))
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, "xml", Document{}, Options{}))
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	doc := Document{ProjectRoot: "/project", Keys: failingKeys(), Text: failingText()}
	require.NoError(t, Render(&buf, FormatJSON, doc, Options{GeneratedAt: time.Unix(0, 0)}))

	var decoded struct {
		Tool string `json:"tool"`
		OK   bool   `json:"ok"`
		Keys struct {
			Reports []struct {
				Target          string   `json:"target"`
				TargetPath      string   `json:"target_path"`
				MissingInTarget []string `json:"missing_in_target"`
			} `json:"reports"`
		} `json:"keys"`
		Text struct {
			OK       bool `json:"ok"`
			Findings []struct {
				File string `json:"file"`
				Line int    `json:"line"`
			} `json:"findings"`
			Groups []json.RawMessage `json:"groups"`
		} `json:"text"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "i18nguard", decoded.Tool)
	assert.False(t, decoded.OK)
	require.Len(t, decoded.Keys.Reports, 1)
	assert.Equal(t, "src/locales/de.json", decoded.Keys.Reports[0].TargetPath)
	assert.Equal(t, []string{"nav.about", "nav.contact"}, decoded.Keys.Reports[0].MissingInTarget)
	assert.False(t, decoded.Text.OK)
	require.Len(t, decoded.Text.Findings, 2)
	assert.Equal(t, "src/app/about/page.tsx", decoded.Text.Findings[0].File)
	assert.Len(t, decoded.Text.Groups, 2)

	assert.Equal(t, "/project/src/locales/de.json", doc.Keys.Reports[0].TargetPath, "input must not be mutated")
}

func TestRender_SARIFAndMarkdown(t *testing.T) {
	doc := Document{ProjectRoot: "/project", Text: failingText()}

	var sarif bytes.Buffer
	require.NoError(t, Render(&sarif, FormatSARIF, doc, Options{}))
	assert.True(t, json.Valid(sarif.Bytes()))

	var md bytes.Buffer
	require.NoError(t, Render(&md, FormatMarkdown, doc, Options{ProjectName: "site"}))
	assert.Contains(t, md.String(), "project: site")
	assert.Contains(t, md.String(), "## Table of Contents")
}
