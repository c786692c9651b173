package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"i18nguard/internal/core/app"
	"i18nguard/internal/core/config"
	"i18nguard/internal/core/ports"
	"i18nguard/internal/ui/report/formats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFiles(t *testing.T, tmpDir string) {
	files := map[string]string{
		"package.json":             `{"name": "site"}`,
		"src/locales/en.yaml":      "a:\n  b: x\n  c: y\nnav:\n  home: Home\n",
		"src/locales/de.toml":      "[a]\nb = \"X\"\n\n[nav]\nhome = \"Start\"\nlegacy = \"Alt\"\n",
		"src/app/page.tsx":         "import { Hero } from '../components/Hero';\n\nexport default function Page() {\n  return (\n    <main>\n      <h2>{t.section.title}</h2>\n      <Hero />\n    </main>\n  );\n}\n",
		"src/components/Hero.tsx":  "export function Hero() {\n  return (\n    <section>\n      <h2>Click to see how it works</h2>\n      <cite>Attention Is All You Need</cite>\n      {/* <p>Click to see the old layout</p> */}\n    </section>\n  );\n}\n",
		"src/components/Story.tsx": "export function Story() {\n  return (\n    <article>\n      <p>\n        Our team ships a new release every week\n      </p>\n    </article>\n  );\n}\n",
		"src/lib/strings.tsx":      "export const label = <b>Click to see</b>;\n",
		"node_modules/x/index.tsx": "<p>Click to see how it works</p>\n",
	}
	for rel, content := range files {
		path := filepath.Join(tmpDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestFullPipelineIntegration(t *testing.T) {
	tmpDir := t.TempDir()
	createTestFiles(t, tmpDir)

	cfg := config.DefaultConfig()
	cfg.Scanner.Root = filepath.Join(tmpDir, "src")
	cfg.Scanner.Structural = true
	cfg.Scanner.AllowList = append(cfg.Scanner.AllowList, "Attention Is All You Need")
	cfg.Locales.Dir = filepath.Join(tmpDir, "src", "locales")
	cfg.History.Enabled = true
	cfg.History.Path = filepath.Join(tmpDir, ".i18nguard", "history.db")
	cfg.History.ProjectKey = "site"
	require.NoError(t, config.Validate(cfg))

	appInstance, err := app.New(cfg)
	require.NoError(t, err)
	defer appInstance.Close(context.Background())

	ctx := context.Background()

	keys, err := appInstance.RunKeyParity(ctx, ports.KeyParityRequest{})
	require.NoError(t, err)
	require.Len(t, keys.Reports, 1)
	assert.Equal(t, []string{"a.c"}, keys.Reports[0].MissingInTarget)
	assert.Equal(t, []string{"nav.legacy"}, keys.Reports[0].ExtraInTarget)
	assert.Equal(t, 3, keys.Verified())

	text, err := appInstance.RunTextScan(ctx, ports.TextScanRequest{})
	require.NoError(t, err)
	assert.Equal(t, 4, text.FilesDiscovered)
	assert.Equal(t, 3, text.FilesScanned, "lib/ is not a component directory")

	require.Len(t, text.Groups, 2)
	hero := text.Groups[0]
	assert.Equal(t, filepath.Join(tmpDir, "src", "components", "Hero.tsx"), hero.File)
	require.Len(t, hero.Findings, 1)
	assert.Equal(t, "Click to see", hero.Findings[0].Content)
	assert.Equal(t, 4, hero.Findings[0].Line)

	story := text.Groups[1]
	assert.Equal(t, filepath.Join(tmpDir, "src", "components", "Story.tsx"), story.File)
	require.Len(t, story.Findings, 1)
	assert.Equal(t, "Our team ships a new release every week", story.Findings[0].Content)
	assert.Equal(t, 5, story.Findings[0].Line)

	var sarif bytes.Buffer
	require.NoError(t, formats.Render(&sarif, formats.FormatSARIF, formats.Document{
		ProjectRoot: appInstance.Paths.ProjectRoot,
		Keys:        &keys,
		Text:        &text,
	}, formats.Options{}))
	var decoded struct {
		Runs []struct {
			Results []struct {
				RuleID string `json:"ruleId"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(sarif.Bytes(), &decoded))
	require.Len(t, decoded.Runs, 1)
	assert.Len(t, decoded.Runs[0].Results, 4)

	trend, err := appInstance.History(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, trend.RunCount)
	assert.Equal(t, 2, trend.FailCount)

	health := app.NewHealthService(appInstance).Check(ctx)
	assert.Equal(t, "up", health.Status)
	assert.Equal(t, "ok", health.Components["history"])
}
