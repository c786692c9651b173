package formats

import (
	"fmt"
	"strings"
	"time"

	"i18nguard/internal/core/ports"
	"i18nguard/internal/shared/version"
)

type MarkdownReportOptions struct {
	ProjectName         string
	GeneratedAt         time.Time
	TableOfContents     bool
	CollapsibleSections bool
}

// MarkdownGenerator renders a report suited for pull request comments.
type MarkdownGenerator struct{}

func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{}
}

func (m *MarkdownGenerator) Generate(doc Document, opts MarkdownReportOptions) (string, error) {
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now().UTC()
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: Localization Report\n")
	b.WriteString("project: " + nonEmpty(opts.ProjectName, "unknown") + "\n")
	b.WriteString("generated_at: " + opts.GeneratedAt.UTC().Format(time.RFC3339) + "\n")
	b.WriteString("version: " + version.Version + "\n")
	b.WriteString("---\n\n")

	status := "✅ Passed"
	if !doc.OK() {
		status = "❌ Failed"
	}
	b.WriteString("# Localization Report: " + status + "\n\n")

	if opts.TableOfContents {
		b.WriteString("## Table of Contents\n")
		b.WriteString("- [Summary](#summary)\n")
		if doc.Keys != nil {
			b.WriteString("- [Key Parity](#key-parity)\n")
		}
		if doc.Text != nil {
			b.WriteString("- [Hardcoded Text](#hardcoded-text)\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Summary\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	if doc.Keys != nil {
		missing, extra := 0, 0
		for _, r := range doc.Keys.Reports {
			missing += len(r.MissingInTarget)
			extra += len(r.ExtraInTarget)
		}
		b.WriteString(fmt.Sprintf("| Keys Verified | %d |\n", doc.Keys.Verified()))
		b.WriteString(fmt.Sprintf("| Target Locales | %d |\n", len(doc.Keys.Reports)))
		b.WriteString(fmt.Sprintf("| Missing Keys | %d |\n", missing))
		b.WriteString(fmt.Sprintf("| Extra Keys | %d |\n", extra))
	}
	if doc.Text != nil {
		b.WriteString(fmt.Sprintf("| Files Scanned | %d |\n", doc.Text.FilesScanned))
		b.WriteString(fmt.Sprintf("| Hardcoded Text Findings | %d |\n", len(doc.Text.Findings)))
	}
	b.WriteString("\n")

	if doc.Keys != nil {
		m.writeKeys(&b, *doc.Keys, opts.CollapsibleSections)
	}
	if doc.Text != nil {
		m.writeText(&b, *doc.Text, doc.ProjectRoot, opts.CollapsibleSections)
	}
	return b.String(), nil
}

func (m *MarkdownGenerator) writeKeys(b *strings.Builder, res ports.KeyParityResult, collapsible bool) {
	b.WriteString("## Key Parity\n")
	if res.OK() {
		b.WriteString(fmt.Sprintf("All %d keys match across %d target locale(s).\n\n", res.Verified(), len(res.Reports)))
		return
	}
	rows := make([]string, 0)
	for _, r := range res.Reports {
		for _, key := range r.MissingInTarget {
			rows = append(rows, fmt.Sprintf("| `%s` | missing | `%s` |\n", r.Target, escapeCell(key)))
		}
		for _, key := range r.ExtraInTarget {
			rows = append(rows, fmt.Sprintf("| `%s` | extra | `%s` |\n", r.Target, escapeCell(key)))
		}
	}
	m.writeTableWithCollapse(
		b,
		"Key mismatch details",
		collapsible,
		len(rows) > 15,
		[]string{"| Locale | Problem | Key |\n", "| --- | --- | --- |\n"},
		rows,
	)
}

func (m *MarkdownGenerator) writeText(b *strings.Builder, res ports.TextScanResult, projectRoot string, collapsible bool) {
	b.WriteString("## Hardcoded Text\n")
	if res.OK() {
		b.WriteString(fmt.Sprintf("No hardcoded text found in %d scanned file(s).\n\n", res.FilesScanned))
		return
	}
	for _, group := range res.Groups {
		b.WriteString("### `" + relPath(projectRoot, group.File) + "`\n")
		rows := make([]string, 0, len(group.Findings))
		for _, f := range group.Findings {
			rows = append(rows, fmt.Sprintf("| %d | %s | `%s` |\n", f.Line, escapeCell(f.Content), escapeCell(f.Context)))
		}
		m.writeTableWithCollapse(
			b,
			fmt.Sprintf("%d finding(s)", len(rows)),
			collapsible,
			len(rows) > 10,
			[]string{"| Line | Text | Context |\n", "| --- | --- | --- |\n"},
			rows,
		)
	}
}

func (m *MarkdownGenerator) writeTableWithCollapse(
	b *strings.Builder,
	summary string,
	collapsible bool,
	collapse bool,
	header []string,
	rows []string,
) {
	if collapsible && collapse {
		b.WriteString("<details>\n")
		b.WriteString("<summary>")
		b.WriteString(summary)
		b.WriteString("</summary>\n\n")
	}
	for _, line := range header {
		b.WriteString(line)
	}
	for _, line := range rows {
		b.WriteString(line)
	}
	b.WriteString("\n")
	if collapsible && collapse {
		b.WriteString("</details>\n\n")
	}
}
