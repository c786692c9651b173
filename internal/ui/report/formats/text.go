package formats

import (
	"fmt"
	"io"
	"strings"

	"i18nguard/internal/core/ports"

	"github.com/charmbracelet/lipgloss"
)

// Styles decorates the text report. The zero value renders plain text.
type Styles struct {
	color   bool
	title   lipgloss.Style
	failure lipgloss.Style
	success lipgloss.Style
	muted   lipgloss.Style
}

func NewStyles(color bool) Styles {
	return Styles{
		color:   color,
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6")),
		failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F87171")),
		success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
	}
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}

// WriteText renders the human-readable report for every check in doc.
func WriteText(w io.Writer, doc Document, styles Styles) error {
	var b strings.Builder
	if doc.Keys != nil {
		writeKeysText(&b, *doc.Keys, doc.ProjectRoot, styles)
	}
	if doc.Text != nil {
		if doc.Keys != nil {
			b.WriteString("\n")
		}
		writeScanText(&b, *doc.Text, doc.ProjectRoot, styles)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeKeysText(b *strings.Builder, res ports.KeyParityResult, root string, st Styles) {
	b.WriteString(st.render(st.title, "Key parity") + "\n")
	if len(res.Reports) == 0 {
		b.WriteString(st.render(st.muted, "  no target locales to compare against "+res.Source) + "\n")
		return
	}

	missing, extra := 0, 0
	for _, r := range res.Reports {
		label := r.Source + " -> " + r.Target
		if r.TargetPath != "" {
			label += "  " + st.render(st.muted, relPath(root, r.TargetPath))
		}
		b.WriteString("  " + label + "\n")
		if r.OK() {
			b.WriteString("    " + st.render(st.success, "ok") + "\n")
			continue
		}
		if len(r.MissingInTarget) > 0 {
			b.WriteString("    " + st.render(st.failure, fmt.Sprintf("Missing in %s (%d):", r.Target, len(r.MissingInTarget))) + "\n")
			for _, key := range r.MissingInTarget {
				b.WriteString("      - " + key + "\n")
			}
		}
		if len(r.ExtraInTarget) > 0 {
			b.WriteString("    " + st.render(st.failure, fmt.Sprintf("Extra in %s (%d):", r.Target, len(r.ExtraInTarget))) + "\n")
			for _, key := range r.ExtraInTarget {
				b.WriteString("      - " + key + "\n")
			}
		}
		missing += len(r.MissingInTarget)
		extra += len(r.ExtraInTarget)
	}

	if res.OK() {
		b.WriteString(st.render(st.success, fmt.Sprintf("All %d keys verified across %d target locale(s).", res.Verified(), len(res.Reports))) + "\n")
		return
	}
	b.WriteString(st.render(st.failure, fmt.Sprintf("Key parity failed: %d missing, %d extra.", missing, extra)) + "\n")
}

func writeScanText(b *strings.Builder, res ports.TextScanResult, root string, st Styles) {
	b.WriteString(st.render(st.title, "Hardcoded text") + "\n")
	for _, group := range res.Groups {
		b.WriteString(relPath(root, group.File) + "\n")
		for _, f := range group.Findings {
			fmt.Fprintf(b, "  %d: %q  %s\n", f.Line, f.Content, st.render(st.muted, f.Context))
		}
	}

	if res.OK() {
		b.WriteString(st.render(st.success, fmt.Sprintf("No hardcoded text found in %d scanned file(s).", res.FilesScanned)) + "\n")
		return
	}
	b.WriteString(st.render(st.failure, fmt.Sprintf(
		"Found %d hardcoded text finding(s) in %d file(s) (%d scanned).",
		len(res.Findings), len(res.Groups), res.FilesScanned,
	)) + "\n")
}
