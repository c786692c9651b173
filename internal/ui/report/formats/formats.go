// Package formats renders check results as text, JSON, SARIF or Markdown.
package formats

import (
	"fmt"
	"io"
	"time"

	"i18nguard/internal/core/ports"
)

const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatSARIF    = "sarif"
	FormatMarkdown = "markdown"
)

// Document is the input to every renderer. Either check may be absent.
type Document struct {
	ProjectRoot string
	Keys        *ports.KeyParityResult
	Text        *ports.TextScanResult
}

func (d Document) OK() bool {
	if d.Keys != nil && !d.Keys.OK() {
		return false
	}
	return d.Text == nil || d.Text.OK()
}

type Options struct {
	Color       bool
	ProjectName string
	GeneratedAt time.Time
}

// Render writes doc to w in the named format.
func Render(w io.Writer, format string, doc Document, opts Options) error {
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now().UTC()
	}
	switch format {
	case "", FormatText:
		return WriteText(w, doc, NewStyles(opts.Color))
	case FormatJSON:
		data, err := GenerateJSON(doc, opts.GeneratedAt)
		if err != nil {
			return err
		}
		return writeBytes(w, data)
	case FormatSARIF:
		data, err := GenerateSARIF(doc.ProjectRoot, doc.Keys, doc.Text)
		if err != nil {
			return err
		}
		return writeBytes(w, data)
	case FormatMarkdown:
		out, err := NewMarkdownGenerator().Generate(doc, MarkdownReportOptions{
			ProjectName:         opts.ProjectName,
			GeneratedAt:         opts.GeneratedAt,
			TableOfContents:     true,
			CollapsibleSections: true,
		})
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeBytes(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
