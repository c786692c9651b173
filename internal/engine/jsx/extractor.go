// Package jsx pulls literal text nodes out of JSX/TSX and HTML sources with
// tree-sitter so prose that spans its own lines can be judged as a unit.
package jsx

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"i18nguard/internal/core/errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// TextNode is one literal text run with whitespace collapsed.
type TextNode struct {
	Text   string
	Line   int
	Column int
	// EndLine is the 1-based line of the last non-blank character.
	EndLine int
}

type grammar struct {
	language *sitter.Language
	textKind string
}

func grammarFor(path string) (grammar, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsx":
		return grammar{language: sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()), textKind: "jsx_text"}, true
	case ".jsx", ".js":
		return grammar{language: sitter.NewLanguage(tree_sitter_javascript.Language()), textKind: "jsx_text"}, true
	case ".html", ".htm":
		return grammar{language: sitter.NewLanguage(tree_sitter_html.Language()), textKind: "text"}, true
	}
	return grammar{}, false
}

// Supported reports whether Extract understands the file type of path.
func Supported(path string) bool {
	_, ok := grammarFor(path)
	return ok
}

// Extract returns the non-blank text nodes of content in source order.
// Unsupported file types yield no nodes and no error.
func Extract(path string, content []byte) ([]TextNode, error) {
	g, ok := grammarFor(path)
	if !ok {
		return nil, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(g.language); err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "load grammar"), errors.CtxPath, path)
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.AddContext(errors.New(errors.CodeParse, "parse failed"), errors.CtxPath, path)
	}
	defer tree.Close()

	nodes := make([]TextNode, 0)
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.Kind() == g.textKind {
			if node, ok := textNode(n, content); ok {
				nodes = append(nodes, node)
			}
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(tree.RootNode())
	return nodes, nil
}

func textNode(n *sitter.Node, source []byte) (TextNode, bool) {
	raw := n.Utf8Text(source)
	collapsed := strings.Join(strings.Fields(raw), " ")
	if collapsed == "" {
		return TextNode{}, false
	}

	start := n.StartPosition()
	line := int(start.Row) + 1
	col := int(start.Column) + 1
	first := strings.IndexFunc(raw, func(r rune) bool { return !unicode.IsSpace(r) })
	for _, r := range raw[:first] {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}

	last := strings.LastIndexFunc(raw, func(r rune) bool { return !unicode.IsSpace(r) })
	endLine := line + strings.Count(raw[first:last+1], "\n")

	return TextNode{Text: collapsed, Line: line, Column: col, EndLine: endLine}, true
}

func (n TextNode) String() string {
	return fmt.Sprintf("%d:%d %q", n.Line, n.Column, n.Text)
}
