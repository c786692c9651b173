package hardcoded

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

type Kind string

const (
	KindKnownPhrase Kind = "known-phrase"
	KindGenericText Kind = "generic-text"
	KindJSXText     Kind = "jsx-text"
)

// Finding is one suspected untranslated literal.
type Finding struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Content string `json:"content"`
	Context string `json:"context"`
	Kind    Kind   `json:"kind"`
}

func (f Finding) key() string {
	return fmt.Sprintf("%s:%d:%s", f.File, f.Line, f.Content)
}

// FileGroup holds the findings of one file in line order.
type FileGroup struct {
	File     string    `json:"file"`
	Findings []Finding `json:"findings"`
}

// Dedupe drops findings repeating an earlier (file, line, content) triple and
// returns the rest sorted by file, line, column and content.
func Dedupe(findings []Finding) []Finding {
	seen := make(map[string]struct{}, len(findings))
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		k := f.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, f)
	}
	sortFindings(out)
	return out
}

// Group buckets findings per file; files are sorted by path.
func Group(findings []Finding) []FileGroup {
	byFile := make(map[string][]Finding)
	for _, f := range findings {
		byFile[f.File] = append(byFile[f.File], f)
	}
	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	groups := make([]FileGroup, 0, len(files))
	for _, file := range files {
		items := byFile[file]
		sortFindings(items)
		groups = append(groups, FileGroup{File: file, Findings: items})
	}
	return groups
}

func sortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Content < b.Content
	})
}

// Truncate trims s and shortens it to at most width runes, marking the cut
// with "...".
func Truncate(s string, width int) string {
	s = strings.TrimSpace(s)
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}
