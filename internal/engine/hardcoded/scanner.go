// Package hardcoded flags literal user-facing text in UI markup that skips
// the translation layer. Detection is line based and heuristic: every rule
// is a small predicate on one line, so the rule set grows without touching
// traversal or reporting.
package hardcoded

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"i18nguard/internal/core/errors"
	"i18nguard/internal/engine/jsx"
)

// TextExtractor returns literal text nodes of a source file.
type TextExtractor func(path string, content []byte) ([]jsx.TextNode, error)

type Scanner struct {
	rules      rules
	inContext  ContextPredicate
	structural bool
	extract    TextExtractor
}

// Result is the outcome of scanning a set of files.
type Result struct {
	Findings        []Finding   `json:"findings"`
	Groups          []FileGroup `json:"groups"`
	FilesDiscovered int         `json:"files_discovered"`
	FilesScanned    int         `json:"files_scanned"`
}

func (r Result) OK() bool {
	return len(r.Findings) == 0
}

func NewScanner(cfg Config) (*Scanner, error) {
	compiled, err := compileRules(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "invalid scanner rules")
	}
	s := &Scanner{
		rules:      compiled,
		structural: cfg.Structural,
		extract:    jsx.Extract,
	}
	s.inContext = s.InTranslationContext
	return s, nil
}

// WithContextPredicate replaces the translation-context heuristic.
func (s *Scanner) WithContextPredicate(p ContextPredicate) *Scanner {
	if p != nil {
		s.inContext = p
	}
	return s
}

// WithTextExtractor replaces the structural text extractor.
func (s *Scanner) WithTextExtractor(e TextExtractor) *Scanner {
	if e != nil {
		s.extract = e
	}
	return s
}

// ScanFile scans one file. Files outside page and component directories
// yield nothing; read failures are returned. The directory test runs on path
// as given, so pass it relative to the project when it is absolute.
func (s *Scanner) ScanFile(path string) ([]Finding, error) {
	findings, _, err := s.scanFile("", path)
	return findings, err
}

// scanFile tests the directory markers against path relative to root, so the
// directories the project is checked out under never count.
func (s *Scanner) scanFile(root, path string) ([]Finding, bool, error) {
	if !s.IsPageOrComponent(relativeTo(root, path)) {
		return nil, false, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false, errors.AddContext(errors.Wrap(err, errors.CodeIO, "read source file"), errors.CtxPath, path)
	}
	return s.ScanContent(path, content), true, nil
}

// ScanAll scans files discovered under root in order and stops at the first
// I/O failure: a partial scan must never pass as clean.
func (s *Scanner) ScanAll(ctx context.Context, root string, files []string) (Result, error) {
	all := make([]Finding, 0)
	scanned := 0
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		findings, ok, err := s.scanFile(root, path)
		if err != nil {
			return Result{}, err
		}
		if ok {
			scanned++
		}
		all = append(all, findings...)
	}

	deduped := Dedupe(all)
	return Result{
		Findings:        deduped,
		Groups:          Group(deduped),
		FilesDiscovered: len(files),
		FilesScanned:    scanned,
	}, nil
}

func relativeTo(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// ScanContent runs the line passes, and the structural pass when enabled,
// over content attributed to path.
func (s *Scanner) ScanContent(path string, content []byte) []Finding {
	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	findings := make([]Finding, 0)
	for i, line := range lines {
		findings = append(findings, s.scanLine(path, i+1, line)...)
	}
	if s.structural {
		findings = append(findings, s.structuralPass(path, content, lines, findings)...)
	}
	return findings
}

func (s *Scanner) scanLine(path string, lineNo int, line string) []Finding {
	if s.IsSkippableLine(line) {
		return nil
	}
	if !strings.Contains(line, ">") {
		return nil
	}

	known := s.knownPhrasePass(path, lineNo, line)
	generic := s.genericTextPass(path, lineNo, line, known)
	return append(known, generic...)
}

func (s *Scanner) knownPhrasePass(path string, lineNo int, line string) []Finding {
	findings := make([]Finding, 0)
	for _, phrase := range s.rules.phrases {
		if s.IsAllowListed(phrase) {
			continue
		}
		offset := 0
		for {
			idx := strings.Index(line[offset:], phrase)
			if idx < 0 {
				break
			}
			idx += offset
			offset = idx + len(phrase)

			prefix := line[:idx]
			if s.inContext(line, idx) || inComment(prefix) {
				continue
			}
			if !strings.Contains(prefix, "<") || inAttributeOpening(prefix) {
				continue
			}
			findings = append(findings, s.newFinding(path, lineNo, idx, phrase, line, KindKnownPhrase))
			break
		}
	}
	return findings
}

func (s *Scanner) genericTextPass(path string, lineNo int, line string, known []Finding) []Finding {
	findings := make([]Finding, 0)
	for _, m := range genericTextRE.FindAllStringSubmatchIndex(line, -1) {
		start, end := m[2], m[3]
		raw := line[start:end]
		text := strings.TrimSpace(raw)
		if !s.LooksLikeGenericProse(text) {
			continue
		}
		if s.IsAllowListed(text) {
			continue
		}
		if overlaps(known, text) {
			continue
		}
		if s.inContext(line, start) {
			continue
		}
		findings = append(findings, s.newFinding(path, lineNo, start, text, line, KindGenericText))
	}
	return findings
}

// structuralPass judges text nodes that start on lines the line passes never
// considered (no '>' on the line), using the generic-text rules.
func (s *Scanner) structuralPass(path string, content []byte, lines []string, lineFindings []Finding) []Finding {
	if s.extract == nil || !jsx.Supported(path) {
		return nil
	}
	nodes, err := s.extract(path, content)
	if err != nil {
		slog.Warn("structural text extraction failed", "path", path, "error", err)
		return nil
	}

	findings := make([]Finding, 0)
	for _, node := range nodes {
		if node.Line < 1 || node.Line > len(lines) {
			continue
		}
		line := lines[node.Line-1]
		if strings.Contains(line, ">") || s.IsSkippableLine(line) {
			continue
		}
		if !startsUpper(node.Text) || !s.LooksLikeGenericProse(node.Text) {
			continue
		}
		if s.IsAllowListed(node.Text) || overlaps(sameLine(lineFindings, node.Line), node.Text) {
			continue
		}
		col := node.Column - 1
		if s.inContext(line, col) {
			continue
		}
		f := s.newFinding(path, node.Line, col, node.Text, line, KindJSXText)
		findings = append(findings, f)
	}
	return findings
}

func (s *Scanner) newFinding(path string, lineNo, byteIdx int, content, line string, kind Kind) Finding {
	return Finding{
		File:    path,
		Line:    lineNo,
		Column:  byteIdx + 1,
		Content: content,
		Context: Truncate(line, s.rules.contextWidth),
		Kind:    kind,
	}
}

func overlaps(findings []Finding, text string) bool {
	for _, f := range findings {
		if strings.Contains(text, f.Content) || strings.Contains(f.Content, text) {
			return true
		}
	}
	return false
}

func sameLine(findings []Finding, line int) []Finding {
	out := make([]Finding, 0)
	for _, f := range findings {
		if f.Line == line {
			out = append(out, f)
		}
	}
	return out
}
