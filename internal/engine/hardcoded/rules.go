package hardcoded

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	defaultMinFlagLength    = 15
	defaultMinFlagWordCount = 3
	defaultContextWidth     = 120
)

var (
	// Text between a closing '>' and the next '<' that starts with a capital
	// letter and holds only letters, digits, whitespace and basic punctuation.
	genericTextRE = regexp.MustCompile(`>\s*([A-Z][\p{L}\p{N}\s.,;:!?'’"()&%/+\-–—…]*)<`)
	numericUnitRE = regexp.MustCompile(`^[~≈]?\d[\d\s.,:%×x+\-/]*(?:[A-Za-z%]{1,8})?$`)
	properDigitRE = regexp.MustCompile(`^[A-Z][\p{L}]*[\s\-]?\d`)

	attributeOpeners = []string{`="`, `='`, `={"`, `={'`, "={`"}
)

// Config is the static rule set of a Scanner. Empty tables mean "nothing
// configured"; zero thresholds fall back to the defaults.
type Config struct {
	KnownPhrases       []string
	AllowList          []string
	SkipPatterns       []string
	TranslationMarkers []string
	ComponentDirs      []string
	MinFlagLength      int
	MinFlagWordCount   int
	ContextWidth       int
	Structural         bool
}

// ContextPredicate reports whether the text starting at byte offset idx of
// line is already routed through the translation layer.
type ContextPredicate func(line string, idx int) bool

type rules struct {
	phrases       []string
	allow         []string
	skip          []*regexp.Regexp
	markers       []*regexp.Regexp
	componentDirs []string
	minLength     int
	minWords      int
	contextWidth  int
}

func compileRules(cfg Config) (rules, error) {
	r := rules{
		phrases:       nonEmpty(cfg.KnownPhrases),
		allow:         nonEmpty(cfg.AllowList),
		componentDirs: normalizeDirs(cfg.ComponentDirs),
		minLength:     cfg.MinFlagLength,
		minWords:      cfg.MinFlagWordCount,
		contextWidth:  cfg.ContextWidth,
	}
	if r.minLength <= 0 {
		r.minLength = defaultMinFlagLength
	}
	if r.minWords <= 0 {
		r.minWords = defaultMinFlagWordCount
	}
	if r.contextWidth <= 0 {
		r.contextWidth = defaultContextWidth
	}

	var err error
	if r.skip, err = compileAll("skip pattern", cfg.SkipPatterns); err != nil {
		return rules{}, err
	}
	if r.markers, err = compileAll("translation marker", cfg.TranslationMarkers); err != nil {
		return rules{}, err
	}
	return r, nil
}

func compileAll(kind string, patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile %s %q: %w", kind, p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func normalizeDirs(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		d = strings.Trim(filepath.ToSlash(strings.TrimSpace(d)), "/")
		if d != "" {
			out = append(out, "/"+d+"/")
		}
	}
	return out
}

// IsPageOrComponent reports whether path sits under one of the configured
// page or component directories. With no directories configured every file
// qualifies.
func (s *Scanner) IsPageOrComponent(path string) bool {
	if len(s.rules.componentDirs) == 0 {
		return true
	}
	slashed := "/" + strings.TrimPrefix(filepath.ToSlash(path), "/")
	for _, dir := range s.rules.componentDirs {
		if strings.Contains(slashed, dir) {
			return true
		}
	}
	return false
}

// IsSkippableLine reports whether the trimmed line has a shape that never
// carries visible text.
func (s *Scanner) IsSkippableLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	for _, re := range s.rules.skip {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// IsAllowListed reports whether text equals an allow-list entry or is a
// substring of one.
func (s *Scanner) IsAllowListed(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	for _, entry := range s.rules.allow {
		if entry == text || strings.Contains(entry, text) {
			return true
		}
	}
	return false
}

// LooksLikeGenericProse applies the length, word count and shape thresholds
// of the generic-text pass.
func (s *Scanner) LooksLikeGenericProse(text string) bool {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < s.rules.minLength {
		return false
	}
	if len(strings.Fields(text)) < s.rules.minWords {
		return false
	}
	if numericUnitRE.MatchString(text) {
		return false
	}
	if properDigitRE.MatchString(text) {
		return false
	}
	return true
}

// InTranslationContext is the default ContextPredicate: the text counts as
// translated when a translation marker appears earlier on the same line.
func (s *Scanner) InTranslationContext(line string, idx int) bool {
	if idx > len(line) {
		idx = len(line)
	}
	prefix := line[:idx]
	for _, re := range s.rules.markers {
		if re.MatchString(prefix) {
			return true
		}
	}
	return false
}

func inComment(prefix string) bool {
	if open := strings.LastIndex(prefix, "/*"); open >= 0 && strings.LastIndex(prefix, "*/") < open {
		return true
	}
	for i := strings.Index(prefix, "//"); i >= 0; {
		if i == 0 || prefix[i-1] != ':' {
			return true
		}
		next := strings.Index(prefix[i+2:], "//")
		if next < 0 {
			break
		}
		i += 2 + next
	}
	return false
}

func inAttributeOpening(prefix string) bool {
	for _, opener := range attributeOpeners {
		if strings.HasSuffix(prefix, opener) {
			return true
		}
	}
	return false
}

func startsUpper(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	return unicode.IsUpper(r)
}
