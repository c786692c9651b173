package hardcoded

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDedupe(t *testing.T) {
	findings := []Finding{
		{File: "b.tsx", Line: 2, Column: 5, Content: "Learn more", Kind: KindKnownPhrase},
		{File: "a.tsx", Line: 9, Column: 1, Content: "Click to see"},
		{File: "b.tsx", Line: 2, Column: 5, Content: "Learn more", Kind: KindGenericText},
		{File: "a.tsx", Line: 3, Column: 1, Content: "Click to see"},
	}

	got := Dedupe(findings)
	if len(got) != 3 {
		t.Fatalf("expected 3 findings after dedupe, got %d: %#v", len(got), got)
	}
	if got[0].File != "a.tsx" || got[0].Line != 3 {
		t.Fatalf("expected sorted output, got %#v", got[0])
	}
	if got[2].Kind != KindKnownPhrase {
		t.Fatalf("expected first occurrence to be kept, got %s", got[2].Kind)
	}
}

func TestGroup(t *testing.T) {
	groups := Group([]Finding{
		{File: "z.tsx", Line: 4},
		{File: "a.tsx", Line: 7},
		{File: "a.tsx", Line: 2},
	})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].File != "a.tsx" || groups[0].Findings[0].Line != 2 {
		t.Fatalf("unexpected grouping %#v", groups)
	}
}

func TestTruncate(t *testing.T) {
	long := "  <p>" + strings.Repeat("Attention ", 30) + "</p>"
	got := Truncate(long, 120)
	if utf8.RuneCountInString(got) != 120 {
		t.Fatalf("expected 120 runes, got %d", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "...") || !strings.HasPrefix(got, "<p>") {
		t.Fatalf("unexpected truncation %q", got)
	}

	if got := Truncate("  <p>Kurz</p>  ", 120); got != "<p>Kurz</p>" {
		t.Fatalf("expected trimmed short line, got %q", got)
	}
	if got := Truncate("Größenordnung", 3); got != "Grö" {
		t.Fatalf("expected rune-safe cut, got %q", got)
	}
}
