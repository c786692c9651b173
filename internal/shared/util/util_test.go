package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSortedStringKeys(t *testing.T) {
	t.Parallel()

	m := map[string]int{"de": 2, "en": 1, "fr": 3}
	keys := SortedStringKeys(m)
	expected := []string{"de", "en", "fr"}
	if len(keys) != len(expected) {
		t.Fatalf("expected %d keys, got %d", len(expected), len(keys))
	}
	for i, key := range expected {
		if keys[i] != key {
			t.Fatalf("expected %q at %d, got %q", key, i, keys[i])
		}
	}
}

func TestOpenOutput(t *testing.T) {
	t.Parallel()

	stdout, err := OpenOutput("-")
	if err != nil {
		t.Fatalf("open stdout failed: %v", err)
	}
	if err := stdout.Close(); err != nil {
		t.Fatalf("closing stdout wrapper must be a no-op: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out", "report.sarif")
	w, err := OpenOutput(path)
	if err != nil {
		t.Fatalf("open file failed: %v", err)
	}
	if _, err := w.Write([]byte("{}")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "{}" {
		t.Fatalf("unexpected file content %q, %v", string(got), err)
	}
}

func TestRelSlash(t *testing.T) {
	t.Parallel()

	base := filepath.Join("repo", "src")
	cases := []struct {
		path string
		want string
	}{
		{filepath.Join("repo", "src", "app", "page.tsx"), "app/page.tsx"},
		{filepath.Join("repo", "locales", "en.json"), "repo/locales/en.json"},
	}
	for _, tc := range cases {
		if got := RelSlash(base, tc.path); got != tc.want {
			t.Fatalf("RelSlash(%q, %q) = %q, want %q", base, tc.path, got, tc.want)
		}
	}
	if got := RelSlash("", "a/b.tsx"); got != "a/b.tsx" {
		t.Fatalf("expected path unchanged without base, got %q", got)
	}
}
