package formats

import "testing"

func TestRelPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		root, path, want string
	}{
		{"/project", "/project/src/app/page.tsx", "src/app/page.tsx"},
		{"/project", "/project", "."},
		{"/project", "/elsewhere/en.json", "/elsewhere/en.json"},
		{"", "/abs/en.json", "/abs/en.json"},
		{"/project", "", ""},
	}
	for _, tc := range cases {
		if got := relPath(tc.root, tc.path); got != tc.want {
			t.Errorf("relPath(%q, %q) = %q, want %q", tc.root, tc.path, got, tc.want)
		}
	}
}

func TestEscapeCell(t *testing.T) {
	t.Parallel()

	got := escapeCell("a | `b`\nc")
	want := "a \\| 'b' c"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
