package history

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"
)

// ResolveGitMetadata returns the short HEAD hash and commit time of the
// repository at root. Both are zero when git or the repository is missing.
func ResolveGitMetadata(ctx context.Context, root string) (string, time.Time) {
	hash := runGit(ctx, root, "rev-parse", "--short=12", "HEAD")
	raw := runGit(ctx, root, "show", "-s", "--format=%cI", "HEAD")
	if hash == "" || raw == "" {
		return "", time.Time{}
	}

	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return hash, time.Time{}
	}
	return hash, ts.UTC()
}

func runGit(ctx context.Context, root string, args ...string) string {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", root}, args...)...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return ""
	}
	return strings.TrimSpace(stdout.String())
}
