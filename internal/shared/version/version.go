// Package version holds build metadata stamped in with -ldflags.
package version

var (
	Version = "dev"
	Commit  = ""
)

// String renders the version with the short commit when known.
func String() string {
	if len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	if Commit != "" {
		return Version + " (" + Commit + ")"
	}
	return Version
}
