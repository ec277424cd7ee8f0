// Package version holds build metadata injected via ldflags.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// UserAgent is the default User-Agent of outgoing API requests.
func UserAgent() string {
	return "hadithview/" + Version
}

// String is the one-line build summary printed by the version command.
func String() string {
	return "hadith " + Version + " (commit " + Commit + ", built " + Date + ")"
}
