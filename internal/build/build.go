// Package build holds the version information stamped in by the linker.
package build

import (
	"runtime/debug"
	"time"
)

var (
	commit  = ""
	date    = ""
	version = "dev"
	repoURL = ""
)

func init() {
	Current = newBuild(commit, date, version, repoURL)
}

var Current Build

type Build struct {
	Commit     string    `json:"commit,omitempty"`
	Version    string    `json:"version,omitempty"`
	Date       time.Time `json:"date,omitempty"`
	RepoURL    string    `json:"repo_url,omitempty"`
	CommitURL  string    `json:"commit_url,omitempty"`
	ReleaseURL string    `json:"release_url,omitempty"`
}

func newBuild(commit, date, version, repoURL string) Build {
	// Plain go builds carry the vcs stamp instead of linker flags.
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && commit == "":
				commit = s.Value
			case s.Key == "vcs.time" && date == "":
				date = s.Value
			}
		}
	}

	parsed, _ := time.Parse(time.RFC3339, date)

	b := Build{
		Commit:     commit,
		Version:    version,
		Date:       parsed,
		RepoURL:    repoURL,
		CommitURL:  "#",
		ReleaseURL: "#",
	}
	if repoURL != "" {
		b.CommitURL = repoURL + "/tree/" + commit
		b.ReleaseURL = repoURL + "/releases/tag/" + version
	}
	return b
}
