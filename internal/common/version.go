package common

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	toml "github.com/pelletier/go-toml/v2"
)

// Version variables injected at build time via ldflags
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// BuildInfo is the layout of the .version file shipped next to the binary:
//
//	version = "1.2.3"
//	build = "2025-06-01T10:00:00Z"
//	commit = "abc123"
type BuildInfo struct {
	Version string `toml:"version"`
	Build   string `toml:"build"`
	Commit  string `toml:"commit"`
}

// GetVersion returns the semantic version string
func GetVersion() string {
	return Version
}

// GetBuild returns the build timestamp
func GetBuild() string {
	return Build
}

// GetGitCommit returns the short git commit hash
func GetGitCommit() string {
	return GitCommit
}

// GetFullVersion returns a formatted version string with all build info
func GetFullVersion() string {
	return fmt.Sprintf("brokercheck %s (build: %s, commit: %s)", Version, Build, GitCommit)
}

// LoadVersionFromFile fills variables still at their defaults, first from the
// .version file next to the binary, then from the VCS stamp go build embeds.
func LoadVersionFromFile() {
	if exe, err := os.Executable(); err == nil {
		loadVersionFile(filepath.Join(filepath.Dir(exe), ".version"))
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		applyBuildSettings(bi.Settings)
	}
}

func loadVersionFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var info BuildInfo
	if err := toml.Unmarshal(data, &info); err != nil {
		return
	}
	applyBuildInfo(info)
}

func applyBuildInfo(info BuildInfo) {
	if Version == "dev" && info.Version != "" {
		Version = info.Version
	}
	if Build == "unknown" && info.Build != "" {
		Build = info.Build
	}
	if GitCommit == "unknown" && info.Commit != "" {
		GitCommit = info.Commit
	}
}

// applyBuildSettings reads vcs.revision and vcs.time; a dirty tree gets a "-dirty" suffix.
func applyBuildSettings(settings []debug.BuildSetting) {
	var info BuildInfo
	dirty := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
			if len(info.Commit) > 7 {
				info.Commit = info.Commit[:7]
			}
		case "vcs.time":
			info.Build = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty && info.Commit != "" {
		info.Commit += "-dirty"
	}
	applyBuildInfo(info)
}
