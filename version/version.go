// Package version reports the build version of the module. It names the
// module in the User-Agent of outgoing calls and in the instrumentation
// scope of traces and metrics.
package version

import (
	"runtime/debug"
	"strings"
)

// Set at build time with -ldflags "-X github.com/kbukum/restclient/version.Version=v1.2.3".
var (
	Version   = "dev"
	GitCommit = ""
)

// Product is the User-Agent product token.
const Product = "restclient"

// modulePath is used to find the module version when built as a dependency.
const modulePath = "github.com/kbukum/restclient"

// Info is the resolved build information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Get resolves the build information. Values set with -ldflags win over
// the information embedded by the Go toolchain.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == "dev" {
		for _, dep := range bi.Deps {
			if dep.Path == modulePath && dep.Version != "" && dep.Version != "(devel)" {
				info.Version = dep.Version
			}
		}
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	return info
}

// Short returns the version with the short commit, e.g. "v1.2.0-3f2a1bc".
func (i Info) Short() string {
	parts := []string{i.Version}
	if i.GitCommit != "" {
		parts = append(parts, i.GitCommit)
	}
	if i.Dirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}

// UserAgent returns the User-Agent value of outgoing calls.
func UserAgent() string {
	return Product + "/" + Get().Version
}
