package version

import (
	"runtime/debug"
	"testing"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	origRead, origVersion, origCommit := readBuildInfo, Version, GitCommit
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	t.Cleanup(func() {
		readBuildInfo, Version, GitCommit = origRead, origVersion, origCommit
	})
}

func TestGet_NoBuildInfo(t *testing.T) {
	withBuildInfo(t, nil, false)
	Version, GitCommit = "dev", ""

	info := Get()
	if info.Version != "dev" || info.GitCommit != "" {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Short() != "dev" {
		t.Errorf("expected short version dev, got %q", info.Short())
	}
}

func TestGet_FromDependency(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Deps:      []*debug.Module{{Path: modulePath, Version: "v1.4.0"}},
	}, true)
	Version, GitCommit = "dev", ""

	info := Get()
	if info.Version != "v1.4.0" {
		t.Errorf("expected dependency version, got %q", info.Version)
	}
	if info.GoVersion != "go1.26.0" {
		t.Errorf("unexpected go version %q", info.GoVersion)
	}
	if UserAgent() != "restclient/v1.4.0" {
		t.Errorf("unexpected user agent %q", UserAgent())
	}
}

func TestGet_VCSSettings(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "3f2a1bc9d8e7"},
			{Key: "vcs.modified", Value: "true"},
		},
	}, true)
	Version, GitCommit = "v2.0.0", ""

	info := Get()
	if info.GitCommit != "3f2a1bc" || !info.Dirty {
		t.Errorf("unexpected vcs info %+v", info)
	}
	if info.Short() != "v2.0.0-3f2a1bc-dirty" {
		t.Errorf("unexpected short version %q", info.Short())
	}
}

func TestGet_LdflagsWin(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		Deps:     []*debug.Module{{Path: modulePath, Version: "v1.0.0"}},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "aaaaaaaaaa"}},
	}, true)
	Version, GitCommit = "v9.9.9", "bbbbbbb"

	info := Get()
	if info.Version != "v9.9.9" || info.GitCommit != "bbbbbbb" {
		t.Errorf("ldflags values not preferred: %+v", info)
	}
}
