package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestCurrentUsesOverrides(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version = "1.2.3"
	GitCommit = "abc123def4567890"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Current()
	if info.Version != "1.2.3" || info.GitCommit != "abc123def4567890" || info.BuildDate != BuildDate {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
		t.Fatalf("runtime fields missing: %+v", info)
	}
}

func TestStringShortensCommit(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	s := Info{Version: "0.1.0-dev", GitCommit: "1234567890abcdef", GoVersion: "go1.25", Platform: "linux/amd64"}.String()
	if s != "dry 0.1.0-dev (1234567890ab) go1.25 linux/amd64" {
		t.Fatalf("got %q", s)
	}
}

func TestColoredKeepsText(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	for _, v := range []string{"0.1.0", "1.2.3-rc.1+build.5", "dev"} {
		if got := Colored(v); got != v {
			t.Fatalf("Colored(%q) = %q", v, got)
		}
	}
}
