package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	info := Current()
	if info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
		t.Fatalf("Current() = %+v", info)
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})

	// эмулируем -ldflags
	Version = "1.2.3"
	GitCommit = "abc123def456789"
	BuildDate = "2026-01-15T10:30:00Z"

	info := Current()
	if info.Version != "1.2.3" || info.GitCommit != "abc123def456789" || info.BuildDate != "2026-01-15T10:30:00Z" {
		t.Fatalf("Current() = %+v", info)
	}
}

func TestColored(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	tests := []struct {
		in, want string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3+build.7", "1.2.3+build.7"},
		{"nightly", "nightly"},
		{"1.2", "1.2"},
	}
	for _, tt := range tests {
		if got := Colored(tt.in); got != tt.want {
			t.Errorf("Colored(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	color.NoColor = false
	if got := Colored("1.2.3"); got == "1.2.3" || !strings.Contains(got, "\x1b[") {
		t.Errorf("Colored with color enabled = %q", got)
	}
}

func TestInfoString(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	info := Info{Version: "0.2.0", GitCommit: "0123456789abcdef", BuildDate: "2026-10-01", GoVersion: "go1.25.1", Platform: "linux/amd64"}
	want := "aegis 0.2.0 (0123456789ab, 2026-10-01) go1.25.1 linux/amd64"
	if got := info.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	info.GitCommit = ""
	if got := info.String(); got != "aegis 0.2.0 go1.25.1 linux/amd64" {
		t.Fatalf("String() without commit = %q", got)
	}
}
