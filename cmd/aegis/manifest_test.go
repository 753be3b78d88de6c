package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
		check   func(t *testing.T, cfg projectConfig)
	}{
		{
			name: "partial keeps defaults",
			body: "[generate]\ncount = 3\n",
			check: func(t *testing.T, cfg projectConfig) {
				if cfg.Generate.Count != 3 || cfg.Generate.IntMax != 100 || cfg.Extract.Engine != "native" {
					t.Fatalf("cfg = %+v", cfg)
				}
			},
		},
		{
			name: "all keys",
			body: "[generate]\ncount = 1\nint_min = -1\nint_max = 1\nfloat_min = 0.5\nfloat_max = 2.5\nstring_length = 4\nseed = 9\n" +
				"[extract]\nengine = \"treesitter\"\ninclude_async = true\n",
			check: func(t *testing.T, cfg projectConfig) {
				g := cfg.Generate
				if g.Count != 1 || g.IntMin != -1 || g.FloatMax != 2.5 || g.StringLength != 4 || g.Seed != 9 {
					t.Fatalf("generate = %+v", g)
				}
				if cfg.Extract.Engine != "treesitter" || !cfg.Extract.IncludeAsync {
					t.Fatalf("extract = %+v", cfg.Extract)
				}
			},
		},
		{name: "unknown key", body: "[generate]\ncuont = 3\n", wantErr: "unknown keys: generate.cuont"},
		{name: "unknown section", body: "[run]\nmain = \"x\"\n", wantErr: "unknown keys"},
		{name: "bad engine", body: "[extract]\nengine = \"regex\"\n", wantErr: "[extract].engine"},
		{name: "inverted range", body: "[generate]\nint_min = 5\nint_max = 1\n", wantErr: "[generate]"},
		{name: "syntax", body: "[generate\n", wantErr: "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.body)
			cfg, err := loadProjectConfig(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want substring %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestFindManifest_WalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "")
	deep := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := findManifest(deep)
	if err != nil || !ok {
		t.Fatalf("findManifest = %q %v %v", got, ok, err)
	}
	wantAbs, _ := filepath.Abs(want)
	if got != wantAbs {
		t.Fatalf("found %q, want %q", got, wantAbs)
	}
}

func TestBuildDefaultManifestRoundTrip(t *testing.T) {
	path := writeManifest(t, t.TempDir(), buildDefaultManifest())
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != defaultProjectConfig() {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestResolveSettings_FlagsOverrideManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[generate]\ncount = 3\nint_min = -5\nint_max = 5\nseed = 42\n[extract]\ninclude_async = true\n")

	cmd := &cobra.Command{Use: "test"}
	addExtractFlags(cmd)
	addGenerateFlags(cmd)
	if err := cmd.ParseFlags([]string{"-n", "7", "--engine", "treesitter", "--int-max", "9"}); err != nil {
		t.Fatal(err)
	}

	st, err := resolveSettings(cmd, dir)
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if st.Gen.Count != 7 || st.Gen.IntMin != -5 || st.Gen.IntMax != 9 {
		t.Fatalf("gen = %+v", st.Gen)
	}
	if st.Seed != 42 || st.Engine != "treesitter" || !st.IncludeAsync {
		t.Fatalf("settings = %+v", st)
	}
	if !strings.HasSuffix(st.Manifest, manifestName) {
		t.Fatalf("manifest = %q", st.Manifest)
	}
}

func TestResolveSettings_NoManifest(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addGenerateFlags(cmd)
	if err := cmd.ParseFlags([]string{"--seed", "5"}); err != nil {
		t.Fatal(err)
	}
	st, err := resolveSettings(cmd, t.TempDir())
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if st.Seed != 5 || st.Gen.Count != 10 || st.Engine != "native" || st.NoCache {
		t.Fatalf("settings = %+v", st)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("always"); err == nil {
		t.Fatal("expected error for invalid mode")
	}
	if shouldUseTUI(uiModeAuto, &strings.Builder{}) {
		t.Fatal("auto must be off for non-terminal writers")
	}
}
