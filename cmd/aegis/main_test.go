package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pyTestdata = filepath.Join("..", "..", "testdata", "python")

// runCLI runs the CLI with an isolated cache and returns the exit code, stdout and stderr.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"--color", "off"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"extract ok", []string{"extract", filepath.Join(pyTestdata, "basic.py")}, exitOK},
		{"no definition", []string{"extract", filepath.Join(pyTestdata, "no_def.py")}, exitNoDefinition},
		{"syntax error", []string{"extract", filepath.Join(pyTestdata, "broken.py")}, exitNoDefinition},
		{"async skipped", []string{"extract", filepath.Join(pyTestdata, "async_only.py")}, exitNoDefinition},
		{"async allowed", []string{"extract", "--include-async", filepath.Join(pyTestdata, "async_only.py")}, exitOK},
		{"missing file", []string{"extract", filepath.Join(pyTestdata, "missing.py")}, exitError},
		{"unknown engine", []string{"extract", "--engine", "regex", filepath.Join(pyTestdata, "basic.py")}, exitError},
		{"bad format", []string{"generate", "--format", "xml", filepath.Join(pyTestdata, "basic.py")}, exitError},
		{"bad config", []string{"generate", "-n", "0", filepath.Join(pyTestdata, "basic.py")}, exitError},
		{"match statement", []string{"extract", filepath.Join(pyTestdata, "match_stmt.py")}, exitOK},
		{"parse ok", []string{"parse", filepath.Join(pyTestdata, "decorated.py")}, exitOK},
		{"parse broken", []string{"parse", "--format", "json", filepath.Join(pyTestdata, "broken.py")}, exitError},
		{"bad color", []string{"--color", "sometimes", "version"}, exitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != tt.want {
				t.Fatalf("exit code = %d, want %d (stderr: %s)", code, tt.want, stderr)
			}
		})
	}
}

func TestRun_NoDefinitionPrintsDiagnosticOnce(t *testing.T) {
	code, _, stderr := runCLI(t, "extract", filepath.Join(pyTestdata, "no_def.py"))
	if code != exitNoDefinition {
		t.Fatalf("exit code = %d", code)
	}
	if n := strings.Count(stderr, "no function definition found"); n != 1 {
		t.Fatalf("message printed %d times:\n%s", n, stderr)
	}
	if strings.Contains(stderr, "error: reported") {
		t.Fatalf("internal marker leaked:\n%s", stderr)
	}
}

func TestExtract_JSON(t *testing.T) {
	code, stdout, stderr := runCLI(t, "extract", "--format", "json", filepath.Join(pyTestdata, "basic.py"))
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	var got struct {
		Name   string `json:"name"`
		Params []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"params"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if got.Name != "add" || len(got.Params) != 2 || got.Params[0].Name != "a" || got.Params[1].Type != "int" {
		t.Fatalf("signature = %+v", got)
	}
}

type generatedDoc struct {
	Function string           `json:"function"`
	Seed     uint64           `json:"seed"`
	Cases    []map[string]any `json:"cases"`
}

func TestGenerate_SeededOutputIsStable(t *testing.T) {
	args := []string{"generate", "--no-cache", "--seed", "7", "-n", "3", "--format", "json", filepath.Join(pyTestdata, "basic.py")}
	code, first, stderr := runCLI(t, args...)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	_, second, _ := runCLI(t, args...)
	if first != second {
		t.Fatalf("same seed gave different output:\n%s\n---\n%s", first, second)
	}

	var doc generatedDoc
	if err := json.Unmarshal([]byte(first), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Function != "add" || doc.Seed != 7 || len(doc.Cases) != 3 {
		t.Fatalf("doc = %+v", doc)
	}
	for i, c := range doc.Cases {
		for _, key := range []string{"a", "b"} {
			v, ok := c[key].(float64)
			if !ok || v < -100 || v > 100 {
				t.Fatalf("case %d %s = %v", i, key, c[key])
			}
		}
	}
}

func TestGenerate_Params(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.json")
	if err := os.WriteFile(path, []byte(`[{"name": "flag", "type": "bool"}, {"name": "xs", "type": "list[int]"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	code, stdout, stderr := runCLI(t, "generate", "--params", path, "--seed", "3", "-n", "4", "--format", "json")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	var doc generatedDoc
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Cases) != 4 {
		t.Fatalf("cases = %d", len(doc.Cases))
	}
	for _, c := range doc.Cases {
		if _, ok := c["flag"].(bool); !ok {
			t.Fatalf("flag = %#v", c["flag"])
		}
		if _, ok := c["xs"].([]any); !ok {
			t.Fatalf("xs = %#v", c["xs"])
		}
	}
}

func TestGenerate_Pretty(t *testing.T) {
	code, stdout, stderr := runCLI(t, "generate", "--no-cache", "--seed", "1", "-n", "2", filepath.Join(pyTestdata, "basic.py"))
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{"def add(a: int, b: int) -> int", "add (2 cases, seed 1)", "#1", "#2"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("output lacks %q:\n%s", want, stdout)
		}
	}
}

func TestGenerate_UsesManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := "[generate]\ncount = 2\nint_min = 5\nint_max = 5\nseed = 11\n"
	if err := os.WriteFile(filepath.Join(dir, manifestName), []byte(manifest), 0o600); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(sub, "f.py")
	if err := os.WriteFile(src, []byte("def f(x: int): pass\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := runCLI(t, "generate", "--format", "json", src)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	var doc generatedDoc
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Seed != 11 || len(doc.Cases) != 2 || doc.Cases[0]["x"] != float64(5) {
		t.Fatalf("doc = %+v", doc)
	}

	// flag overrides the file
	code, stdout, _ = runCLI(t, "generate", "--format", "json", "-n", "1", src)
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Cases) != 1 {
		t.Fatalf("cases = %d, want 1", len(doc.Cases))
	}
}

func TestTokenize(t *testing.T) {
	code, stdout, stderr := runCLI(t, "tokenize", filepath.Join(pyTestdata, "basic.py"))
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{"def", "add", "Indent", "EOF"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("tokens lack %q:\n%s", want, stdout)
		}
	}
}

func TestParse_SuggestsColon(t *testing.T) {
	src := filepath.Join(pyTestdata, "missing_colon.py")
	code, stdout, _ := runCLI(t, "parse", "--format", "json", src)
	if code != exitError {
		t.Fatalf("exit code = %d", code)
	}
	var out struct {
		Diagnostics []struct {
			Code  string `json:"code"`
			Fixes []struct {
				Title string `json:"title"`
				Edits []struct {
					NewText string `json:"new_text"`
				} `json:"edits"`
			} `json:"fixes"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if len(out.Diagnostics) == 0 || out.Diagnostics[0].Code != "SYN2003" {
		t.Fatalf("diagnostics = %+v", out.Diagnostics)
	}
	fixes := out.Diagnostics[0].Fixes
	if len(fixes) != 1 || fixes[0].Title != "insert ':'" || fixes[0].Edits[0].NewText != ":" {
		t.Fatalf("fixes = %+v", fixes)
	}

	_, pretty, _ := runCLI(t, "parse", src)
	if !strings.Contains(pretty, `insert ":" at 1:9`) {
		t.Fatalf("pretty output lacks fix:\n%s", pretty)
	}
}

func TestBatch_JSON(t *testing.T) {
	code, stdout, stderr := runCLI(t, "batch", "--ui", "off", "--no-cache", "--seed", "5", "-n", "2", "--format", "json", pyTestdata)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	var entries []struct {
		File     string `json:"file"`
		Error    string `json:"error"`
		Function string `json:"function"`
	}
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	byFile := make(map[string]string)
	for _, e := range entries {
		if e.Error != "" {
			byFile[e.File] = "error"
			continue
		}
		byFile[e.File] = e.Function
	}
	if byFile["match_stmt.py"] != "dispatch" {
		t.Fatalf("match_stmt.py = %q", byFile["match_stmt.py"])
	}
	if byFile["basic.py"] != "add" || byFile["no_def.py"] != "error" || byFile["broken.py"] != "error" {
		t.Fatalf("entries = %v", byFile)
	}
	if !strings.Contains(stderr, "batch:") || !strings.Contains(stderr, "(seed 5)") {
		t.Fatalf("summary missing:\n%s", stderr)
	}
}

func TestBatch_Out(t *testing.T) {
	out := t.TempDir()
	code, _, stderr := runCLI(t, "batch", "--ui", "off", "--no-cache", "--seed", "5", "--out", out, pyTestdata)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(out, "basic.json")); err != nil {
		t.Fatalf("basic.json not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "no_def.json")); err == nil {
		t.Fatalf("no_def.json should not be written")
	}
}

func TestInitAndClean(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	code, _, stderr := runCLI(t, "init", dir)
	if code != exitOK {
		t.Fatalf("init exit = %d, stderr: %s", code, stderr)
	}
	cfg, err := loadProjectConfig(filepath.Join(dir, manifestName))
	if err != nil {
		t.Fatalf("generated manifest does not load: %v", err)
	}
	if cfg != defaultProjectConfig() {
		t.Fatalf("config = %+v, want defaults", cfg)
	}
	if code, _, _ := runCLI(t, "init", dir); code != exitError {
		t.Fatalf("second init exit = %d, want %d", code, exitError)
	}

	code, stdout, _ := runCLI(t, "clean")
	if code != exitOK || !strings.Contains(stdout, "cache directory not found") {
		t.Fatalf("clean = %d %q", code, stdout)
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "version", "--format", "json")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	var info map[string]any
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info["version"] == "" || info["go_version"] == nil {
		t.Fatalf("info = %v", info)
	}
}

func TestRun_MemProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mem.pprof")
	if code, _, stderr := runCLI(t, "--mem-profile", path, "version"); code != exitOK {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("heap profile not written: %v", err)
	}
}
