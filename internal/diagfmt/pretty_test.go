package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"aegis/internal/diag"
	"aegis/internal/lexer"
	"aegis/internal/source"
	"aegis/internal/token"
)

func sampleBag() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	content := []byte("def f(x):\n    return 'unterminated\n")
	fileID := fs.AddVirtual("test.py", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 21, End: 34},
		"unterminated string literal",
	).WithNote(source.Span{File: fileID, Start: 0, End: 3}, "inside this function"))
	return bag, fs
}

func TestPretty(t *testing.T) {
	bag, fs := sampleBag()
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true})
	out := buf.String()

	for _, want := range []string{
		"test.py:2:12: ERROR LEX1002: unterminated string literal",
		" 2 |     return 'unterminated",
		"^~~~~~~~~~~~",
		"test.py:1:1: note: inside this function",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("colors must be off:\n%q", out)
	}
}

func TestPretty_CaretColumn(t *testing.T) {
	bag, fs := sampleBag()
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("short output %q", buf.String())
	}
	src, caret := lines[1], lines[2]
	if strings.Index(caret, "^") != strings.Index(src, "'") {
		t.Fatalf("caret misaligned:\n%s\n%s", src, caret)
	}
}

func TestPretty_TimingsOneLine(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("x.py", nil)
	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "timings (extract): total 1.00 ms"))
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if got := buf.String(); got != "INFO OBS6001: timings (extract): total 1.00 ms\n" {
		t.Fatalf("got %q", got)
	}
}

func TestJSON(t *testing.T) {
	bag, fs := sampleBag()
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "LEX1002" || d.Severity != "ERROR" || d.Location.File != "test.py" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 12 {
		t.Fatalf("position %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
	if d.Notes != nil {
		t.Fatalf("notes must be omitted without IncludeNotes")
	}
}

func TestJSON_MaxAndNilBag(t *testing.T) {
	bag, fs := sampleBag()
	bag.Add(diag.NewError(diag.SynExpectColon, source.Span{}, "expected ':'"))
	if got := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1}); got.Count != 1 {
		t.Fatalf("Max not applied: %d", got.Count)
	}
	if got := BuildDiagnosticsOutput(nil, fs, JSONOpts{}); got.Count != 0 || got.Diagnostics == nil {
		t.Fatalf("nil bag must give an empty list, got %+v", got)
	}
}

func TestTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.py", []byte("x = 1  # c\n")))
	lx := lexer.New(file, lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(pretty.String(), "  1: Ident") || !strings.Contains(pretty.String(), `"x" at 1:1-1:2`) {
		t.Fatalf("pretty tokens:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(toks) || out[len(out)-1].Kind != "EOF" {
		t.Fatalf("json tokens = %+v", out)
	}
	if out[2].Kind != "IntLit" || out[2].Line != 1 || out[2].Col != 5 {
		t.Fatalf("third token = %+v", out[2])
	}
}

func TestPretty_Fixes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("fix.py", []byte("def f(x)\n    pass\n"))
	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.SynExpectColon, source.Span{File: id, Start: 8, End: 9}, "expected ':'").
		WithFix("insert ':'", diag.FixEdit{Span: source.Span{File: id, Start: 8, End: 8}, NewText: ":"}).
		WithFix("rename", diag.FixEdit{Span: source.Span{File: id, Start: 4, End: 5}, NewText: "g"}))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowFixes: true})
	for _, want := range []string{"fix: insert ':'", `insert ":" at 1:9`, `replace 1:5-1:6 with "g"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output misses %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "fix:") {
		t.Errorf("fixes must be hidden without ShowFixes:\n%s", buf.String())
	}

	buf.Reset()
	if err := JSON(&buf, bag, fs, JSONOpts{IncludeFixes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fx := out.Diagnostics[0].Fixes; len(fx) != 2 || fx[0].Edits[0].NewText != ":" || fx[0].Edits[0].Location.StartByte != 8 {
		t.Fatalf("fixes = %+v", fx)
	}
}
