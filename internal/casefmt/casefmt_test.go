package casefmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"aegis/internal/casefmt"
	"aegis/internal/gen"
	"aegis/internal/sig"
)

func TestRepr(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "None"},
		{true, "True"},
		{false, "False"},
		{int64(-7), "-7"},
		{2.5, "2.5"},
		{3.0, "3.0"},
		{"hello", "'hello'"},
		{"it's", `"it's"`},
		{"a\nb", `'a\nb'`},
		{"", "''"},
		{gen.List{int64(1), "x"}, "[1, 'x']"},
		{gen.Tuple{int64(0), int64(0), int64(0)}, "(0, 0, 0)"},
		{gen.Tuple{int64(1)}, "(1,)"},
		{gen.Set{}, "set()"},
		{gen.Set{int64(3), int64(1)}, "{3, 1}"},
		{gen.Dict{"key2": int64(2), "key1": int64(1)}, "{'key1': 1, 'key2': 2}"},
		{gen.Dict{}, "{}"},
		{[]any{nil}, "[None]"},
		{map[string]any{"k": true}, "{'k': True}"},
	}
	for _, tt := range tests {
		if got := casefmt.Repr(tt.in); got != tt.want {
			t.Errorf("Repr(%#v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func greet() *sig.Signature {
	return &sig.Signature{
		Name: "greet",
		Params: []sig.Param{
			{Name: "name", Type: sig.MustParseTag("str")},
			{Name: "greeting", Type: sig.MustParseTag("Optional[str]"), HasDefault: true},
			{Name: "rest", Type: sig.Any(), Kind: sig.VarKeyword},
		},
	}
}

func TestSignaturePretty(t *testing.T) {
	var buf bytes.Buffer
	if err := casefmt.SignaturePretty(&buf, greet(), casefmt.PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"def greet(name: str, greeting: Optional[str] = ..., **rest: any) -> any\n",
		"   1. name      str            positional\n",
		"   2. greeting  Optional[str]  positional  default\n",
		"   3. rest      any            var-keyword\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSignatureJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := casefmt.SignatureJSON(&buf, greet()); err != nil {
		t.Fatal(err)
	}
	var got struct {
		Name   string `json:"name"`
		Params []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"params"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "greet" || got.Params[1].Type != "Optional[str]" {
		t.Fatalf("decoded %+v", got)
	}
}

func sampleDoc() casefmt.Document {
	cases := []gen.TestCase{
		{{Name: "name", Value: "hello"}, {Name: "greeting", Value: nil}},
		{{Name: "name", Value: strings.Repeat("x", 50)}, {Name: "greeting", Value: "a"}},
	}
	return casefmt.NewDocument(greet(), 42, cases)
}

func TestCasesPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := casefmt.CasesPretty(&buf, sampleDoc(), casefmt.PrettyOpts{MaxValueWidth: 10}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "greet (2 cases, seed 42)\n") {
		t.Fatalf("header: %q", out)
	}
	if !strings.Contains(out, "#1  name='hello'  greeting=None\n") {
		t.Fatalf("first case missing:\n%s", out)
	}
	if !strings.Contains(out, "…") || strings.Contains(out, strings.Repeat("x", 20)) {
		t.Fatalf("long value not truncated:\n%s", out)
	}
}

func TestCasesJSON_KeepsParamOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := casefmt.CasesJSON(&buf, sampleDoc()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	name, greeting := strings.Index(out, `"name": "hello"`), strings.Index(out, `"greeting": null`)
	if name < 0 || greeting < name {
		t.Fatalf("case order lost:\n%s", out)
	}
	if !strings.Contains(out, `"seed": 42`) || !strings.Contains(out, `"function": "greet"`) {
		t.Fatalf("header fields missing:\n%s", out)
	}
}

func TestCasesMsgpack(t *testing.T) {
	var buf bytes.Buffer
	doc := sampleDoc()
	if err := casefmt.CasesMsgpack(&buf, doc); err != nil {
		t.Fatal(err)
	}
	got, err := casefmt.DecodeMsgpack(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Function != "greet" || got.Seed != 42 || len(got.Cases) != 2 {
		t.Fatalf("decoded %+v", got)
	}
	if names := got.Cases[0].Names(); names[0] != "name" || names[1] != "greeting" {
		t.Fatalf("order lost: %v", names)
	}
	if !got.Params[1].Type.Equal(doc.Params[1].Type) {
		t.Fatalf("param type %s", got.Params[1].Type)
	}
}

func TestNewDocument_Empty(t *testing.T) {
	doc := casefmt.NewDocument(nil, 1, nil)
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"function":"","seed":1,"params":[],"cases":[]}` {
		t.Fatalf("got %s", data)
	}
}
