package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"aegis/internal/diag"
	"aegis/internal/sig"
	"aegis/internal/source"
)

type wantParam struct {
	name string
	tag  string
}

func render(s *sig.Signature) []wantParam {
	out := make([]wantParam, len(s.Params))
	for i, p := range s.Params {
		out[i] = wantParam{p.Name, p.Type.String()}
	}
	return out
}

func TestSource_Signatures(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantName string
		want     []wantParam
	}{
		{
			name:     "annotated",
			src:      "def my_function(x: int, y: float):\n    return x + y\n",
			wantName: "my_function",
			want:     []wantParam{{"x", "int"}, {"y", "float"}},
		},
		{
			name:     "no annotations",
			src:      "def add(a, b):\n    return a + b\n",
			wantName: "add",
			want:     []wantParam{{"a", "any"}, {"b", "any"}},
		},
		{
			name:     "default becomes optional",
			src:      "def greet(name: str, greeting: str = \"Hello\"):\n    return f\"{greeting}, {name}!\"\n",
			wantName: "greet",
			want:     []wantParam{{"name", "str"}, {"greeting", "Optional[str]"}},
		},
		{
			name:     "optional around any",
			src:      "def f(a, b=None):\n    pass\n",
			wantName: "f",
			want:     []wantParam{{"a", "any"}, {"b", "Optional[any]"}},
		},
		{
			name:     "list annotation",
			src:      "def process_numbers(numbers: list[int]):\n    return sum(numbers)\n",
			wantName: "process_numbers",
			want:     []wantParam{{"numbers", "list[int]"}},
		},
		{
			name:     "dict annotation",
			src:      "def update_inventory(item: str, quantity: dict[str, int]):\n    return quantity.get(item, 0) + 1\n",
			wantName: "update_inventory",
			want:     []wantParam{{"item", "str"}, {"quantity", "dict[str, int]"}},
		},
		{
			name:     "nested inner falls back to any",
			src:      "def f(m: dict[str, list[int]], t: typing.List[int]):\n    pass\n",
			wantName: "f",
			want:     []wantParam{{"m", "dict[str, any]"}, {"t", "any[int]"}},
		},
		{
			name:     "annotation already optional is wrapped again",
			src:      "def f(x: Optional[int] = None):\n    pass\n",
			wantName: "f",
			want:     []wantParam{{"x", "Optional[Optional[int]]"}},
		},
		{
			name:     "all parameter kinds",
			src:      "def f(a, /, b: int = 1, *args: str, c, d: bool = True, **kw):\n    pass\n",
			wantName: "f",
			want: []wantParam{
				{"a", "any"}, {"b", "Optional[int]"}, {"args", "str"},
				{"c", "any"}, {"d", "Optional[bool]"}, {"kw", "any"},
			},
		},
		{
			name:     "first of several",
			src:      "import os\n\ndef first(x: int):\n    pass\n\ndef second(y):\n    pass\n",
			wantName: "first",
			want:     []wantParam{{"x", "int"}},
		},
		{
			name:     "match before def",
			src:      "match x:\n    case 1:\n        pass\ndef f(a): pass\n",
			wantName: "f",
			want:     []wantParam{{"a", "any"}},
		},
		{
			name:     "match inside def",
			src:      "def f(x: int):\n    match x:\n        case 1:\n            pass\n",
			wantName: "f",
			want:     []wantParam{{"x", "int"}},
		},
		{
			name:     "def inside case",
			src:      "match cmd:\n    case \"run\":\n        def run(n: int):\n            pass\n",
			wantName: "run",
			want:     []wantParam{{"n", "int"}},
		},
		{
			name:     "shallower def wins over case body",
			src:      "match cmd:\n    case \"run\":\n        def run(n: int):\n            pass\ndef later(m: str):\n    pass\n",
			wantName: "later",
			want:     []wantParam{{"m", "str"}},
		},
		{
			name:     "indented source",
			src:      "\n    def my_function(x: int):\n        return x\n    ",
			wantName: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Source(context.Background(), []byte(tt.src), Options{})
			if tt.wantName == "" {
				if err == nil {
					t.Fatalf("expected an error, got %+v", s)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Name != tt.wantName {
				t.Errorf("name = %q, want %q", s.Name, tt.wantName)
			}
			got := render(s)
			if len(got) != len(tt.want) {
				t.Fatalf("params = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("param %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSource_ParamKinds(t *testing.T) {
	s, err := Source(context.Background(), []byte("def f(a, /, b, *args, c, **kw):\n    pass\n"), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []sig.ParamKind{sig.PositionalOnly, sig.PositionalOrKeyword, sig.VarPositional, sig.KeywordOnly, sig.VarKeyword}
	for i, p := range s.Params {
		if p.Kind != want[i] {
			t.Errorf("%s kind = %v, want %v", p.Name, p.Kind, want[i])
		}
	}
}

func TestSource_Errors(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		parseError bool
	}{
		{"invalid code", "invalid code", true},
		{"unterminated definition", "def f(", true},
		{"missing colon", "def f(x)\n    pass\n", true},
		{"unterminated string", "def f(x='abc):\n    pass\n", true},
		{"bad indentation", "def f(x):\n    a = 1\n  b = 2\n", true},
		{"duplicate parameter", "def f(a, a):\n    pass\n", true},
		{"non-default after default", "def f(a=1, b):\n    pass\n", true},
		{"no definition", "x = 1\nprint(x)\n", false},
		{"empty", "", false},
		{"only a class", "class C:\n    x = 1\n", false},
		{"only async", "async def f():\n    pass\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Source(context.Background(), []byte(tt.src), Options{})
			if s != nil {
				t.Fatalf("expected absent result, got %+v", s)
			}
			if !errors.Is(err, ErrNoDefinition) {
				t.Fatalf("expected ErrNoDefinition in chain, got %v", err)
			}
			var pe *ParseError
			if got := errors.As(err, &pe); got != tt.parseError {
				t.Fatalf("errors.As(ParseError) = %v, want %v (err=%v)", got, tt.parseError, err)
			}
			if tt.parseError && (pe.Bag == nil || !pe.Bag.HasErrors()) {
				t.Errorf("ParseError must carry diagnostics")
			}
		})
	}
}

func TestSource_InvalidCodeMessage(t *testing.T) {
	_, err := Source(context.Background(), []byte("invalid code"), Options{})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "syntax error: ") {
		t.Errorf("message = %q", err.Error())
	}
	if pe.Bag.Items()[0].Code != diag.SynExpectNewline {
		t.Errorf("code = %v", pe.Bag.Items()[0].Code)
	}
}

func TestSource_IncludeAsync(t *testing.T) {
	src := []byte("async def fetch(url: str):\n    pass\n")
	s, err := Source(context.Background(), src, Options{IncludeAsync: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "fetch" || !s.Async {
		t.Errorf("got %+v", s)
	}
}

func TestSource_ReturnsAndSpan(t *testing.T) {
	src := "x = 1\ndef f(a: int) -> list[str]:\n    pass\n"
	s, err := Source(context.Background(), []byte(src), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Returns.String() != "list[str]" {
		t.Errorf("returns = %s", s.Returns)
	}
	if got := src[s.Span.Start:s.Span.End]; !strings.HasPrefix(got, "def f(") {
		t.Errorf("span text = %q", got)
	}
	if got := src[s.Params[0].Span.Start:s.Params[0].Span.End]; got != "a: int" {
		t.Errorf("param span text = %q", got)
	}
}

func TestSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Source(ctx, []byte("def f():\n    pass\n"), Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEngineFor(t *testing.T) {
	if e, err := EngineFor(""); err != nil || e.Name() != EngineNative {
		t.Errorf("default engine = %v, %v", e, err)
	}
	if _, err := EngineFor("nope"); !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("expected ErrUnknownEngine, got %v", err)
	}
	if names := Engines(); len(names) != 2 || names[0] != EngineNative {
		t.Errorf("engines = %v", names)
	}
}

type panicky struct{}

func (panicky) Name() string { return "panicky" }

func (panicky) Extract(context.Context, *source.File, Options) (*sig.Signature, error) {
	panic("boom")
}

func TestFile_RecoversPanics(t *testing.T) {
	engines["panicky"] = panicky{}
	defer delete(engines, "panicky")

	_, err := Source(context.Background(), []byte("def f():\n    pass\n"), Options{Engine: "panicky"})
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Panic == nil {
		t.Fatalf("expected recovered ParseError, got %v", err)
	}
	if !errors.Is(err, ErrNoDefinition) {
		t.Errorf("recovered panic must still read as no definition")
	}
}
