package extract

import (
	"context"
	"errors"
	"testing"
)

// Both engines must produce the same signature.
func TestTreeSitter_MatchesNative(t *testing.T) {
	sources := []string{
		"def greet(name: str, greeting: str = \"Hello\"):\n    return greeting + name\n",
		"def add(a, b):\n    return a + b\n",
		"def f(numbers: list[int], m: dict[str, int], t: tuple[int, str]):\n    pass\n",
		"def f(a, /, b=2, *args: int, c, d: str = 'x', **kw) -> bool:\n    pass\n",
		"class C:\n    def method(self):\n        pass\ndef top(x: float):\n    pass\n",
		"@decorator\ndef wrapped(x: Optional[int] = None):\n    pass\n",
		"if cond:\n    def a(x):\n        pass\nelif other:\n    def b(y):\n        pass\n",
		"try:\n    pass\nexcept E:\n    def h(e):\n        pass\nelse:\n    def e(v):\n        pass\n",
		"async def skipped():\n    pass\ndef taken(z: set[str]):\n    pass\n",
		"match x:\n    case 1:\n        pass\ndef f(a): pass\n",
		"match cmd:\n    case [a, *rest] if a:\n        def inner(q: str):\n            pass\ndef outer():\n    pass\n",
	}
	for _, src := range sources {
		native, nerr := Source(context.Background(), []byte(src), Options{Engine: EngineNative})
		ts, terr := Source(context.Background(), []byte(src), Options{Engine: EngineTreeSitter})
		if nerr != nil || terr != nil {
			t.Fatalf("%q: native err=%v treesitter err=%v", src, nerr, terr)
		}
		if native.Name != ts.Name {
			t.Errorf("%q: name native=%q treesitter=%q", src, native.Name, ts.Name)
			continue
		}
		if native.Returns.String() != ts.Returns.String() {
			t.Errorf("%q: returns native=%s treesitter=%s", src, native.Returns, ts.Returns)
		}
		np, tp := render(native), render(ts)
		if len(np) != len(tp) {
			t.Errorf("%q: params native=%v treesitter=%v", src, np, tp)
			continue
		}
		for i := range np {
			if np[i] != tp[i] || native.Params[i].Kind != ts.Params[i].Kind {
				t.Errorf("%q: param %d native=%v/%v treesitter=%v/%v", src, i, np[i], native.Params[i].Kind, tp[i], ts.Params[i].Kind)
			}
		}
	}
}

func TestTreeSitter_Errors(t *testing.T) {
	tests := []struct {
		src        string
		parseError bool
	}{
		{"def f(:\n    pass\n", true},
		{"def f(a, a):\n    pass\n", true},
		{"def f(a=1, b):\n    pass\n", true},
		{"    def f(a): pass\n", true},
		{"def f(**k, a):\n    pass\n", true},
		{"def f(*):\n    pass\n", true},
		{"def f(a):\nreturn a\n", true},
		{"f(**k, *a)\ndef g(): pass\n", true},
		{"f(a for a in b, c)\ndef g(): pass\n", true},
		{"del 1\ndef g(): pass\n", true},
		{"(a, b) += 1\ndef g(): pass\n", true},
		{"x = 0777\ndef g(): pass\n", true},
		{"x = 10l\ndef g(): pass\n", true},
		{"x = 1\n", false},
	}
	for _, tt := range tests {
		_, err := Source(context.Background(), []byte(tt.src), Options{Engine: EngineTreeSitter})
		if !errors.Is(err, ErrNoDefinition) {
			t.Errorf("%q: expected ErrNoDefinition in chain, got %v", tt.src, err)
			continue
		}
		var pe *ParseError
		if errors.As(err, &pe) != tt.parseError {
			t.Errorf("%q: ParseError = %v, want %v", tt.src, !tt.parseError, tt.parseError)
		}
	}
}
