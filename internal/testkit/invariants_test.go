package testkit_test

import (
	"testing"

	"aegis/internal/extract"
	"aegis/internal/source"
	"aegis/internal/testkit"
)

func TestCheckSpanInvariants(t *testing.T) {
	sources := []string{
		"def greet(name: str, greeting: str = \"Hello\"):\n    return greeting + name\n",
		"@decorator\ndef f(a, /, b=1, *args, c, d=2, **kw) -> int:\n    pass\n",
		"class C:\n    def m(self, x: list[int]): ...\n\nx = [i for i in range(3) if i]\n",
		"try:\n    pass\nexcept ValueError as e:\n    def h(): pass\n",
		"",
	}
	for _, src := range sources {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("t.py", []byte(src)))
		b, mod, bag := extract.ParseModule(file, 10)
		if bag.HasErrors() {
			t.Fatalf("unexpected syntax errors in %q: %v", src, bag.Items())
		}
		if err := testkit.CheckSpanInvariants(b, mod, file); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckSpanInvariants_Nil(t *testing.T) {
	if err := testkit.CheckSpanInvariants(nil, nil, nil); err == nil {
		t.Fatal("expected error for nil input")
	}
}
