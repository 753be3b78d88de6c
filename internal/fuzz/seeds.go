package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB cap for the test corpus
	maxFuzzInput = 1 << 16  // 64 KiB
)

// inlineSeeds cover grammar corners that testdata does not.
var inlineSeeds = []string{
	"",
	"def f(): pass\n",
	"def f(a, b=1, *args, c, d=2, **kw) -> None:\n    return\n",
	"def f(a, /, b, *, c):\n\tpass\n",
	"async def g(x: list[dict[str, int]]) -> 'T': ...\n",
	"@dec(1, k=2)\nclass C:\n    def m(self): pass\n",
	"def f(x: Optional[Tuple[int, ...]] = (1,)):\n    '''doc'''\n",
	"if x:\n  def inner(y=lambda z: z): pass\n",
	"def f(\n    a: int,\n    b: str = \"\"\"multi\nline\"\"\",\n):\n    pass\n",
	"x = [i for i in range(10) if i % 2]\n",
	"def f(a, a): pass\n",
	"def f(a=1, b): pass\n",
	"    def indented(): pass\n",
	"def f(:\n",
	"def f(a: int = (1, [2, {3: 4}]) if c else None) -> int | None: pass\n",
	"s = f'{x!r:>10}' + r'\\d' + b'\\x00'\n",
	"\\\ndef f(): pass\n",
	"def f():\n\tif a:\n        pass\n",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// walk testdata and add every *.py file
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".py" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
