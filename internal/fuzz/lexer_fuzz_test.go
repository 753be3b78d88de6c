package fuzztests

import (
	"testing"

	"aegis/internal/diag"
	"aegis/internal/lexer"
	"aegis/internal/source"
	"aegis/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.py", input))

		bag := diag.NewBag(64)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		// каждый токен сдвигает позицию, иначе лексер зациклился
		limit := len(input)*4 + 64
		for i := 0; ; i++ {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if i > limit {
				t.Fatalf("lexer produced more than %d tokens for %d bytes", limit, len(input))
			}
			if int(tok.Span.End) > len(file.Content) || tok.Span.Start > tok.Span.End {
				t.Fatalf("token %s has bad span %v", tok.Kind, tok.Span)
			}
		}
	})
}
