package parser

import (
	"fmt"
	"strings"
	"testing"

	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/lexer"
	"aegis/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, input string) (*ast.Builder, *ast.Module, *diag.Bag) {
	return parseSourceWithOptions(t, input, Options{})
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) (*ast.Builder, *ast.Module, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.HintsFor(len(input)))

	if opts.MaxErrors == 0 {
		opts.MaxErrors = 100
	}
	opts.Reporter = reporter

	result := ParseFile(lx, builder, opts)
	if result.Bag == nil {
		result.Bag = bag
	}
	return builder, result.Module, result.Bag
}

// mustParse разбирает input и падает при любой диагностике.
func mustParse(t *testing.T, input string) (*ast.Builder, *ast.Module) {
	t.Helper()
	b, mod, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(bag))
	}
	return b, mod
}

// exprOf возвращает значение единственного оператора-выражения.
func exprOf(t *testing.T, input string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	b, mod := mustParse(t, input)
	if len(mod.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Body))
	}
	v, ok := b.Stmts.Value(mod.Body[0])
	if !ok || b.Stmts.Get(mod.Body[0]).Kind != ast.StmtExpr {
		t.Fatalf("expected expression statement, got %v", b.Stmts.Get(mod.Body[0]).Kind)
	}
	return b, v.Value
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
