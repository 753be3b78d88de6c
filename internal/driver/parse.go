package driver

import (
	"fortio.org/safecast"

	"aegis/internal/ast"
	"aegis/internal/diag"
	"aegis/internal/extract"
	"aegis/internal/source"
)

// ParseResult holds the module tree and parse diagnostics.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Module  *ast.Module
	Bag     *diag.Bag
}

// Parse runs the native parser over a file without extracting a signature.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs, file, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	builder, mod, bag := extract.ParseModule(file, maxErrors)
	// лексер и парсер часто спотыкаются об один и тот же символ
	bag.Dedup()

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		Module:  mod,
		Bag:     bag,
	}, nil
}
