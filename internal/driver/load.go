package driver

import (
	"fmt"
	"io"
	"os"

	"aegis/internal/source"
)

// StdinPath is the path that reads source from standard input.
const StdinPath = "-"

// Stdin is replaced in tests.
var Stdin io.Reader = os.Stdin

// loadFile loads one file into a fresh FileSet.
func loadFile(path string) (*source.FileSet, *source.File, error) {
	fs := source.NewFileSet()
	var (
		id  source.FileID
		err error
	)
	if path == StdinPath {
		id, err = fs.Read("<stdin>", Stdin)
	} else {
		id, err = fs.Load(path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return fs, fs.Get(id), nil
}
