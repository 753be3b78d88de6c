package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// skipDirs are directories the walk never enters.
var skipDirs = map[string]struct{}{
	".git":         {},
	".venv":        {},
	"venv":         {},
	"__pycache__":  {},
	"node_modules": {},
	".tox":         {},
}

// ListPyFiles returns a sorted list of all *.py files under dir.
func ListPyFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".py") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sort for deterministic order
	sort.Strings(files)
	return files, nil
}

// DisplayPath returns path relative to base with forward slashes.
func DisplayPath(path, base string) string {
	if base == "" {
		return filepath.ToSlash(path)
	}
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
