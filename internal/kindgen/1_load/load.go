// Package load parses the Go files of a package into DST.
package load

import (
	"errors"
	"fmt"
	"go/build"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// Package holds the parsed files of one package.
type Package struct {
	Dir   string
	Files []*dst.File
	Fset  *token.FileSet
}

// Dir resolves an import path to a directory. "." is the working
// directory; anything else goes through go/build relative to it.
func Dir(importPath string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if importPath == "." {
		return wd, nil
	}

	pkg, err := build.Import(importPath, wd, build.FindOnly)
	if err != nil {
		return "", fmt.Errorf("failed to find package %q: %w", importPath, err)
	}

	return pkg.Dir, nil
}

// PackageDST loads a package by import path and parses it with no type
// checking. Test files are only read for the working directory's package,
// where the go:generate directive usually lives. Previously generated kind
// files are skipped so a stale one never shadows the interface it came from.
func PackageDST(importPath string) (Package, error) {
	dir, err := Dir(importPath)
	if err != nil {
		return Package{}, err
	}

	return ParseDir(dir, importPath == ".")
}

// ParseDir parses the .go files in dir. Files that fail to parse are skipped.
func ParseDir(dir string, includeTests bool) (Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Package{}, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	goFiles := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()

		switch {
		case entry.IsDir(), !strings.HasSuffix(name, ".go"):
			continue
		case strings.HasPrefix(name, generatedPrefix):
			continue
		case !includeTests && strings.HasSuffix(name, "_test.go"):
			continue
		}

		goFiles = append(goFiles, filepath.Join(dir, name))
	}

	if len(goFiles) == 0 {
		return Package{}, fmt.Errorf("%w: no .go files in %s", ErrNoPackageFound, dir)
	}

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)

	files := make([]*dst.File, 0, len(goFiles))

	for _, goFile := range goFiles {
		// the decorator cannot cope with the partial AST of a broken file
		astFile, err := parser.ParseFile(fset, goFile, nil, parser.ParseComments)
		if err != nil {
			continue
		}

		file, err := dec.DecorateFile(astFile)
		if err != nil {
			continue
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return Package{}, fmt.Errorf("%w: failed to parse any .go files in %s", ErrNoPackageFound, dir)
	}

	return Package{Dir: dir, Files: files, Fset: fset}, nil
}

// ErrNoPackageFound reports a directory with nothing parseable in it.
var ErrNoPackageFound = errors.New("no package found")

const generatedPrefix = "generated_"
