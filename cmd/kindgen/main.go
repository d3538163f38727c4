// kindgen generates iface Kind definitions from Go interfaces.
// To use it, install it with `go install github.com/toejough/iface/cmd/kindgen@latest`
// and next to an interface declaration add a `//go:generate kindgen <interface>` comment. The generated
// generated_<interface>Kind.go declares <interface>Kind, a <interface>Box facade that satisfies the interface,
// and New<interface>Box. Add a `--name <base>` flag to pick a different base name. The interface may live in
// another package (`//go:generate kindgen io.Writer`) as long as the file imports it.
package main

import (
	"fmt"
	"os"

	"github.com/toejough/iface/internal/kindgen"
	load "github.com/toejough/iface/internal/kindgen/1_load"
)

// main is the entry point of the kindgen tool.
func main() {
	err := kindgen.Run(os.Args, os.Getenv, &realFileSystem{}, &realPackageLoader{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements FileSystem using os package.
type realFileSystem struct{}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}

// realPackageLoader implements PackageLoader using direct DST parsing.
type realPackageLoader struct{}

// Load parses the package at importPath with no type checking.
func (pl *realPackageLoader) Load(importPath string) (load.Package, error) {
	pkg, err := load.PackageDST(importPath)
	if err != nil {
		return load.Package{}, fmt.Errorf("failed to load package %q: %w", importPath, err)
	}

	return pkg, nil
}
