// Package output writes generated kind files.
package output

import (
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"os"
	"strings"

	"github.com/toejough/go-reorder"
)

// Writer interface for writing generated code.
type Writer interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Filename returns the file a generated kind named kindName is written to:
// generated_<kindName>.go, or generated_<kindName>_test.go when the
// go:generate directive sits in a test package or test file.
func Filename(kindName, pkgName, goFile string) string {
	isTestFile := strings.HasSuffix(pkgName, "_test") || strings.HasSuffix(goFile, "_test.go")
	if isTestFile {
		return "generated_" + kindName + "_test.go"
	}

	return "generated_" + kindName + ".go"
}

// WriteGeneratedCode reorders code by the project's declaration conventions
// and writes it next to the go:generate directive.
func WriteGeneratedCode(
	code string, kindName string, pkgName string, getEnv func(string) string, fileWriter Writer, out io.Writer,
) error {
	const generatedFilePermissions = 0o600

	filename := Filename(kindName, pkgName, getEnv("GOFILE"))

	reordered, err := reorderSource(code)
	if err != nil {
		// If reordering fails, log but continue with original code
		_, _ = fmt.Fprintf(out, "Warning: failed to reorder %s: %v\n", filename, err)

		reordered = code
	}

	err = fileWriter.WriteFile(filename, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}

// reorderSource runs go-reorder on code that parses. go-reorder panics on
// source it cannot parse, so broken code is reported as an error instead.
func reorderSource(code string) (string, error) {
	_, err := parser.ParseFile(token.NewFileSet(), "", code, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("unparseable code: %w", err)
	}

	return reorder.Source(code)
}
