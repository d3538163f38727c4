// Package kindgen implements the kindgen tool in a testable way: it turns a
// Go interface declaration into an iface Kind definition plus a typed facade
// that satisfies the interface.
package kindgen

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexflint/go-arg"

	load "github.com/toejough/iface/internal/kindgen/1_load"
	detect "github.com/toejough/iface/internal/kindgen/2_detect"
	generate "github.com/toejough/iface/internal/kindgen/3_generate"
	output "github.com/toejough/iface/internal/kindgen/4_output"
)

// FileSystem interface for writing the generated file.
type FileSystem interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// PackageLoader loads a package's parsed files by import path ("." is the
// working directory).
type PackageLoader interface {
	Load(importPath string) (load.Package, error)
}

// Run executes kindgen. It takes command-line arguments, an environment
// variable getter, a FileSystem for writing, a PackageLoader for reading and
// a writer for progress. On success it writes generated_<Name>Kind.go next
// to the go:generate directive.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, out io.Writer) error {
	info, err := getGeneratorCallInfo(args, getEnv, out)
	if err != nil {
		return err
	}

	iface, err := findInterface(info, pkgLoader)
	if err != nil {
		return err
	}

	code, err := generate.Code(generate.Input{
		Package:   info.pkgName,
		Name:      info.baseName,
		Interface: iface,
	})
	if err != nil {
		return err
	}

	return output.WriteGeneratedCode(code, info.baseName+"Kind", info.pkgName, getEnv, fileSys, out)
}

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Interface string `arg:"positional,required" help:"interface to build a Kind from (e.g. Speaker or pkg.Speaker)"`
	Name      string `arg:"--name"              help:"base name for <Name>Kind and <Name>Box (defaults to the interface name)"`
}

// generatorInfo holds information gathered for generation.
type generatorInfo struct {
	pkgName, interfaceName, localInterfaceName, baseName string
}

// findInterface loads the package declaring the interface and detects it.
func findInterface(info generatorInfo, pkgLoader PackageLoader) (detect.Interface, error) {
	local, err := pkgLoader.Load(".")
	if err != nil {
		return detect.Interface{}, fmt.Errorf("failed to load package %q: %w", ".", err)
	}

	alias := detect.ExtractPackageName(info.interfaceName)
	if alias == "" {
		return detect.FindInterface(local.Files, info.localInterfaceName, detect.Source{})
	}

	importPath, err := detect.FindImportPath(local.Files, alias)
	if err != nil {
		return detect.Interface{}, err
	}

	remote, err := pkgLoader.Load(importPath)
	if err != nil {
		return detect.Interface{}, fmt.Errorf("failed to load package %q: %w", importPath, err)
	}

	return detect.FindInterface(remote.Files, info.localInterfaceName, detect.Source{Alias: alias, Path: importPath})
}

// getGeneratorCallInfo returns basic information about the current call to the generator.
func getGeneratorCallInfo(args []string, getEnv func(string) string, out io.Writer) (generatorInfo, error) {
	pkgName := getEnv("GOPACKAGE")
	if pkgName == "" {
		return generatorInfo{}, errNoPackage
	}

	parsed, err := parseArgs(args, out)
	if err != nil {
		return generatorInfo{}, err
	}

	localInterfaceName := detect.LocalName(parsed.Interface)

	baseName := parsed.Name
	if baseName == "" {
		baseName = localInterfaceName
	}

	return generatorInfo{
		pkgName:            pkgName,
		interfaceName:      parsed.Interface,
		localInterfaceName: localInterfaceName,
		baseName:           baseName,
	}, nil
}

// parseArgs parses command-line arguments into cliArgs. --help writes the
// usage to out and returns arg.ErrHelp.
func parseArgs(args []string, out io.Writer) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "kindgen"}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if errors.Is(err, arg.ErrHelp) {
		parser.WriteHelp(out)
	}

	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}

// unexported variables.
var (
	errNoPackage = errors.New("GOPACKAGE is not set: run kindgen through go generate")
)
