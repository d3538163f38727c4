// Package generate renders the Kind definition and typed facade for one
// detected interface.
package generate

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"strings"

	detect "github.com/toejough/iface/internal/kindgen/2_detect"
)

// Input is everything the generator needs for one file.
type Input struct {
	Package   string // package clause of the generated file
	Name      string // base name: <Name>Kind, <Name>Box
	Interface detect.Interface
}

// Code renders the generated file and gofmt-formats it. Declarations come out
// in the order go-reorder would put them: the box with its constructor and
// methods sorted by name, then the Kind, then the interface assertion.
func Code(input Input) (string, error) {
	registry := NewTemplateRegistry()

	names := struct {
		Package, Interface, Ref, Kind, Box string
		Imports                            []detect.Import
		Methods                            []detect.Method
	}{
		Package:   input.Package,
		Interface: input.Interface.Name,
		Ref:       input.Interface.Ref,
		Kind:      input.Name + "Kind",
		Box:       input.Name + "Box",
		Imports:   input.Interface.Imports,
		Methods:   input.Interface.Methods,
	}

	var buf bytes.Buffer

	registry.WriteHeader(&buf, names)
	registry.WriteBox(&buf, names)
	registry.WriteConstructor(&buf, names)

	for _, method := range byName(input.Interface.Methods) {
		registry.WriteBoxMethod(&buf, methodData{
			Box:      names.Box,
			Method:   method,
			CallFunc: callFunc(method),
			Returns:  returns(method),
		})
	}

	registry.WriteKind(&buf, names)
	registry.WriteAssertion(&buf, names)

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("generated code for %s does not parse: %w", input.Interface.Name, err)
	}

	return string(formatted), nil
}

type methodData struct {
	Box      string
	Method   detect.Method
	CallFunc string
	Returns  string
}

// byName returns the methods sorted by name, leaving the Kind's declaration
// order untouched.
func byName(methods []detect.Method) []detect.Method {
	sorted := slices.Clone(methods)
	slices.SortFunc(sorted, func(a, b detect.Method) int { return strings.Compare(a.Name, b.Name) })

	return sorted
}

// callFunc picks the container call that keeps a variadic tail as one slice.
func callFunc(method detect.Method) string {
	if method.Variadic {
		return "MustCallSlice"
	}

	return "MustCall"
}

func returns(method detect.Method) string {
	parts := make([]string, len(method.Results))
	for i, result := range method.Results {
		parts[i] = fmt.Sprintf("iface.Result[%s](out, %d)", result, i)
	}

	return strings.Join(parts, ", ")
}
