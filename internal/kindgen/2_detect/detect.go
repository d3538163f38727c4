// Package detect finds the interface a Kind is generated from and flattens
// it into the method list the generator needs.
package detect

import (
	"errors"
	"fmt"
	"go/token"
	"path"
	"strconv"
	"strings"

	"github.com/dave/dst"

	"github.com/toejough/iface"
	astutil "github.com/toejough/iface/internal/kindgen/0_util"
)

// Import is one import the generated code needs.
type Import struct {
	Name string // explicit alias, or "" to use the package's own name
	Path string
}

// Interface is a detected interface, ready for generation.
type Interface struct {
	Name    string
	Ref     string // Name as the generated file spells it
	Methods []Method
	Imports []Import
}

// Method is one interface method with every type already rendered for the
// generated file's package.
type Method struct {
	Name     string
	Params   []Param
	Results  []string
	Variadic bool
}

// Param is one method parameter. Names are never blank: unnamed and "_"
// parameters get positional names.
type Param struct {
	Name string
	Type string
}

// Call renders the argument list that forwards the parameters.
func (m Method) Call() string {
	names := make([]string, len(m.Params))
	for i, param := range m.Params {
		names[i] = param.Name
	}

	return strings.Join(names, ", ")
}

// Declaration renders the parameter list as written in the method header.
func (m Method) Declaration() string {
	parts := make([]string, len(m.Params))
	for i, param := range m.Params {
		parts[i] = param.Name + " " + param.Type
	}

	return strings.Join(parts, ", ")
}

// FuncType renders the receiver-less func type used in iface.Method.
func (m Method) FuncType() string {
	params := make([]string, len(m.Params))
	for i, param := range m.Params {
		params[i] = param.Type
	}

	out := "func(" + strings.Join(params, ", ") + ")"

	switch len(m.Results) {
	case 0:
		return out
	case 1:
		return out + " " + m.Results[0]
	default:
		return out + " (" + strings.Join(m.Results, ", ") + ")"
	}
}

// ResultList renders the results as written in the method header.
func (m Method) ResultList() string {
	switch len(m.Results) {
	case 0:
		return ""
	case 1:
		return " " + m.Results[0]
	default:
		return " (" + strings.Join(m.Results, ", ") + ")"
	}
}

// Source says where the interface lives relative to the generated file.
type Source struct {
	// Alias is the package name the generated file uses for the interface's
	// package, or "" when they share a package.
	Alias string
	// Path is the import path of the interface's package, "" when local.
	Path string
}

// ExtractPackageName extracts the package name from a qualified name
// ("pkg.Iface" yields "pkg"; "Iface" yields "").
func ExtractPackageName(qualifiedName string) string {
	pkg, _, found := strings.Cut(qualifiedName, ".")
	if !found {
		return ""
	}

	return pkg
}

// FindImportPath finds the import path the given files use for pkgName.
func FindImportPath(files []*dst.File, pkgName string) (string, error) {
	for _, file := range files {
		for _, imp := range file.Imports {
			importPath, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				continue
			}

			if importName(imp, importPath) == pkgName {
				return importPath, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrPackageNotFound, pkgName)
}

// FindInterface extracts the named interface from files and renders its
// methods for a generated file in another package when src.Alias is set.
func FindInterface(files []*dst.File, name string, src Source) (Interface, error) {
	spec, file := findTypeSpec(files, name)
	if spec == nil {
		return Interface{}, fmt.Errorf("%w: %s", ErrInterfaceNotFound, name)
	}

	ifaceType, ok := spec.Type.(*dst.InterfaceType)
	if !ok {
		return Interface{}, fmt.Errorf("%w: %s is not an interface", ErrInterfaceNotFound, name)
	}

	if spec.TypeParams != nil && len(spec.TypeParams.List) > 0 {
		return Interface{}, fmt.Errorf("%w: %s", ErrGenericInterface, name)
	}

	return flatten(name, ifaceType, file, src)
}

// LocalName strips any package qualifier from an interface name.
func LocalName(qualifiedName string) string {
	if i := strings.LastIndex(qualifiedName, "."); i >= 0 {
		return qualifiedName[i+1:]
	}

	return qualifiedName
}

// Errors.
var (
	ErrInterfaceNotFound = errors.New("interface not found")
	ErrPackageNotFound   = errors.New("package not found")
	ErrGenericInterface  = errors.New("generic interfaces have no single Kind")
	ErrEmbeddedInterface = errors.New("embedded interfaces are not supported")
	ErrEmptyInterface    = errors.New("interface declares no methods")
	ErrUnexportedMethod  = errors.New("unexported methods cannot be forwarded")
	ErrTooManyMethods    = errors.New("too many methods")
	ErrReservedMethod    = errors.New("method name collides with the generated box's container")
)

// unexported variables.
var (
	//nolint:gochecknoglobals // the box's embedded field and the calls its methods forward through
	reservedMethods = map[string]bool{"Container": true, "MustCall": true, "MustCallSlice": true}
	//nolint:gochecknoglobals // names the generated forwarding methods declare
	reservedNames = map[string]bool{"box": true, "out": true, "iface": true}
)

func findTypeSpec(files []*dst.File, name string) (*dst.TypeSpec, *dst.File) {
	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*dst.TypeSpec)
				if ok && typeSpec.Name.Name == name {
					return typeSpec, file
				}
			}
		}
	}

	return nil, nil
}

//nolint:cyclop,funlen // one check per rejected interface shape
func flatten(name string, ifaceType *dst.InterfaceType, file *dst.File, src Source) (Interface, error) {
	if ifaceType.Methods == nil || len(ifaceType.Methods.List) == 0 {
		return Interface{}, fmt.Errorf("%w: %s", ErrEmptyInterface, name)
	}

	qualify := astutil.PackageQualifier(src.Alias)
	format := func(expr dst.Expr) string { return astutil.QualifiedExpr(expr, qualify) }
	used := map[string]bool{}

	out := Interface{Name: name, Ref: name}
	if src.Alias != "" {
		out.Ref = src.Alias + "." + name
	}

	for _, field := range ifaceType.Methods.List {
		funcType, ok := field.Type.(*dst.FuncType)
		if !ok || len(field.Names) == 0 {
			return Interface{}, fmt.Errorf("%w: %s embeds %s", ErrEmbeddedInterface, name, astutil.StringifyExpr(field.Type))
		}

		methodName := field.Names[0].Name
		if !token.IsExported(methodName) {
			return Interface{}, fmt.Errorf("%w: %s.%s", ErrUnexportedMethod, name, methodName)
		}

		if reservedMethods[methodName] {
			return Interface{}, fmt.Errorf("%w: %s.%s", ErrReservedMethod, name, methodName)
		}

		for _, pkg := range astutil.SelectorPackages(funcType) {
			used[pkg] = true
		}

		out.Methods = append(out.Methods, newMethod(methodName, funcType, format))
	}

	if len(out.Methods) > iface.MaxMethods {
		return Interface{}, fmt.Errorf("%w: %s has %d, limit is %d", ErrTooManyMethods, name, len(out.Methods), iface.MaxMethods)
	}

	out.Imports = neededImports(file, used, src)

	return out, nil
}

func importName(imp *dst.ImportSpec, importPath string) string {
	if imp.Name != nil {
		return imp.Name.Name
	}

	base := path.Base(importPath)

	// gopkg.in/yaml.v3 and example.com/mod/v2 style paths
	if major := strings.TrimLeft(base, "v0123456789"); major == "" && strings.HasPrefix(base, "v") {
		base = path.Base(path.Dir(importPath))
	}

	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}

	return base
}

// neededImports keeps the source file's imports that the rendered methods
// reference, plus the interface's own package when it is not local.
func neededImports(file *dst.File, used map[string]bool, src Source) []Import {
	var imports []Import

	if src.Alias != "" {
		name := src.Alias
		if name == path.Base(src.Path) {
			name = ""
		}

		imports = append(imports, Import{Name: name, Path: src.Path})
	}

	for _, imp := range file.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil || importPath == src.Path {
			continue
		}

		pkgName := importName(imp, importPath)
		if !used[pkgName] {
			continue
		}

		var alias string
		if imp.Name != nil {
			alias = imp.Name.Name
		}

		imports = append(imports, Import{Name: alias, Path: importPath})
	}

	return imports
}

func newMethod(name string, funcType *dst.FuncType, format func(dst.Expr) string) Method {
	method := Method{Name: name}

	if funcType.Params != nil {
		for _, field := range funcType.Params.List {
			typeStr := format(field.Type)
			if _, ok := field.Type.(*dst.Ellipsis); ok {
				method.Variadic = true
			}

			if len(field.Names) == 0 {
				method.Params = append(method.Params, Param{Type: typeStr})

				continue
			}

			for _, ident := range field.Names {
				method.Params = append(method.Params, Param{Name: ident.Name, Type: typeStr})
			}
		}
	}

	for i := range method.Params {
		switch paramName := method.Params[i].Name; {
		case paramName == "" || paramName == "_":
			method.Params[i].Name = "arg" + strconv.Itoa(i)
		case reservedNames[paramName]:
			// the generated body declares these
			method.Params[i].Name = paramName + "Arg"
		}
	}

	if funcType.Results != nil {
		method.Results = astutil.ExpandFieldListTypes(funcType.Results.List, format)
	}

	return method
}
