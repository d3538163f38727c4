// Package astutil renders DST type expressions back to Go source.
package astutil

import (
	"fmt"
	"go/types"
	"strings"

	"github.com/dave/dst"
)

// Qualifier rewrites a bare identifier found in a type expression. Generated
// code that lives outside the interface's package uses it to prefix the
// package's own type names.
type Qualifier func(name string) string

// ExpandFieldListTypes expands a field list into individual type strings.
// For fields with multiple names (e.g., "a, b int"), outputs the type once per name.
// For unnamed fields, outputs the type once.
func ExpandFieldListTypes(fields []*dst.Field, typeFormatter func(dst.Expr) string) []string {
	var parts []string

	for _, f := range fields {
		typeStr := typeFormatter(f.Type)

		count := len(f.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			parts = append(parts, typeStr)
		}
	}

	return parts
}

// PackageQualifier returns a Qualifier that prefixes every non-predeclared
// identifier with alias. An empty alias leaves names unchanged.
func PackageQualifier(alias string) Qualifier {
	if alias == "" {
		return nil
	}

	return func(name string) string {
		if types.Universe.Lookup(name) != nil {
			return name
		}

		return alias + "." + name
	}
}

// SelectorPackages returns the package names referenced by selector
// expressions (pkg.Type) anywhere inside expr.
func SelectorPackages(expr dst.Expr) []string {
	var names []string

	dst.Inspect(expr, func(node dst.Node) bool {
		sel, ok := node.(*dst.SelectorExpr)
		if !ok {
			return true
		}

		if pkg, ok := sel.X.(*dst.Ident); ok {
			names = append(names, pkg.Name)
		}

		return false
	})

	return names
}

// StringifyExpr converts a DST expression to its string representation.
func StringifyExpr(expr dst.Expr) string {
	return QualifiedExpr(expr, nil)
}

// QualifiedExpr is StringifyExpr with every bare identifier passed through
// qualify. A nil qualify leaves identifiers as written.
//
//nolint:cyclop,funlen // Type-switch dispatcher handling all DST expression types; complexity is inherent
func QualifiedExpr(expr dst.Expr, qualify Qualifier) string {
	if expr == nil {
		return ""
	}

	self := func(e dst.Expr) string { return QualifiedExpr(e, qualify) }

	switch typedExpr := expr.(type) {
	case *dst.Ident:
		if qualify != nil {
			return qualify(typedExpr.Name)
		}

		return typedExpr.Name
	case *dst.BasicLit:
		return typedExpr.Value
	case *dst.SelectorExpr:
		// The left side is a package name, never a type to qualify.
		return QualifiedExpr(typedExpr.X, nil) + "." + typedExpr.Sel.Name
	case *dst.StarExpr:
		return "*" + self(typedExpr.X)
	case *dst.ArrayType:
		if typedExpr.Len != nil {
			return "[" + QualifiedExpr(typedExpr.Len, nil) + "]" + self(typedExpr.Elt)
		}

		return "[]" + self(typedExpr.Elt)
	case *dst.MapType:
		return "map[" + self(typedExpr.Key) + "]" + self(typedExpr.Value)
	case *dst.ChanType:
		switch typedExpr.Dir {
		case dst.SEND:
			return "chan<- " + self(typedExpr.Value)
		case dst.RECV:
			return "<-chan " + self(typedExpr.Value)
		default:
			return "chan " + self(typedExpr.Value)
		}
	case *dst.InterfaceType:
		return stringifyInterfaceType(typedExpr, self)
	case *dst.StructType:
		return stringifyStructType(typedExpr, self)
	case *dst.FuncType:
		return "func" + Signature(typedExpr, self)
	case *dst.Ellipsis:
		return "..." + self(typedExpr.Elt)
	case *dst.IndexExpr:
		return self(typedExpr.X) + "[" + self(typedExpr.Index) + "]"
	case *dst.IndexListExpr:
		indices := make([]string, len(typedExpr.Indices))
		for i, idx := range typedExpr.Indices {
			indices[i] = self(idx)
		}

		return self(typedExpr.X) + "[" + strings.Join(indices, ", ") + "]"
	case *dst.ParenExpr:
		return "(" + self(typedExpr.X) + ")"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// Signature renders a func type's parameter and result lists without the
// func keyword: "(int, string) (bool, error)".
func Signature(funcType *dst.FuncType, format func(dst.Expr) string) string {
	var buf strings.Builder

	buf.WriteString("(")

	if funcType.Params != nil {
		buf.WriteString(strings.Join(ExpandFieldListTypes(funcType.Params.List, format), ", "))
	}

	buf.WriteString(")")

	if funcType.Results == nil || len(funcType.Results.List) == 0 {
		return buf.String()
	}

	resultParts := ExpandFieldListTypes(funcType.Results.List, format)

	buf.WriteString(" ")

	if len(resultParts) > 1 {
		buf.WriteString("(" + strings.Join(resultParts, ", ") + ")")
	} else {
		buf.WriteString(resultParts[0])
	}

	return buf.String()
}

// stringifyInterfaceType renders an interface literal used as a parameter or
// result type.
func stringifyInterfaceType(interfaceType *dst.InterfaceType, format func(dst.Expr) string) string {
	if interfaceType.Methods == nil || len(interfaceType.Methods.List) == 0 {
		return "interface{}"
	}

	parts := make([]string, 0, len(interfaceType.Methods.List))

	for _, method := range interfaceType.Methods.List {
		funcType, ok := method.Type.(*dst.FuncType)
		if !ok || len(method.Names) == 0 {
			// Embedded interface - just the type
			parts = append(parts, format(method.Type))

			continue
		}

		parts = append(parts, method.Names[0].Name+Signature(funcType, format))
	}

	return "interface{ " + strings.Join(parts, "; ") + " }"
}

// stringifyStructType renders a struct literal used as a parameter or result
// type, keeping field names and tags.
func stringifyStructType(structType *dst.StructType, format func(dst.Expr) string) string {
	if structType.Fields == nil || len(structType.Fields.List) == 0 {
		return "struct{}"
	}

	fields := make([]string, 0, len(structType.Fields.List))

	for _, field := range structType.Fields.List {
		var fieldStr strings.Builder

		if len(field.Names) > 0 {
			nameStrs := make([]string, len(field.Names))
			for i, name := range field.Names {
				nameStrs[i] = name.Name
			}

			fieldStr.WriteString(strings.Join(nameStrs, ", "))
			fieldStr.WriteString(" ")
		}

		fieldStr.WriteString(format(field.Type))

		if field.Tag != nil {
			fieldStr.WriteString(" ")
			fieldStr.WriteString(field.Tag.Value)
		}

		fields = append(fields, fieldStr.String())
	}

	return fmt.Sprintf("struct{ %s }", strings.Join(fields, "; "))
}
