package generate

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateRegistry holds all parsed text templates for code generation.
// Create a registry using NewTemplateRegistry() to initialize all templates.
type TemplateRegistry struct {
	headerTmpl      *template.Template
	kindTmpl        *template.Template
	boxTmpl         *template.Template
	boxMethodTmpl   *template.Template
	constructorTmpl *template.Template
	assertionTmpl   *template.Template
}

// NewTemplateRegistry creates and initializes a new template registry with all templates parsed.
// Templates are hardcoded constants, so parsing cannot fail at runtime.
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{}

	templates := []struct {
		target  **template.Template
		name    string
		content string
	}{
		{&registry.headerTmpl, "header", tmplHeader},
		{&registry.kindTmpl, "kind", tmplKind},
		{&registry.boxTmpl, "box", tmplBox},
		{&registry.boxMethodTmpl, "boxMethod", tmplBoxMethod},
		{&registry.constructorTmpl, "constructor", tmplConstructor},
		{&registry.assertionTmpl, "assertion", tmplAssertion},
	}

	for _, def := range templates {
		*def.target = template.Must(template.New(def.name).Parse(def.content))
	}

	return registry
}

// WriteAssertion writes the compile-time check that the box satisfies the
// source interface.
func (r *TemplateRegistry) WriteAssertion(buf *bytes.Buffer, data any) {
	execute(r.assertionTmpl, buf, data)
}

// WriteBox writes the facade struct.
func (r *TemplateRegistry) WriteBox(buf *bytes.Buffer, data any) {
	execute(r.boxTmpl, buf, data)
}

// WriteBoxMethod writes one forwarding method.
func (r *TemplateRegistry) WriteBoxMethod(buf *bytes.Buffer, data any) {
	execute(r.boxMethodTmpl, buf, data)
}

// WriteConstructor writes New<Name>Box.
func (r *TemplateRegistry) WriteConstructor(buf *bytes.Buffer, data any) {
	execute(r.constructorTmpl, buf, data)
}

// WriteHeader writes the generated-code banner, package clause and imports.
func (r *TemplateRegistry) WriteHeader(buf *bytes.Buffer, data any) {
	execute(r.headerTmpl, buf, data)
}

// WriteKind writes the Kind definition.
func (r *TemplateRegistry) WriteKind(buf *bytes.Buffer, data any) {
	execute(r.kindTmpl, buf, data)
}

// execute panics on failure: the data is built by this package, so a
// failure is a programming error.
func execute(tmpl *template.Template, buf *bytes.Buffer, data any) {
	err := tmpl.Execute(buf, data)
	if err != nil {
		panic(fmt.Sprintf("failed to execute %s template: %v", tmpl.Name(), err))
	}
}

const tmplHeader = `// Code generated by kindgen. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/toejough/iface"
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}"{{.Path}}"
{{- end}}
)
`

const tmplKind = `
// {{.Kind}} is the iface Kind of {{.Interface}}.
type {{.Kind}} struct{}

// Methods lists {{.Interface}}'s methods in declaration order.
func ({{.Kind}}) Methods() []iface.RequiredMethod {
	return []iface.RequiredMethod{
{{- range .Methods}}
		iface.Method[{{.FuncType}}]("{{.Name}}"),
{{- end}}
	}
}
`

const tmplAssertion = `
// unexported variables.
var (
	_ {{.Ref}} = {{.Box}}{}
)
`

const tmplBox = `
// {{.Box}} holds any value with {{.Interface}}'s methods and is itself a {{.Interface}}.
// The zero {{.Box}} is empty; calling through it panics with iface.ErrEmpty.
type {{.Box}} struct {
	*iface.Container[{{.Kind}}]
}
`

const tmplConstructor = `
// New{{.Box}} wraps v. A pointer gives reference semantics; any other value is copied.
func New{{.Box}}[T any](v T) ({{.Box}}, error) {
	c, err := iface.Wrap[{{.Kind}}](v)
	if err != nil {
		return {{.Box}}{}, err
	}

	return {{.Box}}{Container: c}, nil
}
`

const tmplBoxMethod = `
// {{.Method.Name}} forwards to the held value.
func (box {{.Box}}) {{.Method.Name}}({{.Method.Declaration}}){{.Method.ResultList}} {
{{- if .Method.Results}}
	out := box.{{.CallFunc}}("{{.Method.Name}}"{{if .Method.Params}}, {{.Method.Call}}{{end}})

	return {{.Returns}}
{{- else}}
	box.{{.CallFunc}}("{{.Method.Name}}"{{if .Method.Params}}, {{.Method.Call}}{{end}})
{{- end}}
}
`
