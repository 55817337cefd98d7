package generator

// Template components for the generated test source. Run and check block
// text is inserted verbatim between the scaffold braces; only surrounding
// binding and capture lines are synthesized.

const headerTemplate = `{{define "header"}}// Code generated by permutest. DO NOT EDIT.

package {{.Package}}

import "testing"{{end}}`

const groupTemplate = `{{define "group"}}

// {{.Title}}: {{len .Units}} test cases.
{{- range .Units}}{{template "unit" .}}{{- end}}{{end}}`

const unitTemplate = `{{define "unit"}}

func {{.FuncName}}(t *testing.T) {
	_ = t
{{- range .Bindings}}
	{{.Name}} := {{.Expr}}
	_ = {{.Name}}
{{- end}}
	{{.ResultName}} := func() any { {{- .RunBody}}}()
	_ = {{.ResultName}}
	{ {{- .CheckBody}}}
}{{end}}`

const masterTemplate = `{{define "file"}}{{template "header" .}}{{range .Specs}}{{template "group" .}}{{end}}
{{end}}`

// TemplateRegistry holds all template components
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a registry with all components registered
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}
	registry.templates["header"] = headerTemplate
	registry.templates["group"] = groupTemplate
	registry.templates["unit"] = unitTemplate
	return registry
}

// GetTemplate returns a specific template component
func (tr *TemplateRegistry) GetTemplate(name string) (string, bool) {
	tmpl, exists := tr.templates[name]
	return tmpl, exists
}

// GetAllTemplates returns every component plus the master template as one
// parseable string
func (tr *TemplateRegistry) GetAllTemplates() string {
	parts := []string{headerTemplate, groupTemplate, unitTemplate, masterTemplate}
	all := ""
	for _, p := range parts {
		all += p
	}
	return all
}
