// Package generator emits Go test source from parsed specifications: one
// test function per value combination, bindings first, then the run block
// capturing its value under the declared result identifier, then the check
// block. Generation is all-or-nothing; every validation runs before the
// first unit is rendered.
package generator

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/permutest/permutest/pkgs/parser"
	"github.com/permutest/permutest/pkgs/permute"
)

// DefaultPackage is the package name of generated files when none is
// configured
const DefaultPackage = "generated"

// Options configures source generation
type Options struct {
	// Package is the package clause of the generated file. Generated
	// tests live in the same package as the constants their value
	// expressions reference.
	Package string
}

// TemplateData is the preprocessed, template-ready form of a specification
// file
type TemplateData struct {
	Package string
	Specs   []TemplateSpec
}

// TemplateSpec groups the units of one specification under its title, in
// enumeration order
type TemplateSpec struct {
	Title string
	Units []TemplateUnit
}

// TemplateUnit is one generated test function
type TemplateUnit struct {
	FuncName   string
	Bindings   []TemplateBinding
	ResultName string
	RunBody    string // Run block text, verbatim
	CheckBody  string // Check block text, verbatim
}

// TemplateBinding is one variable binding line of a unit
type TemplateBinding struct {
	Name string
	Expr string
}

// Unit is one independently runnable generated test
type Unit struct {
	Name     string
	Bindings permute.Combination
	Body     string
}

// Bundle collects the generated units of one specification under its title,
// preserving enumeration order
type Bundle struct {
	Title string
	Units []Unit
}

// specVariables converts a specification's declarations to the permute form
func specVariables(spec *parser.Spec) []permute.Variable {
	vars := make([]permute.Variable, 0, len(spec.Variables))
	for _, decl := range spec.Variables {
		values := make([]string, 0, len(decl.Values))
		for _, v := range decl.Values {
			values = append(values, v.Text)
		}
		vars = append(vars, permute.Variable{Name: decl.Name, Values: values})
	}
	return vars
}

// Preprocess converts a parsed file into template-ready data. Name collision
// checks run here, before any unit exists.
func Preprocess(file *parser.File, opts Options) (*TemplateData, error) {
	if file == nil {
		return nil, NewValidationError("specification file cannot be nil", "", 0)
	}
	if len(file.Specs) == 0 {
		return nil, NewValidationError("specification file contains no specifications", "", 0)
	}

	pkg := opts.Package
	if pkg == "" {
		pkg = DefaultPackage
	}

	data := &TemplateData{Package: pkg}
	for i := range file.Specs {
		spec := &file.Specs[i]
		vars := specVariables(spec)

		if err := permute.CheckNames(vars); err != nil {
			verr := NewValidationError(err.Error(), spec.Title, spec.TitlePos.Line)
			verr.Cause = err
			return nil, verr
		}

		ts := TemplateSpec{Title: spec.Title}
		for _, combo := range permute.Enumerate(vars) {
			unit := TemplateUnit{
				FuncName:   "Test_" + spec.Title + "_" + permute.UnitName(combo),
				ResultName: spec.ResultName,
				RunBody:    spec.Run.Text,
				CheckBody:  spec.Check.Text,
			}
			for _, binding := range combo {
				unit.Bindings = append(unit.Bindings, TemplateBinding{
					Name: binding.Var,
					Expr: binding.Value,
				})
			}
			ts.Units = append(ts.Units, unit)
		}
		data.Specs = append(data.Specs, ts)
	}

	return data, nil
}

// Generate renders a parsed specification file into one Go test source file
func Generate(file *parser.File, opts Options) (string, error) {
	data, err := Preprocess(file, opts)
	if err != nil {
		return "", err
	}

	registry := NewTemplateRegistry()
	tmpl, err := template.New("permutest").Parse(registry.GetAllTemplates())
	if err != nil {
		return "", NewTemplateError(err.Error(), "file")
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "file", data); err != nil {
		return "", NewTemplateError(err.Error(), "file")
	}

	result := buf.String()
	if len(result) == 0 {
		return "", NewTemplateError("generated empty source file", "file")
	}
	return result, nil
}

// Expand produces the generated units of a single specification without
// assembling a source file around them. Unit bodies are the rendered test
// functions; order matches Enumerate.
func Expand(spec *parser.Spec) (*Bundle, error) {
	if spec == nil {
		return nil, NewValidationError("specification cannot be nil", "", 0)
	}

	vars := specVariables(spec)
	if err := permute.CheckNames(vars); err != nil {
		verr := NewValidationError(err.Error(), spec.Title, spec.TitlePos.Line)
		verr.Cause = err
		return nil, verr
	}

	registry := NewTemplateRegistry()
	tmpl, err := template.New("permutest").Parse(registry.GetAllTemplates())
	if err != nil {
		return nil, NewTemplateError(err.Error(), "unit")
	}

	bundle := &Bundle{Title: spec.Title}
	for _, combo := range permute.Enumerate(vars) {
		unit := TemplateUnit{
			FuncName:   "Test_" + spec.Title + "_" + permute.UnitName(combo),
			ResultName: spec.ResultName,
			RunBody:    spec.Run.Text,
			CheckBody:  spec.Check.Text,
		}
		for _, binding := range combo {
			unit.Bindings = append(unit.Bindings, TemplateBinding{
				Name: binding.Var,
				Expr: binding.Value,
			})
		}

		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, "unit", unit); err != nil {
			return nil, NewTemplateError(fmt.Sprintf("rendering unit %s: %v", unit.FuncName, err), "unit")
		}

		bundle.Units = append(bundle.Units, Unit{
			Name:     unit.FuncName,
			Bindings: combo,
			Body:     buf.String(),
		})
	}

	return bundle, nil
}
