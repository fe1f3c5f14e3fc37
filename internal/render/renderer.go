package render

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"record-generator/internal/descriptor"
	"record-generator/internal/model"
	"record-generator/internal/namer"
)

// GoRenderer renders GeneratedTypeModels as formatted Go source files.
type GoRenderer struct {
	packageName string
}

// NewGoRenderer creates a renderer emitting into the given package.
func NewGoRenderer(packageName string) *GoRenderer {
	return &GoRenderer{packageName: packageName}
}

// templateData holds everything the record template needs.
type templateData struct {
	PackageName     string
	Imports         []importSpec
	TargetName      string
	SourceDoc       string
	MultiSource     bool
	Fields          []fieldSpec
	Constants       []model.FieldConstant
	Asserts         []string
	ConstructorName string
	Params          []paramSpec
	Assignments     []assignSpec
	Getters         []getterSpec
	StringFmt       string
	StringArgs      string
	FromGenerated   string
	FromMap         string
	FromMapCases    []fromMapCase
	Withers         []witherSpec
}

type fieldSpec struct {
	Name string
	Type string
}

type paramSpec struct {
	Name string
	Type string
}

type assignSpec struct {
	Field string
	Expr  string
}

type getterSpec struct {
	Name  string
	Field string
	Type  string
}

type fromMapCase struct {
	Const string
	Field string
	Type  string
}

type witherSpec struct {
	Name  string
	Field string
	Type  string
}

// Render produces the formatted Go source for one generated type.
func (r *GoRenderer) Render(m *model.GeneratedTypeModel) ([]byte, error) {
	data, err := r.buildTemplateData(m)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := recordTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template for %s: %w", m.TargetName, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Hand back the unformatted source so the caller can persist it for
		// debugging alongside the failure.
		return buf.Bytes(), fmt.Errorf("formatting %s: %w", m.TargetName, err)
	}

	return formatted, nil
}

// buildTemplateData flattens the model into render-ready strings.
func (r *GoRenderer) buildTemplateData(m *model.GeneratedTypeModel) (*templateData, error) {
	if m == nil || len(m.Sources) == 0 {
		return nil, fmt.Errorf("model has no sources")
	}

	imports := make(map[string]importSpec)
	addImport(imports, "fmt") // String method

	data := &templateData{
		PackageName:     r.packageName,
		TargetName:      m.TargetName,
		MultiSource:     len(m.Sources) > 1,
		Constants:       m.FieldConstants,
		ConstructorName: constructorName(m.TargetName),
	}

	var sourceNames []string
	for _, src := range m.Sources {
		sourceNames = append(sourceNames, src.ID.String())
	}

	data.SourceDoc = strings.Join(sourceNames, " + ")

	var fmtParts, argParts []string

	for _, f := range m.Fields {
		typeStr := goTypeString(f.Type, imports)

		data.Fields = append(data.Fields, fieldSpec{Name: f.Name, Type: typeStr})
		data.Getters = append(data.Getters, getterSpec{
			Name:  namer.Exported(f.Name),
			Field: f.Name,
			Type:  typeStr,
		})

		fmtParts = append(fmtParts, f.Name+": %v")
		argParts = append(argParts, "r."+f.Name)
	}

	data.StringFmt = m.TargetName + "{" + strings.Join(fmtParts, ", ") + "}"
	if len(argParts) > 0 {
		data.StringArgs = ", " + strings.Join(argParts, ", ")
	}

	for _, p := range m.ConstructorParams {
		data.Params = append(data.Params, paramSpec{
			Name: p.Name,
			Type: sourceTypeString(p.Source, imports),
		})
	}

	for _, expr := range m.ConversionExprs {
		data.Assignments = append(data.Assignments, assignSpec{
			Field: expr.Field,
			Expr:  conversionExpr(expr, imports),
		})
	}

	for _, iface := range m.Interfaces {
		data.Asserts = append(data.Asserts, simpleTypeString(iface.Name, imports))
	}

	constantByField := make(map[string]string, len(m.FieldConstants))
	for _, c := range m.FieldConstants {
		constantByField[c.Value] = c.Name
	}

	for _, fac := range m.Factories {
		switch fac.Kind {
		case model.FactoryFromGenerated:
			data.FromGenerated = fac.Name

		case model.FactoryFromMap:
			data.FromMap = fac.Name

			for i, f := range m.Fields {
				data.FromMapCases = append(data.FromMapCases, fromMapCase{
					Const: constantByField[f.Name],
					Field: f.Name,
					Type:  data.Fields[i].Type,
				})
			}

		case model.FactoryWith:
			for i, f := range m.Fields {
				if f.Name != fac.Field {
					continue
				}

				data.Withers = append(data.Withers, witherSpec{
					Name:  fac.Name,
					Field: fac.Field,
					Type:  data.Fields[i].Type,
				})
			}
		}
	}

	data.Imports = sortedImports(imports)

	return data, nil
}

// sourceTypeString renders a source descriptor's Go type, importing its
// package.
func sourceTypeString(src *descriptor.TypeDescriptor, imports map[string]importSpec) string {
	return simpleTypeString(src.ID.String(), imports)
}

var recordTemplate = template.Must(template.New("record").Parse(`// Code generated by record-generator. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Aliased}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

// {{.TargetName}} is the immutable counterpart of {{.SourceDoc}}.
type {{.TargetName}} struct {
{{range .Fields}}	{{.Name}} {{.Type}}
{{end}}}

{{if .Constants}}// Field name constants for {{.TargetName}}.
const (
{{range .Constants}}	{{.Name}} = "{{.Value}}"
{{end}})

{{end}}{{range .Asserts}}var _ {{.}} = {{$.TargetName}}{}
{{end}}
// {{.ConstructorName}} builds a {{.TargetName}} from {{if .MultiSource}}its source instances{{else}}a source instance{{end}}.
func {{.ConstructorName}}({{range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.Name}} {{$p.Type}}{{end}}) {{.TargetName}} {
	return {{.TargetName}}{
{{range .Assignments}}		{{.Field}}: {{.Expr}},
{{end}}	}
}

{{range .Getters}}// {{.Name}} returns the {{.Field}} field value.
func (r {{$.TargetName}}) {{.Name}}() {{.Type}} {
	return r.{{.Field}}
}

{{end}}// String implements fmt.Stringer.
func (r {{.TargetName}}) String() string {
	return fmt.Sprintf("{{.StringFmt}}"{{.StringArgs}})
}
{{if .FromGenerated}}
// {{.FromGenerated}} returns a copy of a previously generated instance.
func {{.FromGenerated}}(other {{.TargetName}}) {{.TargetName}} {
	return other
}
{{end}}{{if .FromMap}}
// {{.FromMap}} builds a {{.TargetName}} from a field-name-to-value mapping,
// defaulting every absent field to the current value.
func {{.FromMap}}(current {{.TargetName}}, values map[string]any) {{.TargetName}} {
	out := current
{{range .FromMapCases}}	if v, ok := values[{{.Const}}].({{.Type}}); ok {
		out.{{.Field}} = v
	}
{{end}}	return out
}
{{end}}{{range .Withers}}
// {{.Name}} returns a copy with the {{.Field}} field replaced.
func (r {{$.TargetName}}) {{.Name}}(v {{.Type}}) {{$.TargetName}} {
	out := r
	out.{{.Field}} = v
	return out
}
{{end}}`))
