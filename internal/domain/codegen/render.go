package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"text/template"
)

// StepImportPath is the import path generated methods build steps with.
const StepImportPath = "github.com/felixgeelhaar/stepwise/internal/domain/step"

const fileHeader = `// Code generated by stepwise generate. DO NOT EDIT.

package {{.Package}}
{{if .Methods}}
import (
	"context"

	"{{.StepImport}}"
)
{{end}}`

// methodTemplate renders one method on Actor. The actor helpers do, see,
// retry, try and can map one to one onto the step variants.
const methodTemplate = `{{define "call"}}(ctx, step.CallerTrace(1), {{printf "%q" .Action}}{{args .Params}}){{end}}
{{- comment .}}
func (a *Actor) {{.GoName}}(ctx context.Context{{params .Params}}) {{returns .}} {
{{- if eq .Variant "retry"}}
{{- if .Assertion}}
	_, err := a.retry(ctx, step.CallerTrace(1), step.KindAssertion, {{printf "%q" .Action}}{{args .Params}})
	return err
{{- else}}
	return a.retry(ctx, step.CallerTrace(1), step.KindAction, {{printf "%q" .Action}}{{args .Params}})
{{- end}}
{{- else if eq .Variant "try"}}
	return a.try{{template "call" .}}
{{- else if eq .Variant "conditional"}}
	return a.can{{template "call" .}}
{{- else if .Assertion}}
	return a.see{{template "call" .}}
{{- else}}
	return a.do{{template "call" .}}
{{- end}}
}
`

var (
	headerTmpl = template.Must(template.New("header").Parse(fileHeader))
	methodTmpl = template.Must(template.New("method").Funcs(template.FuncMap{
		"comment": comment,
		"params":  params,
		"args":    args,
		"returns": returns,
	}).Parse(methodTemplate))
)

// Render renders the Go method for tmpl.
func Render(tmpl *TemplateSpec) ([]byte, error) {
	var buf bytes.Buffer
	if err := methodTmpl.Execute(&buf, tmpl); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", tmpl.Method, err)
	}
	return buf.Bytes(), nil
}

// GenerateFile renders every action of the manifest followed by its
// derived variants, sorted by action name, as a gofmt-ed Go file.
func GenerateFile(pkg string, manifest *Manifest) ([]byte, error) {
	specs := manifest.Specs()
	sort.SliceStable(specs, func(i, j int) bool {
		return specs[i].Action < specs[j].Action
	})

	var buf bytes.Buffer
	data := struct {
		Package    string
		StepImport string
		Methods    bool
	}{Package: pkg, StepImport: StepImportPath, Methods: len(specs) > 0}
	if err := headerTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render header: %w", err)
	}

	for _, spec := range specs {
		templates := append([]*TemplateSpec{Base(spec)}, Derive(spec)...)
		for _, tmpl := range templates {
			out, err := Render(tmpl)
			if err != nil {
				return nil, err
			}
			buf.WriteByte('\n')
			buf.Write(out)
		}
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated code does not parse: %w", err)
	}
	return src, nil
}

func summary(t *TemplateSpec) string {
	switch t.Variant {
	case VariantRetry:
		return fmt.Sprintf("%s calls %s on the %s capability and retries it on failure.", t.GoName(), t.Action, t.Capability)
	case VariantTry:
		return fmt.Sprintf("%s tries %s on the %s capability and reports whether it succeeded.", t.GoName(), t.Action, t.Capability)
	case VariantConditional:
		return fmt.Sprintf("%s checks %s on the %s capability without stopping the test on failure.", t.GoName(), t.Action, t.Capability)
	default:
		return fmt.Sprintf("%s calls %s on the %s capability.", t.GoName(), t.Action, t.Capability)
	}
}

func comment(t *TemplateSpec) string {
	var b strings.Builder
	b.WriteString("// ")
	b.WriteString(summary(t))

	if doc := strings.TrimSpace(t.Doc); doc != "" {
		b.WriteString("\n//")
		for _, line := range strings.Split(doc, "\n") {
			b.WriteString("\n//")
			if line = strings.TrimRight(line, " \t"); line != "" {
				b.WriteString(" ")
				b.WriteString(line)
			}
		}
	}
	return b.String()
}

func params(ps []Param) string {
	var b strings.Builder
	for _, p := range ps {
		fmt.Fprintf(&b, ", %s %s", p.Name, p.Type)
	}
	return b.String()
}

func args(ps []Param) string {
	var b strings.Builder
	for _, p := range ps {
		b.WriteString(", ")
		b.WriteString(p.Name)
	}
	return b.String()
}

func returns(t *TemplateSpec) string {
	switch {
	case t.Variant == VariantTry:
		return "(bool, error)"
	case t.Variant == VariantConditional, t.Assertion:
		return "error"
	default:
		return "(any, error)"
	}
}
