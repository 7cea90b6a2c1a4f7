package codegen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seeElement = GeneratedStepSpec{
	Action:     "seeElement",
	Capability: "Web",
	Params:     []Param{{Name: "locator", Type: "string"}},
	Doc:        "Checks that an element is visible.",
}

func TestDeriveTemplate_Naming(t *testing.T) {
	tests := []struct {
		action  string
		variant Variant
		method  string
		ok      bool
	}{
		{"seeElement", VariantConditional, "canSeeElement", true},
		{"dontSeeElement", VariantConditional, "cantSeeElement", true},
		{"click", VariantConditional, "", false},
		{"seeElement", VariantRetry, "retrySeeElement", true},
		{"click", VariantRetry, "retryClick", true},
		{"amOnPage", VariantRetry, "", false},
		{"haveCookie", VariantRetry, "", false},
		{"waitForElement", VariantRetry, "", false},
		{"click", VariantTry, "tryToClick", true},
		{"seeElement", VariantTry, "", false},
		{"dontSeeElement", VariantTry, "", false},
		{"amOnPage", VariantTry, "", false},
		{"haveCookie", VariantTry, "", false},
		{"wait", VariantTry, "", false},
		{"amend", VariantRetry, "", false},
		{"haveno", VariantRetry, "", false},
		{"waitress", VariantRetry, "", false},
		{"seed", VariantTry, "", false},
		{"seeing", VariantTry, "", false},
		{"amend", VariantTry, "", false},
		{"seed", VariantRetry, "retrySeed", true},
		{"seeding", VariantConditional, "canSeeding", true},
		{"click", VariantBase, "", false},
		{"", VariantRetry, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.variant)+"/"+tt.action, func(t *testing.T) {
			tmpl, ok := DeriveTemplate(GeneratedStepSpec{Action: tt.action}, tt.variant)
			require.Equal(t, tt.ok, ok)
			if !ok {
				assert.Nil(t, tmpl)
				return
			}
			assert.Equal(t, tt.method, tmpl.Method)
			assert.Equal(t, tt.variant, tmpl.Variant)
			assert.Equal(t, tt.action, tmpl.Action)
		})
	}
}

func TestDeriveTemplate_ConditionalSeeElement(t *testing.T) {
	tmpl, ok := DeriveTemplate(seeElement, VariantConditional)
	require.True(t, ok)

	assert.Equal(t, "canSeeElement", tmpl.Method)
	assert.Equal(t, "CanSeeElement", tmpl.GoName())
	assert.Contains(t, tmpl.Doc, "[!] Conditional Assertion")
	assert.Contains(t, tmpl.Doc, seeElement.Doc)
	assert.Equal(t, seeElement.Params, tmpl.Params)
	assert.True(t, tmpl.Assertion)
}

func TestDeriveTemplate_CopiesParams(t *testing.T) {
	tmpl, ok := DeriveTemplate(seeElement, VariantRetry)
	require.True(t, ok)

	tmpl.Params[0].Name = "changed"
	assert.Equal(t, "locator", seeElement.Params[0].Name)
}

func TestDeriveTemplate_DisclaimerWithoutDoc(t *testing.T) {
	tmpl, ok := DeriveTemplate(GeneratedStepSpec{Action: "click"}, VariantTry)
	require.True(t, ok)
	assert.Equal(t, TryDisclaimer, tmpl.Doc)
}

func TestDerive(t *testing.T) {
	methods := func(ts []*TemplateSpec) []string {
		var out []string
		for _, tmpl := range ts {
			out = append(out, tmpl.Method)
		}
		return out
	}

	assert.Equal(t, []string{"retrySeeElement", "canSeeElement"}, methods(Derive(seeElement)))
	assert.Equal(t, []string{"retryClick", "tryToClick"}, methods(Derive(GeneratedStepSpec{Action: "click"})))
	assert.Empty(t, Derive(GeneratedStepSpec{Action: "amOnPage"}))
	assert.Empty(t, Derive(GeneratedStepSpec{Action: "waitForText"}))
}

func TestRender_Retry(t *testing.T) {
	tmpl, ok := DeriveTemplate(seeElement, VariantRetry)
	require.True(t, ok)

	out, err := Render(tmpl)
	require.NoError(t, err)

	want := `// RetrySeeElement calls seeElement on the Web capability and retries it on failure.
//
// [!] Method is generated. Retry number and interval are configured with SetRetry.
//
// Checks that an element is visible.
func (a *Actor) RetrySeeElement(ctx context.Context, locator string) error {
	_, err := a.retry(ctx, step.CallerTrace(1), step.KindAssertion, "seeElement", locator)
	return err
}
`
	assert.Equal(t, want, string(out))
}

func TestRender_Bodies(t *testing.T) {
	click := GeneratedStepSpec{Action: "click", Capability: "Web", Params: []Param{{Name: "locator", Type: "string"}}}

	tests := []struct {
		name string
		tmpl *TemplateSpec
		sig  string
		body string
	}{
		{
			name: "base action",
			tmpl: Base(click),
			sig:  "func (a *Actor) Click(ctx context.Context, locator string) (any, error) {",
			body: `return a.do(ctx, step.CallerTrace(1), "click", locator)`,
		},
		{
			name: "base assertion",
			tmpl: Base(seeElement),
			sig:  "func (a *Actor) SeeElement(ctx context.Context, locator string) error {",
			body: `return a.see(ctx, step.CallerTrace(1), "seeElement", locator)`,
		},
		{
			name: "retry action",
			tmpl: mustDerive(t, click, VariantRetry),
			sig:  "func (a *Actor) RetryClick(ctx context.Context, locator string) (any, error) {",
			body: `return a.retry(ctx, step.CallerTrace(1), step.KindAction, "click", locator)`,
		},
		{
			name: "try",
			tmpl: mustDerive(t, click, VariantTry),
			sig:  "func (a *Actor) TryToClick(ctx context.Context, locator string) (bool, error) {",
			body: `return a.try(ctx, step.CallerTrace(1), "click", locator)`,
		},
		{
			name: "conditional",
			tmpl: mustDerive(t, GeneratedStepSpec{Action: "dontSeeElement", Capability: "Web"}, VariantConditional),
			sig:  "func (a *Actor) CantSeeElement(ctx context.Context) error {",
			body: `return a.can(ctx, step.CallerTrace(1), "dontSeeElement")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.tmpl)
			require.NoError(t, err)
			assert.Contains(t, string(out), tt.sig)
			assert.Contains(t, string(out), "\t"+tt.body+"\n}\n")
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	for _, v := range Variants {
		a, okA := DeriveTemplate(seeElement, v)
		b, okB := DeriveTemplate(seeElement, v)
		require.Equal(t, okA, okB)
		if !okA {
			continue
		}

		outA, err := Render(a)
		require.NoError(t, err)
		outB, err := Render(b)
		require.NoError(t, err)
		assert.Equal(t, outA, outB)
	}
}

func mustDerive(t *testing.T, spec GeneratedStepSpec, v Variant) *TemplateSpec {
	t.Helper()
	tmpl, ok := DeriveTemplate(spec, v)
	require.True(t, ok)
	return tmpl
}

const manifestYAML = `
capabilities:
  - name: Web
    actions:
      - name: seeElement
        doc: Checks that an element is visible.
        params:
          - name: locator
            type: string
      - name: amOnPage
        params:
          - name: url
            type: string
      - name: click
        doc: |
          Clicks a button.
          Waits for nothing.
        params:
          - name: locator
            type: string
`

func TestGenerateFile(t *testing.T) {
	m, err := ParseManifest([]byte(manifestYAML))
	require.NoError(t, err)

	src, err := GenerateFile("actor", m)
	require.NoError(t, err)

	file, err := parser.ParseFile(token.NewFileSet(), "steps_gen.go", src, parser.ParseComments)
	require.NoError(t, err)
	assert.Equal(t, "actor", file.Name.Name)

	var names []string
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			names = append(names, fn.Name.Name)
		}
	}
	assert.Equal(t, []string{
		"AmOnPage",
		"Click", "RetryClick", "TryToClick",
		"SeeElement", "RetrySeeElement", "CanSeeElement",
	}, names)
	assert.Contains(t, string(src), "// Code generated by stepwise generate. DO NOT EDIT.")

	again, err := GenerateFile("actor", m)
	require.NoError(t, err)
	assert.Equal(t, src, again)
}

func TestGenerateFile_Empty(t *testing.T) {
	src, err := GenerateFile("actor", &Manifest{})
	require.NoError(t, err)
	assert.NotContains(t, string(src), "import")
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "capabilities: [unterminated"},
		{"capability without name", "capabilities:\n  - actions:\n      - name: click\n"},
		{"bad action name", "capabilities:\n  - name: Web\n    actions:\n      - name: 'see element'\n"},
		{"duplicate action", "capabilities:\n  - name: A\n    actions:\n      - name: click\n  - name: B\n    actions:\n      - name: click\n"},
		{"reserved param", "capabilities:\n  - name: Web\n    actions:\n      - name: click\n        params:\n          - name: ctx\n            type: string\n"},
		{"untyped param", "capabilities:\n  - name: Web\n    actions:\n      - name: click\n        params:\n          - name: locator\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidManifest)
		})
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifestYAML), 0o600))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	specs := m.Specs()
	require.Len(t, specs, 3)
	assert.Equal(t, "Web", specs[0].Capability)
	assert.Equal(t, VariantBase, specs[0].Variant)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
