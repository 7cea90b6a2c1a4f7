// Package codegen derives generated step variants (retry, try,
// conditional) from base action metadata and renders them as Go source.
//
// Generation is pure: the same input always yields byte-identical output.
package codegen

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Variant is a derived step form.
type Variant string

const (
	// VariantBase is the action itself.
	VariantBase Variant = ""
	// VariantRetry retries the action with backoff (retry<Action>).
	VariantRetry Variant = "retry"
	// VariantTry swallows the action's failure (tryTo<Action>).
	VariantTry Variant = "try"
	// VariantConditional records an assertion failure without halting
	// (can<Action> / cant<Action>).
	VariantConditional Variant = "conditional"
)

// Variants lists the derived forms in generation order.
var Variants = []Variant{VariantRetry, VariantTry, VariantConditional}

// Disclaimers prepended to the documentation of derived methods.
const (
	ConditionalDisclaimer = "[!] Conditional Assertion: Test won't be stopped on fail"
	RetryDisclaimer       = "[!] Method is generated. Retry number and interval are configured with SetRetry."
	TryDisclaimer         = "[!] Method is generated. Tries to perform the action and reports false on failure."
)

// Param is one formal parameter of an action.
type Param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// GeneratedStepSpec is the metadata of one base action.
type GeneratedStepSpec struct {
	Action     string
	Capability string
	Params     []Param
	Doc        string
	Variant    Variant
}

// IsAssertion reports whether the action is a state assertion (see*, dontSee*).
func (s GeneratedStepSpec) IsAssertion() bool {
	return strings.HasPrefix(s.Action, "see") || strings.HasPrefix(s.Action, "dontSee")
}

// TemplateSpec is everything needed to render one method.
type TemplateSpec struct {
	// Method is the derived step name, for example retrySeeElement.
	Method     string
	Action     string
	Capability string
	Params     []Param
	Doc        string
	Variant    Variant
	Assertion  bool
}

// GoName is the exported Go method name.
func (t *TemplateSpec) GoName() string {
	return capitalize(t.Method)
}

// capitalize upper-cases the first letter and keeps the rest intact.
func capitalize(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}
