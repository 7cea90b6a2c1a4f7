package codegen

import "strings"

// exclusions lists, per variant, the prefixes of action names that never
// get that variant. A plain prefix match applies, so "amend" is excluded
// like "amOnPage". Setup and wait actions are not retried; state assertions and
// waits must fail loudly so they are never tried.
var exclusions = map[Variant][]string{
	VariantRetry: {"have", "am", "wait"},
	VariantTry:   {"have", "am", "see", "dontSee", "wait"},
}

// Base returns the template of the action itself.
func Base(spec GeneratedStepSpec) *TemplateSpec {
	return &TemplateSpec{
		Method:     spec.Action,
		Action:     spec.Action,
		Capability: spec.Capability,
		Params:     copyParams(spec.Params),
		Doc:        spec.Doc,
		Variant:    VariantBase,
		Assertion:  spec.IsAssertion(),
	}
}

// DeriveTemplate derives the variant form of base. It returns false when
// the variant does not apply to the action, which is not an error.
func DeriveTemplate(base GeneratedStepSpec, variant Variant) (*TemplateSpec, bool) {
	if base.Action == "" {
		return nil, false
	}
	for _, prefix := range exclusions[variant] {
		if strings.HasPrefix(base.Action, prefix) {
			return nil, false
		}
	}

	var method, disclaimer string
	switch variant {
	case VariantRetry:
		method = "retry" + capitalize(base.Action)
		disclaimer = RetryDisclaimer
	case VariantTry:
		method = "tryTo" + capitalize(base.Action)
		disclaimer = TryDisclaimer
	case VariantConditional:
		switch {
		case strings.HasPrefix(base.Action, "see"):
			method = "can" + capitalize(base.Action)
		case strings.HasPrefix(base.Action, "dontSee"):
			method = "cant" + strings.TrimPrefix(base.Action, "dont")
		default:
			return nil, false
		}
		disclaimer = ConditionalDisclaimer
	default:
		return nil, false
	}

	return &TemplateSpec{
		Method:     method,
		Action:     base.Action,
		Capability: base.Capability,
		Params:     copyParams(base.Params),
		Doc:        annotate(disclaimer, base.Doc),
		Variant:    variant,
		Assertion:  base.IsAssertion(),
	}, true
}

// Derive returns every applicable variant of base in generation order.
func Derive(base GeneratedStepSpec) []*TemplateSpec {
	var out []*TemplateSpec
	for _, v := range Variants {
		if tmpl, ok := DeriveTemplate(base, v); ok {
			out = append(out, tmpl)
		}
	}
	return out
}

func annotate(disclaimer, doc string) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return disclaimer
	}
	return disclaimer + "\n\n" + doc
}

func copyParams(params []Param) []Param {
	if len(params) == 0 {
		return nil
	}
	return append([]Param(nil), params...)
}
