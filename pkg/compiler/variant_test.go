package compiler

import (
	"strings"
	"testing"
)

func variantEnv() *EmitEnv {
	env := NewEmitEnv()
	env.LoadConfigString(`
@custom-variant pointer-coarse (@media (pointer: coarse));
@custom-variant hover (&:hover);
`)
	return env
}

func chainFor(t *testing.T, token string) []Segment {
	t.Helper()
	parsed, err := ParseUtilityToken(token + ":x")
	if err != nil {
		t.Fatalf("ParseUtilityToken(%q): %v", token, err)
	}
	if len(parsed.Variants) != 1 {
		t.Fatalf("want 1 variant chain, got %d", len(parsed.Variants))
	}
	return parsed.Variants[0]
}

func TestApplyVariantsBreakpoint(t *testing.T) {
	env := variantEnv()
	body, _, err := env.ApplyVariants([][]Segment{chainFor(t, "md")}, "color: red;")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	want := "@media (width >= 48rem) {\ncolor: red;\n}"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestApplyVariantsPseudoClass(t *testing.T) {
	env := variantEnv()
	body, _, err := env.ApplyVariants([][]Segment{chainFor(t, "[&:hover]")}, "color: red;")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	want := "&:hover {\ncolor: red;\n}"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestApplyVariantsPseudoElement(t *testing.T) {
	env := variantEnv()
	_, pseudos, err := env.ApplyVariants([][]Segment{chainFor(t, "before")}, "content: '';")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	if len(pseudos) != 1 || pseudos[0] != "before" {
		t.Errorf("pseudos = %v, want [before]", pseudos)
	}
}

func TestApplyVariantsSupports(t *testing.T) {
	env := variantEnv()
	body, _, err := env.ApplyVariants([][]Segment{chainFor(t, "supports-[display:grid]")}, "display: grid;")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	want := "@supports (display:grid) {\ndisplay: grid;\n}"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestApplyVariantsNotSupports(t *testing.T) {
	env := variantEnv()
	body, _, err := env.ApplyVariants([][]Segment{chainFor(t, "not-supports-[display:grid]")}, "display: block;")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	want := "@supports (not display:grid) {\ndisplay: block;\n}"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestApplyVariantsAriaBoolean(t *testing.T) {
	env := variantEnv()
	body, _, err := env.ApplyVariants([][]Segment{chainFor(t, "aria-checked")}, "color: red;")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	want := `&[aria-checked="true"] {` + "\ncolor: red;\n}"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestApplyVariantsAriaArbitrary(t *testing.T) {
	env := variantEnv()
	body, _, err := env.ApplyVariants([][]Segment{chainFor(t, "aria-[sort=ascending]")}, "color: red;")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	want := "&[aria-sort=ascending] {\ncolor: red;\n}"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestApplyVariantsData(t *testing.T) {
	env := variantEnv()
	body, _, err := env.ApplyVariants([][]Segment{chainFor(t, "data-[state=open]")}, "display: block;")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	want := "&[data-state=open] {\ndisplay: block;\n}"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestApplyVariantsNth(t *testing.T) {
	env := variantEnv()
	body, _, err := env.ApplyVariants([][]Segment{chainFor(t, "nth-[3n+1]")}, "color: red;")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	want := "&:nth-child(3n+1) {\ncolor: red;\n}"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestApplyVariantsHas(t *testing.T) {
	env := variantEnv()
	body, _, err := env.ApplyVariants([][]Segment{chainFor(t, "has-[.icon]")}, "color: red;")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	want := "&:has(.icon) {\ncolor: red;\n}"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestApplyVariantsNot(t *testing.T) {
	env := variantEnv()
	body, _, err := env.ApplyVariants([][]Segment{chainFor(t, "not-hover")}, "color: red;")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	want := "&:not(:hover) {\ncolor: red;\n}"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestApplyVariantsGroupHasFocusWithScope(t *testing.T) {
	env := variantEnv()
	body, _, err := env.ApplyVariants([][]Segment{chainFor(t, "group-has-focus/menu")}, "color: red;")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	if !strings.Contains(body, `.group\/menu`) {
		t.Errorf("body = %q, want it to reference the named group scope", body)
	}
}

func TestApplyVariantsBareCombinator(t *testing.T) {
	env := variantEnv()
	body, _, err := env.ApplyVariants([][]Segment{chainFor(t, "*")}, "color: red;")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	if body != "& > * {\ncolor: red;\n}" {
		t.Errorf("body = %q", body)
	}
}

func TestApplyVariantsCustomVariant(t *testing.T) {
	env := variantEnv()
	body, _, err := env.ApplyVariants([][]Segment{chainFor(t, "pointer-coarse")}, "color: red;")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	want := "@media (pointer: coarse) {\ncolor: red;\n}"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestApplyVariantsUnknownVariant(t *testing.T) {
	env := variantEnv()
	_, _, err := env.ApplyVariants([][]Segment{chainFor(t, "totally-bogus-variant")}, "color: red;")
	if err == nil {
		t.Error("want an error for an unknown variant")
	}
}

func TestApplyVariantsChainOrderOutermostLast(t *testing.T) {
	env := variantEnv()
	chains := [][]Segment{chainFor(t, "hover"), chainFor(t, "md")}
	body, _, err := env.ApplyVariants(chains, "color: red;")
	if err != nil {
		t.Fatalf("ApplyVariants: %v", err)
	}
	// "md" is applied second, so it must end up as the outer wrapper.
	if !strings.HasPrefix(body, "@media (width >= 48rem) {\n&:hover {\n") {
		t.Errorf("body = %q, want md outermost around hover", body)
	}
}
