package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// Submit is the engine's main entry point: parse, instantiate, wrap, and
// record one candidate utility token. Failures never propagate as errors to
// the caller in the sense of aborting — they are appended to env.Diagnostics
// and Submit returns false, matching §7's "no rule emitted for this token".
func (env *EmitEnv) Submit(token string) bool {
	className := Escape(token)
	if env.generatedDefs == nil {
		env.generatedDefs = map[string]bool{}
	}
	if env.generatedDefs[className] {
		return true
	}

	parsed, err := ParseUtilityToken(token)
	if err != nil {
		env.Diagnostics = append(env.Diagnostics, Diagnostic{Token: token, Err: err})
		return false
	}

	inst, err := env.Instantiate(parsed.Utility)
	if err != nil {
		env.Diagnostics = append(env.Diagnostics, Diagnostic{Token: token, Err: err})
		return false
	}

	body, pseudos, err := env.ApplyVariants(parsed.Variants, inst.Body)
	if err != nil {
		env.Diagnostics = append(env.Diagnostics, Diagnostic{Token: token, Err: err})
		return false
	}

	env.generatedDefs[className] = true
	env.EmittedRules = append(env.EmittedRules, Rule{
		ClassName:      className,
		PseudoElements: pseudos,
		Body:           body,
	})
	env.CustomProperties = append(env.CustomProperties, inst.Properties...)
	return true
}

// Escape implements the class-name escaping rule (§4.G): any character
// outside [A-Za-z0-9_-] (and non-ASCII, which passes through unescaped)
// gets a preceding backslash.
func Escape(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		if r > 127 {
			sb.WriteRune(r)
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			sb.WriteRune(r)
			continue
		}
		sb.WriteByte('\\')
		sb.WriteRune(r)
	}
	return sb.String()
}

// Render assembles the final stylesheet (§4.G): optional preflight,
// :root{} theme vars, @keyframes, rules in insertion order, then
// @property declarations.
func (env *EmitEnv) Render(preflight string) string {
	var sb strings.Builder

	if preflight != "" {
		sb.WriteString(preflight)
		sb.WriteString("\n")
	}

	if len(env.Theme.Vars) > 0 {
		sb.WriteString(":root {\n")
		keys := make([]string, 0, len(env.Theme.Vars))
		for k := range env.Theme.Vars {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %s;\n", k, env.Theme.Vars[k])
		}
		sb.WriteString("}\n")
	}

	if len(env.Theme.Keyframes) > 0 {
		names := make([]string, 0, len(env.Theme.Keyframes))
		for n := range env.Theme.Keyframes {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(&sb, "@keyframes %s {%s}\n", n, env.Theme.Keyframes[n])
		}
	}

	for _, rule := range env.EmittedRules {
		selector := "." + rule.ClassName
		for _, pe := range rule.PseudoElements {
			selector += "::" + pe
		}
		fmt.Fprintf(&sb, "%s {\n%s\n}\n", selector, rule.Body)
	}

	for _, p := range env.CustomProperties {
		fmt.Fprintf(&sb, "@property %s {\n  syntax: \"%s\";\n  initial-value: %s;\n  inherits: false;\n}\n", p.Name, p.Syntax, p.Default)
	}

	return sb.String()
}
