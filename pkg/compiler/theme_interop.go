package compiler

import (
	"fmt"
	"strings"

	"github.com/dmoose/duckwind/pkg/tokens"
	"gopkg.in/yaml.v3"
)

// ThemeFromDictionary is component H: it adapts a W3C Design Tokens
// dictionary (pkg/tokens.Dictionary, resolved via pkg/tokens.Resolver) into
// this engine's Theme, flattening each dotted token path into a CSS custom
// property name ("color.red.500" -> "--color-red-500") and merging it into
// env.Theme.Vars under the same last-writer-wins rule as @theme CSS text.
//
// It also expands any $scale siblings (the "spacing"-multiplier convention
// a --tokens file can declare instead of hand-writing every --spacing-N
// var), lifts $property-tagged tokens into @property declarations, and
// lifts a root-level "keyframes" map into Theme.Keyframes bodies — dict is
// mutated by the scale expansion, matching ExpandScales' own contract.
func (env *EmitEnv) ThemeFromDictionary(dict *tokens.Dictionary) error {
	if err := tokens.ExpandScales(dict); err != nil {
		return fmt.Errorf("expanding token scales: %w", err)
	}

	resolver, err := tokens.NewResolver(dict)
	if err != nil {
		return fmt.Errorf("building token resolver: %w", err)
	}
	resolved, err := resolver.ResolveAll()
	if err != nil {
		return fmt.Errorf("resolving dictionary: %w", err)
	}
	for path, val := range resolved {
		env.Theme.Vars[tokens.CSSVarName(path)] = fmt.Sprintf("%v", val)
	}

	for _, pt := range tokens.ExtractPropertyTokens(dict, resolved) {
		env.CustomProperties = append(env.CustomProperties, PropertyDecl{
			Name:    pt.CSSName,
			Default: pt.InitialValue,
			Syntax:  pt.CSSSyntax,
		})
	}

	for _, kf := range tokens.ExtractKeyframes(dict) {
		env.Theme.Keyframes[kf.Name] = kf.Body()
	}

	return nil
}

// ThemeFromCSSText loads a standalone "@theme { ... }" source (without the
// surrounding @utility/@custom-variant declarations LoadConfigString also
// accepts) as a theme-only configuration surface. It is a thin wrapper: the
// grammar is identical, so it simply delegates to LoadConfigString.
func (env *EmitEnv) ThemeFromCSSText(src string) bool {
	return env.LoadConfigString(src)
}

// yamlTheme is the shape LoadYAMLTheme expects: a flat "vars" mapping of
// CSS custom-property names (with or without the leading "--") to values,
// plus an optional top-level "keyframes" mapping of name to raw block text.
type yamlTheme struct {
	Vars      map[string]string `yaml:"vars"`
	Keyframes map[string]string `yaml:"keyframes"`
}

// LoadYAMLTheme parses a YAML theme document (the third configuration
// surface, SPEC_FULL.md §11) and merges it into env.Theme, matching the
// same last-writer-wins rule as every other configuration source.
func (env *EmitEnv) LoadYAMLTheme(src []byte) error {
	var doc yamlTheme
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return fmt.Errorf("parsing YAML theme: %w", err)
	}
	for name, value := range doc.Vars {
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		env.Theme.Vars[name] = value
	}
	for name, body := range doc.Keyframes {
		env.Theme.Keyframes[name] = body
	}
	return nil
}
