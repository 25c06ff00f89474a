package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmoose/duckwind/pkg/classify"
)

// LoadConfigString parses a configuration source (component B: @utility,
// @custom-variant, @theme, @tw-property declarations) and merges it into
// env. Ill-formed declarations are skipped with a recorded Diagnostic; the
// rest of the source continues to parse — matching §4.B/§7's "recoverable
// error" rule. The returned bool reports whether the whole source parsed
// cleanly (no diagnostics), matching the teacher's loader convention of a
// boolean "full success" return (pkg/tokens/loader.go).
func (env *EmitEnv) LoadConfigString(src string) bool {
	ok := true
	pos := 0
	for pos < len(src) {
		// Skip whitespace between declarations.
		for pos < len(src) && isWhitespaceByte(src[pos]) {
			pos++
		}
		if pos >= len(src) {
			break
		}

		rest := src[pos:]
		switch {
		case strings.HasPrefix(rest, "@utility"):
			n, derr := env.parseUtilityDecl(rest)
			if derr != nil {
				env.Diagnostics = append(env.Diagnostics, Diagnostic{Token: "@utility", Err: derr})
				ok = false
			}
			if n == 0 {
				n = skipToNextAt(rest[1:]) + 1
			}
			pos += n
		case strings.HasPrefix(rest, "@custom-variant"):
			n, derr := env.parseCustomVariantDecl(rest)
			if derr != nil {
				env.Diagnostics = append(env.Diagnostics, Diagnostic{Token: "@custom-variant", Err: derr})
				ok = false
			}
			if n == 0 {
				n = skipToNextAt(rest[1:]) + 1
			}
			pos += n
		case strings.HasPrefix(rest, "@theme"):
			n, derr := env.parseThemeDecl(rest)
			if derr != nil {
				env.Diagnostics = append(env.Diagnostics, Diagnostic{Token: "@theme", Err: derr})
				ok = false
			}
			if n == 0 {
				n = skipToNextAt(rest[1:]) + 1
			}
			pos += n
		default:
			// Unrecognized top-level text: skip to the next '@' to recover.
			n := skipToNextAt(rest)
			if n == 0 {
				n = 1
			}
			pos += n
			ok = false
		}
	}
	return ok
}

func skipToNextAt(s string) int {
	idx := strings.IndexByte(s, '@')
	if idx < 0 {
		return len(s)
	}
	return idx
}

var utilityHeaderRe = regexp.MustCompile(`^@utility\s+([A-Za-z0-9*/@_-]+)\s*\{`)

func (env *EmitEnv) parseUtilityDecl(s string) (int, error) {
	m := utilityHeaderRe.FindStringSubmatchIndex(s)
	if m == nil {
		return 0, fmt.Errorf("malformed @utility header")
	}
	name := s[m[2]:m[3]]
	bodyStart := m[1]
	body, bodyEnd, err := extractBraces(s, bodyStart-1)
	if err != nil {
		return 0, err
	}

	hasValue := strings.HasSuffix(name, "-*")
	if hasValue {
		name = strings.TrimSuffix(name, "-*")
	}

	parts, props := parseUtilityBody(body)
	env.Utilities = append(env.Utilities, &UtilityTemplate{
		Name:       name,
		HasValue:   hasValue,
		Parts:      parts,
		Properties: props,
	})
	return bodyEnd, nil
}

var customVariantHeaderRe = regexp.MustCompile(`^@custom-variant\s+([A-Za-z0-9_-]+)\s*`)
var shortFormRe = regexp.MustCompile(`^\(\s*(.*?)\s*\)\s*;`)

func (env *EmitEnv) parseCustomVariantDecl(s string) (int, error) {
	m := customVariantHeaderRe.FindStringSubmatchIndex(s)
	if m == nil {
		return 0, fmt.Errorf("malformed @custom-variant header")
	}
	name := s[m[2]:m[3]]
	rest := s[m[1]:]

	if sm := shortFormRe.FindStringSubmatchIndex(rest); sm != nil && sm[0] == 0 {
		selector := rest[sm[2]:sm[3]]
		env.Variants[name] = &VariantTemplate{
			Name:    name,
			Prefix:  selector + " {\n",
			Suffix:  "\n}",
			IsShort: true,
		}
		return m[1] + sm[1], nil
	}

	if len(rest) == 0 || rest[0] != '{' {
		return 0, fmt.Errorf("custom-variant %q: expected '{' or short-form '(selector);'", name)
	}
	body, bodyEnd, err := extractBraces(rest, -1)
	if err != nil {
		return 0, err
	}
	idx := strings.Index(body, "@slot;")
	if idx < 0 {
		return 0, fmt.Errorf("custom-variant %q: body must contain exactly one @slot;", name)
	}
	if strings.Index(body[idx+1:], "@slot;") >= 0 {
		return 0, fmt.Errorf("custom-variant %q: body must contain exactly one @slot;", name)
	}
	env.Variants[name] = &VariantTemplate{
		Name:    name,
		Prefix:  body[:idx],
		Suffix:  body[idx+len("@slot;"):],
		IsShort: false,
	}
	return m[1] + bodyEnd, nil
}

var themeVarRe = regexp.MustCompile(`(?s)^--([A-Za-z0-9-]+)\s*:\s*([^;]*);`)
var keyframesHeaderRe = regexp.MustCompile(`^@keyframes\s+([A-Za-z0-9_-]+)\s*\{`)

func (env *EmitEnv) parseThemeDecl(s string) (int, error) {
	braceIdx := strings.IndexByte(s, '{')
	if braceIdx < 0 {
		return 0, fmt.Errorf("malformed @theme: missing '{'")
	}
	body, bodyEnd, err := extractBraces(s, braceIdx-1)
	if err != nil {
		return 0, err
	}

	pos := 0
	for pos < len(body) {
		for pos < len(body) && isWhitespaceByte(body[pos]) {
			pos++
		}
		if pos >= len(body) {
			break
		}
		rest := body[pos:]
		if strings.HasPrefix(rest, "@keyframes") {
			hm := keyframesHeaderRe.FindStringSubmatchIndex(rest)
			if hm == nil {
				return 0, fmt.Errorf("malformed @keyframes header")
			}
			kfName := rest[hm[2]:hm[3]]
			kfBody, kfEnd, err := extractBraces(rest, hm[1]-1)
			if err != nil {
				return 0, err
			}
			env.Theme.Keyframes[kfName] = kfBody
			pos += kfEnd
			continue
		}
		if vm := themeVarRe.FindStringSubmatchIndex(rest); vm != nil {
			name := rest[vm[2]:vm[3]]
			value := strings.TrimSpace(rest[vm[4]:vm[5]])
			env.Theme.Vars["--"+name] = value
			pos += vm[1]
			continue
		}
		// Unrecognized theme-body text: skip one byte to recover.
		pos++
	}
	return bodyEnd, nil
}

// extractBraces finds the '{' at or after openAt (if openAt < 0, searches
// from the start of s) and returns the literally-nested body between the
// matching braces plus the number of bytes consumed by the whole
// "{ ... }" construct from the start of s.
func extractBraces(s string, openAt int) (body string, consumed int, err error) {
	start := openAt
	if start < 0 {
		start = strings.IndexByte(s, '{')
		if start < 0 {
			return "", 0, fmt.Errorf("expected '{'")
		}
	}
	if start >= len(s) || s[start] != '{' {
		return "", 0, fmt.Errorf("expected '{' at byte %d", start)
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start+1 : i], i + 1, nil
			}
		}
	}
	return "", 0, fmt.Errorf("unbalanced braces")
}

var valueCallRe = regexp.MustCompile(`(?s)--value\(\s*(.*?)\s*\)`)
var twPropertyRe = regexp.MustCompile(`@tw-property\s+(\S+)(?:\s+(\S+))?(?:\s+(\S+))?\s*;`)

// parseUtilityBody scans a @utility body for --value(...) calls and
// @tw-property declarations, coalescing everything else into Text parts.
func parseUtilityBody(body string) ([]Part, []PropertyDecl) {
	var parts []Part
	var props []PropertyDecl
	var textBuf strings.Builder

	flushText := func() {
		if textBuf.Len() > 0 {
			parts = append(parts, Part{Text: textBuf.String()})
			textBuf.Reset()
		}
	}

	pos := 0
	for pos < len(body) {
		rest := body[pos:]
		if strings.HasPrefix(rest, "--value(") {
			m := valueCallRe.FindStringSubmatchIndex(rest)
			if m != nil && m[0] == 0 {
				flushText()
				params := parseValueParams(rest[m[2]:m[3]])
				parts = append(parts, Part{IsValueCall: true, Params: params})
				pos += m[1]
				continue
			}
		}
		if strings.HasPrefix(rest, "@tw-property") {
			m := twPropertyRe.FindStringSubmatchIndex(rest)
			if m != nil && m[0] == 0 {
				decl := PropertyDecl{Name: rest[m[2]:m[3]]}
				if m[4] >= 0 {
					decl.Default = rest[m[4]:m[5]]
				}
				if m[6] >= 0 {
					decl.Syntax = strings.Trim(rest[m[6]:m[7]], `"`)
				}
				props = append(props, decl)
				pos += m[1]
				continue
			}
		}
		textBuf.WriteByte(body[pos])
		pos++
	}
	flushText()
	return parts, props
}

var typeNames = map[string]classify.Tag{
	"length":        classify.Length,
	"percentage":    classify.Percentage,
	"color":         classify.Color,
	"ratio":         classify.Ratio,
	"number":        classify.Number,
	"fraction":      classify.Fr,
	"integer":       classify.Integer,
	"absolute-size": classify.AbsoluteSize,
	"angle":         classify.Angle,
	"any":           classify.Any,
	"position":      classify.Position,
}

// parseValueParams parses the comma-separated PARAM list inside
// --value(...): TYPE | [TYPE] | "LITERAL" | --VAR-*-TMPL.
func parseValueParams(raw string) []ValueUsage {
	var out []ValueUsage
	for _, p := range splitParams(raw) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		switch {
		case strings.HasPrefix(p, "[") && strings.HasSuffix(p, "]"):
			inner := strings.TrimSpace(p[1 : len(p)-1])
			out = append(out, ValueUsage{Kind: KindArbType, Type: resolveTypeName(inner)})
		case strings.HasPrefix(p, `"`) && strings.HasSuffix(p, `"`) && len(p) >= 2:
			out = append(out, ValueUsage{Kind: KindLiteral, Literal: p[1 : len(p)-1]})
		case strings.HasPrefix(p, "--"):
			star := strings.IndexByte(p, '*')
			if star < 0 {
				continue
			}
			out = append(out, ValueUsage{Kind: KindVar, Prefix: p[:star], Suffix: p[star+1:]})
		default:
			out = append(out, ValueUsage{Kind: KindType, Type: resolveTypeName(p)})
		}
	}
	return out
}

func resolveTypeName(name string) classify.Tag {
	if name == "*" {
		return classify.Any
	}
	if t, ok := typeNames[name]; ok {
		return t
	}
	return classify.Other
}

// splitParams splits on top-level commas only (none of PARAM's own forms
// can contain an unbalanced bracket/quote, so a simple depth counter over
// '[' ']' and quote-toggling suffices).
func splitParams(s string) []string {
	var out []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case '[':
			if !inQuote {
				depth++
			}
		case ']':
			if !inQuote {
				depth--
			}
		case ',':
			if depth == 0 && !inQuote {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

