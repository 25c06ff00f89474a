package compiler

import (
	"fmt"
	"strings"

	"github.com/dmoose/duckwind/pkg/classify"
	"github.com/dmoose/duckwind/pkg/colors"
)

// instantiated is the instantiation engine's success output: the assembled
// declaration body plus any @property decls the matched template carries.
type instantiated struct {
	Body       string
	Properties []PropertyDecl
}

// Instantiate runs component E: name resolution, special-parameter
// handling, value matching, and line-suppression body assembly.
func (env *EmitEnv) Instantiate(segs []Segment) (instantiated, error) {
	if len(segs) == 0 {
		return instantiated{}, ErrEmptyUtility
	}

	// Arbitrary-property shorthand: a single Raw segment is the body
	// verbatim, no template involved.
	if len(segs) == 1 && segs[0].Raw {
		return instantiated{Body: segs[0].Text}, nil
	}

	last := segs[len(segs)-1]
	baseSegs := make([]Segment, len(segs))
	copy(baseSegs, segs)
	var modifier string
	hasModifier := false
	if last.Raw {
		// A modifier on a Raw segment only exists when the parser found it
		// glued directly onto the closing ']' — never from a slash that
		// occurs inside the bracketed content itself (e.g. a ratio literal).
		if last.HasModifier {
			modifier = last.Modifier
			hasModifier = true
			baseSegs[len(baseSegs)-1] = Segment{Raw: last.Raw, Text: last.Text}
		}
	} else if idx := strings.LastIndexByte(last.Text, '/'); idx >= 0 {
		modifier = last.Text[idx+1:]
		hasModifier = true
		baseSegs[len(baseSegs)-1] = Segment{Raw: last.Raw, Text: last.Text[:idx]}
	}

	full := joinSegments(baseSegs)

	var lastGood instantiated
	found := false

	// nameMatched tracks whether any template's name lines up with full at
	// all, which distinguishes "no such utility" from "utility exists but
	// this candidate value doesn't satisfy any of its params" (§7).
	var nameMatched, needValue, dontNeedValue bool

	// (a) has_value=false, exact name match.
	for _, tmpl := range env.Utilities {
		if tmpl.HasValue {
			continue
		}
		if tmpl.Name != full {
			if strings.HasPrefix(full, tmpl.Name+"-") {
				// Extra segments glued onto a utility that takes no value,
				// e.g. "block-4" against a bare "block" template.
				dontNeedValue = true
			}
			continue
		}
		nameMatched = true
		if inst, ok := env.tryInstantiate(tmpl, "", false, hasModifier, modifier, tmpl.Name); ok {
			lastGood, found = inst, true
		}
	}

	// (b) has_value=true, template name is a prefix of full.
	for _, tmpl := range env.Utilities {
		if !tmpl.HasValue {
			continue
		}
		if !strings.HasPrefix(full, tmpl.Name) {
			continue
		}
		nameMatched = true
		value := strings.TrimPrefix(full, tmpl.Name)
		value = strings.TrimPrefix(value, "-")
		if value == "" {
			needValue = true
		}
		if inst, ok := env.tryInstantiate(tmpl, value, false, hasModifier, modifier, tmpl.Name); ok {
			lastGood, found = inst, true
		}
	}

	// (c) has_value=true, name equals all-but-last segment; last segment is
	// the value (honoring Raw provenance).
	if len(baseSegs) >= 2 {
		nameSegs := baseSegs[:len(baseSegs)-1]
		name := joinSegments(nameSegs)
		valueSeg := baseSegs[len(baseSegs)-1]
		for _, tmpl := range env.Utilities {
			if !tmpl.HasValue || tmpl.Name != name {
				continue
			}
			nameMatched = true
			if inst, ok := env.tryInstantiate(tmpl, valueSeg.Text, valueSeg.Raw, hasModifier, modifier, tmpl.Name); ok {
				lastGood, found = inst, true
			}
		}
	}

	if !found {
		switch {
		case needValue:
			return instantiated{}, fmt.Errorf("%w: %s", ErrNeedValue, full)
		case nameMatched:
			return instantiated{}, fmt.Errorf("%w: %s", ErrNothingMatched, full)
		case dontNeedValue:
			return instantiated{}, fmt.Errorf("%w: %s", ErrDontNeedValue, full)
		default:
			return instantiated{}, fmt.Errorf("%w: %s", ErrUnknownUtility, full)
		}
	}
	return lastGood, nil
}

func joinSegments(segs []Segment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.Text
	}
	return strings.Join(parts, "-")
}

// tryInstantiate attempts to assemble tmpl's body against the given
// candidate value (and that value's Raw provenance), applying the
// /MODIFIER special-parameter cascade first.
func (env *EmitEnv) tryInstantiate(tmpl *UtilityTemplate, value string, valueIsRaw bool, hasModifier bool, modifier string, baseName string) (instantiated, bool) {
	lit := classify.Classify(value)

	var alphaPct float64
	applyAlpha := false
	var lineHeightOverride string
	hasLineHeightOverride := false

	if hasModifier {
		// Cascade (SPEC_FULL.md §4.E): theme color key, then literal Color,
		// then typography line-height, else silently dropped.
		colorKey := "--color-" + value
		if _, ok := env.Theme.Vars[colorKey]; ok {
			if pct, ok := classify.ParseAlphaPercent(modifier); ok {
				alphaPct, applyAlpha = pct, true
			}
		} else if lit.Tag == classify.Color {
			if pct, ok := classify.ParseAlphaPercent(modifier); ok {
				alphaPct, applyAlpha = pct, true
			}
		} else if strings.HasPrefix(baseName, "text") {
			if strings.HasPrefix(modifier, "[") && strings.HasSuffix(modifier, "]") {
				lineHeightOverride = modifier[1 : len(modifier)-1]
				hasLineHeightOverride = true
			} else if lit.Tag == classify.Number || lit.Tag == classify.Integer {
				lineHeightOverride = fmt.Sprintf("calc(var(--spacing) * %s)", modifier)
				hasLineHeightOverride = true
			}
		}
	}

	body, ok := assembleBody(tmpl.Parts, lit, value, valueIsRaw, env.Theme, applyAlpha, alphaPct)
	if !ok {
		return instantiated{}, false
	}
	if hasLineHeightOverride {
		body = body + fmt.Sprintf("\nline-height: %s;", lineHeightOverride)
	}
	if body == "" {
		return instantiated{}, false
	}
	return instantiated{Body: body, Properties: tmpl.Properties}, true
}

// matchParam checks whether one ValueUsage matches the candidate, returning
// the text that should be substituted (the replacement, if any, else the
// literal candidate) and whether it matched at all.
func matchParam(p ValueUsage, lit classify.Literal, value string, valueIsRaw bool, theme *Theme, applyAlpha bool, alphaPct float64) (string, bool) {
	switch p.Kind {
	case KindType:
		if valueIsRaw {
			return "", false
		}
		if !lit.Matches(p.Type) {
			return "", false
		}
		return finalizeColor(value, p.Type, applyAlpha, alphaPct), true
	case KindArbType:
		if !valueIsRaw {
			return "", false
		}
		if !lit.Matches(p.Type) {
			return "", false
		}
		return finalizeColor(value, p.Type, applyAlpha, alphaPct), true
	case KindLiteral:
		if lit.Tag != classify.Other {
			return "", false
		}
		if lit.Text != p.Literal {
			return "", false
		}
		return p.Literal, true
	case KindVar:
		key := p.Prefix + value + p.Suffix
		repl, ok := theme.Vars[key]
		if !ok {
			return "", false
		}
		return finalizeColor(repl, classify.Color, applyAlpha, alphaPct), true
	}
	return "", false
}

// finalizeColor applies insert_alpha when the matched type is Color and an
// alpha modifier is in effect; otherwise returns text unchanged. Applying
// this unconditionally to a Color-typed match (even a theme-var
// replacement) matches §4.E: "For color types with an alpha modifier, the
// replacement is post-processed by insert_alpha".
func finalizeColor(text string, tag classify.Tag, applyAlpha bool, pct float64) string {
	if tag != classify.Color || !applyAlpha {
		return text
	}
	return colors.InsertAlpha(text, pct)
}

// assembleBody implements the line-suppression body-assembly state machine
// (§4.E, §9 "Line-suppression rule"). It walks parts left to right; at each
// ValueCall it tries every param until one matches the given candidate,
// tracking line boundaries so a sibling ValueCall on the same line that
// fails to match drops that whole line rather than the whole template.
func assembleBody(parts []Part, lit classify.Literal, value string, valueIsRaw bool, theme *Theme, applyAlpha bool, alphaPct float64) (string, bool) {
	lines := splitIntoLines(parts)
	if len(lines) == 0 {
		return "", false
	}

	var out []string
	anyMatched := false
	for _, line := range lines {
		text, ok := assembleLine(line, lit, value, valueIsRaw, theme, applyAlpha, alphaPct)
		if !ok {
			continue
		}
		anyMatched = true
		out = append(out, text)
	}
	if !anyMatched {
		return "", false
	}
	return strings.Join(out, "\n"), true
}

// assembleLine assembles one line's worth of parts. A line with no
// ValueCall at all is always emitted unchanged (pure Text line). A line
// with one or more ValueCalls is emitted only if every ValueCall on it
// matches the candidate (the "sibling" rule): the first ValueCall that
// fails causes the whole line to be dropped.
func assembleLine(line []Part, lit classify.Literal, value string, valueIsRaw bool, theme *Theme, applyAlpha bool, alphaPct float64) (string, bool) {
	var sb strings.Builder
	sawCall := false
	for _, p := range line {
		if !p.IsValueCall {
			sb.WriteString(p.Text)
			continue
		}
		sawCall = true
		matchedAny := false
		for _, param := range p.Params {
			if repl, ok := matchParam(param, lit, value, valueIsRaw, theme, applyAlpha, alphaPct); ok {
				sb.WriteString(repl)
				matchedAny = true
				break
			}
		}
		if !matchedAny {
			return "", false
		}
	}
	if !sawCall {
		// Pure-text lines are always kept; they carry no candidate-dependent
		// content.
		return sb.String(), true
	}
	return sb.String(), true
}

// splitIntoLines groups parts into per-newline lines, splitting Text parts
// on '\n' so every line's parts (including a possible ValueCall) stay
// associated with the right output line.
func splitIntoLines(parts []Part) [][]Part {
	var lines [][]Part
	var cur []Part
	for _, p := range parts {
		if !p.IsValueCall && strings.Contains(p.Text, "\n") {
			segs := strings.Split(p.Text, "\n")
			for i, seg := range segs {
				if i > 0 {
					lines = append(lines, cur)
					cur = nil
				}
				if seg != "" {
					cur = append(cur, Part{Text: seg})
				}
			}
			continue
		}
		cur = append(cur, p)
	}
	lines = append(lines, cur)

	// Drop fully-empty lines (blank lines from the template's own
	// formatting) so they don't surface as spurious blank output lines.
	var nonEmpty [][]Part
	for _, l := range lines {
		if len(l) == 0 {
			continue
		}
		allBlankText := true
		for _, p := range l {
			if p.IsValueCall || strings.TrimSpace(p.Text) != "" {
				allBlankText = false
				break
			}
		}
		if allBlankText {
			continue
		}
		nonEmpty = append(nonEmpty, l)
	}
	return nonEmpty
}
