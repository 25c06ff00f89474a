package compiler

import (
	"fmt"
	"strings"
)

// ParseUtilityToken lexes and parses a full utility token (e.g.
// "group-has-focus/menu:bg-red-500") into a ParsedUtility (component D).
func ParseUtilityToken(token string) (ParsedUtility, error) {
	toks, consumed := Lex(token)
	if consumed != len(token) {
		return ParsedUtility{}, fmt.Errorf("%w: at byte %d in %q", ErrLexError, consumed, token)
	}
	if len(toks) == 0 {
		return ParsedUtility{}, ErrEmptyUtility
	}

	groups := splitOnCtrl(toks, ':')
	if len(groups) == 0 {
		return ParsedUtility{}, ErrEmptyUtility
	}

	parsed := ParsedUtility{}
	for i, g := range groups {
		segs, err := segmentGroup(g)
		if err != nil {
			return ParsedUtility{}, err
		}
		if i == len(groups)-1 {
			parsed.Utility = segs
		} else {
			parsed.Variants = append(parsed.Variants, segs)
		}
	}

	if err := validateSegments(parsed.Utility); err != nil {
		return ParsedUtility{}, err
	}
	for _, v := range parsed.Variants {
		if err := validateSegments(v); err != nil {
			return ParsedUtility{}, err
		}
	}

	return parsed, nil
}

// splitOnCtrl splits a token stream into groups on a control character,
// dropping the separator and any surrounding whitespace tokens.
func splitOnCtrl(toks []Tok, ctrl byte) [][]Tok {
	var groups [][]Tok
	var cur []Tok
	for _, t := range toks {
		if t.Kind == TokWhitespace {
			continue
		}
		if t.Kind == TokCtrl && t.Text == string(ctrl) {
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	groups = append(groups, cur)
	return groups
}

// segmentGroup splits one ':'-delimited group on '-' into segments. Only a
// '-' at the very start of the group (nothing accumulated yet) is preserved
// as a leading '-' on the next Ident/Raw segment's text, enabling negative
// modifiers like "-mt-4" (-> segments "-mt", "4") and preservation of
// leading-hyphen identifiers. Every other '-' is a plain separator between
// already-started segments and contributes no text of its own.
func segmentGroup(toks []Tok) ([]Segment, error) {
	var segs []Segment
	atGroupStart := true
	pendingHyphen := false
	justFlushedRaw := false

	flush := func(t Tok) {
		text := t.Text
		if pendingHyphen {
			text = "-" + text
			pendingHyphen = false
		}
		segs = append(segs, Segment{Raw: t.Kind == TokRaw, Text: text})
		atGroupStart = false
	}

	for _, t := range toks {
		switch t.Kind {
		case TokIdent:
			// An Ident directly adjacent to a preceding Raw token (no Ctrl
			// separator between them) is a "/MODIFIER" glued onto that
			// bracketed value, e.g. "[#abc]/100": the lexer ends the Raw
			// token at ']' and resumes lexing "/100" as a fresh Ident since
			// it crosses a token-kind boundary. Fuse it back onto the Raw
			// segment's text so later modifier-stripping sees one segment.
			if justFlushedRaw {
				mod := strings.TrimPrefix(t.Text, "/")
				segs[len(segs)-1].Modifier = mod
				segs[len(segs)-1].HasModifier = true
				justFlushedRaw = false
				continue
			}
			flush(t)
		case TokRaw:
			flush(t)
			justFlushedRaw = true
			continue
		case TokCtrl:
			switch t.Text {
			case "-":
				if atGroupStart {
					pendingHyphen = true
				}
				// else: plain separator between completed segments, no text.
			default:
				// '*', '(', ')', '_', ':' appearing bare inside a group
				// (outside brackets) become their own single-char segment,
				// e.g. the bare "*" / "**" combinator variants.
				segs = append(segs, Segment{Text: t.Text})
				atGroupStart = false
			}
		}
		justFlushedRaw = false
	}
	if pendingHyphen {
		segs = append(segs, Segment{Text: "-"})
	}
	return segs, nil
}

// validateSegments enforces the Raw-placement rule: a Raw segment may only
// appear as the final segment of its group. This holds for the utility
// group itself ("bg-[#abc]") and equally for variant chains, which cover
// both a lone arbitrary-selector variant ("[&:hover]", one Raw segment
// standing alone) and a named-prefix-plus-trailing-bracket shape
// ("not-supports-[display:grid]", "aria-[sort=ascending]", "nth-[3n]") that
// variant.go's takeBracketArg/tryAria/tryData/tryNth all expect.
func validateSegments(segs []Segment) error {
	for i, s := range segs {
		if s.Raw && i != len(segs)-1 {
			return fmt.Errorf("%w: arbitrary value must be the final segment of its group", ErrLexError)
		}
	}
	return nil
}
