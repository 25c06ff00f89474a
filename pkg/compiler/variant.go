package compiler

import (
	"fmt"
	"regexp"
	"strings"
)

var booleanAriaKeys = map[string]bool{
	"busy": true, "checked": true, "disabled": true, "expanded": true,
	"hidden": true, "pressed": true, "readonly": true, "required": true,
	"selected": true,
}

var pseudoElementNames = map[string]bool{
	"before": true, "after": true, "placeholder": true, "file": true,
	"selection": true, "first-letter": true, "first-line": true, "backdrop": true,
}

// wrapResult is what ApplyVariant produces: either a transformed body, or a
// pseudo-element name to attach to the selector instead of wrapping the
// body (pseudo-elements commute with the rest of the chain per §8).
type wrapResult struct {
	Body          string
	PseudoElement string
	HasPseudo     bool
}

// ApplyVariants wraps body with every variant chain in list order
// (outermost-last, §4.F) and collects any pseudo-element names encountered
// along the way.
func (env *EmitEnv) ApplyVariants(chains [][]Segment, body string) (string, []string, error) {
	var pseudos []string
	for _, chain := range chains {
		res, err := env.applyOneChain(chain, body)
		if err != nil {
			return "", nil, err
		}
		if res.HasPseudo {
			pseudos = append(pseudos, res.PseudoElement)
			continue
		}
		body = res.Body
	}
	return body, pseudos, nil
}

func (env *EmitEnv) applyOneChain(chain []Segment, body string) (wrapResult, error) {
	if len(chain) == 1 && chain[0].Raw {
		raw := chain[0].Text
		if strings.HasPrefix(raw, "::") {
			return wrapResult{PseudoElement: strings.TrimPrefix(raw, "::"), HasPseudo: true}, nil
		}
		return wrapResult{Body: fmt.Sprintf("%s {\n%s\n}", raw, body)}, nil
	}

	joined := joinSegments(chain)

	if pseudoElementNames[joined] {
		return wrapResult{PseudoElement: joined, HasPseudo: true}, nil
	}

	if bp, ok := env.breakpointValue(joined, false); ok {
		return wrapResult{Body: fmt.Sprintf("@media (width >= %s) {\n%s\n}", bp, body)}, nil
	}
	if strings.HasPrefix(joined, "@") {
		if bp, ok := env.breakpointValue(strings.TrimPrefix(joined, "@"), true); ok {
			return wrapResult{Body: fmt.Sprintf("@container (width >= %s) {\n%s\n}", bp, body)}, nil
		}
	}

	if rest, ok := takeParenArg(joined, "min-"); ok {
		if bp, ok := env.breakpointValue(rest, false); ok {
			return wrapResult{Body: fmt.Sprintf("@media (width >= %s) {\n%s\n}", bp, body)}, nil
		}
	}
	if rest, ok := takeParenArg(joined, "max-"); ok {
		if bp, ok := env.breakpointValue(rest, false); ok {
			return wrapResult{Body: fmt.Sprintf("@media (width < %s) {\n%s\n}", bp, body)}, nil
		}
	}
	if rest, ok := takeParenArg(joined, "@min-"); ok {
		if bp, ok := env.breakpointValue(rest, true); ok {
			return wrapResult{Body: fmt.Sprintf("@container (width >= %s) {\n%s\n}", bp, body)}, nil
		}
	}
	if rest, ok := takeParenArg(joined, "@max-"); ok {
		if bp, ok := env.breakpointValue(rest, true); ok {
			return wrapResult{Body: fmt.Sprintf("@container (width < %s) {\n%s\n}", bp, body)}, nil
		}
	}

	if rest, ok := takeBracketArg(chain, "supports-"); ok {
		return wrapResult{Body: fmt.Sprintf("@supports (%s) {\n%s\n}", rest, body)}, nil
	}
	if rest, ok := takeBracketArg(chain, "not-supports-"); ok {
		return wrapResult{Body: fmt.Sprintf("@supports (not %s) {\n%s\n}", rest, body)}, nil
	}

	if w, ok, err := tryAria(chain, body); ok {
		return w, err
	}
	if w, ok, err := tryData(chain, body); ok {
		return w, err
	}
	if w, ok, err := tryNth(chain, body); ok {
		return w, err
	}
	if w, ok, err := tryHas(chain, body); ok {
		return w, err
	}
	if w, ok, err := env.tryNot(chain, body); ok {
		return w, err
	}
	if w, ok, err := env.tryScoped(chain, body, "group-", ".group", "*"); ok {
		return w, err
	}
	if w, ok, err := env.tryScoped(chain, body, "peer-", ".peer", "~ *"); ok {
		return w, err
	}
	if w, ok, err := env.tryIn(chain, body); ok {
		return w, err
	}

	if joined == "*" {
		return wrapResult{Body: fmt.Sprintf("& > * {\n%s\n}", body)}, nil
	}
	// The lexer emits each '*' as its own Ctrl token, so "**" arrives as two
	// bare "*" segments.
	if len(chain) == 2 && chain[0].Text == "*" && !chain[1].Raw && chain[1].Text == "*" {
		return wrapResult{Body: fmt.Sprintf("& * {\n%s\n}", body)}, nil
	}

	if vt, ok := env.Variants[joined]; ok {
		return wrapResult{Body: vt.Prefix + body + vt.Suffix}, nil
	}

	return wrapResult{}, fmt.Errorf("%w: %s", ErrUnknownVariant, joined)
}

// breakpointValue looks up a breakpoint (or container-breakpoint) name in
// the theme, falling back to the built-in defaults.
func (env *EmitEnv) breakpointValue(name string, container bool) (string, bool) {
	key := "--breakpoint-" + name
	defaults := defaultBreakpoints
	if container {
		key = "--container-" + name
		defaults = defaultContainerSizes
	}
	if v, ok := env.Theme.Vars[key]; ok {
		return v, true
	}
	if v, ok := defaults[name]; ok {
		return v, true
	}
	return "", false
}

var defaultBreakpoints = map[string]string{
	"sm": "40rem", "md": "48rem", "lg": "64rem", "xl": "80rem", "2xl": "96rem",
}

var defaultContainerSizes = map[string]string{
	"3xs": "16rem", "2xs": "18rem", "xs": "20rem", "sm": "24rem", "md": "28rem",
	"lg": "32rem", "xl": "36rem", "2xl": "42rem", "3xl": "48rem", "4xl": "56rem",
	"5xl": "64rem", "6xl": "72rem", "7xl": "80rem",
}

// takeParenArg matches "PREFIX-(ARG)" shapes against a joined chain string.
func takeParenArg(joined, prefix string) (string, bool) {
	if !strings.HasPrefix(joined, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(joined, prefix)
	if strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")") {
		return rest[1 : len(rest)-1], true
	}
	return "", false
}

// takeBracketArg matches "PREFIX[RAW]" where the bracket is carried as a
// trailing Raw segment in the chain.
func takeBracketArg(chain []Segment, prefix string) (string, bool) {
	if len(chain) == 0 {
		return "", false
	}
	last := chain[len(chain)-1]
	if !last.Raw {
		return "", false
	}
	headSegs := chain[:len(chain)-1]
	head := joinSegments(headSegs)
	if head == "" {
		// prefix attached directly to a bare raw, e.g. "supports-[...]"
		// parsed as a single Named("supports") + Raw chain, handled via the
		// "-" preceding the bracket being folded into the Raw's leading
		// text by the parser; guard both shapes.
		return "", false
	}
	wantHead := strings.TrimSuffix(prefix, "-")
	if head != wantHead {
		return "", false
	}
	return last.Text, true
}

var ariaBoolRe = regexp.MustCompile(`^aria-([A-Za-z-]+)$`)

func tryAria(chain []Segment, body string) (wrapResult, bool, error) {
	joined := joinSegments(chain)
	if len(chain) >= 1 && !chain[len(chain)-1].Raw {
		if m := ariaBoolRe.FindStringSubmatch(joined); m != nil {
			key := m[1]
			if booleanAriaKeys[key] {
				return wrapResult{Body: fmt.Sprintf(`&[aria-%s="true"] {`+"\n%s\n}", key, body)}, true, nil
			}
			return wrapResult{Body: fmt.Sprintf("&[aria-%s] {\n%s\n}", key, body)}, true, nil
		}
		return wrapResult{}, false, nil
	}
	if rest, ok := takeBracketArg(chain, "aria-"); ok {
		return wrapResult{Body: fmt.Sprintf("&[aria-%s] {\n%s\n}", rest, body)}, true, nil
	}
	return wrapResult{}, false, nil
}

func tryData(chain []Segment, body string) (wrapResult, bool, error) {
	if rest, ok := takeBracketArg(chain, "data-"); ok {
		return wrapResult{Body: fmt.Sprintf("&[data-%s] {\n%s\n}", rest, body)}, true, nil
	}
	return wrapResult{}, false, nil
}

var nthRe = regexp.MustCompile(`^nth(-last)?(-of-type)?-$`)

func tryNth(chain []Segment, body string) (wrapResult, bool, error) {
	if len(chain) < 2 {
		return wrapResult{}, false, nil
	}
	last := chain[len(chain)-1]
	if !last.Raw {
		return wrapResult{}, false, nil
	}
	head := joinSegments(chain[:len(chain)-1]) + "-"
	m := nthRe.FindStringSubmatch(head)
	if m == nil {
		return wrapResult{}, false, nil
	}
	pseudo := "nth-child"
	if m[1] != "" && m[2] != "" {
		pseudo = "nth-last-of-type"
	} else if m[1] != "" {
		pseudo = "nth-last-child"
	} else if m[2] != "" {
		pseudo = "nth-of-type"
	}
	return wrapResult{Body: fmt.Sprintf("&:%s(%s) {\n%s\n}", pseudo, last.Text, body)}, true, nil
}

func tryHas(chain []Segment, body string) (wrapResult, bool, error) {
	if len(chain) < 2 || chain[0].Text != "has" {
		return wrapResult{}, false, nil
	}
	tail := chain[1:]
	if len(tail) == 1 && tail[0].Raw {
		return wrapResult{Body: fmt.Sprintf("&:has(%s) {\n%s\n}", tail[0].Text, body)}, true, nil
	}
	joined := joinSegments(tail)
	return wrapResult{Body: fmt.Sprintf("&:has(:%s) {\n%s\n}", joined, body)}, true, nil
}

func (env *EmitEnv) tryNot(chain []Segment, body string) (wrapResult, bool, error) {
	if len(chain) < 2 || chain[0].Text != "not" {
		return wrapResult{}, false, nil
	}
	rest := chain[1:]
	sentinel := "__BODY__"
	res, err := env.applyOneChain(rest, sentinel)
	if err != nil {
		return wrapResult{}, true, err
	}
	if res.HasPseudo {
		return wrapResult{}, true, fmt.Errorf("%w: not-%s", ErrUnknownVariant, res.PseudoElement)
	}
	cond := extractCondition(res.Body)
	var selector string
	if strings.HasPrefix(cond, "&") {
		selector = fmt.Sprintf("&:not(%s)", strings.TrimPrefix(cond, "&"))
	} else {
		selector = fmt.Sprintf(":not(%s)", cond)
	}
	return wrapResult{Body: fmt.Sprintf("%s {\n%s\n}", selector, body)}, true, nil
}

// extractCondition pulls the selector/condition text between the wrapper's
// opening construct and its first '{', treating the wrapped body as opaque
// text (§9 "Recursive variant composition"). & is preserved if present.
func extractCondition(wrapped string) string {
	idx := strings.IndexByte(wrapped, '{')
	if idx < 0 {
		return wrapped
	}
	return strings.TrimSpace(wrapped[:idx])
}

func (env *EmitEnv) tryScoped(chain []Segment, body string, prefix, class, combinator string) (wrapResult, bool, error) {
	if len(chain) < 2 || chain[0].Text != strings.TrimSuffix(prefix, "-") {
		return wrapResult{}, false, nil
	}
	rest := chain[1:]
	scopeClass := class
	// A "/NAME" scope suffix is carried on the chain's last segment
	// regardless of how many compositional segments ("has", "not", …)
	// precede it, e.g. "group-has-focus/menu" names the *group*, not the
	// "has" condition.
	if n := len(rest); n > 0 && !rest[n-1].Raw && strings.Contains(rest[n-1].Text, "/") {
		parts := strings.SplitN(rest[n-1].Text, "/", 2)
		rest[n-1] = Segment{Text: parts[0]}
		scopeClass = class + `\/` + parts[1]
	}

	if len(rest) == 1 && rest[0].Raw && strings.Contains(rest[0].Text, "&") {
		replaced := strings.ReplaceAll(rest[0].Text, "&", fmt.Sprintf(":where(%s) %s", scopeClass, combinator))
		return wrapResult{Body: fmt.Sprintf("&:is(%s) {\n%s\n}", replaced, body)}, true, nil
	}

	if len(rest) >= 1 && (rest[0].Text == "has" || rest[0].Text == "not") {
		sentinel := "__BODY__"
		res, err := env.applyOneChain(rest, sentinel)
		if err != nil {
			return wrapResult{}, true, err
		}
		cond := extractCondition(res.Body)
		cond = strings.TrimPrefix(cond, "&")
		return wrapResult{Body: fmt.Sprintf("&:is(:where(%s)%s %s) {\n%s\n}", scopeClass, cond, combinator, body)}, true, nil
	}

	joined := joinSegments(rest)
	return wrapResult{Body: fmt.Sprintf("&:is(:where(%s):is(:%s) %s) {\n%s\n}", scopeClass, joined, combinator, body)}, true, nil
}

func (env *EmitEnv) tryIn(chain []Segment, body string) (wrapResult, bool, error) {
	if len(chain) < 2 || chain[0].Text != "in" {
		return wrapResult{}, false, nil
	}
	rest := chain[1:]
	if len(rest) >= 1 && (rest[0].Text == "has" || rest[0].Text == "not") {
		sentinel := "__BODY__"
		res, err := env.applyOneChain(rest, sentinel)
		if err != nil {
			return wrapResult{}, true, err
		}
		cond := strings.TrimPrefix(extractCondition(res.Body), "&")
		return wrapResult{Body: fmt.Sprintf("&:is(:where(%s) *) {\n%s\n}", cond, body)}, true, nil
	}
	joined := joinSegments(rest)
	return wrapResult{Body: fmt.Sprintf("&:is(:where(:%s) *) {\n%s\n}", joined, body)}, true, nil
}
