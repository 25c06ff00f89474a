// Package compiler implements the utility-class CSS expression compiler:
// given a user configuration (utility templates, custom variants, theme
// variables, keyframes) and a stream of candidate utility tokens
// (hover:bg-red-500, md:[&>div]:text-[3rem], …), it emits the CSS rules
// those tokens denote.
//
// The compiler core has no I/O of its own — callers own configuration file
// reading and stdout writing (see cmd/duckwind for a driver). The one
// exception is the Scanner in scan.go, which walks source trees, reads
// files, and in ScanPathConcurrent reads them on a pool of goroutines. An
// EmitEnv is plain data owned by its caller.
package compiler

import "github.com/dmoose/duckwind/pkg/classify"

// Segment is one element of a variant chain or a utility's segment list.
// Raw segments come from a bracketed [...] arbitrary value; Named segments
// are plain identifiers.
type Segment struct {
	Raw  bool
	Text string
	// Modifier holds a "/MODIFIER" suffix the parser found glued directly
	// onto a bracketed Raw segment's closing ']' (e.g. "[#abc]/100"), kept
	// separate from Text so a slash occurring *inside* the brackets (e.g. a
	// ratio value "[16/9]") is never mistaken for one. Named segments carry
	// their modifier inline in Text instead (stripped by the instantiation
	// engine), since "/" is a valid identifier byte there.
	Modifier    string
	HasModifier bool
}

// ParsedUtility is the utility-token parser's output (component D):
// a non-empty list of variant chains followed by the final utility's own
// segment list.
type ParsedUtility struct {
	Variants [][]Segment
	Utility  []Segment
}

// ValueKind distinguishes the four ValueUsage forms a --value(...) param
// can take.
type ValueKind int

const (
	KindType ValueKind = iota
	KindArbType
	KindLiteral
	KindVar
)

// ValueUsage is one parameter inside a template's --value(...) call.
type ValueUsage struct {
	Kind ValueKind

	// KindType / KindArbType
	Type classify.Tag

	// KindLiteral
	Literal string

	// KindVar: candidate is spliced into Prefix+candidate+Suffix to form a
	// theme lookup key. InsertAt equals len(Prefix); Prefix/Suffix are an
	// equivalent, easier-to-manipulate storage of the spec's
	// "template string plus byte offset" formulation (see SPEC_FULL.md
	// §9 Design Notes).
	Prefix string
	Suffix string
}

// Part is one element of a UtilityTemplate's body: either literal text or a
// --value(...) call site.
type Part struct {
	IsValueCall bool

	// !IsValueCall
	Text string

	// IsValueCall
	Params []ValueUsage
}

// PropertyDecl is a recorded @property declaration (from @tw-property
// inside a utility body).
type PropertyDecl struct {
	Name    string
	Default string
	Syntax  string
}

// UtilityTemplate is one parsed @utility declaration.
type UtilityTemplate struct {
	Name       string
	HasValue   bool
	Parts      []Part
	Properties []PropertyDecl
}

// VariantTemplate is one parsed @custom-variant declaration. Prefix/Suffix
// replace the spec's "body string plus byte offset into it" storage (see
// SPEC_FULL.md §9).
type VariantTemplate struct {
	Name    string
	Prefix  string
	Suffix  string
	IsShort bool
}

// Theme holds design-token variables and keyframe bodies.
type Theme struct {
	Vars      map[string]string
	Keyframes map[string]string
}

// NewTheme returns an empty, non-nil Theme.
func NewTheme() *Theme {
	return &Theme{Vars: map[string]string{}, Keyframes: map[string]string{}}
}

// Rule is one emitted CSS rule, recorded in first-occurrence order.
type Rule struct {
	ClassName      string
	PseudoElements []string
	Body           string
}

// EmitEnv is the compiler's aggregator: configuration (utilities, variants,
// theme) plus accumulated output (generated rules, custom property
// declarations). It has no concurrency of its own; see SPEC_FULL.md §5.
type EmitEnv struct {
	Utilities []*UtilityTemplate
	Variants  map[string]*VariantTemplate
	Theme     *Theme

	generatedDefs    map[string]bool
	EmittedRules     []Rule
	CustomProperties []PropertyDecl

	Diagnostics []Diagnostic
}

// NewEmitEnv returns an EmitEnv with an empty default theme and no loaded
// configuration.
func NewEmitEnv() *EmitEnv {
	return &EmitEnv{
		Variants:      map[string]*VariantTemplate{},
		Theme:         NewTheme(),
		generatedDefs: map[string]bool{},
	}
}
