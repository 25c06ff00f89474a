// Package defaults embeds the bundled default configuration and preflight
// stylesheet (SPEC_FULL.md §9 "Global state"): static text assets baked
// into the binary at compile time, following the pack's convention of
// keeping such data as plain files loaded with //go:embed rather than
// generated Go literals.
package defaults

import _ "embed"

//go:embed base.css
var BaseConfig string

//go:embed preflight.css
var Preflight string
