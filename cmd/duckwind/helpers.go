package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmoose/duckwind/pkg/compiler"
	"github.com/dmoose/duckwind/pkg/compiler/defaults"
	"github.com/dmoose/duckwind/pkg/tokens"
)

// tokenMetadata holds the last --tokens file's per-path descriptions
// (extracted via tokens.ExtractMetadata), keyed by dotted token path with
// each entry's CSSName holding the theme variable name, so catalog can
// surface them without newEnv's callers needing to thread the raw
// Dictionary through separately.
var tokenMetadata map[string]*tokens.TokenMetadata

// newEnv builds an EmitEnv seeded with the bundled default configuration,
// then layers the optional configFile, tokensFile(s) (W3C Design Tokens
// JSON), and yamlFile theme sources on top, each overriding the last via
// the identical last-writer-wins rule. Diagnostics accumulated while
// loading the *defaults* are discarded (they would indicate a bug in this
// binary, not the user's input); diagnostics from user-supplied sources
// are reported to stderr but do not abort the build.
//
// tokensFile may name a single path or a comma-separated list; later files
// in the list win over earlier ones on any conflicting token, matching
// every other configuration surface's last-writer-wins rule.
func newEnv(configFile, tokensFile, yamlFile string) (*compiler.EmitEnv, error) {
	env := compiler.NewEmitEnv()
	env.LoadConfigString(defaults.BaseConfig)
	env.Diagnostics = nil

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
		env.LoadConfigString(string(data))
	}

	if tokensFile != "" {
		var paths []string
		for _, p := range strings.Split(tokensFile, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				paths = append(paths, p)
			}
		}

		dict, err := tokens.LoadFiles(paths, true)
		if err != nil {
			return nil, fmt.Errorf("loading tokens %s: %w", tokensFile, err)
		}
		if errs, err := tokens.Validate(dict); err != nil {
			return nil, fmt.Errorf("validating tokens %s: %w", tokensFile, err)
		} else {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "warning: %s: %s\n", tokensFile, e.Error())
			}
		}
		if err := env.ThemeFromDictionary(dict); err != nil {
			return nil, fmt.Errorf("loading tokens %s: %w", tokensFile, err)
		}
		tokenMetadata = tokens.ExtractMetadata(dict)
	}

	if yamlFile != "" {
		data, err := os.ReadFile(yamlFile)
		if err != nil {
			return nil, fmt.Errorf("reading YAML theme %s: %w", yamlFile, err)
		}
		if err := env.LoadYAMLTheme(data); err != nil {
			return nil, fmt.Errorf("loading YAML theme %s: %w", yamlFile, err)
		}
	}

	return env, nil
}

// reportDiagnostics prints every diagnostic in env.Diagnostics from index
// from onward, returning the new length so callers can report the same
// slice again later without repeating entries already shown.
func reportDiagnostics(env *compiler.EmitEnv, from int) int {
	for _, d := range env.Diagnostics[from:] {
		fmt.Fprintf(os.Stderr, "warning: %s\n", d.Error())
	}
	return len(env.Diagnostics)
}
