package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [query]",
	Short: "List the utilities, variants, and theme variables the active configuration defines",
	Long: `Catalog loads the active configuration (bundled defaults plus any
--config/--tokens/--theme overrides) and lists what it defines, optionally
filtered by a substring query.

Examples:
  duckwind catalog                 # list everything
  duckwind catalog bg              # utilities/variants/vars containing "bg"
  duckwind catalog --kind=variant  # list only @custom-variant declarations
  duckwind catalog --kind=theme    # list only theme variables`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

var (
	catalogConfig string
	catalogTokens string
	catalogTheme  string
	catalogKind   string
)

func init() {
	catalogCmd.Flags().StringVar(&catalogConfig, "config", "", "Path to a @utility/@custom-variant/@theme configuration file")
	catalogCmd.Flags().StringVar(&catalogTokens, "tokens", "", "Path to a W3C Design Tokens JSON dictionary")
	catalogCmd.Flags().StringVar(&catalogTheme, "theme", "", "Path to a YAML theme override file")
	catalogCmd.Flags().StringVarP(&catalogKind, "kind", "k", "", "Restrict listing to one kind: utility, variant, or theme")
	rootCmd.AddCommand(catalogCmd)
}

// themeVarDescription looks up the description of the token that
// ThemeFromDictionary flattened into varName, when a --tokens dictionary
// was loaded. tokenMetadata is keyed by dotted token path, so this matches
// on TokenMetadata.CSSName (the same tokens.CSSVarName conversion
// ThemeFromDictionary itself used) rather than re-deriving a path from the
// var name, which would be ambiguous for any token whose path contains a
// literal hyphen.
func themeVarDescription(varName string) string {
	for _, meta := range tokenMetadata {
		if meta.CSSName == varName {
			return meta.Description
		}
	}
	return ""
}

func runCatalog(cmd *cobra.Command, args []string) error {
	env, err := newEnv(catalogConfig, catalogTokens, catalogTheme)
	if err != nil {
		return err
	}
	reportDiagnostics(env, 0)

	query := ""
	if len(args) > 0 {
		query = strings.ToLower(args[0])
	}

	found := 0

	if catalogKind == "" || catalogKind == "utility" {
		names := make([]string, 0, len(env.Utilities))
		for _, u := range env.Utilities {
			names = append(names, u.Name)
		}
		sort.Strings(names)
		for _, name := range names {
			if query != "" && !strings.Contains(strings.ToLower(name), query) {
				continue
			}
			fmt.Printf("utility  %s\n", name)
			found++
		}
	}

	if catalogKind == "" || catalogKind == "variant" {
		names := make([]string, 0, len(env.Variants))
		for name := range env.Variants {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if query != "" && !strings.Contains(strings.ToLower(name), query) {
				continue
			}
			v := env.Variants[name]
			fmt.Printf("variant  %s  %s{...}%s\n", name, v.Prefix, v.Suffix)
			found++
		}
	}

	if catalogKind == "" || catalogKind == "theme" {
		names := make([]string, 0, len(env.Theme.Vars))
		for name := range env.Theme.Vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if query != "" && !strings.Contains(strings.ToLower(name), query) {
				continue
			}
			fmt.Printf("theme    %s: %s\n", name, env.Theme.Vars[name])
			if desc := themeVarDescription(name); desc != "" {
				fmt.Printf("           %s\n", desc)
			}
			found++
		}
	}

	if found == 0 {
		fmt.Println("No matches.")
	}
	return nil
}
