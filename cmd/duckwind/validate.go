package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dmoose/duckwind/pkg/colors"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the active configuration",
	Long: `Validate loads the active configuration (bundled defaults plus any
--config/--tokens/--theme overrides) and reports any @utility,
@custom-variant, or @theme declarations that failed to parse.

With --contrast, it additionally checks every pair of theme colors whose
names share a "-fg"/"-bg" convention for WCAG AA contrast,
reporting shortfalls without exiting nonzero unless --strict is also set.`,
	RunE: runValidate,
}

var (
	validateConfig string
	validateTokens string
	validateTheme  string
	validateStrict bool
	validateContrast bool
)

func init() {
	validateCmd.Flags().StringVar(&validateConfig, "config", "", "Path to a @utility/@custom-variant/@theme configuration file")
	validateCmd.Flags().StringVar(&validateTokens, "tokens", "", "Path (or comma-separated paths, later wins) to W3C Design Tokens JSON dictionaries")
	validateCmd.Flags().StringVar(&validateTheme, "theme", "", "Path to a YAML theme override file")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit nonzero on any diagnostic, including contrast shortfalls")
	validateCmd.Flags().BoolVar(&validateContrast, "contrast", false, "Check theme color pairs for WCAG AA contrast")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	env, err := newEnv(validateConfig, validateTokens, validateTheme)
	if err != nil {
		return err
	}

	hasErrors := false

	fmt.Println("Checking configuration...")
	if len(env.Diagnostics) == 0 {
		fmt.Println("  OK")
	} else {
		hasErrors = true
		for _, d := range env.Diagnostics {
			fmt.Printf("  [Error] %s\n", d.Error())
		}
	}

	if validateContrast {
		fmt.Println("Checking theme color contrast...")
		shortfalls := checkThemeContrast(env.Theme.Vars)
		if len(shortfalls) == 0 {
			fmt.Println("  OK")
		} else {
			if validateStrict {
				hasErrors = true
			}
			for _, s := range shortfalls {
				fmt.Printf("  [Warn] %s\n", s)
			}
		}
	}

	if hasErrors {
		os.Exit(1)
	}

	fmt.Println("\nValidation passed!")
	return nil
}

// checkThemeContrast pairs up every "--*-fg"/"--*-bg" theme variable (a
// naming convention callers can opt into, not one this binary enforces) and
// reports pairs that don't meet WCAG AA for normal text, naming the actual
// level reached and a suggested foreground lightness adjustment that would
// clear the AA bar.
func checkThemeContrast(vars map[string]string) []string {
	var names []string
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var shortfalls []string
	for _, name := range names {
		if !strings.HasSuffix(name, "-bg") {
			continue
		}
		base := strings.TrimSuffix(name, "-bg")
		fgName := base + "-fg"
		fgVal, ok := vars[fgName]
		if !ok {
			continue
		}
		bg, err1 := colors.Parse(vars[name])
		fg, err2 := colors.Parse(fgVal)
		if err1 != nil || err2 != nil {
			continue
		}
		if colors.MeetsWCAG(bg, fg, "AA", false) {
			continue
		}
		ratio := colors.ContrastRatio(bg, fg)
		suggested := colors.AdjustLightnessForContrast(fg, bg, colors.WCAGAANormal, 0)
		shortfalls = append(shortfalls, fmt.Sprintf(
			"%s/%s contrast %.2f:1 is %s, below WCAG AA (%.1f:1) — try %s for %s",
			name, fgName, ratio, colors.ContrastLevel(bg, fg), colors.WCAGAANormal, suggested.Hex(), fgName))
	}
	return shortfalls
}
