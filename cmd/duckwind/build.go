package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmoose/duckwind/pkg/compiler"
	"github.com/dmoose/duckwind/pkg/compiler/defaults"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [path...]",
	Short: "Scan source files and emit a stylesheet",
	Long: `Build scans one or more files or directories for utility-class
expressions, compiles each one found against the active configuration
(the bundled defaults plus any --config/--tokens/--theme overrides), and
writes the resulting stylesheet.

Examples:
  duckwind build ./src --output dist/app.css
  duckwind build ./src --config tailwind.css --tokens design-tokens.json
  duckwind build index.html ./components --theme brand.yaml --no-preflight`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

var (
	buildOutput      string
	buildConfig      string
	buildTokens      string
	buildTheme       string
	buildNoPreflight bool
	buildParallel    bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "dist/duckwind.css", "Output stylesheet path")
	buildCmd.Flags().StringVar(&buildConfig, "config", "", "Path to a @utility/@custom-variant/@theme configuration file")
	buildCmd.Flags().StringVar(&buildTokens, "tokens", "", "Path (or comma-separated paths, later wins) to W3C Design Tokens JSON dictionaries to merge into the theme")
	buildCmd.Flags().StringVar(&buildTheme, "theme", "", "Path to a YAML theme override file")
	buildCmd.Flags().BoolVar(&buildNoPreflight, "no-preflight", false, "Omit the bundled preflight reset stylesheet")
	buildCmd.Flags().BoolVar(&buildParallel, "parallel", false, "Read directory trees with a bounded worker pool instead of sequentially")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	env, err := newEnv(buildConfig, buildTokens, buildTheme)
	if err != nil {
		return err
	}

	diagIdx := reportDiagnostics(env, 0)

	scanner := compiler.NewScanner()
	ctx := cmd.Context()
	total := 0
	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			var n int
			var err error
			if buildParallel {
				n, err = scanner.ScanPathConcurrent(ctx, env, path)
			} else {
				n, err = scanner.ScanPath(env, path)
			}
			if err != nil {
				return err
			}
			total += n
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += scanner.ScanText(env, string(data))
	}

	reportDiagnostics(env, diagIdx)

	preflight := defaults.Preflight
	if buildNoPreflight {
		preflight = ""
	}
	css := env.Render(preflight)

	if err := os.MkdirAll(filepath.Dir(buildOutput), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(buildOutput, []byte(css), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", buildOutput, err)
	}

	fmt.Printf("emitted %d rule(s) -> %s\n", total, buildOutput)
	return nil
}
