package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/dmoose/duckwind/pkg/compiler"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [path...]",
	Short: "Scan source files and list the utility classes found, without writing a stylesheet",
	Long: `Scan walks the given files or directories, submits every candidate
utility-class token to the active configuration, and prints which ones
compiled and which didn't — a dry run of "build" for inspecting input
before committing to an output file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

var (
	scanConfig   string
	scanTokens   string
	scanTheme    string
	scanParallel bool
)

func init() {
	scanCmd.Flags().StringVar(&scanConfig, "config", "", "Path to a @utility/@custom-variant/@theme configuration file")
	scanCmd.Flags().StringVar(&scanTokens, "tokens", "", "Path to a W3C Design Tokens JSON dictionary to merge into the theme")
	scanCmd.Flags().StringVar(&scanTheme, "theme", "", "Path to a YAML theme override file")
	scanCmd.Flags().BoolVar(&scanParallel, "parallel", false, "Read directory trees with a bounded worker pool instead of sequentially")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	env, err := newEnv(scanConfig, scanTokens, scanTheme)
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
			if scanParallel {
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

	classNames := make([]string, 0, len(env.EmittedRules))
	for _, r := range env.EmittedRules {
		classNames = append(classNames, r.ClassName)
	}
	sort.Strings(classNames)
	for _, name := range classNames {
		fmt.Println(name)
	}

	reportDiagnostics(env, diagIdx)
	fmt.Fprintf(os.Stderr, "%d class(es) compiled, %d diagnostic(s)\n", total, len(env.Diagnostics)-diagIdx)
	return nil
}
