package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tint/internal/version"
)

// errDiagnostics reports that diagnostics with errors were already printed.
var errDiagnostics = errors.New("diagnostics reported errors")

var (
	traceCleanup   = func() {}
	profileCleanup = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "tint",
	Short: "WGSL constant-expression evaluator",
	Long: `tint folds the const declarations of WGSL sources the way a WGSL
implementation does at shader-creation time and reports every error it finds.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		stopProfiles, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		profileCleanup = stopProfiles
		return nil
	},
}

func main() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	registerGlobalFlags(rootCmd)

	// cleanups run here since PersistentPostRun is skipped on errors
	err := rootCmd.Execute()
	profileCleanup()
	traceCleanup()
	if err == nil {
		return
	}
	if !errors.Is(err, errDiagnostics) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(1)
}

func registerGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("color", "", "colorize output (auto|on|off); defaults to tint.toml")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics per file; defaults to tint.toml")
	flags.Bool("timings", false, "report phase timings")
	flags.Bool("no-cache", false, "ignore the result cache enabled in tint.toml")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Duration("trace-heartbeat", 0, "emit a trace heartbeat at this interval (0 disables)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
