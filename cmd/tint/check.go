package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.wgsl|directory>",
	Short: "Report the diagnostics of WGSL sources",
	Long: `Check evaluates every const declaration and const_assert of a WGSL file,
or of every *.wgsl file under a directory, and prints only the diagnostics.
The exit status is 1 when any error was reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|short|json); defaults to tint.toml")
	checkCmd.Flags().Bool("runtime-semantics", false, "report errors as warnings and continue with substitute values")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Int("jobs", 0, "max parallel files for directories (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	s.opts.WarningsAsErrors = warningsAsErrors

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	showUI := showProgress(mode, s.format)

	results, err := evalTarget(cmd.Context(), args[0], s.opts, showUI)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch s.format {
	case "json":
		if err := writeJSON(out, results, false); err != nil {
			return err
		}
	default:
		if err := writeDiagnostics(out, results, s.format, s.useColor(os.Stdout)); err != nil {
			return err
		}
	}

	errs, warnings := counts(results)
	if s.format == "pretty" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", summary(len(results), errs, warnings))
	}
	if errs > 0 {
		return errDiagnostics
	}
	return nil
}

func summary(files, errs, warnings int) string {
	return fmt.Sprintf("%s checked: %s, %s", plural(files, "file"), plural(errs, "error"), plural(warnings, "warning"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
