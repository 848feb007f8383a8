package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tint/internal/driver"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] <file.wgsl|directory>",
	Short: "Print the folded value of every const declaration",
	Long: `Evaluate the const declarations of a WGSL file, or of every *.wgsl file
under a directory, and print them as "name: type = value".

With --expr the expression is evaluated instead; the optional file argument
then provides declarations the expression may refer to.`,
	Example: `  tint eval shader.wgsl
  tint eval -e 'vec3(1, 2, 3) * 2.5'
  tint eval -e 'k * 2u' consts.wgsl`,
	Args: cobra.RangeArgs(0, 1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringP("expr", "e", "", "evaluate an inline expression")
	evalCmd.Flags().String("format", "", "output format (pretty|short|json); defaults to tint.toml")
	evalCmd.Flags().Bool("runtime-semantics", false, "report errors as warnings and continue with substitute values")
	evalCmd.Flags().Int("jobs", 0, "max parallel files for directories (0=auto)")
}

func runEval(cmd *cobra.Command, args []string) error {
	expr, err := cmd.Flags().GetString("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}
	if !cmd.Flags().Changed("expr") && len(args) == 0 {
		return fmt.Errorf("expected a file, a directory or --expr")
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var results []*driver.Result
	if cmd.Flags().Changed("expr") {
		declsPath := ""
		if len(args) == 1 {
			declsPath = args[0]
		}
		res, err := driver.EvalExpr(cmd.Context(), expr, declsPath, s.opts)
		if err != nil {
			return err
		}
		results = []*driver.Result{res}
	} else {
		results, err = evalTarget(cmd.Context(), args[0], s.opts, false)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if s.format == "json" {
		if err := writeJSON(out, results, true); err != nil {
			return err
		}
	} else {
		if err := writeDiagnostics(cmd.ErrOrStderr(), results, s.format, s.useColor(os.Stderr)); err != nil {
			return err
		}
		if err := writeDecls(out, results, s.format); err != nil {
			return err
		}
	}

	if errs, _ := counts(results); errs > 0 {
		return errDiagnostics
	}
	return nil
}
