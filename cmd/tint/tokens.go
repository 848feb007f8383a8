package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tint/internal/diag"
	"tint/internal/diagfmt"
	"tint/internal/lexer"
	"tint/internal/source"
	"tint/internal/token"
)

var tokensCmd = &cobra.Command{
	Use:    "tokens [flags] <file.wgsl>",
	Short:  "Print the tokens of a WGSL file",
	Args:   cobra.ExactArgs(1),
	Hidden: true,
	RunE:   runTokens,
}

func init() {
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	bag := diag.NewBag(s.opts.MaxDiagnostics)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	if bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{Color: s.useColor(os.Stderr), Context: 1})
	}
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), toks, fs)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), toks)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
