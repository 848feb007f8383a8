package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tint/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default tint.toml",
	Long: `Init writes tint.toml with the default settings into dir, or into the
current directory. The directory is created when missing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	path, err := project.WriteDefault(target)
	if errors.Is(err, project.ErrExists) {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	return nil
}
