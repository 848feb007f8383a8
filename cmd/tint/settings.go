package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tint/internal/driver"
	"tint/internal/project"
)

// settings is tint.toml with the command-line flags applied on top.
type settings struct {
	config project.Config
	format string
	color  string
	opts   driver.Options
}

// loadSettings reads the nearest tint.toml and applies the flags that were
// set explicitly.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := project.LoadNearest(wd)
	if err != nil {
		return nil, err
	}
	return applyFlags(cmd, cfg)
}

func applyFlags(cmd *cobra.Command, cfg project.Config) (*settings, error) {
	flags := cmd.Flags()
	s := &settings{
		config: cfg,
		format: cfg.Output.Format,
		color:  cfg.Output.Color,
		opts: driver.Options{
			MaxDiagnostics:   cfg.Eval.MaxDiagnostics,
			RuntimeSemantics: cfg.Eval.RuntimeSemantics,
			Jobs:             cfg.Eval.Jobs,
		},
	}

	if flags.Changed("color") {
		value, err := flags.GetString("color")
		if err != nil {
			return nil, err
		}
		s.color = strings.ToLower(value)
	}
	if !slices.Contains(project.ColorModes, s.color) {
		return nil, fmt.Errorf("invalid --color value %q (expected %s)", s.color, strings.Join(project.ColorModes, "|"))
	}

	if flags.Lookup("format") != nil && flags.Changed("format") {
		value, err := flags.GetString("format")
		if err != nil {
			return nil, err
		}
		s.format = strings.ToLower(value)
	}
	if !slices.Contains(project.Formats, s.format) {
		return nil, fmt.Errorf("invalid --format value %q (expected %s)", s.format, strings.Join(project.Formats, "|"))
	}

	if flags.Changed("max-diagnostics") {
		value, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return nil, err
		}
		if value <= 0 {
			return nil, fmt.Errorf("--max-diagnostics must be positive, got %d", value)
		}
		s.opts.MaxDiagnostics = value
	}
	if flags.Lookup("runtime-semantics") != nil && flags.Changed("runtime-semantics") {
		value, err := flags.GetBool("runtime-semantics")
		if err != nil {
			return nil, err
		}
		s.opts.RuntimeSemantics = value
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		value, err := flags.GetInt("jobs")
		if err != nil {
			return nil, err
		}
		s.opts.Jobs = value
	}

	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, err
	}
	s.opts.EnableTimings = timings

	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return nil, err
	}
	if cfg.Cache.Enabled && !noCache {
		cache, err := driver.OpenDiskCache("tint", cfg.Cache.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		s.opts.Cache = cache
	}
	return s, nil
}

// useColor resolves the color mode for f and applies it to fatih/color.
func (s *settings) useColor(f *os.File) bool {
	on := s.color == "on" || (s.color == "auto" && isTerminal(f))
	color.NoColor = !on
	return on
}
