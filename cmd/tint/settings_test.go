package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"tint/internal/project"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	registerGlobalFlags(cmd)
	cmd.Flags().String("format", "", "")
	cmd.Flags().Bool("runtime-semantics", false, "")
	cmd.Flags().Int("jobs", 0, "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestApplyFlagsUsesConfig(t *testing.T) {
	cfg := project.Default()
	cfg.Eval.RuntimeSemantics = true
	cfg.Eval.Jobs = 3
	cfg.Output.Format = "short"

	s, err := applyFlags(newTestCommand(t), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.format != "short" || s.color != "auto" {
		t.Errorf("got format=%s color=%s", s.format, s.color)
	}
	if !s.opts.RuntimeSemantics || s.opts.Jobs != 3 || s.opts.MaxDiagnostics != 100 {
		t.Errorf("got %+v", s.opts)
	}
	if s.opts.Cache != nil {
		t.Errorf("cache opened while disabled")
	}
}

func TestApplyFlagsOverrideConfig(t *testing.T) {
	cfg := project.Default()
	cfg.Eval.RuntimeSemantics = true
	cmd := newTestCommand(t,
		"--format=json", "--color=off", "--max-diagnostics=7",
		"--runtime-semantics=false", "--jobs=2", "--timings")

	s, err := applyFlags(cmd, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.format != "json" || s.color != "off" {
		t.Errorf("got format=%s color=%s", s.format, s.color)
	}
	if s.opts.RuntimeSemantics || s.opts.Jobs != 2 || s.opts.MaxDiagnostics != 7 || !s.opts.EnableTimings {
		t.Errorf("got %+v", s.opts)
	}
}

func TestApplyFlagsRejectsBadValues(t *testing.T) {
	tests := [][]string{
		{"--format=xml"},
		{"--color=sometimes"},
		{"--max-diagnostics=0"},
	}
	for _, args := range tests {
		if _, err := applyFlags(newTestCommand(t, args...), project.Default()); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestApplyFlagsCache(t *testing.T) {
	cfg := project.Default()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")

	s, err := applyFlags(newTestCommand(t), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.opts.Cache == nil || s.opts.Cache.Dir() != cfg.Cache.Dir {
		t.Fatalf("cache not opened in %s", cfg.Cache.Dir)
	}

	s, err = applyFlags(newTestCommand(t, "--no-cache"), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.opts.Cache != nil {
		t.Fatalf("--no-cache ignored")
	}
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in   string
		want uiMode
	}{
		{"", uiModeAuto},
		{"AUTO", uiModeAuto},
		{" on ", uiModeOn},
		{"off", uiModeOff},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Errorf("expected an error")
	}
	if !showProgress(uiModeOn, "pretty") || showProgress(uiModeOff, "pretty") {
		t.Errorf("explicit modes not honored")
	}
	if showProgress(uiModeOn, "json") || showProgress(uiModeOn, "short") {
		t.Errorf("progress view must stay off for machine formats")
	}
}
