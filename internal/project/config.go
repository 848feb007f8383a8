// Package project loads the tint.toml configuration of a project.
package project

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the decoded tint.toml. Zero values fall back to Default.
type Config struct {
	Eval   EvalConfig   `toml:"eval"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

// EvalConfig is the [eval] section.
type EvalConfig struct {
	RuntimeSemantics bool `toml:"runtime_semantics"`
	MaxDiagnostics   int  `toml:"max_diagnostics"`
	// Jobs limits concurrent files in directory runs; 0 means GOMAXPROCS.
	Jobs int `toml:"jobs"`
}

// OutputConfig is the [output] section.
type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// CacheConfig is the [cache] section.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	// Dir overrides the cache location ($XDG_CACHE_HOME/tint by default).
	Dir string `toml:"dir,omitempty"`
}

var (
	// ErrInvalidFormat reports an unknown [output].format.
	ErrInvalidFormat = errors.New("invalid output format")
	// ErrInvalidColor reports an unknown [output].color.
	ErrInvalidColor = errors.New("invalid color mode")
	// ErrInvalidLimit reports a negative limit in [eval].
	ErrInvalidLimit = errors.New("invalid limit")
)

// Formats lists the accepted output formats.
var Formats = []string{"pretty", "short", "json"}

// ColorModes lists the accepted color modes.
var ColorModes = []string{"auto", "on", "off"}

// Default returns the configuration used without a tint.toml.
func Default() Config {
	return Config{
		Eval:   EvalConfig{MaxDiagnostics: 100},
		Output: OutputConfig{Format: "pretty", Color: "auto"},
	}
}

// Load decodes the config at path over the defaults. Unknown keys are an
// error so that typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.normalize(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadNearest loads the tint.toml found from startDir upwards, or returns
// the defaults when there is none.
func LoadNearest(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) normalize() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	if c.Output.Format == "" {
		c.Output.Format = "pretty"
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("%w %q (expected %s)", ErrInvalidFormat, c.Output.Format, strings.Join(Formats, "|"))
	}
	if !slices.Contains(ColorModes, c.Output.Color) {
		return fmt.Errorf("%w %q (expected %s)", ErrInvalidColor, c.Output.Color, strings.Join(ColorModes, "|"))
	}
	if c.Eval.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: max_diagnostics = %d", ErrInvalidLimit, c.Eval.MaxDiagnostics)
	}
	if c.Eval.Jobs < 0 {
		return fmt.Errorf("%w: jobs = %d", ErrInvalidLimit, c.Eval.Jobs)
	}
	if c.Eval.MaxDiagnostics == 0 {
		c.Eval.MaxDiagnostics = Default().Eval.MaxDiagnostics
	}
	if c.Cache.Dir != "" && c.Path != "" && !filepath.IsAbs(c.Cache.Dir) {
		c.Cache.Dir = filepath.Join(filepath.Dir(c.Path), c.Cache.Dir)
	}
	return nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// ErrExists is returned by WriteDefault when dir already has a tint.toml.
var ErrExists = errors.New(ConfigFile + " already exists")

// WriteDefault creates dir/tint.toml with the default configuration.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, ConfigFile)
	// #nosec G304 -- path is built from a user-provided directory
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return path, ErrExists
		}
		return path, err
	}
	if err := Encode(f, Default()); err != nil {
		_ = f.Close()
		return path, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, f.Close()
}
