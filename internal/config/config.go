// Package config loads mend's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Ambiguity modes decide what happens when a hunk has multiple candidate
// locations.
const (
	AmbiguityInteractive = "interactive" // prompt with a picker
	AmbiguityFirst       = "first"       // take the top-ranked candidate
	AmbiguityFail        = "fail"        // refuse to apply
)

type Config struct {
	Match struct {
		Fuzziness *int    `yaml:"fuzziness"` // 0 exact, 1 +whitespace, 2 +anchor heuristic; nil = 2
		Threshold float64 `yaml:"threshold"` // minimum tier-2 score
	} `yaml:"match"`

	Apply struct {
		Ambiguity    string `yaml:"ambiguity"` // "interactive", "first", or "fail"
		Backup       bool   `yaml:"backup"`
		BackupSuffix string `yaml:"backup_suffix"`
	} `yaml:"apply"`

	Log struct {
		Path        string `yaml:"path"` // empty disables logging
		Development bool   `yaml:"development"`
	} `yaml:"log"`

	UI struct {
		Color *bool `yaml:"color"` // nil = auto
	} `yaml:"ui"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML config file and fills in defaults for unset fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(&cfg)

	switch cfg.Apply.Ambiguity {
	case AmbiguityInteractive, AmbiguityFirst, AmbiguityFail:
	default:
		return nil, fmt.Errorf("config %s: unknown ambiguity mode %q", path, cfg.Apply.Ambiguity)
	}
	if f := cfg.GetFuzziness(); f < 0 || f > 2 {
		return nil, fmt.Errorf("config %s: fuzziness must be 0, 1, or 2", path)
	}

	// Allow $HOME and friends in the log path.
	cfg.Log.Path = os.ExpandEnv(cfg.Log.Path)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Match.Threshold == 0 {
		cfg.Match.Threshold = 0.7
	}
	if cfg.Apply.Ambiguity == "" {
		cfg.Apply.Ambiguity = AmbiguityInteractive
	}
	if cfg.Apply.BackupSuffix == "" {
		cfg.Apply.BackupSuffix = ".orig"
	}
}

// GetFuzziness returns the configured fuzziness level, defaulting to 2
// (all tiers enabled) when unset.
func (c *Config) GetFuzziness() int {
	if c.Match.Fuzziness == nil {
		return 2
	}
	return *c.Match.Fuzziness
}

// SetFuzziness overrides the fuzziness level, typically from a CLI flag.
func (c *Config) SetFuzziness(level int) {
	c.Match.Fuzziness = &level
}

// ColorEnabled reports whether UI output should be colorized. Defaults to
// true; the writer still auto-disables on non-terminals.
func (c *Config) ColorEnabled() bool {
	if c.UI.Color == nil {
		return true
	}
	return *c.UI.Color
}
