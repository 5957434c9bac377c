package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds settings read from the YAML config file. Command-line flags
// take precedence over every field.
type Config struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	RateLimit float64       `yaml:"rate_limit"`
	NoteLimit int           `yaml:"note_limit"`
	ImportDir string        `yaml:"import_dir"`
	Browser   bool          `yaml:"browser"`
	Markdown  bool          `yaml:"markdown"`
}

// defaultRateLimit is the per-host request rate used when the config file
// sets none.
const defaultRateLimit = 1.0

func defaultConfigPath() string {
	if path := os.Getenv("JURISREF_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jurisref", "config.yaml")
}

// LoadConfig reads the config file at path. A missing file yields the zero
// Config unless required is set.
func LoadConfig(path string, required bool) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.Timeout < 0 || cfg.NoteLimit < 0 || cfg.RateLimit < 0 {
		return cfg, fmt.Errorf("config %q: negative values are not allowed", path)
	}
	return cfg, nil
}

// merge applies the flags over the config file values.
func (c Config) merge(cli *CLI) Config {
	if cli.Timeout > 0 {
		c.Timeout = cli.Timeout
	}
	if cli.NoteLimit > 0 {
		c.NoteLimit = cli.NoteLimit
	}
	if cli.Browser {
		c.Browser = true
	}
	if cli.Markdown {
		c.Markdown = true
	}
	if cli.Import.Dir != "" {
		c.ImportDir = cli.Import.Dir
	}
	if c.RateLimit == 0 {
		c.RateLimit = defaultRateLimit
	}
	return c
}
