// Package config loads the host settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPrompt       = "> "
	DefaultHistory      = "~/.loxwalk_history"
	DefaultTrace        = "error"
	DefaultMaxCallDepth = 10000
)

type Config struct {
	Path string `yaml:"-"`

	Prompt  string `yaml:"prompt"`
	History string `yaml:"history"`
	Trace   string `yaml:"trace"`

	// IsolateStatements reports a runtime error per top-level statement
	// and keeps going instead of abandoning the rest of the script.
	IsolateStatements bool `yaml:"isolate_statements"`
	MaxCallDepth      int  `yaml:"max_call_depth"`
}

func Default() *Config {
	return &Config{
		Prompt:       DefaultPrompt,
		History:      DefaultHistory,
		Trace:        DefaultTrace,
		MaxCallDepth: DefaultMaxCallDepth,
	}
}

// Load reads path; a missing file yields the defaults.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.Path = path
			return cfg, nil
		}

		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.Path = path
	return cfg, nil
}

// Decode reads one YAML document over the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Trace) {
	case "error", "info", "debug":
	default:
		return fmt.Errorf("trace: unknown level %q", c.Trace)
	}

	if c.MaxCallDepth <= 0 {
		return fmt.Errorf("max_call_depth: must be positive, got %d", c.MaxCallDepth)
	}

	return nil
}

// HistoryPath expands a leading ~ in History.
func (c *Config) HistoryPath() string {
	if c.History == "" || !strings.HasPrefix(c.History, "~") {
		return c.History
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, strings.TrimPrefix(c.History, "~"))
}
