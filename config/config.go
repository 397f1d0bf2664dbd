// SPDX-License-Identifier: EPL-2.0

// Package config loads the settings of the audsum command.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var (
	ErrWorkers  = errors.New("workers must not be negative")
	ErrLogLevel = errors.New("unknown log level")
)

type Config struct {
	SignatureFiles []string `yaml:"signature_files"` // Extra magic signatures, YAML
	Workers        int      `yaml:"workers"`         // Files hashed at once, 0 means one per CPU
	LogLevel       string   `yaml:"log_level"`       // debug, info, warn or error
	CacheDir       string   `yaml:"cache_dir"`       // Checksum cache, empty disables it
	Strict         bool     `yaml:"strict"`          // Compare per-channel digests for --dupes
}

// Default returns a Config with reasonable default values.
func Default() *Config {
	return &Config{
		LogLevel: "info",
	}
}

// Load reads a YAML file on top of Default.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrWorkers, c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level parses LogLevel. An empty level means info.
func (c *Config) Level() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}

	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("%w: %q", ErrLogLevel, c.LogLevel)
	}

	return lvl, nil
}

// Concurrency resolves Workers to the number of files hashed at once.
func (c *Config) Concurrency() int {
	if c.Workers > 0 {
		return c.Workers
	}

	return runtime.NumCPU()
}
