// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ServiceFileName = "serverless.yml"
	DataDirectory   = ".pel/albalias"
	LogFileName     = "albalias.log"
)

var ErrMissingAlias = errors.New("no alias configured, set provider.alias or pass --alias")

type LoggingConfig struct {
	FilePath        string     `yaml:"filePath"`
	FileLogLevel    slog.Level `yaml:"fileLogLevel"`
	ConsoleLogLevel slog.Level `yaml:"consoleLogLevel"`
}

// Config is what a partition run needs from the service definition and the
// command line.
type Config struct {
	Service   string
	Alias     string
	Functions []string
	Logging   LoggingConfig
}

type serviceFile struct {
	Service  yaml.Node `yaml:"service"`
	Provider struct {
		Alias string `yaml:"alias"`
	} `yaml:"provider"`
	Functions yaml.Node `yaml:"functions"`
	Custom    struct {
		AlbAlias struct {
			Logging LoggingConfig `yaml:"logging"`
		} `yaml:"albAlias"`
	} `yaml:"custom"`
}

func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			FilePath:        filepath.Join(DataDir(), "log", LogFileName),
			FileLogLevel:    slog.LevelDebug,
			ConsoleLogLevel: slog.LevelWarn,
		},
	}
}

func DataDir() string {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homePath, DataDirectory)
}

// LoadFile reads a serverless service definition on top of the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service file %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes a serverless service definition. Function keys are kept in
// declaration order.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	var file serviceFile
	file.Custom.AlbAlias.Logging = cfg.Logging
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	cfg.Alias = file.Provider.Alias
	cfg.Logging = file.Custom.AlbAlias.Logging

	// service may be a plain name or the object form {name: ...}
	switch file.Service.Kind {
	case yaml.ScalarNode:
		cfg.Service = file.Service.Value
	case yaml.MappingNode:
		var named struct {
			Name string `yaml:"name"`
		}
		if err := file.Service.Decode(&named); err != nil {
			return nil, fmt.Errorf("invalid service section: %w", err)
		}
		cfg.Service = named.Name
	}

	switch file.Functions.Kind {
	case 0:
	case yaml.MappingNode:
		for i := 0; i < len(file.Functions.Content); i += 2 {
			cfg.Functions = append(cfg.Functions, file.Functions.Content[i].Value)
		}
	default:
		return nil, fmt.Errorf("functions section must be a mapping (line %d)", file.Functions.Line)
	}

	return cfg, nil
}

// Override applies non-empty command line values.
func (c *Config) Override(alias string, functions []string) {
	if alias != "" {
		c.Alias = alias
	}
	if len(functions) > 0 {
		c.Functions = functions
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Alias) == "" {
		return ErrMissingAlias
	}
	seen := make(map[string]struct{}, len(c.Functions))
	for _, fn := range c.Functions {
		if fn == "" {
			return fmt.Errorf("function names must not be empty")
		}
		if _, ok := seen[fn]; ok {
			return fmt.Errorf("function %q is listed more than once", fn)
		}
		seen[fn] = struct{}{}
	}

	return nil
}
