package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultConfigPath is tried when no --config flag is given.
const defaultConfigPath = "karst.yaml"

// fileConfig is the on-disk CLI configuration. Flags override file
// values, which override defaults.
type fileConfig struct {
	// Schema holds the package patterns of the model declarations.
	Schema []string `yaml:"schema"`
	// Target is the output directory for generated files.
	Target string `yaml:"target"`
	// Package is the output package name.
	Package string `yaml:"package"`
	// Header is an extra header comment for generated files.
	Header string `yaml:"header"`
	// Style selects accessor naming, bean or fluent.
	Style string `yaml:"style"`
	// Prefixes are stripped from type names for default table names.
	Prefixes []string `yaml:"prefixes"`
	// Strict makes error diagnostics fatal.
	Strict bool `yaml:"strict"`
	// Workers bounds parallel file emission.
	Workers int `yaml:"workers"`
	// BuildFlags are passed to the model package loader.
	BuildFlags []string `yaml:"build_flags"`
}

// loadFileConfig reads the configuration file. A missing default file
// is not an error; a missing explicit file is.
func loadFileConfig(path string) (*fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &fileConfig{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
