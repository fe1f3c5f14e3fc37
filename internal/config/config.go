// Package config loads the optional YAML run configuration consumed by the
// record-generator CLI. Command-line flags override file values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML run configuration.
type File struct {
	// Packages lists the package patterns to scan.
	Packages []string `yaml:"packages"`
	// OutDir is the output directory for generated files.
	OutDir string `yaml:"out"`
	// Package is the package name for generated files.
	Package string `yaml:"package"`
	// Strict treats warnings as errors.
	Strict bool `yaml:"strict"`
}

// LoadFile loads and parses a YAML run configuration from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File and applies defaults.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// Default returns the configuration used when no file is given.
func Default() *File {
	f := &File{}
	applyDefaults(f)

	return f
}

func applyDefaults(f *File) {
	if len(f.Packages) == 0 {
		f.Packages = []string{"./..."}
	}

	if f.OutDir == "" {
		f.OutDir = "."
	}
}
