// Package driver sequences a SOL25 run: bootstrapping the built-in
// class library, merging in a parsed program's user classes, locating
// Main, and invoking Main#run.
package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RunConfig is the optional YAML configuration file a SOL25 invocation
// may supply alongside its program, controlling ambient behavior the
// language itself has no syntax for: trace verbosity, a step budget,
// and stdio redirection.
type RunConfig struct {
	// Trace, when true, makes the run log every message send to
	// stderr. Observational only — it cannot alter control flow.
	Trace bool `yaml:"trace"`

	// MaxSends bounds the number of steps (message sends plus block
	// invocations) the run may perform before aborting with
	// InternalError. Zero means unbounded.
	MaxSends int `yaml:"maxSends"`

	// Stdin and Stdout, if set, redirect String#read and String#print
	// to files instead of the process's own standard streams.
	Stdin  string `yaml:"stdin"`
	Stdout string `yaml:"stdout"`
}

// LoadRunConfig parses a run-configuration file from disk. An absent
// path is not an error: callers get a zero-value RunConfig (trace off,
// unbounded sends, process stdio).
func LoadRunConfig(path string) (*RunConfig, error) {
	if path == "" {
		return &RunConfig{}, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("run config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("run config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var cfg RunConfig
	if err := decoder.Decode(&cfg); err != nil {
		if err == io.EOF {
			return &RunConfig{}, nil
		}
		return nil, fmt.Errorf("run config: parse %s: %w", absPath, err)
	}
	if cfg.MaxSends < 0 {
		return nil, fmt.Errorf("run config: maxSends must not be negative")
	}
	return &cfg, nil
}
