package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultProblems is the batch processed when no manifest is given.
var DefaultProblems = []string{
	"a_example",
	"b_should_be_easy",
	"c_no_hurry",
	"d_metropolis",
	"e_high_bonus",
}

// Manifest describes a batch run.
//
//	input_dir: in
//	output_dir: out
//	concurrency: 4
//	problems: [a_example, b_should_be_easy]
type Manifest struct {
	InputDir    string   `yaml:"input_dir"`
	OutputDir   string   `yaml:"output_dir"`
	Concurrency int      `yaml:"concurrency"`
	Problems    []string `yaml:"problems"`
}

// DefaultManifest reads from in/ and writes to out/, one problem at a time.
func DefaultManifest() Manifest {
	return Manifest{
		InputDir:    "in",
		OutputDir:   "out",
		Concurrency: 1,
		Problems:    append([]string(nil), DefaultProblems...),
	}
}

// LoadManifest reads a YAML manifest. Fields left out keep their defaults.
func LoadManifest(path string) (Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("load manifest: read %q: %w", path, err)
	}
	return ParseManifest(b)
}

func ParseManifest(b []byte) (Manifest, error) {
	m := DefaultManifest()

	var raw Manifest
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Manifest{}, fmt.Errorf("load manifest: parse yaml: %w", err)
	}

	if raw.InputDir != "" {
		m.InputDir = raw.InputDir
	}
	if raw.OutputDir != "" {
		m.OutputDir = raw.OutputDir
	}
	if raw.Concurrency != 0 {
		m.Concurrency = raw.Concurrency
	}
	if raw.Problems != nil {
		m.Problems = raw.Problems
	}

	if err := m.Validate(); err != nil {
		return Manifest{}, fmt.Errorf("load manifest: %w", err)
	}
	return m, nil
}

// Validate rejects manifests that would fail halfway through a batch.
func (m Manifest) Validate() error {
	if m.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive, got %d", m.Concurrency)
	}
	if len(m.Problems) == 0 {
		return errors.New("no problems listed")
	}

	seen := make(map[string]struct{}, len(m.Problems))
	for i, name := range m.Problems {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("problem #%d: empty name", i+1)
		}
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("problem %q: name must not contain a path separator", name)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("problem %q listed twice", name)
		}
		seen[name] = struct{}{}
		m.Problems[i] = name
	}
	return nil
}

// InputPath is where the named problem file is read from.
func (m Manifest) InputPath(name string) string {
	return filepath.Join(m.InputDir, name+".in")
}

// OutputPath is where the plan for the named problem is written.
func (m Manifest) OutputPath(name string) string {
	return filepath.Join(m.OutputDir, name+".out")
}
