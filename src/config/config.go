// Package config loads the pequod configuration file and the
// environment-derived settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// candidateFiles are tried in order when no --config path is given.
var candidateFiles = []string{"pequod.yaml", "pequod.yml", "pequod.toml"}

// File is the parsed configuration document.
type File struct {
	Components []ComponentDef `yaml:"components" toml:"components"`
	Groups     []GroupDef     `yaml:"groups" toml:"groups"`
	Lint       CommandConfig  `yaml:"lint" toml:"lint"`
	Test       CommandConfig  `yaml:"test" toml:"test"`
}

// ComponentDef declares one buildable component.
type ComponentDef struct {
	Name          string   `yaml:"name" toml:"name"`
	ImageName     string   `yaml:"image_name" toml:"image_name"`
	Dockerfile    string   `yaml:"dockerfile" toml:"dockerfile"`
	ContextFolder string   `yaml:"context_folder" toml:"context_folder"`
	Type          string   `yaml:"type" toml:"type"`
	Aliases       []string `yaml:"aliases" toml:"aliases"`
	DependsOn     []string `yaml:"depends_on" toml:"depends_on"`

	// Supported defaults to true when omitted.
	Supported *bool `yaml:"supported" toml:"supported"`
}

// GroupDef declares a named collection of components and/or other groups.
type GroupDef struct {
	Name     string   `yaml:"name" toml:"name"`
	Includes []string `yaml:"includes" toml:"includes"`
	Aliases  []string `yaml:"aliases" toml:"aliases"`
}

// CommandConfig holds an external passthrough command line.
type CommandConfig struct {
	Command []string `yaml:"command" toml:"command"`
}

// Load reads the configuration file. If path is empty the default
// candidates are tried in the working directory. YAML and TOML are both
// accepted, keyed off the file extension.
func Load(path string) (*File, error) {
	if path == "" {
		found, err := findDefault()
		if err != nil {
			return nil, err
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &File{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(cfg.Components) == 0 {
		return nil, fmt.Errorf("%s: no components defined", path)
	}
	return cfg, nil
}

func findDefault() (string, error) {
	for _, name := range candidateFiles {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("no config file found (tried %s)", strings.Join(candidateFiles, ", "))
}

// LintCommand returns the configured lint command line, defaulting to
// golangci-lint over the whole tree.
func (f *File) LintCommand() []string {
	if len(f.Lint.Command) > 0 {
		return f.Lint.Command
	}
	return []string{"golangci-lint", "run"}
}

// TestCommand returns the configured test command line, defaulting to
// go test over the whole tree.
func (f *File) TestCommand() []string {
	if len(f.Test.Command) > 0 {
		return f.Test.Command
	}
	return []string{"go", "test", "./..."}
}
