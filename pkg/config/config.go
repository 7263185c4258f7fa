// Package config loads picker defaults from a picker.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/picker/pkg/picker"
)

// FileName is the configuration file looked up by LoadOptional.
const FileName = "picker.yaml"

// SchemaVersion is the newest configuration schema understood here.
const SchemaVersion = "v1.0.0"

// File is the parsed picker.yaml. It implements picker.DefaultsProvider.
type File struct {
	Version   string           `yaml:"version,omitempty"`
	Overrides picker.Overrides `yaml:"defaults"`

	// Path is where the file was read from, empty when absent.
	Path string `yaml:"-"`
}

// Defaults implements picker.DefaultsProvider.
func (f *File) Defaults() picker.Options {
	return picker.DefaultOptions().Apply(f.Overrides)
}

// Parse decodes and validates configuration data.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if err := validateVersion(f.Version); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// LoadOptional reads picker.yaml from dir if present. A missing file yields
// an empty configuration.
func LoadOptional(dir string) (*File, error) {
	path := filepath.Join(dir, FileName)
	f, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, err
	}
	return f, nil
}

func validateVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid %s version %q", FileName, v)
	}
	if semver.Major(v) != semver.Major(SchemaVersion) {
		return fmt.Errorf("unsupported %s version %q (want %s)", FileName, v, semver.Major(SchemaVersion))
	}
	if semver.Compare(v, SchemaVersion) > 0 {
		return fmt.Errorf("%s version %q is newer than supported %s", FileName, v, SchemaVersion)
	}
	return nil
}
