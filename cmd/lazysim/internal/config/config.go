// Package config loads lazyview.yaml page manifests for lazysim.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/lazyview/pkg/visibility"
)

// FileName is the manifest looked up in a project directory.
const FileName = "lazyview.yaml"

// SupportedSchema is the manifest schema major version this build reads.
const SupportedSchema = "v1"

// Manifest is a decoded lazyview.yaml.
type Manifest struct {
	Schema   string            `yaml:"schema"`
	Page     PageConfig        `yaml:"page"`
	Observer visibility.Config `yaml:"observer"`
	Sections []Section         `yaml:"sections"`
}

// PageConfig describes the simulated screen.
type PageConfig struct {
	Name       string  `yaml:"name,omitempty"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	ScrollStep float64 `yaml:"scrollStep"`
	// IdleSetup defers watcher setup to idle time.
	IdleSetup bool `yaml:"idleSetup"`
}

// Section is one lazily rendered block of the page.
type Section struct {
	Name string `yaml:"name"`
	// MinHeight is the placeholder height.
	MinHeight float64 `yaml:"minHeight"`
	// Height is the loaded content height. Zero means measure Text.
	Height float64 `yaml:"height,omitempty"`
	Text   string  `yaml:"text,omitempty"`
	// FetchFrames is how many frames the fetch takes once started.
	FetchFrames int `yaml:"fetchFrames"`
	// Observer overrides keys of the page-level observer config.
	Observer yaml.Node `yaml:"observer,omitempty"`

	resolved visibility.Config
}

// ObserverConfig returns the section's config: the page config with this
// section's overrides applied.
func (s Section) ObserverConfig() visibility.Config {
	return s.resolved
}

// Resolved is a manifest with defaults applied.
type Resolved struct {
	Root       string
	ModulePath string
	Manifest   *Manifest
}

// Defaults returns the manifest values used for missing keys.
func Defaults() Manifest {
	return Manifest{
		Schema: SupportedSchema + ".0.0",
		Page: PageConfig{
			Width:      390,
			Height:     844,
			ScrollStep: 200,
		},
		Observer: visibility.DefaultConfig(),
	}
}

// Parse decodes a manifest over Defaults and validates it.
func Parse(data []byte) (*Manifest, error) {
	m := Defaults()
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	for i := range m.Sections {
		s := &m.Sections[i]
		s.resolved = m.Observer
		if !s.Observer.IsZero() {
			if err := s.Observer.Decode(&s.resolved); err != nil {
				return nil, fmt.Errorf("section %q observer: %w", s.Name, err)
			}
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks the schema version, page geometry and every section.
func (m *Manifest) Validate() error {
	if !semver.IsValid(m.Schema) {
		return fmt.Errorf("schema %q is not a semantic version", m.Schema)
	}
	if major := semver.Major(m.Schema); major != SupportedSchema {
		return fmt.Errorf("schema %s is not supported (want %s.x)", m.Schema, SupportedSchema)
	}
	if m.Page.Width <= 0 || m.Page.Height <= 0 {
		return fmt.Errorf("page size %vx%v must be positive", m.Page.Width, m.Page.Height)
	}
	if m.Page.ScrollStep <= 0 {
		return fmt.Errorf("scrollStep %v must be positive", m.Page.ScrollStep)
	}
	if err := m.Observer.Validate(); err != nil {
		return fmt.Errorf("observer: %w", err)
	}
	if len(m.Sections) == 0 {
		return errors.New("no sections")
	}
	seen := make(map[string]bool, len(m.Sections))
	for _, s := range m.Sections {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return errors.New("section without a name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate section %q", name)
		}
		seen[name] = true
		if s.MinHeight < 0 || s.Height < 0 {
			return fmt.Errorf("section %q: heights must not be negative", name)
		}
		if s.FetchFrames < 0 {
			return fmt.Errorf("section %q: fetchFrames must not be negative", name)
		}
		if err := s.resolved.Validate(); err != nil {
			return fmt.Errorf("section %q observer: %w", name, err)
		}
	}
	return nil
}

// Resolve loads dir/lazyview.yaml and fills the page name from the
// enclosing module when the manifest leaves it empty.
func Resolve(dir string) (*Resolved, error) {
	m, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}

	modPath, err := modulePath(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if strings.TrimSpace(m.Page.Name) == "" {
		m.Page.Name = defaultPageName(modPath, dir)
	}

	return &Resolved{Root: dir, ModulePath: modPath, Manifest: m}, nil
}

// FindProjectRoot walks up from dir to the nearest directory holding a
// manifest.
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found", FileName)
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", err
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultPageName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "page"
	}
	return base
}
