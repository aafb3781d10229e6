// Package config loads the layered hookmux configuration scopes and merges
// them into one effective policy set.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hookmux/hookmux/internal/hook"
	"github.com/hookmux/hookmux/internal/hookerrors"
)

const (
	// LocalFileName is the name of the repository-local configuration file
	LocalFileName = ".hookmux.yml"
	// SupportedVersion is the currently supported config schema version
	SupportedVersion = 1
)

// SystemPath is the system-wide scope file. Variable so tests can redirect it.
var SystemPath = "/etc/hookmux/config.yml"

// ScopeName identifies a configuration layer
type ScopeName string

const (
	// ScopeSystem is the machine-wide layer (lowest precedence)
	ScopeSystem ScopeName = "system"
	// ScopeGlobal is the per-user layer
	ScopeGlobal ScopeName = "global"
	// ScopeLocal is the repository layer
	ScopeLocal ScopeName = "local"
	// ScopeRuntime is the in-process override layer (highest precedence)
	ScopeRuntime ScopeName = "runtime"
)

// Script declares a plugin backed by an external check script
type Script struct {
	Name    string   `yaml:"name"`
	Path    string   `yaml:"path"`
	Hooks   []string `yaml:"hooks"`
	EnvFile string   `yaml:"envFile,omitempty"`
}

// File is the schema of one configuration scope file
type File struct {
	Version      int                          `yaml:"version"`
	Plugins      []string                     `yaml:"plugins,omitempty"`
	Hooks        map[string][]string          `yaml:"hooks,omitempty"`
	AbortOnError *bool                        `yaml:"abortOnError,omitempty"`
	Settings     map[string]map[string]string `yaml:"settings,omitempty"`
	Scripts      []Script                     `yaml:"scripts,omitempty"`
}

// Scope is one read-only configuration layer. Path is empty for the runtime
// scope and for scope files that did not exist on disk.
type Scope struct {
	Name ScopeName
	Path string
	File File
}

// RuntimeScope wraps in-process overrides as the highest-precedence scope
func RuntimeScope(file File) Scope {
	if file.Version == 0 {
		file.Version = SupportedVersion
	}
	return Scope{Name: ScopeRuntime, File: file}
}

// LoadScopes reads the system, user-global and repository-local scope files.
// Each source is read exactly once; a missing file yields an empty scope.
// It returns the scopes in precedence order plus the repository root (the
// directory holding the local scope file, or the working directory when no
// local file was found).
func LoadScopes() ([]Scope, string, error) {
	system, err := loadScopeFile(ScopeSystem, SystemPath)
	if err != nil {
		return nil, "", err
	}

	globalPath, err := GlobalPath()
	if err != nil {
		return nil, "", err
	}
	global, err := loadScopeFile(ScopeGlobal, globalPath)
	if err != nil {
		return nil, "", err
	}

	local, repoRoot, err := loadLocalScope()
	if err != nil {
		return nil, "", err
	}

	return []Scope{system, global, local}, repoRoot, nil
}

// GlobalPath returns the path of the user-global scope file
func GlobalPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user config directory: %w", err)
	}
	return filepath.Join(configDir, "hookmux", "config.yml"), nil
}

// loadScopeFile parses one scope file. A missing file is an empty scope.
func loadScopeFile(name ScopeName, path string) (Scope, error) {
	data, err := os.ReadFile(path) // #nosec G304 - scope paths come from the fixed search rules
	if err != nil {
		if os.IsNotExist(err) {
			return Scope{Name: name}, nil
		}
		return Scope{}, hookerrors.ConfigParse(path, err)
	}

	file, err := parseFile(data)
	if err != nil {
		return Scope{}, hookerrors.ConfigParse(path, err)
	}

	if err := validateFile(file); err != nil {
		return Scope{}, hookerrors.ConfigParse(path, err)
	}

	return Scope{Name: name, Path: path, File: *file}, nil
}

// loadLocalScope walks up from the working directory looking for the
// repository-local scope file, the same way the repository root is found.
func loadLocalScope() (Scope, string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return Scope{}, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	searchDir := currentDir
	for {
		configPath := filepath.Join(searchDir, LocalFileName)
		if _, err := os.Stat(configPath); err == nil {
			scope, err := loadScopeFile(ScopeLocal, configPath)
			if err != nil {
				return Scope{}, "", err
			}
			return scope, searchDir, nil
		}

		parentDir := filepath.Dir(searchDir)
		if parentDir == searchDir {
			// No local file anywhere up the tree; empty local scope.
			return Scope{Name: ScopeLocal}, currentDir, nil
		}
		searchDir = parentDir
	}
}

// LoadScopeFrom parses a scope file at a specific path (used by --local-config
// and by tests). The file must exist.
func LoadScopeFrom(name ScopeName, path string) (Scope, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path supplied explicitly by the caller
	if err != nil {
		return Scope{}, hookerrors.ConfigParse(path, err)
	}

	file, err := parseFile(data)
	if err != nil {
		return Scope{}, hookerrors.ConfigParse(path, err)
	}

	if err := validateFile(file); err != nil {
		return Scope{}, hookerrors.ConfigParse(path, err)
	}

	return Scope{Name: name, Path: path, File: *file}, nil
}

// parseFile unmarshals a scope file
func parseFile(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &file, nil
}

// validateFile checks schema version and referential integrity of a scope file
func validateFile(file *File) error {
	if file.Version == 0 {
		return fmt.Errorf("version field is required")
	}
	if file.Version != SupportedVersion {
		return fmt.Errorf("unsupported config version %d (expected %d)", file.Version, SupportedVersion)
	}

	for name := range file.Hooks {
		if !hook.Known(name) {
			return fmt.Errorf("hooks: %q is not a supported git hook", name)
		}
	}

	seen := make(map[string]bool)
	for i, script := range file.Scripts {
		if script.Name == "" {
			return fmt.Errorf("scripts[%d]: name is required", i)
		}
		if script.Path == "" {
			return fmt.Errorf("scripts[%d] (%s): path is required", i, script.Name)
		}
		if len(script.Hooks) == 0 {
			return fmt.Errorf("scripts[%d] (%s): at least one hook is required", i, script.Name)
		}
		for _, h := range script.Hooks {
			if !hook.Known(h) {
				return fmt.Errorf("scripts[%d] (%s): %q is not a supported git hook", i, script.Name, h)
			}
		}
		if seen[script.Name] {
			return fmt.Errorf("scripts: duplicate name %q", script.Name)
		}
		seen[script.Name] = true
	}

	return nil
}
