// Package config contains the loader and strongly typed model for the terrafirm
// project configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultPath is the default location of the project configuration file,
// relative to the project root.
const DefaultPath = "terrafirm.cfg"

// Config is the typed project configuration. The on-disk format is a
// shell-style key=value file so that projects migrating from sourced
// shell configuration keep working unchanged.
type Config struct {
	// ProjectName is the expected base name of the project root directory.
	ProjectName string
	// InitOpts are extra arguments appended to every backend init call,
	// split on whitespace from the init_opts value.
	InitOpts []string
}

// ConfigLoadError indicates that the project configuration file is absent or malformed.
type ConfigLoadError struct {
	// Path is the configuration file path that failed to load.
	Path string
	// Reason describes why loading failed.
	Reason string
	// Err is the underlying error, if any.
	Err error
}

func (e *ConfigLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load project config %q: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load project config %q: %s", e.Path, e.Reason)
}

func (e *ConfigLoadError) Unwrap() error { return e.Err }

// Load reads and validates the project configuration file at path.
// It returns a *ConfigLoadError when the file is missing, unparsable or
// does not declare a project name.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &ConfigLoadError{Path: path, Reason: "resolve path", Err: err}
	}

	if _, err := os.Stat(absPath); err != nil {
		return nil, &ConfigLoadError{Path: absPath, Reason: "file not found", Err: err}
	}

	values, err := godotenv.Read(absPath)
	if err != nil {
		return nil, &ConfigLoadError{Path: absPath, Reason: "parse", Err: err}
	}

	cfg := &Config{
		ProjectName: strings.TrimSpace(values["project_name"]),
		InitOpts:    strings.Fields(values["init_opts"]),
	}

	if cfg.ProjectName == "" {
		return nil, &ConfigLoadError{Path: absPath, Reason: "project_name is not declared"}
	}

	return cfg, nil
}
