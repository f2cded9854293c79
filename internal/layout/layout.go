// Package layout enforces the terrafirm project directory convention before any
// external tool execution takes place.
//
// A terrafirm project root looks like:
//
//	<project_name>/
//	  configs/<configuration>/
//	  modules/
//	  variables/common.tfvars
//	  variables/environments/<environment>/*.tfvars
package layout

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigsDir is the directory under the project root holding configurations.
	ConfigsDir = "configs"
	// ModulesDir is the directory under the project root holding shared modules.
	ModulesDir = "modules"
	// VariablesDir is the directory under the project root holding variable files.
	VariablesDir = "variables"
	// EnvironmentsDir is the directory under VariablesDir holding per-environment variables.
	EnvironmentsDir = "environments"
)

// WrongProjectRootError indicates the process runs outside the expected project root.
type WrongProjectRootError struct {
	// Expected is the project name declared in the configuration.
	Expected string
	// Actual is the base name of the current working directory.
	Actual string
}

func (e *WrongProjectRootError) Error() string {
	return fmt.Sprintf("current directory %q is not the project root %q; run terrafirm from the project root", e.Actual, e.Expected)
}

// UnknownEnvironmentError indicates the named environment has no variables directory.
type UnknownEnvironmentError struct {
	// Environment is the environment identifier that was requested.
	Environment string
	// Dir is the directory that was expected to exist.
	Dir string
}

func (e *UnknownEnvironmentError) Error() string {
	return fmt.Sprintf("unknown environment %q: %s is not a directory", e.Environment, e.Dir)
}

// MissingConfigurationError indicates no configuration name was supplied.
type MissingConfigurationError struct{}

func (e *MissingConfigurationError) Error() string {
	return "no configuration given"
}

// UnknownConfigurationError indicates the named configuration has no directory under configs/.
type UnknownConfigurationError struct {
	// Configuration is the configuration identifier that was requested.
	Configuration string
	// Dir is the directory that was expected to exist.
	Dir string
}

func (e *UnknownConfigurationError) Error() string {
	return fmt.Sprintf("unknown configuration %q: %s is not a directory", e.Configuration, e.Dir)
}

// ValidateProjectRoot checks that root's base name matches the configured project name.
func ValidateProjectRoot(root, projectName string) error {
	actual := filepath.Base(filepath.Clean(root))
	if actual != projectName {
		return &WrongProjectRootError{Expected: projectName, Actual: actual}
	}
	return nil
}

// ValidateEnvironment checks that variables/environments/<environment> is a directory under root.
func ValidateEnvironment(root, environment string) error {
	dir := EnvironmentDir(root, environment)
	if !isDir(dir) {
		return &UnknownEnvironmentError{Environment: environment, Dir: dir}
	}
	return nil
}

// ValidateConfiguration checks that the configuration name is non-empty and that
// configs/<configuration> is a directory under root.
func ValidateConfiguration(root, configuration string) error {
	if configuration == "" {
		return &MissingConfigurationError{}
	}
	dir := ConfigurationDir(root, configuration)
	if !isDir(dir) {
		return &UnknownConfigurationError{Configuration: configuration, Dir: dir}
	}
	return nil
}

// ConfigurationDir returns the directory of a configuration under root.
func ConfigurationDir(root, configuration string) string {
	return filepath.Join(root, ConfigsDir, configuration)
}

// EnvironmentDir returns the per-environment variables directory under root.
func EnvironmentDir(root, environment string) string {
	return filepath.Join(root, VariablesDir, EnvironmentsDir, environment)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
