// Package role expands a configuration's role file into a sequential run across
// sibling configurations of the same environment.
package role

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFile is the role file consulted when no environment-specific one exists.
const DefaultFile = "default.tfrole"

// FileSuffix is the suffix of environment-specific role files.
const FileSuffix = ".tfrole"

// InvokeFunc executes one configuration rooted at dir. Returning an error ends
// the whole role run.
type InvokeFunc func(ctx context.Context, configuration, dir string) error

// Select returns the role file to use for configDir and environment, or false
// when the configuration has no role file. The environment-specific file takes
// precedence over the default.
func Select(configDir, environment string) (string, bool) {
	for _, name := range []string{environment + FileSuffix, DefaultFile} {
		path := filepath.Join(configDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Read parses a role file into its ordered configuration names. Empty lines are
// skipped; a final line without a trailing newline still counts.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open role file %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read role file %q: %w", path, err)
	}
	return names, nil
}

// Expand invokes each configuration named by the role file at path, strictly in
// file order. Each entry resolves to a sibling directory of configDir. The
// first failure propagates immediately; later entries never run.
func Expand(ctx context.Context, path, configDir string, invoke InvokeFunc) error {
	names, err := Read(path)
	if err != nil {
		return err
	}
	for _, name := range names {
		dir := filepath.Join(configDir, "..", name)
		if err := invoke(ctx, name, dir); err != nil {
			return err
		}
	}
	return nil
}
