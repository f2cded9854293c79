// Package scaffold materializes the terrafirm directory convention and empty
// module skeletons. All operations are idempotent: existing files are never
// overwritten.
package scaffold

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/terrafirm-io/terrafirm/internal/layout"
	"github.com/terrafirm-io/terrafirm/internal/vars"
)

// commonVarsTemplate is the initial content of the shared variables file.
const commonVarsTemplate = `# Shared variables applied to every environment.
# Per-environment overrides live in variables/environments/<environment>/*.tfvars.
`

// DefaultLicenseURL is the license text fetched into generated modules.
const DefaultLicenseURL = "https://www.apache.org/licenses/LICENSE-2.0.txt"

// moduleFiles are the fixed empty files of a generated module.
var moduleFiles = []string{"main.tf", "variables.tf", "outputs.tf", "README.md"}

// Project creates the project directory convention under root: configs/,
// modules/, variables/environments/ and the shared variables file. Running it
// again is a no-op for anything that already exists.
func Project(root string, logger *slog.Logger) error {
	dirs := []string{
		filepath.Join(root, layout.ConfigsDir),
		filepath.Join(root, layout.ModulesDir),
		filepath.Join(root, layout.VariablesDir, layout.EnvironmentsDir),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	commonFile := filepath.Join(root, layout.VariablesDir, vars.CommonFile)
	created, err := createIfAbsent(commonFile, []byte(commonVarsTemplate))
	if err != nil {
		return err
	}
	if created {
		logger.Info("created shared variables file", "path", commonFile)
	} else {
		logger.Debug("shared variables file already present", "path", commonFile)
	}

	logger.Info("project structure ready", "root", root)
	return nil
}

// Module creates a module skeleton at path: the fixed empty files plus a
// fetched license file. The license fetch is best-effort; scaffolding succeeds
// without it when the fetch fails.
func Module(path, licenseURL string, client *http.Client, logger *slog.Logger) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create module directory %s: %w", path, err)
	}

	for _, name := range moduleFiles {
		if _, err := createIfAbsent(filepath.Join(path, name), nil); err != nil {
			return err
		}
	}

	licensePath := filepath.Join(path, "LICENSE")
	if _, err := os.Stat(licensePath); err == nil {
		logger.Debug("license already present", "path", licensePath)
		return nil
	}

	if err := fetchLicense(licensePath, licenseURL, client); err != nil {
		logger.Warn("license fetch failed, module generated without it", "url", licenseURL, "error", err)
		return nil
	}

	logger.Info("module skeleton ready", "path", path)
	return nil
}

// createIfAbsent writes content to path unless the file already exists.
func createIfAbsent(path string, content []byte) (bool, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if len(content) > 0 {
		if _, err := f.Write(content); err != nil {
			return false, fmt.Errorf("write %s: %w", path, err)
		}
	}
	return true, nil
}

func fetchLicense(path, url string, client *http.Client) error {
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = DefaultLicenseURL
	}

	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = io.Copy(f, resp.Body)
	return err
}
