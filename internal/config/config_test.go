package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "terrafirm.cfg")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesShellStyleFile(t *testing.T) {
	path := writeConfig(t, "project_name=acme-infra\ninit_opts=-backend-config=bucket=acme-state -backend-config=region=eu-west-1\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "acme-infra", cfg.ProjectName)
	assert.Equal(t, []string{
		"-backend-config=bucket=acme-state",
		"-backend-config=region=eu-west-1",
	}, cfg.InitOpts)
}

func TestLoadWithoutInitOpts(t *testing.T) {
	path := writeConfig(t, "project_name=acme-infra\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "acme-infra", cfg.ProjectName)
	assert.Empty(t, cfg.InitOpts)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.cfg"))

	var loadErr *ConfigLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Error(), "file not found")
}

func TestLoadMissingProjectName(t *testing.T) {
	path := writeConfig(t, "init_opts=-upgrade\n")

	_, err := Load(path)

	var loadErr *ConfigLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Error(), "project_name")
}
