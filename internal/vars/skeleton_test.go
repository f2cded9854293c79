package vars

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSkeletonWritesStubs(t *testing.T) {
	dir := t.TempDir()
	main := "resource \"aws_instance\" \"web\" {\n  ami = \"${var.ami_id}\"\n  instance_type = \"${var.instance_type}\"\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.tf"), []byte(main), 0o644))

	count, err := ExtractSkeleton(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	content, err := os.ReadFile(filepath.Join(dir, SkeletonFile))
	require.NoError(t, err)
	assert.Contains(t, string(content), "variable \"ami_id\" {")
	assert.Contains(t, string(content), "variable \"instance_type\" {")
}

func TestExtractSkeletonDuplicatesKept(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.tf"), []byte("${var.name} ${var.name}"), 0o644))

	count, err := ExtractSkeleton(dir)
	require.NoError(t, err)
	// Best-effort scan: every occurrence yields a stub, duplicates included.
	assert.Equal(t, 2, count)
}

func TestExtractSkeletonSkipsGeneratedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SkeletonFile), []byte("${var.already_there}"), 0o644))

	count, err := ExtractSkeleton(dir)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestExtractSkeletonNoPlaceholders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "outputs.tf"), []byte("output \"id\" {}\n"), 0o644))

	count, err := ExtractSkeleton(dir)
	require.NoError(t, err)
	assert.Zero(t, count)
	_, statErr := os.Stat(filepath.Join(dir, SkeletonFile))
	assert.True(t, os.IsNotExist(statErr))
}
