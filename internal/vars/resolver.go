// Package vars resolves the ordered set of variable files passed to the external
// tool and hosts the best-effort variable skeleton extractor.
package vars

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// CommonFile is the shared variable file name under the variables directory.
	CommonFile = "common.tfvars"
	// FileSuffix is the suffix of per-environment variable files.
	FileSuffix = ".tfvars"
)

// Resolve returns the ordered variable files for environment, looked up relative
// to configDir (a configuration directory two levels below the project root).
//
// The shared common file comes first when present, followed by every matching
// file in the environment's variables directory in lexical order. Later files
// override earlier ones when the external tool applies them, so this order is
// the precedence contract. An empty result is valid: the tool then runs without
// variable files.
func Resolve(configDir, environment string) []string {
	var files []string

	common := filepath.Join(configDir, "..", "..", "variables", CommonFile)
	if info, err := os.Stat(common); err == nil && !info.IsDir() {
		files = append(files, common)
	}

	envDir := filepath.Join(configDir, "..", "..", "variables", "environments", environment)
	entries, err := os.ReadDir(envDir)
	if err != nil {
		return files
	}
	// os.ReadDir sorts by file name, which pins the otherwise
	// filesystem-dependent enumeration order.
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FileSuffix) {
			continue
		}
		files = append(files, filepath.Join(envDir, entry.Name()))
	}

	return files
}

// FileArgs converts a resolved variable-file set into -var-file arguments.
func FileArgs(files []string) []string {
	args := make([]string, 0, len(files))
	for _, f := range files {
		args = append(args, "-var-file="+f)
	}
	return args
}
