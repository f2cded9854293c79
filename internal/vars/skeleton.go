package vars

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// SkeletonFile is the generated declarations file that ExtractSkeleton appends to.
const SkeletonFile = "variables.generated.tf"

// placeholderPattern matches ${var.name} interpolations in module sources.
var placeholderPattern = regexp.MustCompile(`\$\{\s*var\.([A-Za-z0-9_-]+)`)

// ExtractSkeleton scans the files under moduleDir for variable placeholders and
// appends a declaration stub for each occurrence to the skeleton file inside
// moduleDir. It is a best-effort text scan, not a language parser: stubs may be
// duplicated or need manual editing. It returns the number of stubs written.
func ExtractSkeleton(moduleDir string) (int, error) {
	var names []string

	walkErr := filepath.WalkDir(moduleDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != moduleDir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == SkeletonFile || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, match := range placeholderPattern.FindAllSubmatch(content, -1) {
			names = append(names, string(match[1]))
		}
		return nil
	})
	if walkErr != nil {
		return 0, fmt.Errorf("scan module %q: %w", moduleDir, walkErr)
	}

	if len(names) == 0 {
		return 0, nil
	}

	out, err := os.OpenFile(filepath.Join(moduleDir, SkeletonFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open skeleton file: %w", err)
	}
	defer func() { _ = out.Close() }()

	for _, name := range names {
		if _, err := fmt.Fprintf(out, "variable %q {\n}\n\n", name); err != nil {
			return 0, fmt.Errorf("write skeleton file: %w", err)
		}
	}

	return len(names), nil
}
