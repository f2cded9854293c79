// Package terraform drives the external infrastructure tool binary through a
// validate-then-execute lifecycle.
package terraform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// DefaultBinary is the external tool binary invoked when none is configured.
const DefaultBinary = "terraform"

// Runner executes one external tool invocation inside a working directory and
// reports its exit status. A non-nil error means the tool could not be run at
// all; exit statuses of a completed run are returned as the int.
type Runner interface {
	Run(ctx context.Context, dir string, args []string) (int, error)
}

// ExecRunner runs the external tool binary via os/exec with output streamed to
// the configured writers.
type ExecRunner struct {
	// Binary is the tool executable name or path. Empty means DefaultBinary.
	Binary string
	// Stdout receives the tool's standard output. Nil means os.Stdout.
	Stdout io.Writer
	// Stderr receives the tool's standard error. Nil means os.Stderr.
	Stderr io.Writer
}

// Run executes the binary with args inside dir, blocking until it finishes.
func (r *ExecRunner) Run(ctx context.Context, dir string, args []string) (int, error) {
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("run %s %v: %w", binary, args, err)
}
