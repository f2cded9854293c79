package terraform

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/terrafirm-io/terrafirm/internal/vars"
)

// localStateSnapshot is the stale local backend snapshot removed before init so
// that it cannot conflict with the resolved remote backend.
const localStateSnapshot = ".terraform/terraform.tfstate"

// failureExit is the only exit status that validate and the main command treat
// as failure. Any other non-zero status passes; this narrow exact-match
// contract is deliberate and must not be silently broadened.
const failureExit = 1

// ValidationFailedError indicates the tool's validate step exited with the failure status.
type ValidationFailedError struct {
	// Configuration is the configuration being validated.
	Configuration string
	// Environment is the environment the run targets.
	Environment string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed for configuration %q in environment %q", e.Configuration, e.Environment)
}

// ExecutionFailedError indicates the main command exited with the failure status.
type ExecutionFailedError struct {
	// Configuration is the configuration being executed.
	Configuration string
	// Environment is the environment the run targets.
	Environment string
	// Command is the tool command that failed (plan, apply, destroy, ...).
	Command string
}

func (e *ExecutionFailedError) Error() string {
	return fmt.Sprintf("%s failed for configuration %q in environment %q", e.Command, e.Configuration, e.Environment)
}

// BackendKey returns the remote state key for an (environment, configuration) pair.
func BackendKey(environment, configuration string) string {
	return fmt.Sprintf("%s/%s/terrafirm.tfstate", environment, configuration)
}

// Invoker performs one full lifecycle for one configuration: local state
// snapshot removal, backend init, validate, then the requested command.
type Invoker struct {
	// Runner executes the gated validate and command steps with output
	// streamed to the terminal.
	Runner Runner
	// InitRunner executes the init step. Nil falls back to Runner.
	InitRunner Runner
	// InitOpts are extra arguments appended to every init call.
	InitOpts []string
	// ExtraArgs are forwarded verbatim to the main command of every invocation.
	ExtraArgs []string
	// Logger receives per-step notices.
	Logger *slog.Logger
}

// Invoke runs the lifecycle for one configuration rooted at dir. Failures of
// validate or the main command end the whole run; the init exit status is not
// gated (known asymmetry, kept for compatibility).
func (iv *Invoker) Invoke(ctx context.Context, environment, configuration, dir, command string) error {
	logger := iv.logger()

	// Stale local snapshots shadow the remote backend selected below.
	if err := os.Remove(filepath.Join(dir, filepath.FromSlash(localStateSnapshot))); err == nil {
		logger.Debug("removed local state snapshot", "configuration", configuration)
	}

	fileArgs := vars.FileArgs(vars.Resolve(dir, environment))

	initArgs := []string{
		"init",
		"-input=false",
		"-get=true",
		"-backend=true",
		"-backend-config=key=" + BackendKey(environment, configuration),
	}
	initArgs = append(initArgs, iv.InitOpts...)

	logger.Info("initializing backend", "configuration", configuration, "environment", environment, "key", BackendKey(environment, configuration))
	code, err := iv.initRunner().Run(ctx, dir, initArgs)
	if err != nil {
		return err
	}
	if code != 0 {
		logger.Warn("init exited non-zero, continuing", "configuration", configuration, "status", code)
	}

	logger.Info("validating", "configuration", configuration, "environment", environment)
	code, err = iv.Runner.Run(ctx, dir, append([]string{"validate"}, fileArgs...))
	if err != nil {
		return err
	}
	if code == failureExit {
		return &ValidationFailedError{Configuration: configuration, Environment: environment}
	}

	commandArgs := append([]string{command}, fileArgs...)
	commandArgs = append(commandArgs, iv.ExtraArgs...)

	logger.Info("executing", "command", command, "configuration", configuration, "environment", environment)
	code, err = iv.Runner.Run(ctx, dir, commandArgs)
	if err != nil {
		return err
	}
	if code == failureExit {
		return &ExecutionFailedError{Configuration: configuration, Environment: environment, Command: command}
	}

	logger.Info("configuration complete", "configuration", configuration, "environment", environment)
	return nil
}

func (iv *Invoker) initRunner() Runner {
	if iv.InitRunner != nil {
		return iv.InitRunner
	}
	return iv.Runner
}

func (iv *Invoker) logger() *slog.Logger {
	if iv.Logger != nil {
		return iv.Logger
	}
	return slog.Default()
}
