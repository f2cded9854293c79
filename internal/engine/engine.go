// Package engine contains the top-level orchestration for a terrafirm run: the
// validation gate, the choice between direct and role-based invocation, and
// failure propagation.
package engine

import (
	"context"
	"log/slog"

	"github.com/terrafirm-io/terrafirm/internal/config"
	"github.com/terrafirm-io/terrafirm/internal/layout"
	"github.com/terrafirm-io/terrafirm/internal/role"
)

// Invoker runs the full tool lifecycle for one configuration directory.
type Invoker interface {
	Invoke(ctx context.Context, environment, configuration, dir, command string) error
}

// Request describes one wrapper run.
type Request struct {
	// Environment is the deployment target (dev, staging, prod, ...).
	Environment string
	// Configuration is the deployable unit under configs/.
	Configuration string
	// Command is the tool command to execute after validate (plan, apply, destroy, ...).
	Command string
}

// Engine validates a request against the project layout and drives the invoker,
// either directly or fanned out over the configuration's role file.
type Engine struct {
	// Root is the project root directory. All path resolution happens against
	// it; the process working directory is never mutated.
	Root string
	// Config is the loaded project configuration.
	Config *config.Config
	// Invoker executes single-configuration lifecycles.
	Invoker Invoker
	// Logger receives run-level notices.
	Logger *slog.Logger
}

// Run executes one request. Every check is fail-fast: the first violation
// returns before any external tool invocation.
func (e *Engine) Run(ctx context.Context, req Request) error {
	logger := e.logger()

	if err := layout.ValidateProjectRoot(e.Root, e.Config.ProjectName); err != nil {
		return err
	}
	if err := layout.ValidateEnvironment(e.Root, req.Environment); err != nil {
		return err
	}
	if err := layout.ValidateConfiguration(e.Root, req.Configuration); err != nil {
		return err
	}

	configDir := layout.ConfigurationDir(e.Root, req.Configuration)

	invoke := func(ctx context.Context, configuration, dir string) error {
		return e.Invoker.Invoke(ctx, req.Environment, configuration, dir, req.Command)
	}

	if rolePath, ok := role.Select(configDir, req.Environment); ok {
		logger.Info("expanding role", "role", rolePath, "configuration", req.Configuration, "environment", req.Environment)
		return role.Expand(ctx, rolePath, configDir, invoke)
	}

	return invoke(ctx, req.Configuration, configDir)
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
