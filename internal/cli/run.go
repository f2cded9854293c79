package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terrafirm-io/terrafirm/internal/config"
	"github.com/terrafirm-io/terrafirm/internal/engine"
	"github.com/terrafirm-io/terrafirm/internal/logging"
	"github.com/terrafirm-io/terrafirm/internal/terraform"
)

// InsufficientArgumentsError indicates the wrapper invocation did not receive
// environment, configuration and command. It maps to exit status 2.
type InsufficientArgumentsError struct {
	// Got is the number of positional arguments received.
	Got int
}

func (e *InsufficientArgumentsError) Error() string {
	return fmt.Sprintf("expected <environment> <configuration> <command>, got %d argument(s)", e.Got)
}

// newWrapperRunE builds the RunE for the primary wrapper invocation:
// terrafirm <environment> <configuration> <command> [extra args...].
func newWrapperRunE(opts *Options) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := LoggerFromContext(cmd.Context())

		if len(args) < 3 {
			_ = cmd.Help()
			return &InsufficientArgumentsError{Got: len(args)}
		}

		environment, configuration, command := args[0], args[1], args[2]
		extraArgs := args[3:]

		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}

		root, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}

		invoker := &terraform.Invoker{
			Runner: &terraform.ExecRunner{Binary: opts.Binary},
			InitRunner: &terraform.ExecRunner{
				Binary: opts.Binary,
				Stdout: logging.NewWriter(logger, "init"),
				Stderr: logging.NewWriter(logger, "init"),
			},
			InitOpts:  cfg.InitOpts,
			ExtraArgs: extraArgs,
			Logger:    logger,
		}

		eng := &engine.Engine{
			Root:    root,
			Config:  cfg,
			Invoker: invoker,
			Logger:  logger,
		}

		return eng.Run(cmd.Context(), engine.Request{
			Environment:   environment,
			Configuration: configuration,
			Command:       command,
		})
	}
}
