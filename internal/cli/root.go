// Package cli defines the command-line interface for terrafirm.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/terrafirm-io/terrafirm/internal/config"
	"github.com/terrafirm-io/terrafirm/internal/logging"
	"github.com/terrafirm-io/terrafirm/internal/terraform"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	Binary     string
	LogLevel   logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		ConfigPath: config.DefaultPath,
		Binary:     terraform.DefaultBinary,
		LogLevel:   logging.LevelInfo,
	}
	applyEnvDefaults(rootOpts)

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "terrafirm <environment> <configuration> <command> [extra args...]",
		Short: "terrafirm is a convention-driven wrapper around Terraform-compatible tools",
		Long: "terrafirm enforces a project directory convention (environments, configurations,\n" +
			"layered variable files, optional roles) and drives the external tool through a\n" +
			"validate-then-execute lifecycle. Arguments after the command are forwarded to the\n" +
			"tool untouched.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.ParseLevel(cmd.Flag("log-level").Value.String())
			opts.LogLevel = level
			logger = logging.NewLogger(os.Stderr, level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
		RunE: newWrapperRunE(opts),
	}

	// Extra args frequently carry dashes (-target=..., -destroy); stop flag
	// parsing at the first positional so they pass through verbatim.
	cmd.Flags().SetInterspersed(false)

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", opts.ConfigPath, "Path to the terrafirm project configuration file")
	cmd.PersistentFlags().StringVar(&opts.Binary, "binary", opts.Binary, "External tool binary to invoke")
	cmd.PersistentFlags().String("log-level", opts.LogLevel.String(), "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newGenerateStructureCommand(opts),
		newGenerateModuleCommand(opts),
		newGenerateVariablesCommand(opts),
	)
	cmd.SetHelpCommand(newHelpCommand())

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
