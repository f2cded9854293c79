package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terrafirm-io/terrafirm/internal/scaffold"
	"github.com/terrafirm-io/terrafirm/internal/vars"
)

// newGenerateStructureCommand creates "generate_structure" which scaffolds the
// project directory convention in the current directory.
func newGenerateStructureCommand(_ *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate_structure",
		Short: "Scaffold configs/, modules/ and variables/ in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			root, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("determine working directory: %w", err)
			}
			return scaffold.Project(root, logger)
		},
	}
}

// newGenerateModuleCommand creates "generate_module <path>" which scaffolds an
// empty module skeleton with a fetched license file.
func newGenerateModuleCommand(_ *Options) *cobra.Command {
	var licenseURL string

	cmd := &cobra.Command{
		Use:   "generate_module <path>",
		Short: "Scaffold an empty module skeleton at the given path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())
			return scaffold.Module(args[0], licenseURL, nil, logger)
		},
	}

	cmd.Flags().StringVar(&licenseURL, "license-url", scaffold.DefaultLicenseURL, "URL of the license text fetched into the module")

	return cmd
}

// newGenerateVariablesCommand creates "generate_variables <path>" which scans a
// module for variable placeholders and appends declaration stubs.
func newGenerateVariablesCommand(_ *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate_variables <path>",
		Short: "Scan a module for ${var.*} placeholders and append declaration stubs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			count, err := vars.ExtractSkeleton(args[0])
			if err != nil {
				return err
			}
			if count == 0 {
				logger.Info("no variable placeholders found", "module", args[0])
				return nil
			}
			logger.Info("appended variable stubs", "module", args[0], "count", count, "file", vars.SkeletonFile)
			return nil
		},
	}
}

// newHelpCommand creates the "help" command. It prints usage and, matching the
// insufficient-arguments contract, exits with status 2.
func newHelpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Print usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Root().Help()
			return &InsufficientArgumentsError{}
		},
	}
}
