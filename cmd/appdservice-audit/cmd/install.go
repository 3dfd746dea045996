package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appdynamics/appdservice/internal/packaging"
)

var (
	installSource     string
	installBinaryPath string
	installGroup      string
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the appdservice trampoline setuid root",
	Long: "Copy the built trampoline to its install path, owned by root and the agent\n" +
		"group, with mode 4750. The file is placed atomically. Requires root.",
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installSource, "source", "", "path to the built appdservice binary")
	installCmd.Flags().StringVar(&installBinaryPath, "binary-path", packaging.DefaultBinaryPath, "install path")
	installCmd.Flags().StringVar(&installGroup, "group", packaging.DefaultGroup, "group allowed to run the trampoline")
	_ = installCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(logLevel)

	cfg := packaging.InstallConfig{
		SourcePath: installSource,
		BinaryPath: installBinaryPath,
		Group:      installGroup,
	}
	installer := packaging.NewInstaller(cfg, rootChecker, groupResolver, logger)

	if err := installer.Install(); err != nil {
		return fmt.Errorf("appdservice-audit install: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "appdservice installed successfully")
	return nil
}
