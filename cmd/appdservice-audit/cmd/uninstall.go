package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appdynamics/appdservice/internal/packaging"
)

var uninstallBinaryPath string

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the appdservice trampoline",
	Args:  cobra.NoArgs,
	RunE:  runUninstall,
}

func init() {
	uninstallCmd.Flags().StringVar(&uninstallBinaryPath, "binary-path", packaging.DefaultBinaryPath, "install path")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(logLevel)

	cfg := packaging.InstallConfig{BinaryPath: uninstallBinaryPath}
	installer := packaging.NewInstaller(cfg, rootChecker, groupResolver, logger)

	if err := installer.Uninstall(); err != nil {
		return fmt.Errorf("appdservice-audit uninstall: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "appdservice uninstalled successfully")
	return nil
}
