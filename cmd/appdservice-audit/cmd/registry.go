package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appdynamics/appdservice/internal/policy"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Print the compiled-in policy as YAML",
	Long: "Print the services, actions with their handler chains, trusted directories\n" +
		"and handler environment compiled into this build. The output can be saved\n" +
		"and later passed to 'check --policy'.",
	Args: cobra.NoArgs,
	RunE: runRegistry,
}

func init() {
	rootCmd.AddCommand(registryCmd)
}

func runRegistry(cmd *cobra.Command, _ []string) error {
	data, err := policy.Marshal(policy.Current())
	if err != nil {
		return fmt.Errorf("appdservice-audit registry: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
