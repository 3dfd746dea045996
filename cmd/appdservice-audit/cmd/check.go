package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appdynamics/appdservice/internal/policy"
)

var checkPolicyFile string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare the compiled-in policy with a pinned copy",
	Long:  "Parse a policy previously saved from 'registry' and report every difference\nfrom this build. Exits non-zero when the two differ.",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkPolicyFile, "policy", "", "pinned policy YAML file")
	_ = checkCmd.MarkFlagRequired("policy")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(logLevel).With("component", "check")

	pinned, err := policy.ParseFile(checkPolicyFile)
	if err != nil {
		return fmt.Errorf("appdservice-audit check: %w", err)
	}

	drifts := policy.Diff(pinned, policy.Current())
	w := cmd.OutOrStdout()
	for _, d := range drifts {
		fmt.Fprintln(w, d)
	}
	if len(drifts) > 0 {
		logger.Debug("policy drift", "file", checkPolicyFile, "count", len(drifts))
		return errors.New("appdservice-audit check: compiled policy differs from " + checkPolicyFile)
	}
	fmt.Fprintln(w, "policy matches")
	return nil
}
