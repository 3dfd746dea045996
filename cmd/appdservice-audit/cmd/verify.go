package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appdynamics/appdservice/internal/packaging"
)

var (
	verifyBinaryPath string
	verifySHA256     string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the installed trampoline is safe",
	Long: "Report whether the installed trampoline is a regular root-owned setuid file\n" +
		"that group and others cannot modify, and print its SHA-256.",
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyBinaryPath, "binary-path", packaging.DefaultBinaryPath, "install path")
	verifyCmd.Flags().StringVar(&verifySHA256, "expect-sha256", "", "pinned SHA-256 of the binary")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	r, err := packaging.Verify(verifyBinaryPath, verifySHA256)
	if err != nil {
		return fmt.Errorf("appdservice-audit verify: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Path:    %s\n", r.Path)
	fmt.Fprintf(w, "Owner:   %d:%d\n", r.UID, r.GID)
	fmt.Fprintf(w, "Mode:    %s\n", r.Mode)
	if r.SHA256 != "" {
		fmt.Fprintf(w, "SHA-256: %s\n", r.SHA256)
	}
	if r.OK() {
		fmt.Fprintln(w, "Status:  ok")
		return nil
	}
	fmt.Fprintln(w, "Problems:")
	for _, p := range r.Problems {
		fmt.Fprintf(w, "  - %s\n", p)
	}
	return errors.New("appdservice-audit verify: " + r.Path + " is not safely installed")
}
