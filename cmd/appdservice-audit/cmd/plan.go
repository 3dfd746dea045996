package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appdynamics/appdservice/internal/dispatch"
	"github.com/appdynamics/appdservice/internal/integrity"
	"github.com/appdynamics/appdservice/internal/request"
)

var planCmd = &cobra.Command{
	Use:   "plan <service> <action>",
	Short: "Show which handler a request would run, without running it",
	Long: "Validate the request exactly as appdservice does, then probe every\n" +
		"candidate handler. Probes run as the invoking user, so results can differ\n" +
		"from what appdservice sees after it becomes root.",
	Args: cobra.ExactArgs(2),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	logger := setupLogger(logLevel).With("component", "plan")

	req, err := request.Parse(args)
	if err != nil {
		return fmt.Errorf("appdservice-audit plan: %w", err)
	}
	p := dispatch.NewPlan(req, prober)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Service: %s (manager name %s)\n", p.Service.DisplayName, p.Service.ManagerName)
	fmt.Fprintf(w, "Action:  %s\n", p.Action)
	fmt.Fprintln(w, "\nCandidates:")
	for _, r := range p.Probes {
		mark := "no"
		if r.Executable {
			mark = "yes"
		}
		fmt.Fprintf(w, "  %-24s %-8s executable=%s\n", r.Path(), r.Handler.Verb, mark)
	}

	if p.Selected == nil {
		fmt.Fprintln(w, "\nSelected: none")
		return fmt.Errorf("appdservice-audit plan: %w", &dispatch.ExhaustedError{Service: p.Service.DisplayName, Action: p.Action})
	}

	fmt.Fprintf(w, "\nSelected: %s\n", p.Selected.Path())
	fmt.Fprintf(w, "Argv:     %q\n", p.Argv)
	sum, err := integrity.HashFile(p.Selected.Path())
	if err != nil {
		logger.Warn("cannot hash selected handler", "path", p.Selected.Path(), "error", err)
		return nil
	}
	fmt.Fprintf(w, "SHA-256:  %s\n", sum)
	return nil
}
