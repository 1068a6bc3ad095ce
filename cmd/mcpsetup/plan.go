// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"mcpsetup/internal/bootstrap"
	"mcpsetup/internal/runner"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the resolved procedure without executing it",
	Long: `Show the resolved procedure without executing it.

Each line shows the step name, the command it would run, and the
directory it would run from. Nothing is created or modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if pythonOverride != "" {
			cfg.Python = pythonOverride
		}

		// The plan never invokes tools, so the runner choice is irrelevant
		// here; the context only needs it for execution.
		bctx, err := bootstrap.NewContext(cfg, runner.NewNativeRunner())
		if err != nil {
			return err
		}

		printPlan(cmd.OutOrStdout(), bootstrap.Plan(bctx))
		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&pythonOverride, "python", "", "Python interpreter to use (name or path)")
}

func printPlan(w io.Writer, entries []bootstrap.PlanEntry) {
	fmt.Fprintln(w, TitleStyle.Render("Provisioning plan"))
	fmt.Fprintln(w)
	for i, e := range entries {
		fmt.Fprintf(w, "%d. %s\n", i+1, StepStyle.Render(e.Step))
		fmt.Fprintf(w, "   %s\n", e.Command)
		fmt.Fprintf(w, "   %s\n", SubtitleStyle.Render("in "+e.Dir))
	}
}
