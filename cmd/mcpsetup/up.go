// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mcpsetup/internal/bootstrap"
	"mcpsetup/internal/issue"
	"mcpsetup/pkg/platform"
	"mcpsetup/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// skipCloneCheck disables the clone target pre-check, letting git
	// surface the collision itself.
	skipCloneCheck bool
	// pythonOverride selects an explicit interpreter for this run.
	pythonOverride string

	upCmd = &cobra.Command{
		Use:   "up",
		Short: "Run the full provisioning procedure",
		Long: `Run the five-step provisioning procedure:

  1. Create the Python virtual environment
  2. Activate it (derive VIRTUAL_ENV and a venv-first PATH)
  3. Clone the rag_api repository
  4. Install the clone's requirements into the environment
  5. Install the project root's requirements into the environment

The steps run strictly in order and the procedure stops at the first
failure. Whatever the failed run already created (directories, installed
packages) is left in place; re-run after fixing the cause, removing the
clone directory first if the clone step had completed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if pythonOverride != "" {
				cfg.Python = pythonOverride
			}

			r, err := buildRunner(cfg)
			if err != nil {
				return err
			}

			bctx, err := bootstrap.NewContext(cfg, r)
			if err != nil {
				return err
			}
			bctx.SkipCloneCheck = skipCloneCheck
			bctx.Log = newStepLogger()

			state, err := bootstrap.NewProcedure().Run(cmd.Context(), bctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, ErrorStyle.Render("Provisioning failed: ")+formatErrorForDisplay(err, verbose))
				renderIssueCard(err, cfg.UI.ColorScheme)
				return &ExitError{Code: procedureExitCode(err), Err: err}
			}

			if state != bootstrap.StateDone {
				return &ExitError{Code: types.ExitCode(1), Err: fmt.Errorf("procedure ended in state %s", state)}
			}

			fmt.Printf("%s Environment ready at %s\n", SuccessStyle.Render("✓"), bctx.VenvPath)
			fmt.Printf("%s Activate it with: source %s\n",
				SubtitleStyle.Render("→"), filepath.Join(platform.VenvBinPath(bctx.VenvPath), "activate"))
			return nil
		},
	}
)

func init() {
	upCmd.Flags().BoolVar(&skipCloneCheck, "skip-clone-check", false, "skip the clone target pre-check")
	upCmd.Flags().StringVar(&pythonOverride, "python", "", "Python interpreter to use (name or path)")
}

// procedureExitCode maps a failed procedure onto the process exit code:
// the failing tool's own non-zero exit when the step recorded one,
// otherwise 1.
func procedureExitCode(err error) types.ExitCode {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && !ae.ExitCode.IsSuccess() {
		return ae.ExitCode
	}
	return types.ExitCode(1)
}

// newStepLogger builds the progress logger for procedure runs. Verbose mode
// includes per-step debug records.
func newStepLogger() *log.Logger {
	opts := log.Options{ReportTimestamp: false}
	if verbose {
		opts.Level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, opts)
}
