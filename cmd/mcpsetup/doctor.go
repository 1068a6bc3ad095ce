// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"mcpsetup/internal/bootstrap"
	"mcpsetup/internal/config"
	"mcpsetup/internal/gitrepo"
	"mcpsetup/internal/pyenv"
	"mcpsetup/internal/runner"
	"mcpsetup/pkg/types"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check tools and targets before provisioning",
	Long: `Check that the procedure's preconditions hold: a working process
runner, a Python 3 interpreter with the venv module, git on the PATH, and
a clone target that does not already hold files. Nothing is created or
modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		r, err := buildRunner(cfg)
		if err != nil {
			return err
		}

		bctx, err := bootstrap.NewContext(cfg, r)
		if err != nil {
			return err
		}

		results := runDoctor(cmd.Context(), cfg, r, bctx)
		printDoctorResults(cmd.OutOrStdout(), results)

		for _, res := range results {
			if res.Err != nil {
				return &ExitError{Code: types.ExitCode(1), Err: res.Err}
			}
		}
		return nil
	},
}

// checkResult is the outcome of one doctor check.
type checkResult struct {
	Name   string
	Detail string
	Err    error
}

// runDoctor performs the preflight checks. Each check is independent; a
// failing check never stops the later ones.
func runDoctor(ctx context.Context, cfg *config.Config, r runner.Runner, bctx *bootstrap.Context) []checkResult {
	var results []checkResult

	runnerCheck := checkResult{Name: "process runner", Detail: r.Name()}
	if !r.Available() {
		runnerCheck.Err = fmt.Errorf("runner %q is not available on this system", r.Name())
	}
	results = append(results, runnerCheck)

	python, err := pyenv.FindInterpreter(r, cfg.Python)
	results = append(results, checkResult{
		Name:   "python interpreter",
		Detail: python,
		Err:    err,
	})

	if err == nil {
		results = append(results, checkResult{
			Name:   "venv module",
			Detail: python + " -c 'import venv'",
			Err:    pyenv.CheckVenvModule(ctx, r, python),
		})
	}

	gitPath, err := r.LookTool("git")
	results = append(results, checkResult{
		Name:   "git",
		Detail: gitPath,
		Err:    err,
	})

	state, err := gitrepo.StatTarget(bctx.ClonePath())
	check := checkResult{Name: "clone target", Detail: bctx.ClonePath(), Err: err}
	if err == nil && state == gitrepo.TargetNonEmpty {
		check.Err = fmt.Errorf("%s already exists and is not empty", bctx.ClonePath())
	}
	results = append(results, check)

	venvCheck := checkResult{Name: "virtual environment", Detail: bctx.VenvPath}
	if pyenv.VenvExists(bctx.VenvPath) {
		venvCheck.Detail += " (already present, create step will upgrade in place)"
	} else {
		venvCheck.Detail += " (will be created)"
	}
	results = append(results, venvCheck)

	return results
}

func printDoctorResults(w io.Writer, results []checkResult) {
	fmt.Fprintln(w, TitleStyle.Render("Preflight checks"))
	fmt.Fprintln(w)
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%s %s: %s\n", ErrorStyle.Render("✗"), res.Name, res.Err)
			continue
		}
		if res.Detail != "" {
			fmt.Fprintf(w, "%s %s: %s\n", SuccessStyle.Render("✓"), res.Name, res.Detail)
		} else {
			fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("✓"), res.Name)
		}
	}
}
