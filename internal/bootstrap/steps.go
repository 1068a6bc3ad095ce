// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"

	"mcpsetup/internal/gitrepo"
	"mcpsetup/internal/pyenv"
)

// Step names, in procedure order.
const (
	StepCreateEnv    = "create-env"
	StepActivateEnv  = "activate-env"
	StepCloneRepo    = "clone-repo"
	StepInstallInner = "install-deps-inner"
	StepInstallOuter = "install-deps-outer"
)

// Steps returns the five-step chain in its required order: environment
// creation and activation precede both install steps, and the clone
// precedes the inner install that reads its manifest.
func Steps() []Step {
	return []Step{
		{
			Name:      StepCreateEnv,
			Completes: StateEnvCreated,
			Run:       runCreateEnv,
		},
		{
			Name:      StepActivateEnv,
			Completes: StateEnvActive,
			Run:       runActivateEnv,
		},
		{
			Name:      StepCloneRepo,
			Completes: StateRepoCloned,
			Run:       runCloneRepo,
		},
		{
			Name:      StepInstallInner,
			Completes: StateDepsInnerInstalled,
			Run:       runInstallInner,
		},
		{
			Name:      StepInstallOuter,
			Completes: StateDone,
			Run:       runInstallOuter,
		},
	}
}

func runCreateEnv(ctx context.Context, bctx *Context) error {
	python, err := pyenv.FindInterpreter(bctx.Runner, bctx.Config.Python)
	if err != nil {
		return err
	}
	bctx.Python = python

	return pyenv.CreateVenv(ctx, bctx.Runner, python, bctx.VenvPath, bctx.Stdout, bctx.Stderr)
}

func runActivateEnv(_ context.Context, bctx *Context) error {
	env, err := pyenv.ActivationEnv(bctx.VenvPath, bctx.BaseEnv)
	if err != nil {
		return err
	}
	bctx.ActiveEnv = env
	return nil
}

func runCloneRepo(ctx context.Context, bctx *Context) error {
	return gitrepo.Clone(ctx, bctx.Runner, gitrepo.CloneOptions{
		URL:             bctx.Config.RepoURL,
		Dir:             bctx.CloneDir,
		WorkDir:         bctx.WorkingDir,
		SkipTargetCheck: bctx.SkipCloneCheck,
		Stdout:          bctx.Stdout,
		Stderr:          bctx.Stderr,
	})
}

func runInstallInner(ctx context.Context, bctx *Context) error {
	return pyenv.PipInstall(ctx, bctx.Runner, bctx.ClonePath(), bctx.Config.Manifest, bctx.ActiveEnv, bctx.Stdout, bctx.Stderr)
}

// runInstallOuter installs from the project root. Because the working
// directory lives in the Context and is never mutated, this runs from the
// original root regardless of where the inner install executed.
func runInstallOuter(ctx context.Context, bctx *Context) error {
	return pyenv.PipInstall(ctx, bctx.Runner, bctx.WorkingDir, bctx.Config.Manifest, bctx.ActiveEnv, bctx.Stdout, bctx.Stderr)
}
