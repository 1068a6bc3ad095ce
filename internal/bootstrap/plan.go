// SPDX-License-Identifier: MPL-2.0

package bootstrap

import "strings"

// PlanEntry describes what one step would do, for dry-run display.
type PlanEntry struct {
	// Step is the step name.
	Step string
	// Command is the rendered external invocation, or a description for
	// steps with no external process (activation).
	Command string
	// Dir is the directory the invocation would run from.
	Dir string
}

// Plan renders the resolved step sequence without executing anything.
// The interpreter name shown for the create step is the configured
// override or the first discovery candidate; actual resolution happens
// only when the procedure runs.
func Plan(bctx *Context) []PlanEntry {
	python := bctx.Config.Python
	if python == "" {
		python = "python3"
	}

	return []PlanEntry{
		{
			Step:    StepCreateEnv,
			Command: join(python, "-m", "venv", bctx.VenvPath),
			Dir:     bctx.WorkingDir,
		},
		{
			Step:    StepActivateEnv,
			Command: "derive VIRTUAL_ENV and venv-first PATH from " + bctx.VenvPath,
			Dir:     bctx.WorkingDir,
		},
		{
			Step:    StepCloneRepo,
			Command: join("git", "clone", bctx.Config.RepoURL, bctx.CloneDir),
			Dir:     bctx.WorkingDir,
		},
		{
			Step:    StepInstallInner,
			Command: join("pip", "install", "-r", bctx.Config.Manifest),
			Dir:     bctx.ClonePath(),
		},
		{
			Step:    StepInstallOuter,
			Command: join("pip", "install", "-r", bctx.Config.Manifest),
			Dir:     bctx.WorkingDir,
		},
	}
}

func join(words ...string) string {
	return strings.Join(words, " ")
}
