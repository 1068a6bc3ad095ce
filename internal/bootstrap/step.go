// SPDX-License-Identifier: MPL-2.0

package bootstrap

import "context"

// State tracks progress through the linear chain. The only transitions are
// "proceed to the next state" and "abort on failure".
type State int

const (
	// StateInit is the starting state, before any step has run.
	StateInit State = iota
	// StateEnvCreated means the virtual environment exists on disk.
	StateEnvCreated
	// StateEnvActive means the activated environment has been derived.
	StateEnvActive
	// StateRepoCloned means the working copy exists on disk.
	StateRepoCloned
	// StateDepsInnerInstalled means the clone's requirements are installed.
	StateDepsInnerInstalled
	// StateDone means both install steps completed.
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateEnvCreated:
		return "env-created"
	case StateEnvActive:
		return "env-active"
	case StateRepoCloned:
		return "repo-cloned"
	case StateDepsInnerInstalled:
		return "deps-inner-installed"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Step is one stage of the procedure.
type Step struct {
	// Name identifies the step in logs and errors.
	Name string

	// Completes is the state reached when the step succeeds.
	Completes State

	// Run performs the step. A non-nil error aborts the whole procedure.
	Run func(ctx context.Context, bctx *Context) error
}
