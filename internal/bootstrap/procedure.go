// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"fmt"
)

// Procedure is an ordered chain of steps executed fail-fast.
type Procedure struct {
	steps []Step
}

// NewProcedure creates the standard five-step procedure.
func NewProcedure() *Procedure {
	return &Procedure{steps: Steps()}
}

// Run executes the steps in order. It stops at the first failure and
// returns the last state reached together with the failing step's error,
// wrapped with the step name. Already-completed side effects (directories,
// installed packages) are left in place.
func (p *Procedure) Run(ctx context.Context, bctx *Context) (State, error) {
	state := StateInit

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return state, fmt.Errorf("procedure canceled before %s: %w", step.Name, err)
		}

		bctx.Log.Info("running step", "step", step.Name)
		if err := step.Run(ctx, bctx); err != nil {
			bctx.Log.Error("step failed", "step", step.Name, "err", err)
			return state, fmt.Errorf("step %s: %w", step.Name, err)
		}
		state = step.Completes
		bctx.Log.Debug("step complete", "step", step.Name, "state", state)
	}

	return state, nil
}
