// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"testing"

	"mcpsetup/internal/issue"
	"mcpsetup/pkg/types"
)

func TestProcedureExitCode(t *testing.T) {
	t.Parallel()

	toolFailure := issue.NewErrorContext().
		WithOperation("clone repository").
		WithExitCode(types.ExitCode(128)).
		Wrap(issue.ErrAuthFailure).
		BuildError()

	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{
			name: "tool exit propagates through step wrapping",
			err:  fmt.Errorf("step clone-repo: %w", toolFailure),
			want: types.ExitCode(128),
		},
		{
			name: "actionable error without exit code falls back to 1",
			err:  issue.WrapWithOperation(errors.New("boom"), "activate virtual environment"),
			want: types.ExitCode(1),
		},
		{
			name: "plain error falls back to 1",
			err:  errors.New("boom"),
			want: types.ExitCode(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := procedureExitCode(tt.err); got != tt.want {
				t.Errorf("procedureExitCode() = %s, want %s", got, tt.want)
			}
		})
	}
}
