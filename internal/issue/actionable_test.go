// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "create virtual environment"},
			want: "failed to create virtual environment",
		},
		{
			name: "operation and resource",
			err: &ActionableError{
				Operation: "clone repository",
				Resource:  "git@github.com:cucinellclark/rag_api.git",
			},
			want: "failed to clone repository: git@github.com:cucinellclark/rag_api.git",
		},
		{
			name: "operation, resource and cause",
			err: &ActionableError{
				Operation: "install dependencies",
				Resource:  "requirements.txt",
				Cause:     errors.New("exit status 1"),
			},
			want: "failed to install dependencies: requirements.txt: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying")
	err := WrapWithOperation(cause, "activate environment")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestWrapWithOperation_NilError(t *testing.T) {
	t.Parallel()

	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("clone repository").
		WithResource("rag_api").
		WithSuggestion("Remove the existing directory").
		WithSuggestion("Then re-run").
		Wrap(cause).
		Build()

	if ae == nil {
		t.Fatal("Build() returned nil with operation set")
	}
	if ae.Operation != "clone repository" {
		t.Errorf("Operation = %q", ae.Operation)
	}
	if ae.Resource != "rag_api" {
		t.Errorf("Resource = %q", ae.Resource)
	}
	if len(ae.Suggestions) != 2 {
		t.Errorf("len(Suggestions) = %d, want 2", len(ae.Suggestions))
	}
	if !errors.Is(ae, cause) {
		t.Error("cause not preserved")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()

	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}
	if got := NewErrorContext().BuildError(); got != nil {
		t.Errorf("BuildError() without operation = %v, want nil", got)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection refused")
	middle := fmt.Errorf("reach remote: %w", inner)
	ae := NewErrorContext().
		WithOperation("clone repository").
		WithSuggestion("Check your connectivity").
		Wrap(middle).
		Build()

	short := ae.Format(false)
	if !strings.Contains(short, "• Check your connectivity") {
		t.Errorf("Format(false) missing suggestion:\n%s", short)
	}
	if strings.Contains(short, "Error chain:") {
		t.Errorf("Format(false) should not include the error chain:\n%s", short)
	}

	long := ae.Format(true)
	if !strings.Contains(long, "Error chain:") {
		t.Errorf("Format(true) missing error chain:\n%s", long)
	}
	if !strings.Contains(long, "connection refused") {
		t.Errorf("Format(true) missing innermost cause:\n%s", long)
	}
}
