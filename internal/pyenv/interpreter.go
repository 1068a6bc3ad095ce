// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"bytes"
	"context"
	"fmt"

	"mcpsetup/internal/issue"
	"mcpsetup/internal/runner"
)

// interpreterCandidates are tried in order when no explicit interpreter is
// configured. "python3" first: on many distributions plain "python" is
// either absent or Python 2.
var interpreterCandidates = []string{"python3", "python"}

// FindInterpreter resolves the Python interpreter to use. A non-empty
// override is resolved as-is; otherwise the well-known names are tried in
// order against the runner's tool resolution.
func FindInterpreter(r runner.Runner, override string) (string, error) {
	if override != "" {
		path, err := r.LookTool(override)
		if err != nil {
			return "", issue.NewErrorContext().
				WithOperation("find Python interpreter").
				WithResource(override).
				WithSuggestion("Check the configured 'python' value").
				Wrap(fmt.Errorf("%w: %v", issue.ErrToolMissing, err)).
				BuildError()
		}
		return path, nil
	}

	for _, name := range interpreterCandidates {
		if path, err := r.LookTool(name); err == nil {
			return path, nil
		}
	}

	return "", issue.NewErrorContext().
		WithOperation("find Python interpreter").
		WithSuggestion("Install Python 3 and ensure it is on your PATH").
		WithSuggestion("Or set 'python' in the mcpsetup config to an explicit path").
		Wrap(fmt.Errorf("%w: tried %v", issue.ErrToolMissing, interpreterCandidates)).
		BuildError()
}

// CheckVenvModule probes whether the interpreter ships the venv module.
// Used by the preflight check; environment creation would fail later
// anyway, but the probe gives a direct answer up front.
func CheckVenvModule(ctx context.Context, r runner.Runner, python string) error {
	var stderr bytes.Buffer
	res := r.Run(ctx, &runner.Invocation{
		Tool:   python,
		Args:   []string{"-c", "import venv"},
		Stderr: &stderr,
	})
	if res.Err != nil {
		return fmt.Errorf("failed to probe venv module: %w", res.Err)
	}
	if !res.ExitCode.IsSuccess() {
		return fmt.Errorf("%w: %s has no venv module: %s",
			issue.ErrToolMissing, python, firstLine(stderr.String()))
	}
	return nil
}
