// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"mcpsetup/internal/issue"
	"mcpsetup/internal/runner"
)

// PipInstall runs "pip install -r <manifest>" inside dir, with pip resolved
// through the activated environment carried in env. Whatever atomicity pip
// provides is inherited as-is; there is no rollback on failure.
func PipInstall(ctx context.Context, r runner.Runner, dir, manifest string, env []string, stdout, stderr io.Writer) error {
	var capture bytes.Buffer
	res := r.Run(ctx, &runner.Invocation{
		Tool:   "pip",
		Args:   []string{"install", "-r", manifest},
		Dir:    dir,
		Env:    env,
		Stdout: stdout,
		Stderr: teeWriter(stderr, &capture),
	})

	if res.Err != nil {
		return issue.NewErrorContext().
			WithOperation("install dependencies").
			WithResource(manifest).
			WithSuggestion("Confirm the virtual environment was activated (pip must resolve inside it)").
			WithExitCode(res.ExitCode).
			Wrap(res.Err).
			BuildError()
	}
	if !res.ExitCode.IsSuccess() {
		return issue.NewErrorContext().
			WithOperation("install dependencies").
			WithResource(manifest).
			WithExitCode(res.ExitCode).
			Wrap(classifyPipFailure(capture.String(), res)).
			BuildError()
	}

	return nil
}

// classifyPipFailure maps pip's stderr onto the failure taxonomy. pip exits
// 1 for almost everything, so the text is the only signal.
func classifyPipFailure(output string, res *runner.Result) error {
	line := firstMatchingLine(output, pipErrorMarkers)
	if line == "" {
		line = firstLine(output)
	}

	switch {
	case containsAny(output, "No matching distribution", "Could not find a version", "Invalid requirement", "could not open requirements file"):
		return fmt.Errorf("%w: %s", issue.ErrManifestResolutionFailure, line)
	case containsAny(output, "Permission denied", "Errno 13"):
		return fmt.Errorf("%w: %s", issue.ErrPermissionDenied, line)
	case containsAny(output, "Could not resolve host", "Temporary failure in name resolution", "Connection refused", "Connection timed out", "Network is unreachable", "ReadTimeoutError"):
		return fmt.Errorf("%w: %s", issue.ErrNetworkFailure, line)
	default:
		if line != "" {
			return fmt.Errorf("pip exited %s: %s", res.ExitCode, line)
		}
		return fmt.Errorf("pip exited %s", res.ExitCode)
	}
}

var pipErrorMarkers = []string{"ERROR:", "error:"}

func firstMatchingLine(output string, markers []string) string {
	for _, l := range strings.Split(output, "\n") {
		for _, m := range markers {
			if strings.Contains(l, m) {
				return strings.TrimSpace(l)
			}
		}
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
