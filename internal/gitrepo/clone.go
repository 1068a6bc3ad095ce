// SPDX-License-Identifier: MPL-2.0

package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"mcpsetup/internal/issue"
	"mcpsetup/internal/runner"
)

// CloneOptions control a single clone operation.
type CloneOptions struct {
	// URL is the remote repository address.
	URL string
	// Dir is the local checkout directory.
	Dir string
	// WorkDir is the directory the clone runs from. Dir is resolved
	// relative to it when not absolute.
	WorkDir string
	// SkipTargetCheck lets git itself surface a target collision instead
	// of failing up front.
	SkipTargetCheck bool
	// Stdout and Stderr receive the client's output.
	Stdout io.Writer
	Stderr io.Writer
}

// Clone materializes a working copy of the repository's default branch.
// Cloning over an existing non-empty directory fails; the procedure has no
// idempotent upsert behavior, matching git's own contract.
func Clone(ctx context.Context, r runner.Runner, opts CloneOptions) error {
	if !opts.SkipTargetCheck {
		state, err := StatTarget(targetPath(opts))
		if err != nil {
			return issue.WrapWithOperation(err, "inspect clone target")
		}
		if state == TargetNonEmpty {
			return issue.NewErrorContext().
				WithOperation("clone repository").
				WithResource(opts.Dir).
				WithSuggestion("Remove the previous checkout with 'mcpsetup clean --repo' and re-run").
				Wrap(issue.ErrCloneTargetExists).
				BuildError()
		}
	}

	var capture bytes.Buffer
	res := r.Run(ctx, &runner.Invocation{
		Tool:   "git",
		Args:   []string{"clone", opts.URL, opts.Dir},
		Dir:    opts.WorkDir,
		Stdout: opts.Stdout,
		Stderr: tee(opts.Stderr, &capture),
	})

	if res.Err != nil {
		return issue.NewErrorContext().
			WithOperation("clone repository").
			WithResource(opts.URL).
			WithExitCode(res.ExitCode).
			Wrap(res.Err).
			BuildError()
	}
	if !res.ExitCode.IsSuccess() {
		return issue.NewErrorContext().
			WithOperation("clone repository").
			WithResource(opts.URL).
			WithExitCode(res.ExitCode).
			Wrap(classifyCloneFailure(capture.String(), res.ExitCode.String())).
			BuildError()
	}

	return nil
}

func targetPath(opts CloneOptions) string {
	if opts.WorkDir == "" || filepath.IsAbs(opts.Dir) {
		return opts.Dir
	}
	return filepath.Join(opts.WorkDir, opts.Dir)
}

// classifyCloneFailure maps git's stderr onto the failure taxonomy. git
// exits 128 for nearly all fatal errors, so the text is the only signal.
func classifyCloneFailure(output, exitCode string) error {
	line := fatalLine(output)

	switch {
	case containsAny(output, "Permission denied (publickey", "Authentication failed", "Host key verification failed", "access denied", "Repository not found"):
		return fmt.Errorf("%w: %s", issue.ErrAuthFailure, line)
	case containsAny(output, "Could not resolve host", "unable to access", "Connection refused", "Connection timed out", "Network is unreachable", "early EOF", "Could not read from remote repository"):
		return fmt.Errorf("%w: %s", issue.ErrNetworkFailure, line)
	case strings.Contains(output, "already exists and is not an empty directory"):
		return fmt.Errorf("%w: %s", issue.ErrCloneTargetExists, line)
	default:
		if line != "" {
			return fmt.Errorf("git clone exited %s: %s", exitCode, line)
		}
		return fmt.Errorf("git clone exited %s", exitCode)
	}
}

// fatalLine extracts git's "fatal:" line, falling back to the first
// non-empty line.
func fatalLine(output string) string {
	var first string
	for _, l := range strings.Split(output, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if first == "" {
			first = l
		}
		if strings.HasPrefix(l, "fatal:") {
			return l
		}
	}
	return first
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func tee(user io.Writer, capture io.Writer) io.Writer {
	if user == nil {
		return capture
	}
	return io.MultiWriter(user, capture)
}
