// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"mcpsetup/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
)

// NativeRunner executes tools directly via os/exec.
type NativeRunner struct{}

// NewNativeRunner creates a new native runner.
func NewNativeRunner() *NativeRunner {
	return &NativeRunner{}
}

// Name returns the runner name.
func (r *NativeRunner) Name() string {
	return NameNative
}

// Available returns whether this runner is available.
func (r *NativeRunner) Available() bool {
	// Direct exec needs nothing beyond the OS.
	return true
}

// LookTool resolves a tool on the host PATH.
func (r *NativeRunner) LookTool(tool string) (string, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", tool, err)
	}
	return path, nil
}

// Run executes the invocation and blocks until the process exits.
func (r *NativeRunner) Run(ctx context.Context, inv *Invocation) *Result {
	tool, err := resolveTool(inv)
	if err != nil {
		return &Result{ExitCode: types.ExitCode(127), Err: err}
	}

	cmd := exec.CommandContext(ctx, tool, inv.Args...)

	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}
	if inv.Env != nil {
		cmd.Env = inv.Env
	}
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{ExitCode: types.ExitCode(exitErr.ExitCode())}
		}
		return &Result{ExitCode: 1, Err: fmt.Errorf("failed to execute %s: %w", inv.Tool, err)}
	}

	return &Result{ExitCode: 0}
}

// resolveTool chooses the executable path for an invocation. When the
// invocation carries its own environment, the lookup runs against that
// environment's PATH rather than the parent process's, so an activated
// environment decides which tool executes. exec.CommandContext alone would
// resolve a bare name on the parent PATH before the child environment
// applies.
func resolveTool(inv *Invocation) (string, error) {
	if inv.Env == nil ||
		strings.ContainsRune(inv.Tool, '/') ||
		strings.ContainsRune(inv.Tool, os.PathSeparator) {
		return inv.Tool, nil
	}

	dir := inv.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		dir = wd
	}

	path, err := interp.LookPathDir(dir, expand.ListEnviron(inv.Env...), inv.Tool)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", inv.Tool, err)
	}
	return path, nil
}
