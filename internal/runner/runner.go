// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"io"

	"mcpsetup/pkg/types"
)

// Runner name constants.
const (
	NameNative  = "native"
	NameVirtual = "virtual"
)

type (
	// Invocation describes a single external-process call.
	Invocation struct {
		// Tool is the program to run (name resolved on PATH, or a path).
		Tool string
		// Args are the program arguments, excluding the program itself.
		Args []string
		// Dir is the working directory for the process. Empty means the
		// calling process's current directory.
		Dir string
		// Env is the complete environment for the process. Nil means
		// inherit the calling process's environment.
		Env []string
		// Stdout receives the process's standard output. Nil discards it.
		Stdout io.Writer
		// Stderr receives the process's standard error. Nil discards it.
		Stderr io.Writer
	}

	// Result contains the outcome of an invocation.
	Result struct {
		// ExitCode is the process exit status. Meaningless when Err is a
		// spawn failure rather than a non-zero exit.
		ExitCode types.ExitCode
		// Err is non-nil when the process could not be started or was
		// interrupted. A clean non-zero exit sets ExitCode only.
		Err error
	}

	// Runner executes external tools.
	Runner interface {
		// Name returns the runner name.
		Name() string
		// Available returns whether this runner is usable on the current system.
		Available() bool
		// LookTool resolves a tool name, returning its path or an error
		// when the tool cannot be found.
		LookTool(tool string) (string, error)
		// Run executes the invocation and blocks until the process exits.
		Run(ctx context.Context, inv *Invocation) *Result
	}
)

// Success returns true if the invocation ran and exited zero.
func (r *Result) Success() bool {
	return r.Err == nil && r.ExitCode.IsSuccess()
}

// Argv returns the full argument vector including the tool itself.
func (i *Invocation) Argv() []string {
	return append([]string{i.Tool}, i.Args...)
}
