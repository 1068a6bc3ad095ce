// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"fmt"
	"sync"

	"mcpsetup/pkg/types"
)

type (
	// RecordingRunner is a Runner for tests. It records every invocation in
	// order and returns scripted results instead of spawning processes.
	// The zero value succeeds every call with exit code 0.
	RecordingRunner struct {
		mu sync.Mutex

		// Calls holds the invocations in the order they were made.
		Calls []RecordedCall

		// MissingTools makes LookTool fail for the listed tool names.
		MissingTools map[string]bool

		// Results maps a tool name to the result its next Run should
		// return. Unlisted tools succeed.
		Results map[string]*Result

		// Hooks maps a tool name to a function run on invocation, for
		// scripted side effects (e.g. creating the clone directory).
		Hooks map[string]func(inv *Invocation)
	}

	// RecordedCall is one captured invocation.
	RecordedCall struct {
		Tool string
		Args []string
		Dir  string
		Env  []string
	}
)

// NewRecordingRunner creates an empty recording runner.
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{
		MissingTools: make(map[string]bool),
		Results:      make(map[string]*Result),
		Hooks:        make(map[string]func(inv *Invocation)),
	}
}

// Name returns the runner name.
func (r *RecordingRunner) Name() string { return "recording" }

// Available returns whether this runner is available.
func (r *RecordingRunner) Available() bool { return true }

// LookTool resolves a tool unless it is scripted as missing.
func (r *RecordingRunner) LookTool(tool string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.MissingTools[tool] {
		return "", fmt.Errorf("%s not found in PATH", tool)
	}
	return "/usr/bin/" + tool, nil
}

// Run records the invocation and returns the scripted result.
func (r *RecordingRunner) Run(_ context.Context, inv *Invocation) *Result {
	r.mu.Lock()
	r.Calls = append(r.Calls, RecordedCall{
		Tool: inv.Tool,
		Args: append([]string(nil), inv.Args...),
		Dir:  inv.Dir,
		Env:  append([]string(nil), inv.Env...),
	})
	hook := r.Hooks[inv.Tool]
	res := r.Results[inv.Tool]
	r.mu.Unlock()

	if hook != nil {
		hook(inv)
	}
	if res != nil {
		return res
	}
	return &Result{ExitCode: types.ExitCode(0)}
}

// FailTool scripts a non-zero exit for the named tool.
func (r *RecordingRunner) FailTool(tool string, code types.ExitCode, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Results[tool] = &Result{ExitCode: code, Err: err}
}

// ToolSequence returns the recorded tool names in invocation order.
func (r *RecordingRunner) ToolSequence() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seq := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		seq[i] = c.Tool
	}
	return seq
}
