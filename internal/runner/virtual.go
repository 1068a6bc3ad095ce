// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"mcpsetup/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRunner executes tools through the embedded mvdan/sh interpreter
// instead of spawning a host shell. External programs are still real
// processes; only the shell layer is virtual.
type VirtualRunner struct{}

// NewVirtualRunner creates a new virtual runner.
func NewVirtualRunner() *VirtualRunner {
	return &VirtualRunner{}
}

// Name returns the runner name.
func (r *VirtualRunner) Name() string {
	return NameVirtual
}

// Available returns whether this runner is available.
func (r *VirtualRunner) Available() bool {
	// The interpreter is compiled in.
	return true
}

// LookTool resolves a tool on the host PATH. The virtual shell layer does
// not change tool resolution.
func (r *VirtualRunner) LookTool(tool string) (string, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", tool, err)
	}
	return path, nil
}

// Run quotes the invocation into a command line, parses it, and interprets
// it with the invocation's directory and environment.
func (r *VirtualRunner) Run(ctx context.Context, inv *Invocation) *Result {
	line, err := quoteArgv(inv.Argv())
	if err != nil {
		return &Result{ExitCode: 1, Err: err}
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(line), "")
	if err != nil {
		return &Result{ExitCode: 1, Err: fmt.Errorf("failed to parse invocation: %w", err)}
	}

	env := inv.Env
	if env == nil {
		env = os.Environ()
	}

	stdout := inv.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := inv.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, stdout, stderr),
	}
	if inv.Dir != "" {
		opts = append(opts, interp.Dir(inv.Dir))
	}

	sh, err := interp.New(opts...)
	if err != nil {
		return &Result{ExitCode: 1, Err: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	if err := sh.Run(ctx, prog); err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return &Result{ExitCode: types.ExitCode(status)}
		}
		return &Result{ExitCode: 1, Err: fmt.Errorf("failed to execute %s: %w", inv.Tool, err)}
	}

	return &Result{ExitCode: 0}
}

// quoteArgv renders an argv as a single shell command line with every word
// quoted for the bash dialect.
func quoteArgv(argv []string) (string, error) {
	words := make([]string, 0, len(argv))
	for _, a := range argv {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("failed to quote argument %q: %w", a, err)
		}
		words = append(words, q)
	}
	return strings.Join(words, " "), nil
}
