// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"mcpsetup/internal/issue"
	"mcpsetup/internal/runner"
	"mcpsetup/pkg/platform"
)

// CreateVenv materializes a virtual environment at venvPath using the given
// interpreter. Re-running over an existing environment is harmless: the
// venv module treats that as an upgrade-in-place.
func CreateVenv(ctx context.Context, r runner.Runner, python, venvPath string, stdout, stderr io.Writer) error {
	var capture bytes.Buffer
	res := r.Run(ctx, &runner.Invocation{
		Tool:   python,
		Args:   []string{"-m", "venv", venvPath},
		Stdout: stdout,
		Stderr: teeWriter(stderr, &capture),
	})

	if res.Err != nil {
		return issue.NewErrorContext().
			WithOperation("create virtual environment").
			WithResource(venvPath).
			WithExitCode(res.ExitCode).
			Wrap(res.Err).
			BuildError()
	}
	if !res.ExitCode.IsSuccess() {
		cause := fmt.Errorf("%s -m venv exited %s", python, res.ExitCode)
		if isPermissionDenied(capture.String()) {
			cause = fmt.Errorf("%w: %s", issue.ErrPermissionDenied, firstLine(capture.String()))
		}
		return issue.NewErrorContext().
			WithOperation("create virtual environment").
			WithResource(venvPath).
			WithSuggestion("Check that the current directory is writable").
			WithExitCode(res.ExitCode).
			Wrap(cause).
			BuildError()
	}

	return nil
}

// VenvExists reports whether venvPath looks like a usable virtual
// environment (has an executables directory with a python in it).
func VenvExists(venvPath string) bool {
	bin := platform.VenvBinPath(venvPath)
	for _, name := range []string{"python", "python.exe"} {
		if info, err := os.Stat(filepath.Join(bin, name)); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// ActivationEnv derives the environment that "source bin/activate" would
// have produced: VIRTUAL_ENV set, the venv executables directory prepended
// to PATH, and PYTHONHOME dropped. base is the environment to derive from
// (typically os.Environ()).
//
// The returned slice is what later steps must run under for python and pip
// to resolve inside the environment.
func ActivationEnv(venvPath string, base []string) ([]string, error) {
	if !VenvExists(venvPath) {
		return nil, issue.NewErrorContext().
			WithOperation("activate virtual environment").
			WithResource(venvPath).
			WithSuggestion("Run the full procedure so the environment is created first").
			Wrap(issue.ErrVenvMissing).
			BuildError()
	}

	abs, err := filepath.Abs(venvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve virtual environment path: %w", err)
	}
	return mergeActivationEnv(runtime.GOOS, abs, base), nil
}

// mergeActivationEnv rewrites base with the venv executables directory
// prepended to PATH, VIRTUAL_ENV re-set, and PYTHONHOME dropped. Windows
// environment keys are case-insensitive (the system typically spells the
// path variable "Path"), so matching follows goos.
func mergeActivationEnv(goos, abs string, base []string) []string {
	bin := filepath.Join(abs, platform.VenvScriptsDirFor(goos))
	sep := ":"
	if goos == platform.Windows {
		sep = ";"
	}

	env := make([]string, 0, len(base)+2)
	pathSeen := false
	for _, kv := range base {
		switch {
		case envKeyMatches(goos, kv, "PATH"):
			i := strings.IndexByte(kv, '=')
			env = append(env, kv[:i+1]+bin+sep+kv[i+1:])
			pathSeen = true
		case envKeyMatches(goos, kv, "VIRTUAL_ENV"), envKeyMatches(goos, kv, "PYTHONHOME"):
			// dropped: VIRTUAL_ENV is re-set below, PYTHONHOME would
			// redirect the interpreter out of the venv
		default:
			env = append(env, kv)
		}
	}
	if !pathSeen {
		env = append(env, "PATH="+bin)
	}
	env = append(env, "VIRTUAL_ENV="+abs)

	return env
}

// envKeyMatches reports whether the KEY=value entry kv carries the given
// key, honoring the platform's key-casing rules.
func envKeyMatches(goos, kv, key string) bool {
	i := strings.IndexByte(kv, '=')
	if i < 0 {
		return false
	}
	if goos == platform.Windows {
		return strings.EqualFold(kv[:i], key)
	}
	return kv[:i] == key
}

// VenvTool returns the path of a tool inside the virtual environment's
// executables directory.
func VenvTool(venvPath, tool string) string {
	return filepath.Join(platform.VenvBinPath(venvPath), tool)
}

func teeWriter(user io.Writer, capture io.Writer) io.Writer {
	if user == nil {
		return capture
	}
	return io.MultiWriter(user, capture)
}

func isPermissionDenied(output string) bool {
	return strings.Contains(output, "Permission denied") ||
		strings.Contains(output, "Errno 13")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
