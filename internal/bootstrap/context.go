// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mcpsetup/internal/config"
	"mcpsetup/internal/gitrepo"
	"mcpsetup/internal/runner"

	"github.com/charmbracelet/log"
)

// Context carries all state the steps need. The working directory is
// captured once at construction; steps that operate elsewhere set the
// invocation's directory instead of mutating process state, so later steps
// always run from the original root.
type Context struct {
	// Config is the resolved application configuration.
	Config *config.Config

	// Runner executes external tools.
	Runner runner.Runner

	// WorkingDir is the project root the procedure was started from.
	// Never mutated after construction.
	WorkingDir string

	// VenvPath is the virtual environment directory (absolute).
	VenvPath string

	// CloneDir is the checkout directory name, derived from the repo URL
	// unless configured explicitly.
	CloneDir string

	// Python is the resolved interpreter. Populated by the create step.
	Python string

	// BaseEnv is the environment activation derives from.
	BaseEnv []string

	// ActiveEnv is the activated environment (VIRTUAL_ENV, venv-first
	// PATH). Populated by the activation step; nil before it runs.
	ActiveEnv []string

	// SkipCloneCheck lets git surface target collisions itself.
	SkipCloneCheck bool

	// Stdout and Stderr receive output from the invoked tools.
	Stdout io.Writer
	Stderr io.Writer

	// Log reports step progress.
	Log *log.Logger
}

// NewContext builds a Context from the configuration, capturing the current
// working directory as the immutable project root.
func NewContext(cfg *config.Config, r runner.Runner) (*Context, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	cloneDir := cfg.CloneDir
	if cloneDir == "" {
		cloneDir, err = gitrepo.DirFromURL(cfg.RepoURL)
		if err != nil {
			return nil, err
		}
	}

	return &Context{
		Config:     cfg,
		Runner:     r,
		WorkingDir: wd,
		VenvPath:   filepath.Join(wd, cfg.VenvDir),
		CloneDir:   cloneDir,
		BaseEnv:    os.Environ(),
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Log:        log.New(io.Discard),
	}, nil
}

// ClonePath returns the absolute path of the checkout directory.
func (c *Context) ClonePath() string {
	if filepath.IsAbs(c.CloneDir) {
		return c.CloneDir
	}
	return filepath.Join(c.WorkingDir, c.CloneDir)
}
