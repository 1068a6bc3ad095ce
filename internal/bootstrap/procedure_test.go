// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mcpsetup/internal/config"
	"mcpsetup/internal/issue"
	"mcpsetup/internal/runner"
	"mcpsetup/internal/testutil"
	"mcpsetup/pkg/platform"
	"mcpsetup/pkg/types"

	"github.com/charmbracelet/log"
)

// newTestContext builds a Context rooted in a temp directory, with a
// recording runner whose venv invocation materializes a fake environment
// (so the activation step finds one without running real Python).
func newTestContext(t *testing.T) (*Context, *runner.RecordingRunner) {
	t.Helper()

	r := runner.NewRecordingRunner()
	wd := t.TempDir()
	cfg := config.DefaultConfig()

	bctx := &Context{
		Config:     cfg,
		Runner:     r,
		WorkingDir: wd,
		VenvPath:   filepath.Join(wd, cfg.VenvDir),
		CloneDir:   "rag_api",
		BaseEnv:    []string{"PATH=/usr/bin:/bin", "HOME=/home/u"},
		Stdout:     io.Discard,
		Stderr:     io.Discard,
		Log:        log.New(io.Discard),
	}

	// python3 -m venv <dir> creates the environment on disk. The recorded
	// tool name is the resolved path because interpreter discovery runs
	// through LookTool.
	r.Hooks["/usr/bin/python3"] = func(inv *runner.Invocation) {
		if len(inv.Args) >= 3 && inv.Args[0] == "-m" && inv.Args[1] == "venv" {
			testutil.MakeFakeVenv(t, inv.Args[2])
		}
	}

	return bctx, r
}

func TestProcedure_InvocationOrder(t *testing.T) {
	t.Parallel()

	bctx, r := newTestContext(t)

	state, err := NewProcedure().Run(context.Background(), bctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if state != StateDone {
		t.Errorf("state = %s, want done", state)
	}

	want := []string{"/usr/bin/python3", "git", "pip", "pip"}
	got := r.ToolSequence()
	if len(got) != len(want) {
		t.Fatalf("ToolSequence() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("invocation %d = %q, want %q", i, got[i], want[i])
		}
	}

	// The venv invocation precedes everything and carries -m venv.
	first := r.Calls[0]
	if first.Args[0] != "-m" || first.Args[1] != "venv" {
		t.Errorf("first invocation args = %v, want venv creation", first.Args)
	}
}

func TestProcedure_WorkingDirectoryRestoration(t *testing.T) {
	t.Parallel()

	bctx, r := newTestContext(t)

	if _, err := NewProcedure().Run(context.Background(), bctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Calls: python3, git, pip(inner), pip(outer).
	inner := r.Calls[2]
	outer := r.Calls[3]

	if inner.Dir != bctx.ClonePath() {
		t.Errorf("inner install Dir = %q, want clone path %q", inner.Dir, bctx.ClonePath())
	}
	if outer.Dir != bctx.WorkingDir {
		t.Errorf("outer install Dir = %q, want original root %q", outer.Dir, bctx.WorkingDir)
	}
}

func TestProcedure_ActivationThreadedIntoInstalls(t *testing.T) {
	t.Parallel()

	bctx, r := newTestContext(t)

	if _, err := NewProcedure().Run(context.Background(), bctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, idx := range []int{2, 3} {
		env := r.Calls[idx].Env
		var hasVenv bool
		var path string
		for _, kv := range env {
			if strings.HasPrefix(kv, "VIRTUAL_ENV=") {
				hasVenv = true
			}
			if strings.HasPrefix(kv, "PATH=") {
				path = kv
			}
		}
		if !hasVenv {
			t.Errorf("install %d missing VIRTUAL_ENV: %v", idx, env)
		}
		venvBin := platform.VenvBinPath(bctx.VenvPath)
		if !strings.HasPrefix(path, "PATH="+venvBin) {
			t.Errorf("install %d PATH = %q, want venv bin %q first", idx, path, venvBin)
		}
	}
}

func TestProcedure_CloneFailureStopsBeforeInstalls(t *testing.T) {
	t.Parallel()

	bctx, r := newTestContext(t)
	r.FailTool("git", 128, nil)

	state, err := NewProcedure().Run(context.Background(), bctx)
	if err == nil {
		t.Fatal("Run() expected error for clone failure")
	}
	if state != StateEnvActive {
		t.Errorf("state = %s, want env-active (last completed)", state)
	}
	if !strings.Contains(err.Error(), StepCloneRepo) {
		t.Errorf("error %q does not name the failing step", err)
	}

	// The tool's own exit status survives the wrapping for propagation.
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error %v is not an ActionableError", err)
	}
	if ae.ExitCode != types.ExitCode(128) {
		t.Errorf("ExitCode = %s, want 128", ae.ExitCode)
	}

	for _, tool := range r.ToolSequence() {
		if tool == "pip" {
			t.Error("install step ran after clone failure")
		}
	}
}

func TestProcedure_RerunFailsAtCloneStep(t *testing.T) {
	t.Parallel()

	bctx, r := newTestContext(t)
	ctx := context.Background()

	if _, err := NewProcedure().Run(ctx, bctx); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	// Simulate the checkout the first clone produced.
	if err := os.MkdirAll(filepath.Join(bctx.ClonePath(), ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	state, err := NewProcedure().Run(ctx, bctx)
	if err == nil {
		t.Fatal("second Run() expected deterministic failure at the clone step")
	}
	if !errors.Is(err, issue.ErrCloneTargetExists) {
		t.Errorf("error = %v, want ErrCloneTargetExists", err)
	}
	if state != StateEnvActive {
		t.Errorf("state = %s, want env-active", state)
	}

	// Steps 1-2 re-ran harmlessly: the second pass recorded another venv
	// invocation but no second git or pip call.
	counts := map[string]int{}
	for _, tool := range r.ToolSequence() {
		counts[tool]++
	}
	if counts["/usr/bin/python3"] != 2 {
		t.Errorf("python invocations = %d, want 2", counts["/usr/bin/python3"])
	}
	if counts["git"] != 1 {
		t.Errorf("git invocations = %d, want 1 (second run must stop first)", counts["git"])
	}
	if counts["pip"] != 2 {
		t.Errorf("pip invocations = %d, want 2 (first run only)", counts["pip"])
	}
}

func TestProcedure_MissingInterpreterFailsFirst(t *testing.T) {
	t.Parallel()

	bctx, r := newTestContext(t)
	r.MissingTools["python3"] = true
	r.MissingTools["python"] = true

	state, err := NewProcedure().Run(context.Background(), bctx)
	if err == nil {
		t.Fatal("Run() expected error with no interpreter")
	}
	if !errors.Is(err, issue.ErrToolMissing) {
		t.Errorf("error = %v, want ErrToolMissing", err)
	}
	if state != StateInit {
		t.Errorf("state = %s, want init", state)
	}
	if len(r.Calls) != 0 {
		t.Errorf("no external invocation should have run, got %v", r.ToolSequence())
	}
}

func TestProcedure_Canceled(t *testing.T) {
	t.Parallel()

	bctx, _ := newTestContext(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProcedure().Run(ctx, bctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	want := map[State]string{
		StateInit:               "init",
		StateEnvCreated:         "env-created",
		StateEnvActive:          "env-active",
		StateRepoCloned:         "repo-cloned",
		StateDepsInnerInstalled: "deps-inner-installed",
		StateDone:               "done",
		State(99):               "unknown",
	}
	for s, name := range want {
		if s.String() != name {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), name)
		}
	}
}
