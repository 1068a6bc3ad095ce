// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"mcpsetup/internal/testutil"
	"mcpsetup/pkg/platform"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != "" {
		t.Errorf("Load() resolved path = %q, want empty (defaults)", path)
	}
	if cfg.VenvDir != "copilot_mcp_env" {
		t.Errorf("VenvDir = %q", cfg.VenvDir)
	}
	if cfg.RepoURL != "git@github.com:cucinellclark/rag_api.git" {
		t.Errorf("RepoURL = %q", cfg.RepoURL)
	}
	if cfg.Manifest != "requirements.txt" {
		t.Errorf("Manifest = %q", cfg.Manifest)
	}
	if cfg.Runner != RunnerNative {
		t.Errorf("Runner = %q", cfg.Runner)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	writeConfigFile(t, dir, `
venv_dir: "altenv"
runner:   "virtual"
ui: verbose: true
`)

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path == "" {
		t.Error("Load() resolved path empty, want config file path")
	}
	if cfg.VenvDir != "altenv" {
		t.Errorf("VenvDir = %q, want %q", cfg.VenvDir, "altenv")
	}
	if cfg.Runner != RunnerVirtual {
		t.Errorf("Runner = %q, want virtual", cfg.Runner)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true")
	}
	// Untouched fields keep their defaults.
	if cfg.Manifest != "requirements.txt" {
		t.Errorf("Manifest = %q, want default", cfg.Manifest)
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	writeConfigFile(t, dir, `runner: "containerized"`)

	_, _, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for schema violation")
	}
	if !strings.Contains(err.Error(), "runner") {
		t.Errorf("error %q does not mention the invalid field", err)
	}
}

func TestLoad_RejectsOversizeFile(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	padding := "// " + strings.Repeat("x", 1<<20) + "\n"
	writeConfigFile(t, dir, padding+`clone_dir: "checkout"`)

	_, _, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for oversize config file")
	}
	if !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("error %q does not mention the size limit", err)
	}
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "nope.cue"))
	t.Cleanup(Reset)

	_, _, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for missing --config file")
	}
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, `clone_dir: "checkout"`)
	SetConfigFilePathOverride(path)
	t.Cleanup(Reset)

	cfg, resolved, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.CloneDir != "checkout" {
		t.Errorf("CloneDir = %q", cfg.CloneDir)
	}
}

func TestCreateDefaultConfig_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// The generated file must load cleanly and reproduce the defaults.
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() of generated config error = %v", err)
	}
	def := DefaultConfig()
	if cfg.VenvDir != def.VenvDir || cfg.RepoURL != def.RepoURL || cfg.Runner != def.Runner {
		t.Errorf("generated config does not round-trip: %+v", cfg)
	}

	// Calling again must be a no-op, not an overwrite.
	if _, err := CreateDefaultConfig(); err != nil {
		t.Fatalf("second CreateDefaultConfig() error = %v", err)
	}
}

func TestGenerateCUE_OmitsEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	out := GenerateCUE(DefaultConfig())
	if strings.Contains(out, "clone_dir") {
		t.Errorf("GenerateCUE() should omit empty clone_dir:\n%s", out)
	}
	if strings.Contains(out, "python:") {
		t.Errorf("GenerateCUE() should omit empty python:\n%s", out)
	}
	if !strings.Contains(out, `venv_dir: "copilot_mcp_env"`) {
		t.Errorf("GenerateCUE() missing venv_dir:\n%s", out)
	}
}

func TestConfigDir_UsesXDGConfigHome(t *testing.T) {
	if runtime.GOOS == platform.Windows || runtime.GOOS == platform.Darwin {
		t.Skip("XDG lookup applies to Linux and others")
	}
	Reset()
	t.Cleanup(Reset)

	xdg := t.TempDir()
	t.Cleanup(testutil.MustSetenv(t, "XDG_CONFIG_HOME", xdg))

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(xdg, AppName); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestConfigDir_FallsBackToHome(t *testing.T) {
	if runtime.GOOS == platform.Windows || runtime.GOOS == platform.Darwin {
		t.Skip("XDG lookup applies to Linux and others")
	}
	Reset()
	t.Cleanup(Reset)

	home := t.TempDir()
	t.Cleanup(testutil.MustSetenv(t, "XDG_CONFIG_HOME", ""))
	t.Cleanup(testutil.SetHomeDir(t, home))

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}
