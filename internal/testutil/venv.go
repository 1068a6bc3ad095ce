// SPDX-License-Identifier: EPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"mcpsetup/pkg/platform"
)

// MakeFakeVenv materializes the minimal on-disk shape of a Python virtual
// environment at path: an executables directory holding a python file. It
// exists so tests can exercise activation and discovery without invoking a
// real interpreter.
func MakeFakeVenv(t testing.TB, path string) {
	t.Helper()

	bin := platform.VenvBinPath(path)
	if err := os.MkdirAll(bin, 0o755); err != nil {
		t.Fatalf("failed to create fake venv dir %s: %v", bin, err)
	}
	if err := os.WriteFile(filepath.Join(bin, "python"), []byte{}, 0o755); err != nil {
		t.Fatalf("failed to create fake venv python: %v", err)
	}
}
