// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path/filepath"
	"runtime"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// VenvScriptsDir returns the name of the executables directory inside a
// Python virtual environment: "Scripts" on Windows, "bin" elsewhere.
func VenvScriptsDir() string {
	return VenvScriptsDirFor(runtime.GOOS)
}

// VenvScriptsDirFor is VenvScriptsDir for an explicit GOOS value.
func VenvScriptsDirFor(goos string) string {
	return venvScriptsDirFor(goos)
}

// VenvBinPath returns the absolute path to the executables directory of the
// virtual environment rooted at venvPath.
func VenvBinPath(venvPath string) string {
	return filepath.Join(venvPath, VenvScriptsDir())
}

func venvScriptsDirFor(goos string) string {
	if goos == Windows {
		return "Scripts"
	}
	return "bin"
}
