// SPDX-License-Identifier: MPL-2.0

package config

// Runner to use for external process invocations.
const (
	RunnerNative  = "native"
	RunnerVirtual = "virtual"
)

// Color scheme options for terminal output.
const (
	ColorSchemeAuto  = "auto"
	ColorSchemeDark  = "dark"
	ColorSchemeLight = "light"
)

type (
	// Config is the root application configuration.
	Config struct {
		// VenvDir is the directory the virtual environment is created in,
		// relative to the project root.
		VenvDir string `mapstructure:"venv_dir"`

		// RepoURL is the clone URL of the companion repository.
		RepoURL string `mapstructure:"repo_url"`

		// CloneDir is the local checkout directory. Empty means derive it
		// from RepoURL.
		CloneDir string `mapstructure:"clone_dir"`

		// Manifest is the requirements file name used by both install
		// steps (inside the clone and in the project root).
		Manifest string `mapstructure:"manifest"`

		// Python is an explicit interpreter path or name. Empty means
		// discover python3/python on the PATH.
		Python string `mapstructure:"python"`

		// Runner selects how external tools are invoked: "native"
		// (direct exec) or "virtual" (the embedded shell interpreter).
		Runner string `mapstructure:"runner"`

		// UI holds user interface settings.
		UI UIConfig `mapstructure:"ui"`
	}

	// UIConfig holds user interface settings.
	UIConfig struct {
		// Verbose enables detailed output by default.
		Verbose bool `mapstructure:"verbose"`

		// ColorScheme selects the terminal color scheme (auto/dark/light).
		ColorScheme string `mapstructure:"color_scheme"`
	}
)

// DefaultConfig returns the stock configuration: the exact procedure the
// original setup script performed.
func DefaultConfig() *Config {
	return &Config{
		VenvDir:  "copilot_mcp_env",
		RepoURL:  "git@github.com:cucinellclark/rag_api.git",
		CloneDir: "", // derived from RepoURL
		Manifest: "requirements.txt",
		Python:   "", // discovered on PATH
		Runner:   RunnerNative,
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
	}
}
