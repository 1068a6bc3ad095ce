// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"mcpsetup/internal/config"
	"mcpsetup/internal/issue"
	"mcpsetup/internal/runner"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// runnerName overrides the configured process runner
	runnerName string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "mcpsetup",
		Short: "Provision the copilot MCP development environment",
		Long: TitleStyle.Render("mcpsetup") + SubtitleStyle.Render(" - Provision the copilot MCP development environment") + `

mcpsetup replaces the ad-hoc setup shell script with a single binary.
It creates a Python virtual environment, activates it, clones the
rag_api companion repository, and installs the Python dependencies of
both the clone and the project root, in that order, stopping at the
first failure.

` + SubtitleStyle.Render("Quick Start:") + `
  1. cd into your project directory
  2. Run: mcpsetup up
  3. Inspect what would run first with: mcpsetup plan

` + SubtitleStyle.Render("Examples:") + `
  mcpsetup up               Run the full five-step procedure
  mcpsetup plan             Show the resolved steps without executing
  mcpsetup doctor           Check tools and targets before running
  mcpsetup clean            Remove provisioned directories
  mcpsetup config show      Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/mcpsetup/config.cue)")
	rootCmd.PersistentFlags().StringVar(&runnerName, "runner", "", "process runner: native or virtual")

	// Add subcommands
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, _, err := config.Load()
	if err != nil {
		// Config loading problems never abort: the defaults reproduce the
		// original script exactly. Surface them and carry on.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// loadConfig loads the configuration and applies the global flag overrides
// that shadow config values.
func loadConfig() (*config.Config, error) {
	cfg, _, err := config.Load()
	if err != nil {
		return nil, err
	}
	if runnerName != "" {
		cfg.Runner = runnerName
	}
	return cfg, nil
}

// buildRunner selects the process runner named in the configuration.
func buildRunner(cfg *config.Config) (runner.Runner, error) {
	switch cfg.Runner {
	case config.RunnerNative, "":
		return runner.NewNativeRunner(), nil
	case config.RunnerVirtual:
		return runner.NewVirtualRunner(), nil
	default:
		return nil, fmt.Errorf("unknown runner %q: must be %q or %q",
			cfg.Runner, config.RunnerNative, config.RunnerVirtual)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderIssueCard prints the catalog entry for a classified failure, if the
// error maps to one.
func renderIssueCard(err error, colorScheme string) {
	id, ok := issue.ForError(err)
	if !ok {
		return
	}
	scheme := colorScheme
	if scheme == "" || scheme == config.ColorSchemeAuto {
		scheme = config.ColorSchemeDark
	}
	if rendered, renderErr := issue.Lookup(id).Render(scheme); renderErr == nil {
		fmt.Fprint(os.Stderr, rendered)
	}
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
