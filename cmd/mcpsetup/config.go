// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"mcpsetup/internal/config"

	"github.com/spf13/cobra"
)

// configCmd is the `mcpsetup config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mcpsetup configuration",
	Long: `Manage mcpsetup configuration.

Configuration is stored in:
  - Linux: ~/.config/mcpsetup/config.cue
  - macOS: ~/Library/Application Support/mcpsetup/config.cue
  - Windows: %APPDATA%\mcpsetup\config.cue

A config.cue in the current directory is also picked up. Every value has
a default that reproduces the original setup procedure, so running
without any config file is fully supported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Printf("Config directory: %s\n", cfgDir)
			fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})
}

func showConfig() error {
	cfg, cfgPath, err := config.Load()
	if err != nil {
		return err
	}

	keyStyle := StepStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if cfgPath != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", keyStyle.Render("venv_dir"), valueStyle.Render(cfg.VenvDir))
	fmt.Printf("%s: %s\n", keyStyle.Render("repo_url"), valueStyle.Render(cfg.RepoURL))
	if cfg.CloneDir != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("clone_dir"), valueStyle.Render(cfg.CloneDir))
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("clone_dir"), SubtitleStyle.Render("(derived from repo_url)"))
	}
	fmt.Printf("%s: %s\n", keyStyle.Render("manifest"), valueStyle.Render(cfg.Manifest))
	if cfg.Python != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("python"), valueStyle.Render(cfg.Python))
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("python"), SubtitleStyle.Render("(discovered on PATH)"))
	}
	fmt.Printf("%s: %s\n", keyStyle.Render("runner"), valueStyle.Render(cfg.Runner))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme))

	return nil
}
