// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"mcpsetup/internal/bootstrap"
	"mcpsetup/internal/runner"

	"github.com/spf13/cobra"
)

var (
	// cleanVenv / cleanRepo select what to remove. Neither set means both.
	cleanVenv bool
	cleanRepo bool

	cleanCmd = &cobra.Command{
		Use:   "clean",
		Short: "Remove provisioned directories",
		Long: `Remove the virtual environment and the cloned repository so
the procedure can run from scratch. With --venv or --repo only that
target is removed. Removing the clone is what a re-run after a completed
clone step requires.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			bctx, err := bootstrap.NewContext(cfg, runner.NewNativeRunner())
			if err != nil {
				return err
			}

			var targets []string
			both := !cleanVenv && !cleanRepo
			if cleanVenv || both {
				targets = append(targets, bctx.VenvPath)
			}
			if cleanRepo || both {
				targets = append(targets, bctx.ClonePath())
			}

			for _, target := range targets {
				if _, err := os.Stat(target); os.IsNotExist(err) {
					fmt.Printf("%s %s (not present)\n", SubtitleStyle.Render("-"), target)
					continue
				}
				if err := os.RemoveAll(target); err != nil {
					return fmt.Errorf("failed to remove %s: %w", target, err)
				}
				fmt.Printf("%s Removed %s\n", SuccessStyle.Render("✓"), target)
			}
			return nil
		},
	}
)

func init() {
	cleanCmd.Flags().BoolVar(&cleanVenv, "venv", false, "remove only the virtual environment")
	cleanCmd.Flags().BoolVar(&cleanRepo, "repo", false, "remove only the cloned repository")
}
