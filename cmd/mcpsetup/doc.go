// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for mcpsetup.
//
// This package implements the Cobra command hierarchy: the root command,
// the provisioning commands (up, plan, doctor, clean) and the supporting
// config and completion commands.
package cmd
