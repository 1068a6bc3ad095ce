// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes OS-specific constants and path conventions,
// including the layout differences of Python virtual environments across
// operating systems.
package platform
