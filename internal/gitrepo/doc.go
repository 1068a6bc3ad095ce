// SPDX-License-Identifier: MPL-2.0

// Package gitrepo wraps the version-control client: deriving the checkout
// directory from a clone URL, detecting target collisions, and classifying
// clone failures.
package gitrepo
