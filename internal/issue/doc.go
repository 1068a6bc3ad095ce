// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error reporting: a builder for errors
// that carry operation context and fix suggestions, and a catalog of known
// failure classes rendered as markdown.
package issue
