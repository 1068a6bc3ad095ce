// SPDX-License-Identifier: MPL-2.0

// Package pyenv wraps the Python tooling the bootstrap procedure shells out
// to: interpreter discovery, virtual environment creation and activation
// semantics, and pip installs from requirements manifests.
package pyenv
