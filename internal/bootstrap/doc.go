// SPDX-License-Identifier: MPL-2.0

// Package bootstrap implements the environment-bootstrap procedure: a
// strict linear chain of five steps (create venv, activate, clone, install
// inner deps, install outer deps) executed fail-fast with no retries and no
// rollback.
//
// All state a step needs travels in an explicit Context instead of ambient
// process state: the working directory is captured once and never mutated,
// and activation is a derived environment slice rather than a shell-level
// side effect. This keeps every step independently testable against a
// recording runner.
package bootstrap
