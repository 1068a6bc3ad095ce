// SPDX-License-Identifier: MPL-2.0

// Package runner provides the external-process invocation interface and its
// implementations: native execution via os/exec and a virtual runner backed
// by the mvdan/sh shell interpreter. A recording implementation supports
// deterministic tests without spawning real processes.
package runner
