// SPDX-License-Identifier: MPL-2.0

package gitrepo

import (
	"fmt"
	"os"
	"strings"
)

// TargetState describes what occupies a prospective clone directory.
type TargetState int

const (
	// TargetMissing means the directory does not exist.
	TargetMissing TargetState = iota
	// TargetEmpty means the directory exists but has no entries.
	TargetEmpty
	// TargetNonEmpty means the directory exists and has entries.
	TargetNonEmpty
)

// DirFromURL derives the local checkout directory name from a clone URL,
// the same way git does: the last path segment with a trailing ".git"
// stripped. Handles both URL-style (https://host/user/repo.git) and
// scp-style (git@host:user/repo.git) addresses.
func DirFromURL(url string) (string, error) {
	trimmed := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	trimmed = strings.TrimSuffix(trimmed, "/")

	segment := trimmed
	if i := strings.LastIndexByte(segment, '/'); i >= 0 {
		segment = segment[i+1:]
	}
	// scp-style URLs with no slash after the colon (host:repo)
	if i := strings.LastIndexByte(segment, ':'); i >= 0 {
		segment = segment[i+1:]
	}

	if segment == "" || segment == "." || segment == ".." {
		return "", fmt.Errorf("cannot derive checkout directory from %q", url)
	}
	return segment, nil
}

// StatTarget inspects the prospective clone directory.
func StatTarget(dir string) (TargetState, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return TargetMissing, nil
	}
	if err != nil {
		return TargetMissing, fmt.Errorf("failed to inspect clone target %s: %w", dir, err)
	}
	if len(entries) == 0 {
		return TargetEmpty, nil
	}
	return TargetNonEmpty, nil
}
