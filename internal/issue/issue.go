// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"errors"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a known failure class.
type Id int

const (
	ToolMissingId Id = iota + 1
	PermissionDeniedId
	NetworkFailureId
	AuthFailureId
	ManifestResolutionFailureId
	CloneTargetExistsId
	VenvMissingId
	ConfigLoadFailedId
)

// Sentinel errors for the failure classes. Components wrap these so callers
// can classify with errors.Is and the CLI layer can render the matching
// catalog entry.
var (
	ErrToolMissing               = errors.New("required tool not found")
	ErrPermissionDenied          = errors.New("permission denied")
	ErrNetworkFailure            = errors.New("network failure")
	ErrAuthFailure               = errors.New("authentication failure")
	ErrManifestResolutionFailure = errors.New("requirement could not be satisfied")
	ErrCloneTargetExists         = errors.New("clone target directory already exists")
	ErrVenvMissing               = errors.New("virtual environment not found")
)

type (
	// MarkdownMsg is markdown text that will be rendered to the terminal.
	MarkdownMsg string

	// HttpLink is a URL offered to the user for further reading.
	HttpLink string

	// Issue describes a known failure class with remediation guidance.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id { return i.id }

func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

func (i *Issue) ExtLinks() []HttpLink { return slices.Clone(i.extLinks) }

// Render produces the terminal-ready text for the issue.
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.extLinks {
			extraMd += "- " + string(link) + "\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

// render is a var so tests can stub out glamour.
var render = glamour.Render

var catalog = map[Id]*Issue{
	ToolMissingId: {
		id: ToolMissingId,
		mdMsg: `
# Required tool not found

One of the tools the setup procedure shells out to (python, git, or pip)
is not on your PATH.

## Things you can try
- Run the preflight check to see exactly which tools are missing:
~~~
$ mcpsetup doctor
~~~
- Install the missing tool with your system package manager and re-run.`,
	},

	PermissionDeniedId: {
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied

A directory could not be created or written. The setup procedure needs a
writable working directory for the virtual environment and the cloned
repository.

## Things you can try
- Check ownership and mode of the current directory.
- Re-run from a directory you own.`,
	},

	NetworkFailureId: {
		id: NetworkFailureId,
		mdMsg: `
# Network failure

The remote repository or the package index could not be reached.

## Things you can try
- Check your connectivity and any proxy configuration.
- Re-run once the network is back. Already-completed steps are left in
  place; remove the partial clone directory first if the failure happened
  mid-clone.`,
	},

	AuthFailureId: {
		id: AuthFailureId,
		mdMsg: `
# Authentication failure

The remote rejected your credentials. The repository is cloned over SSH,
so a usable SSH key must be available.

## Things you can try
- Confirm your key is loaded:
~~~
$ ssh-add -l
~~~
- Confirm GitHub accepts it:
~~~
$ ssh -T git@github.com
~~~`,
		extLinks: []HttpLink{
			"https://docs.github.com/en/authentication/connecting-to-github-with-ssh",
		},
	},

	ManifestResolutionFailureId: {
		id: ManifestResolutionFailureId,
		mdMsg: `
# Dependency installation failed

pip could not satisfy one of the entries in a requirements manifest.

## Things you can try
- Re-run with --verbose to see pip's resolver output.
- Check the failing requirement line for a version constraint that no
  longer exists on the index.`,
	},

	CloneTargetExistsId: {
		id: CloneTargetExistsId,
		mdMsg: `
# Clone target already exists

The directory the repository would be cloned into already exists and is
not empty. The setup procedure never overwrites an existing checkout.

## Things you can try
- Remove the previous checkout and re-run:
~~~
$ mcpsetup clean --repo
$ mcpsetup up
~~~`,
	},

	VenvMissingId: {
		id: VenvMissingId,
		mdMsg: `
# Virtual environment not found

Activation ran before the virtual environment existed on disk. This
usually means the environment directory was removed mid-run.

## Things you can try
- Re-run the full procedure:
~~~
$ mcpsetup clean && mcpsetup up
~~~`,
	},

	ConfigLoadFailedId: {
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

The config file exists but failed CUE schema validation.

## Things you can try
- Inspect the resolved configuration and its source path:
~~~
$ mcpsetup config show
$ mcpsetup config path
~~~
- Regenerate a fresh default config:
~~~
$ mcpsetup config init
~~~`,
	},
}

// Lookup returns the catalog entry for id, or nil if none exists.
func Lookup(id Id) *Issue {
	return catalog[id]
}

// AllIds returns all catalog ids in ascending order.
func AllIds() []Id {
	ids := maps.Keys(catalog)
	slices.Sort(ids)
	return ids
}

// ForError maps a classified error to its catalog id using the sentinel
// errors above. The boolean is false for errors with no catalog entry.
func ForError(err error) (Id, bool) {
	switch {
	case errors.Is(err, ErrToolMissing):
		return ToolMissingId, true
	case errors.Is(err, ErrPermissionDenied):
		return PermissionDeniedId, true
	case errors.Is(err, ErrNetworkFailure):
		return NetworkFailureId, true
	case errors.Is(err, ErrAuthFailure):
		return AuthFailureId, true
	case errors.Is(err, ErrManifestResolutionFailure):
		return ManifestResolutionFailureId, true
	case errors.Is(err, ErrCloneTargetExists):
		return CloneTargetExistsId, true
	case errors.Is(err, ErrVenvMissing):
		return VenvMissingId, true
	default:
		return 0, false
	}
}
