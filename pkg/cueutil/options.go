// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize bounds how large a CUE input may be before parsing is
// refused. Configuration files are tiny; anything near this limit is not a
// config file.
const DefaultMaxFileSize int64 = 1 << 20 // 1 MiB

type (
	// Option configures a ParseAndDecode call.
	Option func(*parseOptions)

	parseOptions struct {
		filename    string
		maxFileSize int64
		concrete    bool
	}
)

func defaultOptions() parseOptions {
	return parseOptions{
		maxFileSize: DefaultMaxFileSize,
	}
}

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *parseOptions) { o.filename = name }
}

// WithMaxFileSize overrides the input size limit.
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) { o.maxFileSize = size }
}

// WithConcrete requires all fields to be concrete after unification.
// Leave unset for schemas whose fields are optional.
func WithConcrete() Option {
	return func(o *parseOptions) { o.concrete = true }
}
