package objpath

// ============================================================================
// Listing Options
// ============================================================================

// ListOptions controls how EachChild filters listed entries.
type ListOptions struct {
	// CaseSensitive controls whether pattern matching distinguishes case.
	// Defaults to true.
	CaseSensitive bool

	// Directories includes pseudo-directory marker entries (keys ending in
	// the path separator) in the results. Defaults to false.
	Directories bool

	// Hidden includes entries whose base name starts with a dot.
	// Defaults to false.
	Hidden bool
}

// ListOption is a functional option for EachChild.
type ListOption func(*ListOptions)

// NewListOptions applies the given options over the defaults.
func NewListOptions(opts ...ListOption) ListOptions {
	o := ListOptions{CaseSensitive: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// CaseInsensitive makes pattern matching ignore case.
func CaseInsensitive() ListOption {
	return func(o *ListOptions) {
		o.CaseSensitive = false
	}
}

// IncludeDirectories yields pseudo-directory marker entries as well.
func IncludeDirectories() ListOption {
	return func(o *ListOptions) {
		o.Directories = true
	}
}

// IncludeHidden yields dot-prefixed entries as well.
func IncludeHidden() ListOption {
	return func(o *ListOptions) {
		o.Hidden = true
	}
}

// ============================================================================
// Copy Options
// ============================================================================

// CopyOptions controls CopyTo and CopyFrom.
type CopyOptions struct {
	// Convert routes the copy through the conversion pipeline. It defaults
	// to true; a backend-native server-side copy is opt-in via
	// WithConvert(false) and is only taken when source and target share a
	// backend type and the source is under the server-side copy size limit.
	Convert bool

	// Extra options applied to the copy call on top of the source path's own
	// params.
	Extra *Params
}

// CopyOption is a functional option for CopyTo and CopyFrom.
type CopyOption func(*CopyOptions)

// NewCopyOptions applies the given options over the defaults.
func NewCopyOptions(opts ...CopyOption) CopyOptions {
	o := CopyOptions{Convert: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithConvert sets whether the copy runs through the conversion pipeline.
func WithConvert(convert bool) CopyOption {
	return func(o *CopyOptions) {
		o.Convert = convert
	}
}

// WithExtraParams adds per-call options to the copy.
func WithExtraParams(p *Params) CopyOption {
	return func(o *CopyOptions) {
		o.Extra = p
	}
}
