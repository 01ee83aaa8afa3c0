package objpath

import (
	"context"
	"io"
)

// ============================================================================
// ReadOnlyPath Decorator
// ============================================================================

// ReadOnlyPath wraps a Path to prevent all write operations.
// This is useful for:
// - Providing safe read-only access to sensitive data
// - Exposing a path to untrusted code
// - Testing scenarios where writes should be prevented
//
// Read operations (Exists, Size, Open, EachChild, CopyTo) pass through to
// the wrapped path. Create, Delete, CopyFrom and MoveTo fail with ErrReadOnly.
type ReadOnlyPath struct {
	p Path
}

// NewReadOnlyPath creates a read-only wrapper around a Path.
func NewReadOnlyPath(p Path) *ReadOnlyPath {
	return &ReadOnlyPath{p: p}
}

// URI returns the wrapped path's URI.
func (r *ReadOnlyPath) URI() string {
	return r.p.URI()
}

// Exists passes through to the wrapped path.
func (r *ReadOnlyPath) Exists(ctx context.Context) (bool, error) {
	return r.p.Exists(ctx)
}

// Size passes through to the wrapped path.
func (r *ReadOnlyPath) Size(ctx context.Context) (int64, bool, error) {
	return r.p.Size(ctx)
}

// Delete fails with ErrReadOnly.
func (r *ReadOnlyPath) Delete(ctx context.Context) error {
	return NewPathError("delete", r.p.URI(), ErrReadOnly)
}

// Mkpath is a no-op returning the wrapper itself.
func (r *ReadOnlyPath) Mkpath(ctx context.Context) (Path, error) {
	return r, nil
}

// Open passes through to the wrapped path.
func (r *ReadOnlyPath) Open(ctx context.Context) (io.ReadCloser, error) {
	return r.p.Open(ctx)
}

// Create fails with ErrReadOnly.
func (r *ReadOnlyPath) Create(ctx context.Context) (WriteScope, error) {
	return nil, NewPathError("create", r.p.URI(), ErrReadOnly)
}

// CopyTo delegates to the wrapped path; it only reads the source.
func (r *ReadOnlyPath) CopyTo(ctx context.Context, dst Path, opts ...CopyOption) error {
	return r.p.CopyTo(ctx, dst, opts...)
}

// CopyFrom fails with ErrReadOnly.
func (r *ReadOnlyPath) CopyFrom(ctx context.Context, src Path, opts ...CopyOption) error {
	return NewPathError("copy", r.p.URI(), ErrReadOnly)
}

// MoveTo fails with ErrReadOnly: it would delete the source.
func (r *ReadOnlyPath) MoveTo(ctx context.Context, dst Path) error {
	return NewPathError("move", r.p.URI(), ErrReadOnly)
}

// EachChild passes through, wrapping every yielded child read-only.
func (r *ReadOnlyPath) EachChild(ctx context.Context, pattern string, fn func(Child) error, opts ...ListOption) error {
	return r.p.EachChild(ctx, pattern, func(c Child) error {
		c.Path = NewReadOnlyPath(c.Path)
		return fn(c)
	}, opts...)
}

// Ensure ReadOnlyPath implements Path
var _ Path = (*ReadOnlyPath)(nil)
