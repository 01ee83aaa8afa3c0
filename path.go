package objpath

import (
	"context"
	"io"
	"time"
)

// ObjectMeta holds the store-native metadata returned by head and list calls.
type ObjectMeta struct {
	Key          string
	Size         int64
	ETag         string
	LastModified time.Time
	StorageClass string
	Metadata     map[string]string
}

// Child is one entry produced by a listing: the resolved path plus the raw
// metadata the backend returned for it.
type Child struct {
	Path Path
	Meta ObjectMeta
}

// WriteScope is a staged write to a path. Bytes written to it accumulate
// locally; nothing is visible at the remote location until Close succeeds.
// Abort discards everything written so far without publishing anything.
//
// Exactly one of Close or Abort must be called. Calling either after the
// scope is finished returns ErrClosed.
type WriteScope interface {
	io.Writer

	// Close flushes all buffered bytes and publishes the complete object.
	Close() error

	// Abort discards the staged bytes. The remote location is untouched.
	Abort() error
}

// ============================================================================
// Core Interface
// ============================================================================

// Path is a location in some storage backend, addressed by URI.
// Implementations are immutable: the location is fixed at construction and
// every operation resolves against that same location.
//
// A Path is always absolute. Backends without native directories treat
// "directory" as a naming convention only.
type Path interface {
	// URI returns the canonical URI for this path.
	URI() string

	// Exists reports whether an object is present at this path.
	// A missing object is false, never an error.
	Exists(ctx context.Context) (bool, error)

	// Size returns the byte length of the object. The boolean is false when
	// no object exists; that is not an error.
	Size(ctx context.Context) (int64, bool, error)

	// Delete removes the object. Deleting a missing object is a no-op.
	Delete(ctx context.Context) error

	// Mkpath ensures the location can be written to. Backends without
	// directory entities return the path unchanged.
	Mkpath(ctx context.Context) (Path, error)

	// Open returns a readable stream over the full object content.
	// The caller must close it.
	Open(ctx context.Context) (io.ReadCloser, error)

	// Create opens a staged write scope for this path. See WriteScope.
	Create(ctx context.Context) (WriteScope, error)

	// CopyTo copies this object to dst. See CopyOption for the conversion
	// and server-side behavior.
	CopyTo(ctx context.Context, dst Path, opts ...CopyOption) error

	// CopyFrom copies src into this path.
	CopyFrom(ctx context.Context, src Path, opts ...CopyOption) error

	// MoveTo copies this object to dst without conversion, then deletes the
	// source. The two steps are not atomic: a failure in between leaves both
	// objects present.
	MoveTo(ctx context.Context, dst Path) error

	// EachChild enumerates objects below this path whose keys match pattern,
	// calling fn for each. Returning an error from fn stops the enumeration
	// and surfaces that error.
	EachChild(ctx context.Context, pattern string, fn func(Child) error, opts ...ListOption) error
}

// ============================================================================
// Optional Capability Interfaces
// ============================================================================
// Backends may expose extra operations beyond the Path contract. Use type
// assertion to check for a capability:
//
//	if t, ok := p.(objpath.CanTransferFile); ok {
//	    t.Upload(ctx, "/tmp/payload.bin")
//	}

// CanTransferFile indicates the backend supports direct transfers between a
// local file and the remote object, bypassing the conversion pipeline.
type CanTransferFile interface {
	// Upload sends the complete contents of a local file to this path.
	Upload(ctx context.Context, localPath string) error

	// Download fetches the complete object into a local file.
	Download(ctx context.Context, localPath string) error
}

// CanChecksum indicates the backend supports content integrity verification.
type CanChecksum interface {
	// Checksum calculates the checksum of the object using the specified
	// algorithm. Returns the checksum as a hex-encoded string.
	Checksum(ctx context.Context, algorithm ChecksumAlgorithm) (string, error)
}
