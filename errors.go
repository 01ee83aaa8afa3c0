package objpath

import (
	"errors"
	"fmt"
	"strings"
)

// Common path errors
var (
	ErrNotExist     = errors.New("object does not exist")
	ErrExist        = errors.New("object already exists")
	ErrClosed       = errors.New("write scope already finished")
	ErrNotSupported = errors.New("operation not supported")
	ErrReadOnly     = errors.New("path is read-only")
	ErrInvalidSize  = errors.New("invalid object size")
)

// PathError records an error and the operation and path that caused it
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathError creates a PathError for the given operation and path
func NewPathError(op, path string, err error) *PathError {
	return &PathError{Op: op, Path: path, Err: err}
}

// IsNotExist reports whether an error indicates that an object does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsReadOnly reports whether an error indicates a rejected write on a
// read-only path
func IsReadOnly(err error) bool {
	return errors.Is(err, ErrReadOnly)
}

// AddressError reports a URI that cannot address a path: malformed syntax,
// an unregistered scheme, or a scheme the backend does not serve.
// It is raised at construction, never from a remote call.
type AddressError struct {
	URI    string
	Reason string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid address %q: %s", e.URI, e.Reason)
}

// PartError identifies one failed segment of a multi-part upload.
type PartError struct {
	PartNumber int32
	Err        error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("part %d: %v", e.PartNumber, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}

// MultipartError reports an aborted multi-part upload. It carries the upload
// identifier and the segments that failed, so callers can tell exactly which
// parts never made it.
type MultipartError struct {
	UploadID string
	Failed   []*PartError
}

func (e *MultipartError) Error() string {
	parts := make([]string, len(e.Failed))
	for i, p := range e.Failed {
		parts[i] = p.Error()
	}
	return fmt.Sprintf("multipart upload %s aborted: %s", e.UploadID, strings.Join(parts, "; "))
}

// Unwrap returns the first failed part's error, which is usually the
// backend error that triggered the abort.
func (e *MultipartError) Unwrap() error {
	if len(e.Failed) == 0 {
		return nil
	}
	return e.Failed[0].Err
}
