package objpath

import (
	"context"
	"io"
)

// StreamCopy is the generic copy fallback: it streams the source through the
// process into a staged write on the destination. Backends delegate to it
// whenever a native server-side copy is unavailable or disallowed (conversion
// requested, size over the server-side limit, or mismatched backend types).
//
// The destination never becomes visible partially written: the staged write
// is aborted on any failure.
func StreamCopy(ctx context.Context, src, dst Path) error {
	r, err := src.Open(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := dst.Create(ctx)
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Abort()
		return NewPathError("copy", dst.URI(), err)
	}

	return w.Close()
}
