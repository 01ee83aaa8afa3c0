// Package objpath presents remote object stores as paths with streaming
// read/write, the way local files are. A [Path] is addressed by URI, resolved
// through a per-scheme backend registry, and offers the usual filesystem-like
// operations: exists, size, delete, copy, move, recursive enumeration, and
// staged streaming I/O.
//
// Backends live in their own packages; importing one registers its scheme:
//
//	import (
//	    "github.com/gobeaver/objpath"
//	    _ "github.com/gobeaver/objpath/driver/s3"
//	)
//
//	p, err := objpath.Resolve("s3://my-bucket/reports/2026/q1.csv?storage-class=STANDARD_IA")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//
//	// Staged write: nothing is visible remotely until Close succeeds.
//	w, err := p.Create(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := io.Copy(w, src); err != nil {
//	    w.Abort()
//	    log.Fatal(err)
//	}
//	if err := w.Close(); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Streaming read.
//	r, err := p.Open(ctx)
//
//	// Presence and size degrade gracefully: a missing object is
//	// (false, nil) and (0, false, nil), never an error.
//	ok, err := p.Exists(ctx)
//	n, ok, err := p.Size(ctx)
//
// # Listing
//
// [Path.EachChild] enumerates objects under a path filtered by a glob
// pattern. [Children] wraps it in a restartable lazy sequence:
//
//	for child, err := range objpath.Children(ctx, p, "logs/2026-*.gz") {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(child.Path.URI(), child.Meta.Size)
//	}
//
// A pattern without wildcards short-circuits to a single existence probe; no
// listing call is made.
//
// # Copies and moves
//
// [Path.CopyTo] streams through the conversion pipeline by default. Backends
// that support it switch to a server-side copy when conversion is disabled
// via [WithConvert] and the source is small enough, so bytes never transit
// the local process. [Path.MoveTo] is copy-then-delete and is documented
// non-atomic.
//
// # Options
//
// Free-form options ([Params]) attach to a path from two sources: URI query
// parameters and explicitly supplied options. Explicit options win. The
// merged bag is passed through to every remote call that can honor it (ACL,
// storage class, content type, encryption, metadata).
//
// # Error handling
//
// Missing objects are benign for presence, size and delete; everything else
// fails loudly with backend-native detail intact:
//
//	_, err := p.Open(ctx)
//	if objpath.IsNotExist(err) {
//	    // object is gone
//	}
//
//	var mpErr *objpath.MultipartError
//	if errors.As(err, &mpErr) {
//	    // mpErr.Failed lists the segments that never made it
//	}
package objpath
