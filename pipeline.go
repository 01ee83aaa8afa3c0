package objpath

import "io"

// Pipeline converts between the raw bytes a backend stores and the stream a
// caller sees: compression, encoding, line framing and the like. Backends
// hand their staged raw-byte source or sink to the pipeline and expose the
// returned stream, so callers never deal with staging.
//
// A Writer returned by the pipeline must flush everything on Close without
// closing the underlying sink; the backend still needs the sink afterwards
// to publish the staged bytes.
type Pipeline interface {
	// Reader wraps a raw-byte source for reading converted content.
	Reader(r io.Reader) (io.Reader, error)

	// Writer wraps a raw-byte sink for writing content to be converted.
	Writer(w io.Writer) (io.Writer, error)
}

type identityPipeline struct{}

func (identityPipeline) Reader(r io.Reader) (io.Reader, error) { return r, nil }
func (identityPipeline) Writer(w io.Writer) (io.Writer, error) { return w, nil }

// Identity returns the pass-through pipeline: bytes are stored exactly as
// written. It is the default for every backend.
func Identity() Pipeline {
	return identityPipeline{}
}
