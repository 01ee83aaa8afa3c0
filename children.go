package objpath

import (
	"context"
	"errors"
	"iter"
)

// errStopIteration signals that the consumer broke out of the range loop.
var errStopIteration = errors.New("stop iteration")

// Children returns a lazy sequence over the entries below p matching
// pattern. The sequence is restartable: every range over it re-runs the
// full listing from scratch, so it reflects the store's state at iteration
// time, not at construction time. Breaking out of the range stops further
// page fetches.
//
// Errors from the backend are yielded as the second element; on error the
// sequence ends.
//
//	for child, err := range objpath.Children(ctx, p, "logs/*.gz") {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(child.Path.URI(), child.Meta.Size)
//	}
func Children(ctx context.Context, p Path, pattern string, opts ...ListOption) iter.Seq2[Child, error] {
	return func(yield func(Child, error) bool) {
		err := p.EachChild(ctx, pattern, func(c Child) error {
			if !yield(c, nil) {
				return errStopIteration
			}
			return nil
		}, opts...)
		if err != nil && !errors.Is(err, errStopIteration) {
			yield(Child{}, err)
		}
	}
}
